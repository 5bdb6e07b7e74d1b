package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tfx/internal/editor"
	"github.com/desertthunder/tfx/internal/models"
	"github.com/desertthunder/tfx/internal/projection"
	"github.com/desertthunder/tfx/internal/shared"
	"github.com/desertthunder/tfx/internal/store"
	"github.com/desertthunder/tfx/internal/validation"
	"github.com/gabriel-vasile/mimetype"
)

// maxBodyBytes bounds request bodies, imports included.
const maxBodyBytes = 5 << 20

// API serves the editor's operations as JSON endpoints.
type API struct {
	editor   *editor.Editor
	store    *store.ConfigStore
	settings *editor.SettingsSync
	logger   *log.Logger
	mux      *http.ServeMux
}

// NewAPI builds the endpoint set over e, which must be backed by cs.
func NewAPI(e *editor.Editor, cs *store.ConfigStore, logger *log.Logger) *API {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	a := &API{
		editor:   e,
		store:    cs,
		settings: editor.NewSettingsSync(e),
		logger:   logger.With("component", "api"),
		mux:      http.NewServeMux(),
	}
	a.mux.HandleFunc("GET /config.json", a.handleExport)
	a.mux.HandleFunc("POST /config.json", a.handleImport)
	a.mux.HandleFunc("GET /options/{kind}", a.handleOptions)
	a.mux.HandleFunc("POST /playlists", a.handleCreatePlaylist)
	a.mux.HandleFunc("PUT /playlists/{name}", a.handleUpdatePlaylist)
	a.mux.HandleFunc("POST /schedules", a.handleSaveSchedule)
	a.mux.HandleFunc("DELETE /schedules", a.handleDeleteSchedules)
	a.mux.HandleFunc("POST /delete", a.handleDelete)
	a.mux.HandleFunc("PUT /settings", a.handleSettings)
	return a
}

// Routes implements [Handler].
func (a *API) Routes() []string {
	return []string{
		"GET /config.json",
		"POST /config.json",
		"GET /options/{kind}",
		"POST /playlists",
		"PUT /playlists/{name}",
		"POST /schedules",
		"DELETE /schedules",
		"POST /delete",
		"PUT /settings",
	}
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// NewHandler wires the API behind a [BasicRouter] with request logging and rate limiting.
func NewHandler(api *API, cfg shared.ServerConfig, logger *log.Logger) *BasicRouter {
	router := NewBasicRouter()
	router.Use(Logging(logger), RateLimit(cfg.RateLimit, cfg.Burst))
	router.Handler(api)
	return router
}

// ScheduleRequest is the body of POST /schedules. Key selects an existing schedule to update.
type ScheduleRequest struct {
	Playlist string `json:"playlist"`
	Key      string `json:"key,omitempty"`
	validation.ScheduleInput
}

// DeleteRequest is the body of POST /delete. Entries are picker options as returned by
// GET /options/picker; only kind and value are read.
type DeleteRequest struct {
	Selected []projection.PickerOption `json:"selected"`
}

// SettingsResponse is the reply to PUT /settings.
type SettingsResponse struct {
	Changed  bool                   `json:"changed"`
	Document *models.ConfigDocument `json:"document"`
}

// OptionsResponse is the reply to GET /options/{kind}. Picker fills Options; the others fill Playlists or Schedules.
type OptionsResponse struct {
	Playlists []projection.PlaylistOption `json:"playlists,omitempty"`
	Schedules []projection.ScheduleOption `json:"schedules,omitempty"`
	Options   []projection.PickerOption   `json:"options,omitempty"`
}

type errorBody struct {
	Error  string              `json:"error"`
	Fields []shared.FieldError `json:"fields,omitempty"`
}

func (a *API) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := a.editor.Document(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := a.store.Export(&buf, doc); err != nil {
		a.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", store.ExportFileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (a *API) handleImport(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		a.writeError(w, fmt.Errorf("%w: content type %q, expected application/json", shared.ErrInvalidFile, r.Header.Get("Content-Type")))
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		a.writeError(w, &shared.ParseError{Source: "upload", Err: err})
		return
	}
	if mtype := mimetype.Detect(data); !store.AcceptsImport(mtype) {
		a.writeError(w, fmt.Errorf("%w: upload has type %s", shared.ErrInvalidFile, mtype.String()))
		return
	}

	var saved *models.ConfigDocument
	err = a.editor.Lock(func() error {
		var err error
		saved, err = a.store.Import(r.Context(), bytes.NewReader(data))
		return err
	})
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (a *API) handleOptions(w http.ResponseWriter, r *http.Request) {
	verbose, err := boolParam(r, "verbose", false)
	if err != nil {
		a.writeError(w, err)
		return
	}
	active, err := boolParam(r, "active", true)
	if err != nil {
		a.writeError(w, err)
		return
	}

	doc, err := a.editor.Document(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	var resp OptionsResponse
	switch kind := r.PathValue("kind"); kind {
	case "playlists":
		resp.Playlists = projection.FilteredPlaylists(doc, verbose, active)
	case "schedules":
		resp.Schedules = projection.FilteredSchedules(doc, verbose, active)
	case "picker":
		resp.Options = projection.Picker(doc, verbose, active)
	default:
		a.writeError(w, &shared.NotFoundError{Kind: "options", Identity: kind})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var in validation.PlaylistInput
	if !a.decode(w, r, &in) {
		return
	}
	doc, err := a.editor.CreatePlaylist(r.Context(), in)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (a *API) handleUpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	var in validation.PlaylistInput
	if !a.decode(w, r, &in) {
		return
	}
	doc, err := a.editor.UpdatePlaylist(r.Context(), r.PathValue("name"), in)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (a *API) handleSaveSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if !a.decode(w, r, &req) {
		return
	}
	doc, err := a.editor.SaveSchedule(r.Context(), req.Playlist, req.Key, req.ScheduleInput)
	if err != nil {
		a.writeError(w, err)
		return
	}
	status := http.StatusCreated
	if req.Key != "" {
		status = http.StatusOK
	}
	writeJSON(w, status, doc)
}

func (a *API) handleDeleteSchedules(w http.ResponseWriter, r *http.Request) {
	doc, err := a.editor.DeleteAllSchedules(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (a *API) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if !a.decode(w, r, &req) {
		return
	}
	doc, err := a.editor.Delete(r.Context(), req.Selected)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (a *API) handleSettings(w http.ResponseWriter, r *http.Request) {
	var in validation.SettingsInput
	if !a.decode(w, r, &in) {
		return
	}
	doc, changed, err := a.settings.Apply(r.Context(), in)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SettingsResponse{Changed: changed, Document: doc})
}

// decode reads a JSON body into v, replying 400 on failure.
func (a *API) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		a.writeError(w, &shared.ParseError{Source: "request", Err: err})
		return false
	}
	return true
}

func boolParam(r *http.Request, name string, fallback bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q", shared.ErrInvalidArgument, name, raw)
	}
	return v, nil
}

// StatusCode maps an editor or store error onto an HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, shared.ErrParse),
		errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrMissingArgument),
		errors.Is(err, shared.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, shared.ErrInvalidFile):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, shared.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	body := errorBody{Error: err.Error()}

	var verr *shared.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
