package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tfx/internal/models"
	"github.com/desertthunder/tfx/internal/shared"
	"github.com/gabriel-vasile/mimetype"
)

const (
	// DefaultKey is the key the document is stored under.
	DefaultKey = "configJson"
	// ExportFileName is the file written by exports.
	ExportFileName = "config.json"
	// TimestampLayout renders lastModified as a US-locale date and time, e.g. "10/15/2026, 9:41:07 AM".
	TimestampLayout = "1/2/2006, 3:04:05 PM"
)

// ConfigStore loads and saves the configuration document.
//
// A store without a [KV] behaves like a context with no storage: Load returns no document.
type ConfigStore struct {
	kv     KV
	key    string
	now    func() time.Time
	logger *log.Logger
}

// Option configures a [ConfigStore].
type Option func(*ConfigStore)

// WithKey overrides [DefaultKey].
func WithKey(key string) Option {
	return func(s *ConfigStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock sets the time source used for lastModified.
func WithClock(now func() time.Time) Option {
	return func(s *ConfigStore) { s.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(s *ConfigStore) { s.logger = l }
}

func NewConfigStore(kv KV, opts ...Option) *ConfigStore {
	s := &ConfigStore{kv: kv, key: DefaultKey, now: time.Now, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted document, or nil when none is stored.
func (s *ConfigStore) Load(ctx context.Context) (*models.ConfigDocument, error) {
	if s.kv == nil {
		return nil, nil
	}

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrStoreUnavailable, err)
	}
	if !ok {
		return nil, nil
	}

	doc, err := models.Decode([]byte(raw))
	if err != nil {
		return nil, &shared.ParseError{Source: "store", Err: err}
	}
	return doc, nil
}

// Save stamps lastModified, writes the whole document and returns the stamped copy.
func (s *ConfigStore) Save(ctx context.Context, doc *models.ConfigDocument) (*models.ConfigDocument, error) {
	if s.kv == nil {
		return nil, shared.ErrStoreUnavailable
	}

	stamped := doc.Clone()
	stamped.LastModified = s.now().Format(TimestampLayout)

	data, err := models.Encode(stamped, false)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrStoreUnavailable, err)
	}

	s.logger.Debug("saved document", "key", s.key, "playlists", len(stamped.Playlists), "schedules", len(stamped.Schedules))
	return stamped, nil
}

// Clear removes the persisted document.
func (s *ConfigStore) Clear(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrStoreUnavailable, err)
	}
	s.logger.Debug("cleared document", "key", s.key)
	return nil
}

// Export writes doc as JSON indented by two spaces.
func (s *ConfigStore) Export(w io.Writer, doc *models.ConfigDocument) error {
	data, err := models.Encode(doc, true)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// ExportToFile writes config.json into dir and returns its path.
func (s *ConfigStore) ExportToFile(dir string, doc *models.ConfigDocument) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	var buf bytes.Buffer
	if err := s.Export(&buf, doc); err != nil {
		return "", err
	}

	path := filepath.Join(dir, ExportFileName)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.logger.Info("exported document", "path", path)
	return path, nil
}

// Import parses r and replaces the persisted document with it.
//
// The document is written with a single Set that overwrites the stored one. Content that does
// not parse, or a failed write, leaves the stored document as it was.
func (s *ConfigStore) Import(ctx context.Context, r io.Reader) (*models.ConfigDocument, error) {
	return s.importNamed(ctx, r, "import")
}

func (s *ConfigStore) importNamed(ctx context.Context, r io.Reader, source string) (*models.ConfigDocument, error) {
	if s.kv == nil {
		return nil, shared.ErrStoreUnavailable
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}

	doc, err := models.Decode(data)
	if err != nil {
		return nil, &shared.ParseError{Source: source, Err: err}
	}

	saved, err := s.Save(ctx, doc)
	if err != nil {
		return nil, err
	}
	s.logger.Info("imported document", "source", source, "playlists", len(saved.Playlists), "schedules", len(saved.Schedules))
	return saved, nil
}

// ImportFile imports a .json file. Content sniffed as anything other than JSON or plain text is refused.
func (s *ConfigStore) ImportFile(ctx context.Context, path string) (*models.ConfigDocument, error) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return nil, fmt.Errorf("%w: %s is not a .json file", shared.ErrInvalidFile, filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidFile, err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	if !AcceptsImport(mtype) {
		return nil, fmt.Errorf("%w: %s has type %s, expected application/json", shared.ErrInvalidFile, filepath.Base(path), mtype.String())
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind %s: %w", path, err)
	}
	return s.importNamed(ctx, f, filepath.Base(path))
}

// AcceptsImport reports whether sniffed content may be parsed as a document.
// Plain text is let through so malformed JSON surfaces as a parse error.
func AcceptsImport(mtype *mimetype.MIME) bool {
	return mtype.Is("application/json") || mtype.Is("text/plain")
}
