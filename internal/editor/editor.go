package editor

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tfx/internal/models"
	"github.com/desertthunder/tfx/internal/projection"
	"github.com/desertthunder/tfx/internal/validation"
)

// Repository loads and saves the configuration document.
//
// Load returns nil without an error when no document exists yet.
type Repository interface {
	Load(ctx context.Context) (*models.ConfigDocument, error)
	Save(ctx context.Context, doc *models.ConfigDocument) (*models.ConfigDocument, error)
	Clear(ctx context.Context) error
}

// Editor runs each change as validate, load, transform and save.
//
// Changes are serialized through a mutex; separate processes sharing one store still race,
// and the last write wins.
type Editor struct {
	mu     sync.Mutex
	repo   Repository
	opts   Options
	logger *log.Logger
}

// New creates an [Editor]. A nil logger discards output.
func New(repo Repository, opts Options, logger *log.Logger) *Editor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Editor{repo: repo, opts: opts, logger: logger.With("component", "editor")}
}

func (e *Editor) Options() Options { return e.opts }

func (e *Editor) Repository() Repository { return e.repo }

// Document returns the stored document, or a fresh default one when nothing is stored.
func (e *Editor) Document(ctx context.Context) (*models.ConfigDocument, error) {
	doc, err := e.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		fresh := models.DefaultDocument()
		return &fresh, nil
	}
	return doc, nil
}

// apply loads the document, runs fn and saves the result.
func (e *Editor) apply(ctx context.Context, op string, fn func(*models.ConfigDocument) (*models.ConfigDocument, error)) (*models.ConfigDocument, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logger := e.logger.With("op", op)

	doc, err := e.Document(ctx)
	if err != nil {
		logger.Error("failed to load document", "error", err)
		return nil, err
	}

	next, err := fn(doc)
	if err != nil {
		logger.Warn("change rejected", "error", err)
		return nil, err
	}

	saved, err := e.repo.Save(ctx, next)
	if err != nil {
		logger.Error("failed to save document", "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("saved", "playlists", len(saved.Playlists), "schedules", len(saved.Schedules), "lastModified", saved.LastModified)
	return saved, nil
}

func (e *Editor) CreatePlaylist(ctx context.Context, in validation.PlaylistInput) (*models.ConfigDocument, error) {
	if err := validation.ValidatePlaylist(in); err != nil {
		return nil, err
	}
	return e.apply(ctx, "create playlist", func(doc *models.ConfigDocument) (*models.ConfigDocument, error) {
		return CreatePlaylist(doc, in, e.opts)
	})
}

// UpdatePlaylist replaces the playlist currently named identity.
func (e *Editor) UpdatePlaylist(ctx context.Context, identity string, in validation.PlaylistInput) (*models.ConfigDocument, error) {
	if err := validation.ValidatePlaylist(in); err != nil {
		return nil, err
	}
	return e.apply(ctx, "update playlist", func(doc *models.ConfigDocument) (*models.ConfigDocument, error) {
		return UpdatePlaylist(doc, identity, in, e.opts.PlaylistUpdate)
	})
}

// SaveSchedule creates a schedule for owner, or updates the schedule with existingKey when it is set.
func (e *Editor) SaveSchedule(ctx context.Context, owner, existingKey string, in validation.ScheduleInput) (*models.ConfigDocument, error) {
	if err := validation.ValidateSchedule(in); err != nil {
		return nil, err
	}
	op := "create schedule"
	if existingKey != "" {
		op = "update schedule"
	}
	return e.apply(ctx, op, func(doc *models.ConfigDocument) (*models.ConfigDocument, error) {
		return CreateOrUpdateSchedule(doc, owner, existingKey, in, e.opts.ScheduleUpdate)
	})
}

// Delete removes the selected playlists, their schedules, and the selected schedules.
func (e *Editor) Delete(ctx context.Context, selected []projection.PickerOption) (*models.ConfigDocument, error) {
	return e.apply(ctx, "delete", func(doc *models.ConfigDocument) (*models.ConfigDocument, error) {
		return DeletePlaylistsAndSchedules(doc, selected)
	})
}

func (e *Editor) DeleteAllSchedules(ctx context.Context) (*models.ConfigDocument, error) {
	return e.apply(ctx, "delete all schedules", func(doc *models.ConfigDocument) (*models.ConfigDocument, error) {
		return DeleteAllSchedules(doc), nil
	})
}

// UpdateSettings merges in into the global fields. Nothing is written when the merge
// leaves a stored document unchanged; changed reports whether a save happened.
func (e *Editor) UpdateSettings(ctx context.Context, in validation.SettingsInput) (doc *models.ConfigDocument, changed bool, err error) {
	if err := validation.ValidateSettings(in); err != nil {
		return nil, false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	stored, err := e.repo.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	current := stored
	if current == nil {
		fresh := models.DefaultDocument()
		current = &fresh
	}

	merged := UpdateSettings(current, in)
	if stored != nil && models.SameContent(stored, merged) {
		e.logger.Debug("settings unchanged", "op", "update settings")
		return stored, false, nil
	}

	saved, err := e.repo.Save(ctx, merged)
	if err != nil {
		return nil, false, fmt.Errorf("update settings: %w", err)
	}
	e.logger.Info("saved", "op", "update settings", "lastModified", saved.LastModified)
	return saved, true, nil
}

// Reset clears the stored document and saves a fresh default one in its place.
func (e *Editor) Reset(ctx context.Context) (*models.ConfigDocument, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.repo.Clear(ctx); err != nil {
		return nil, err
	}
	fresh := models.DefaultDocument()
	saved, err := e.repo.Save(ctx, &fresh)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	e.logger.Info("reset document")
	return saved, nil
}

// Clear removes the stored document.
func (e *Editor) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.repo.Clear(ctx)
}

// Lock runs fn while holding the editor's write lock, for callers that replace the document wholesale.
func (e *Editor) Lock(fn func() error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn()
}
