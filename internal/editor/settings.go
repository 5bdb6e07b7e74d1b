package editor

import (
	"context"
	"sync"

	"github.com/desertthunder/tfx/internal/models"
	"github.com/desertthunder/tfx/internal/validation"
)

// SettingsSync saves the settings form as it changes.
//
// Forms emit their full value on every keystroke. Each value is merged into the stored
// document as it is now, and nothing is written when the merge leaves it unchanged, so
// edits made elsewhere (an import, a playlist) are never masked by an earlier identical value.
type SettingsSync struct {
	mu     sync.Mutex
	editor *Editor
	writes int
}

func NewSettingsSync(e *Editor) *SettingsSync {
	return &SettingsSync{editor: e}
}

// Apply merges in and reports whether the document was written.
func (s *SettingsSync) Apply(ctx context.Context, in validation.SettingsInput) (*models.ConfigDocument, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, changed, err := s.editor.UpdateSettings(ctx, in)
	if err != nil {
		return nil, false, err
	}
	if changed {
		s.writes++
	}
	return doc, changed, nil
}

// Writes is the number of saves Apply has made.
func (s *SettingsSync) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
