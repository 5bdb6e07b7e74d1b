package editor

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tfx/internal/shared"
)

// State is the position of a form [Session].
type State int

const (
	StateCreate State = iota
	StateSelected
	StateSubmitting
	StateError
)

func (s State) String() string {
	switch s {
	case StateCreate:
		return "create"
	case StateSelected:
		return "selected"
	case StateSubmitting:
		return "submitting"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var ErrSessionBusy = fmt.Errorf("a submission is already in progress")

// Session tracks one form: whether it edits a new or an existing record, and the outcome of
// the last submission. An error state lasts until the next action, which starts from the
// state the failed submission began in.
type Session struct {
	ID   string
	Kind string

	state    State
	prior    State
	selected string
	err      error
	logger   *log.Logger
}

// NewSession starts a session for kind ("playlist", "schedule", ...) in [StateCreate].
func NewSession(kind string, logger *log.Logger) *Session {
	id := shared.GenerateID()
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		ID:     id,
		Kind:   kind,
		state:  StateCreate,
		logger: shared.WithLogger(logger, "session", id, "kind", kind),
	}
}

func (s *Session) State() State { return s.state }

// Selected is the identity of the record loaded into the form, if any.
func (s *Session) Selected() string { return s.selected }

// Err is the failure that put the session into [StateError].
func (s *Session) Err() error { return s.err }

func (s *Session) recover() {
	if s.state == StateError {
		s.state = s.prior
		s.err = nil
	}
}

// Select loads an existing record into the form.
func (s *Session) Select(identity string) error {
	if s.state == StateSubmitting {
		return ErrSessionBusy
	}
	s.recover()
	if identity == "" {
		s.state, s.selected = StateCreate, ""
		return nil
	}
	s.state, s.selected = StateSelected, identity
	s.logger.Debug("selected", "identity", identity)
	return nil
}

// Reset clears the form back to a new record.
func (s *Session) Reset() error {
	if s.state == StateSubmitting {
		return ErrSessionBusy
	}
	s.state, s.selected, s.err = StateCreate, "", nil
	return nil
}

// Submit runs fn with the selected identity ("" when creating).
//
// fn returns the identity the form should keep selected afterwards; "" returns the form to
// [StateCreate]. On failure the session enters [StateError] and the error is returned.
func (s *Session) Submit(fn func(selected string) (string, error)) error {
	if s.state == StateSubmitting {
		return ErrSessionBusy
	}
	s.recover()

	s.prior = s.state
	s.state = StateSubmitting
	s.logger.Debug("submitting", "selected", s.selected)

	next, err := fn(s.selected)
	if err != nil {
		s.state, s.err = StateError, err
		s.logger.Warn("submission failed", "error", err)
		return err
	}

	if next == "" {
		s.state, s.selected = StateCreate, ""
	} else {
		s.state, s.selected = StateSelected, next
	}
	s.logger.Debug("submitted", "state", s.state)
	return nil
}
