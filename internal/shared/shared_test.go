package shared

import (
	"errors"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSplitHashList(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single", input: "News", want: []string{"News"}},
		{name: "several with spaces", input: " Kids # Music#Docs ", want: []string{"Kids", "Music", "Docs"}},
		{name: "empty entries dropped", input: "a##b#", want: []string{"a", "b"}},
		{name: "empty", input: "", want: nil},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitHashList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitHashList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	if got := ParseLogLevel("DEBUG"); got != log.DebugLevel {
		t.Errorf("expected debug level, got %v", got)
	}
	if got := ParseLogLevel("bogus"); got != log.InfoLevel {
		t.Errorf("expected info fallback, got %v", got)
	}
}

func TestTypedErrors(t *testing.T) {
	t.Run("ParseError matches sentinel and cause", func(t *testing.T) {
		cause := errors.New("unexpected end of JSON input")
		err := error(&ParseError{Source: "config.json", Err: cause})
		if !errors.Is(err, ErrParse) {
			t.Error("expected ParseError to match ErrParse")
		}
		if !errors.Is(err, cause) {
			t.Error("expected ParseError to match its cause")
		}
	})

	t.Run("ValidationError lookup", func(t *testing.T) {
		err := &ValidationError{Kind: "playlist", Fields: []FieldError{{Field: "playlistName", Rule: "trimmedmin", Message: "too short"}}}
		if !errors.Is(err, ErrInvalidInput) {
			t.Error("expected ValidationError to match ErrInvalidInput")
		}
		if _, ok := err.Field("playlistName"); !ok {
			t.Error("expected playlistName field error")
		}
		if _, ok := err.Field("type"); ok {
			t.Error("did not expect type field error")
		}
	})

	t.Run("NotFound and Duplicate", func(t *testing.T) {
		if !errors.Is(&NotFoundError{Kind: "playlist", Identity: "News"}, ErrNotFound) {
			t.Error("expected NotFoundError to match ErrNotFound")
		}
		if !errors.Is(&DuplicateNameError{Name: "News"}, ErrDuplicateName) {
			t.Error("expected DuplicateNameError to match ErrDuplicateName")
		}
	})
}
