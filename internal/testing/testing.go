// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/desertthunder/tfx/internal/models"
)

// FixedTime is the instant [FixedClock] reports.
var FixedTime = time.Date(2026, time.October, 15, 9, 41, 7, 0, time.Local)

// FixedClock always returns [FixedTime].
func FixedClock() time.Time { return FixedTime }

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

// SampleDocument returns a document with two playlists ("Morning Show" and "News")
// and three schedules, two of which belong to "News".
func SampleDocument() *models.ConfigDocument {
	doc := models.DefaultDocument()
	doc.Name = "Telefyna"
	doc.Version = "1.0.0"
	doc.Wait = 30

	morning := models.DefaultPlaylist()
	morning.Name = "Morning Show"
	morning.URLOrFolder = "http://example.com/stream"

	news := models.DefaultPlaylist()
	news.Name = "News"
	news.Type = models.LocalResuming
	news.URLOrFolder = "News#Bulletins"
	news.Color = models.ColorOptions[2].Value
	news.SeekTo = models.SeekTo{Program: 2, Position: 1500}

	doc.Playlists = append(doc.Playlists, morning, news)

	for i, s := range []struct {
		name, start string
		days        []int
	}{
		{"News", "08:00", []int{2, 3, 4, 5, 6}},
		{"News", "20:00", []int{}},
		{"Morning Show", "06:30", []int{1, 7}},
	} {
		schedule := models.DefaultSchedule()
		schedule.Schedule = i + 1
		schedule.Name = s.name
		schedule.Start = s.start
		schedule.Days = s.days
		doc.Schedules = append(doc.Schedules, schedule)
	}
	return &doc
}

// FailingKV returns err from every storage call.
type FailingKV struct {
	Err error
}

func (f *FailingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.Err }
func (f *FailingKV) Set(context.Context, string, string) error         { return f.Err }
func (f *FailingKV) Delete(context.Context, string) error              { return f.Err }
func (f *FailingKV) Close() error                                      { return nil }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// FReader simulates a failure while reading an upload or import file
type FReader struct{}

func (f *FReader) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FReader) Close() error {
	return nil
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
