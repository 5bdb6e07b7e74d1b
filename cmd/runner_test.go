package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tfx/internal/models"
	"github.com/desertthunder/tfx/internal/shared"
	"github.com/desertthunder/tfx/internal/store"
	tu "github.com/desertthunder/tfx/internal/testing"
)

// setupRunner returns a runner over an in-memory store with output captured in a buffer.
func setupRunner(t *testing.T) (*Runner, *bytes.Buffer, store.KV) {
	t.Helper()
	output := &bytes.Buffer{}
	kv := store.NewMemoryKV()
	runner := NewRunner(RunnerOpts{
		Logger: log.New(&bytes.Buffer{}),
		Output: output,
		KV:     kv,
	})
	return runner, output, kv
}

// run executes the CLI with args, pointing --config at a file that does not exist.
func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	argv := append([]string{"tfx", "--config", filepath.Join(t.TempDir(), "absent.toml")}, args...)
	return newApp(r).Run(context.Background(), argv)
}

func mustRun(t *testing.T, r *Runner, args ...string) {
	t.Helper()
	if err := run(t, r, args...); err != nil {
		t.Fatalf("tfx %s failed: %v", strings.Join(args, " "), err)
	}
}

func stored(t *testing.T, kv store.KV) *models.ConfigDocument {
	t.Helper()
	doc, err := store.NewConfigStore(kv).Load(context.Background())
	if err != nil {
		t.Fatalf("failed to load stored document: %v", err)
	}
	if doc == nil {
		t.Fatal("expected a stored document")
	}
	return doc
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			kv := store.NewMemoryKV()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "/test/path/config.toml",
				Logger:     logger,
				Output:     output,
				KV:         kv,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.kv != kv {
				t.Error("expected kv to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		seen := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			if seen[cmd.Name] {
				t.Errorf("duplicate command %q", cmd.Name)
			}
			seen[cmd.Name] = true
		}
		for _, name := range []string{"setup", "init", "settings", "show", "export", "import", "clear", "playlist", "schedule", "delete", "options", "tui", "serve"} {
			if !seen[name] {
				t.Errorf("missing command %q", name)
			}
		}
	})

	t.Run("configure", func(t *testing.T) {
		t.Run("reads the file and applies the log level", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			tu.MustWriteFile(t, path, "[store]\nbackend = \"memory\"\n\n[log]\nlevel = \"warn\"\n")

			runner := NewRunner(RunnerOpts{Logger: log.New(&bytes.Buffer{})})
			if err := runner.configure(path, false); err != nil {
				t.Fatalf("configure failed: %v", err)
			}
			if runner.config.Store.Backend != "memory" {
				t.Errorf("expected memory backend, got %s", runner.config.Store.Backend)
			}
			if runner.logger.GetLevel() != log.WarnLevel {
				t.Errorf("expected warn level, got %v", runner.logger.GetLevel())
			}
		})

		t.Run("verbose forces debug", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: log.New(&bytes.Buffer{})})
			if err := runner.configure(filepath.Join(t.TempDir(), "absent.toml"), true); err != nil {
				t.Fatalf("configure failed: %v", err)
			}
			if runner.logger.GetLevel() != log.DebugLevel {
				t.Errorf("expected debug level, got %v", runner.logger.GetLevel())
			}
		})

		t.Run("invalid file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			tu.MustWriteFile(t, path, "[store\n")

			runner := NewRunner(RunnerOpts{Logger: log.New(&bytes.Buffer{})})
			if err := runner.configure(path, false); !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})

	t.Run("open and Close", func(t *testing.T) {
		t.Run("opens the configured backend once", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Store.Backend = "memory"
			runner := NewRunner(RunnerOpts{Config: config, Logger: log.New(&bytes.Buffer{})})

			first, err := runner.open(context.Background())
			if err != nil {
				t.Fatalf("open failed: %v", err)
			}
			second, _ := runner.open(context.Background())
			if first != second {
				t.Error("expected the editor to be reused")
			}

			if err := runner.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
			if runner.kv != nil || runner.editor != nil {
				t.Error("expected Close to drop the owned store")
			}
		})

		t.Run("injected KV survives Close", func(t *testing.T) {
			runner, _, kv := setupRunner(t)
			if _, err := runner.open(context.Background()); err != nil {
				t.Fatalf("open failed: %v", err)
			}
			if err := runner.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
			if runner.kv != kv {
				t.Error("expected injected KV to be kept")
			}
		})

		t.Run("unsupported backend", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Store.Backend = "etcd"
			runner := NewRunner(RunnerOpts{Config: config, Logger: log.New(&bytes.Buffer{})})

			if _, err := runner.open(context.Background()); !errors.Is(err, shared.ErrUnsupportedStore) {
				t.Errorf("expected ErrUnsupportedStore, got %v", err)
			}
		})

		t.Run("bad strategy", func(t *testing.T) {
			runner, _, _ := setupRunner(t)
			runner.config.Editor.PlaylistUpdate = "merge"

			if _, err := runner.open(context.Background()); !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})
}

func TestCommands(t *testing.T) {
	t.Run("init refuses to overwrite without force", func(t *testing.T) {
		runner, output, kv := setupRunner(t)
		mustRun(t, runner, "init")
		if !strings.Contains(output.String(), "Stored a default document") {
			t.Errorf("unexpected output: %q", output.String())
		}
		if doc := stored(t, kv); !doc.NotificationsDisabled {
			t.Errorf("expected default document, got %+v", doc)
		}

		if err := run(t, runner, "init"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		mustRun(t, runner, "init", "--force")
	})

	t.Run("settings", func(t *testing.T) {
		runner, output, kv := setupRunner(t)
		mustRun(t, runner, "settings", "--name", "Telefyna", "--config-version", "1.0", "--wait", "30", "--notifications")

		doc := stored(t, kv)
		if doc.Name != "Telefyna" || doc.Version != "1.0" || doc.Wait != 30 || doc.NotificationsDisabled {
			t.Errorf("unexpected settings: %+v", doc.Settings())
		}

		output.Reset()
		mustRun(t, runner, "settings", "--name", "Telefyna")
		if !strings.Contains(output.String(), "unchanged") {
			t.Errorf("expected unchanged settings, got %q", output.String())
		}

		if err := run(t, runner, "settings", "--email", "nope"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("playlists", func(t *testing.T) {
		runner, output, kv := setupRunner(t)
		mustRun(t, runner, "playlist", "create", "--name", "Morning Show", "--url", "http://example.com/live")
		mustRun(t, runner, "playlist", "create", "--name", "News", "--type", "local_resuming", "--url", "News#Bulletins", "--seek-program", "2")

		doc := stored(t, kv)
		if len(doc.Playlists) != 2 {
			t.Fatalf("expected 2 playlists, got %d", len(doc.Playlists))
		}
		if doc.Playlists[1].Type != models.LocalResuming || doc.Playlists[1].SeekTo.Program != 2 {
			t.Errorf("unexpected playlist: %+v", doc.Playlists[1])
		}

		if err := run(t, runner, "playlist", "create", "--name", "News", "--url", "x#y"); !errors.Is(err, shared.ErrDuplicateName) {
			t.Errorf("expected ErrDuplicateName, got %v", err)
		}
		if err := run(t, runner, "playlist", "create", "--name", "X", "--url", "http://example.com"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}

		mustRun(t, runner, "playlist", "update", "--description", "Hourly bulletins", "News")
		doc = stored(t, kv)
		if doc.Playlists[1].Description != "Hourly bulletins" || doc.Playlists[1].SeekTo.Program != 2 {
			t.Errorf("expected update to keep other fields, got %+v", doc.Playlists[1])
		}

		if err := run(t, runner, "playlist", "update", "--description", "x", "Nope"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		output.Reset()
		mustRun(t, runner, "playlist", "list", "--detail")
		if !strings.Contains(output.String(), "✅ News #2") {
			t.Errorf("expected detailed labels, got %q", output.String())
		}
	})

	t.Run("playlist from file", func(t *testing.T) {
		runner, _, kv := setupRunner(t)
		path := filepath.Join(t.TempDir(), "playlist.json")
		tu.MustWriteFile(t, path, `{"playlistName":"Films","type":"LOCAL_RANDOMIZED","urlOrFolder":"Films","graphics":{"displayLogo":false,"displayLiveLogo":true}}`)

		mustRun(t, runner, "playlist", "create", "--from", path, "--description", "Evening films")
		p := stored(t, kv).Playlists[0]
		if p.Name != "Films" || p.Description != "Evening films" || !p.Graphics.DisplayLiveLogo {
			t.Errorf("unexpected playlist: %+v", p)
		}

		tu.MustWriteFile(t, path, `{"playlistName":`)
		if err := run(t, runner, "playlist", "create", "--from", path); !errors.Is(err, shared.ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	})

	t.Run("schedules", func(t *testing.T) {
		runner, output, kv := setupRunner(t)
		mustRun(t, runner, "playlist", "create", "--name", "News", "--type", "LOCAL_SEQUENCED", "--url", "News")
		mustRun(t, runner, "schedule", "create", "--playlist", "News", "--start", "08:00", "--days", "2,3,4")
		mustRun(t, runner, "schedule", "create", "--playlist", "News", "--start", "20:00")

		doc := stored(t, kv)
		if len(doc.Schedules) != 2 || doc.Schedules[1].Schedule != 2 {
			t.Fatalf("unexpected schedules: %+v", doc.Schedules)
		}

		mustRun(t, runner, "schedule", "update", "--start", "09:00", "News 08:00 1")
		if s := stored(t, kv).Schedules[0]; s.Start != "09:00" || len(s.Days) != 3 {
			t.Errorf("expected start changed and days kept, got %+v", s)
		}

		if err := run(t, runner, "schedule", "create", "--playlist", "News", "--start", "08:15"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if err := run(t, runner, "schedule", "create", "--playlist", "News", "--days", "mon"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
		if err := run(t, runner, "schedule", "create", "--start", "08:00"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}

		output.Reset()
		mustRun(t, runner, "schedule", "list", "--plain")
		if !strings.Contains(output.String(), "News 09:00 1") {
			t.Errorf("expected schedule keys in list, got %q", output.String())
		}

		mustRun(t, runner, "schedule", "clear")
		if doc := stored(t, kv); len(doc.Schedules) != 0 || len(doc.Playlists) != 1 {
			t.Errorf("expected schedules cleared, got %+v", doc)
		}
	})

	t.Run("delete cascades", func(t *testing.T) {
		runner, output, kv := setupRunner(t)
		if _, err := store.NewConfigStore(kv).Save(context.Background(), tu.SampleDocument()); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}

		mustRun(t, runner, "delete", "--playlist", "News", "--schedule", "Morning Show 06:30 3")
		if !strings.Contains(output.String(), "Deleted 1 playlist(s) and 3 schedule(s)") {
			t.Errorf("unexpected output: %q", output.String())
		}

		if err := run(t, runner, "delete"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if err := run(t, runner, "delete", "--playlist", "Nope"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := run(t, runner, "delete", "--schedule", "Morning Show"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected a playlist name given as a schedule key to match nothing, got %v", err)
		}
	})

	t.Run("options", func(t *testing.T) {
		runner, output, kv := setupRunner(t)
		if _, err := store.NewConfigStore(kv).Save(context.Background(), tu.SampleDocument()); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}

		mustRun(t, runner, "options", "--json")
		for _, want := range []string{`"playlistSeparator"`, `"scheduleSeparator"`, `"News 08:00 1"`} {
			if !strings.Contains(output.String(), want) {
				t.Errorf("expected %s in options, got %s", want, output.String())
			}
		}
	})

	t.Run("export, clear and import", func(t *testing.T) {
		runner, output, kv := setupRunner(t)
		if _, err := store.NewConfigStore(kv).Save(context.Background(), tu.SampleDocument()); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
		dir := t.TempDir()

		mustRun(t, runner, "export", "--dir", dir)
		path := filepath.Join(dir, store.ExportFileName)
		tu.AssertFileExists(t, path)

		mustRun(t, runner, "export", "--dir", dir, "--format", "csv")
		tu.AssertFileExists(t, filepath.Join(dir, "schedules.csv"))

		if err := run(t, runner, "export", "--format", "xml"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}

		mustRun(t, runner, "clear")
		if doc, _ := store.NewConfigStore(kv).Load(context.Background()); doc != nil {
			t.Fatalf("expected cleared store, got %+v", doc)
		}

		output.Reset()
		mustRun(t, runner, "import", path)
		if !strings.Contains(output.String(), "Imported 2 playlist(s) and 3 schedule(s)") {
			t.Errorf("unexpected output: %q", output.String())
		}
		if doc := stored(t, kv); doc.Name != "Telefyna" {
			t.Errorf("expected imported document, got %+v", doc)
		}

		other := filepath.Join(dir, "config.txt")
		tu.MustWriteFile(t, other, "{}")
		if err := run(t, runner, "import", other); !errors.Is(err, shared.ErrInvalidFile) {
			t.Errorf("expected ErrInvalidFile, got %v", err)
		}
		if err := run(t, runner, "import"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("export to stdout", func(t *testing.T) {
		runner, output, kv := setupRunner(t)
		if _, err := store.NewConfigStore(kv).Save(context.Background(), tu.SampleDocument()); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}

		mustRun(t, runner, "export", "--stdout")
		doc, err := models.Decode(output.Bytes())
		if err != nil {
			t.Fatalf("stdout export is not a document: %v", err)
		}
		if len(doc.Playlists) != 2 {
			t.Errorf("unexpected export: %+v", doc)
		}
	})

	t.Run("show", func(t *testing.T) {
		runner, output, kv := setupRunner(t)
		if _, err := store.NewConfigStore(kv).Save(context.Background(), tu.SampleDocument()); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}

		mustRun(t, runner, "show")
		if !strings.Contains(output.String(), "# Telefyna") || !strings.Contains(output.String(), "## Schedules") {
			t.Errorf("unexpected summary: %q", output.String())
		}
	})

	t.Run("setup writes config and prepares sqlite", func(t *testing.T) {
		t.Chdir(t.TempDir())

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Logger: log.New(&bytes.Buffer{}), Output: output})
		runner.configPath = "config.toml"
		if err := runner.Setup(context.Background(), nil); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
		defer runner.Close()

		tu.AssertFileExists(t, "config.toml")
		tu.AssertFileExists(t, "tfx.db")
		if !strings.Contains(output.String(), "Store: sqlite") {
			t.Errorf("unexpected output: %q", output.String())
		}
	})
}
