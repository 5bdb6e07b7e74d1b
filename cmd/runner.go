package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tfx/internal/editor"
	"github.com/desertthunder/tfx/internal/formatter"
	"github.com/desertthunder/tfx/internal/shared"
	"github.com/desertthunder/tfx/internal/store"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The store is opened on first use so that commands which never touch it (setup of a
// missing config, help) do not need a reachable backend.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	kv         store.KV
	ownsKV     bool
	store      *store.ConfigStore
	editor     *editor.Editor
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	KV         store.KV // opened from Config.Store when nil
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		kv:         opts.KV,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, initCommand, settingsCommand, showCommand, exportCommand, importCommand, clearCommand,
		playlistCommand, scheduleCommand, deleteCommand, optionsCommand, tuiCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by the runner and anything it opens afterwards.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// configure loads the config file at path (defaults when absent) and applies the log level.
func (r *Runner) configure(path string, verbose bool) error {
	config, err := shared.ResolveConfig(path)
	if err != nil {
		return err
	}
	r.config = config
	r.configPath = path

	level := shared.ParseLogLevel(config.Log.Level)
	if verbose {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)
	return nil
}

// open returns the editor, opening the configured store on first call.
func (r *Runner) open(ctx context.Context) (*editor.Editor, error) {
	if r.editor != nil {
		return r.editor, nil
	}

	if r.kv == nil {
		kv, err := store.Open(ctx, r.config.Store)
		if err != nil {
			return nil, err
		}
		r.kv, r.ownsKV = kv, true
		r.logger.Debug("opened store", "backend", r.config.Store.Backend)
	}

	opts, err := editor.OptionsFromConfig(r.config.Editor)
	if err != nil {
		return nil, err
	}

	r.store = store.NewConfigStore(r.kv, store.WithKey(r.config.Store.Key), store.WithLogger(r.logger))
	r.editor = editor.New(r.store, opts, r.logger)
	return r.editor, nil
}

// Close releases the store if the runner opened it. An injected KV stays open.
func (r *Runner) Close() error {
	if r.kv == nil || !r.ownsKV {
		return nil
	}
	err := r.kv.Close()
	r.kv, r.ownsKV, r.store, r.editor = nil, false, nil, nil
	return err
}

// plain reports whether tables should be rendered as tab-separated values.
func (r *Runner) plain(cmd *cli.Command) bool {
	return cmd.Bool("plain") || !formatter.IsTerminal(r.output)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
