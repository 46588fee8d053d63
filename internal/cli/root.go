// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// root.go - Root command, global flags and shared setup for rigchat.
//
// Global flags:
//   --settings PATH     Settings file (default ~/.rigchat/settings.json)
//   --endpoint URL      Override api_endpoint for this run
//   --model NAME        Override model_name for this run
//   --debug             Debug logging

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rigchat/internal/config"
	"github.com/jeranaias/rigchat/internal/logging"
	"github.com/jeranaias/rigchat/internal/ollama"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// APP
// =============================================================================

// App holds the global flags, the settings store and the standard streams
// shared by every command.
type App struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// Global flags
	settingsPath string
	endpoint     string
	model        string
	debug        bool

	store      *config.Store
	tui        bool
	cleanupLog func()
}

// NewApp creates an App bound to the process streams.
func NewApp() *App {
	return &App{
		In:     os.Stdin,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

// Execute runs rigchat with the process arguments and returns the exit code.
func Execute() int {
	return NewApp().Run(context.Background(), os.Args[1:])
}

// Run executes the command line args and returns the exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	root := a.RootCommand()
	root.SetArgs(args)
	root.SetIn(a.In)
	root.SetOut(a.Out)
	root.SetErr(a.ErrOut)

	err := root.ExecuteContext(ctx)
	if a.cleanupLog != nil {
		a.cleanupLog()
		a.cleanupLog = nil
	}
	if err != nil {
		DisplayError(a.ErrOut, err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// RootCommand builds the command tree. Without a subcommand rigchat starts
// a chat.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "rigchat",
		Short: "Chat with a local or remote LLM inference server",
		Long: `rigchat is a terminal chat client for Ollama-compatible inference servers.

Run without arguments to start an interactive chat. The full-screen
interface is used when stdin and stdout are terminals; otherwise a
line-oriented prompt is used.`,
		Version:           fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setup,
		RunE:              a.runChat,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Message: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.settingsPath, "settings", "", "Settings file (default ~/.rigchat/settings.json)")
	pf.StringVar(&a.endpoint, "endpoint", "", "Inference server URL for this run")
	pf.StringVarP(&a.model, "model", "m", "", "Model name for this run")
	pf.BoolVar(&a.debug, "debug", false, "Enable debug logging")
	root.Flags().Bool("plain", false, "Use the line-oriented prompt instead of the full-screen interface")

	root.AddCommand(
		a.chatCommand(),
		a.askCommand(),
		a.modelsCommand(),
		a.statusCommand(),
		a.settingsCommand(),
	)
	return root
}

// setup loads settings and configures logging before any command runs.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	path := a.settingsPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	a.store = config.NewStore(path)

	a.tui = false
	if plain, err := cmd.Flags().GetBool("plain"); err == nil {
		a.tui = !plain && isTerminal(a.In) && isTerminal(a.Out)
	}

	cleanup, err := logging.Setup(logging.Options{
		Debug:  a.debug,
		ToFile: a.tui,
		Dir:    filepath.Dir(path),
		Stderr: a.ErrOut,
	})
	if err != nil {
		return err
	}
	a.cleanupLog = cleanup

	a.store.Load()
	log.Debug("settings loaded", "path", path)
	return nil
}

// =============================================================================
// EFFECTIVE SETTINGS
// =============================================================================

// effectiveSettings layers environment and flag overrides over the store
// snapshot. Overrides are never saved.
type effectiveSettings struct {
	store    *config.Store
	endpoint string
	model    string
}

// Current implements chat.SettingsSource.
func (e *effectiveSettings) Current() config.Settings {
	s := e.store.Current()
	s.ApplyEnvOverrides()
	if e.endpoint != "" {
		s.APIEndpoint = e.endpoint
	}
	if e.model != "" {
		s.ModelName = e.model
	}
	return s
}

func (a *App) settings() *effectiveSettings {
	return &effectiveSettings{store: a.store, endpoint: a.endpoint, model: a.model}
}

// client builds an inference client from the effective settings.
func (a *App) client() *ollama.Client {
	return ollama.NewClientWithConfig(ollama.ConfigFromSettings(a.settings().Current()))
}
