// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command for rigchat.
//
// Command: chat
// Short:   Start an interactive chat session
//
// Examples:
//   rigchat                        Start chatting (full screen on a terminal)
//   rigchat chat --plain           Line-oriented prompt
//   rigchat chat --model llama3    Use a specific model for this run
//
// Flags:
//   --plain             Use the line prompt even on a terminal

package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rigchat/internal/chat"
	"github.com/jeranaias/rigchat/internal/config"
	"github.com/jeranaias/rigchat/internal/ollama"
	uichat "github.com/jeranaias/rigchat/internal/ui/chat"
)

// ReplHistoryFile holds line-prompt input history inside the settings
// directory.
const ReplHistoryFile = "repl_history"

func (a *App) chatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session.

Full-screen keys:
  Enter   send        Esc     cancel generation
  Ctrl+L  clear       Ctrl+N  new chat
  Ctrl+S  save        Ctrl+T  toggle theme
  Ctrl+C  quit

The line prompt accepts the same actions as slash commands; type /help.`,
		Args: cobra.NoArgs,
		RunE: a.runChat,
	}
	cmd.Flags().Bool("plain", false, "Use the line-oriented prompt instead of the full-screen interface")
	return cmd
}

func (a *App) runChat(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := a.store.Watch(ctx); err != nil {
		log.Warn("settings watch unavailable", "path", a.store.Path(), "err", err)
	}

	if a.tui {
		return a.runTUI()
	}
	return a.runPlain(ctx)
}

// runTUI runs the full-screen interface until the user quits.
func (a *App) runTUI() error {
	src := a.settings()

	var dispatcher uichat.Dispatcher
	sess := chat.NewSession(src, chat.WithWelcome(), chat.WithDispatcher(dispatcher.Dispatch))
	defer sess.Close()

	view := uichat.New(uichat.Options{
		Session:   sess,
		Settings:  src,
		Probe:     probe,
		SaveTheme: a.saveTheme,
	})
	defer view.Close()

	p := tea.NewProgram(view, tea.WithAltScreen())
	dispatcher.Attach(p)
	_, err := p.Run()
	return err
}

// runPlain runs the line prompt on the App streams.
func (a *App) runPlain(ctx context.Context) error {
	src := a.settings()
	sess := chat.NewSession(src, chat.WithWelcome())
	defer sess.Close()

	in := newLinerReader(filepath.Join(filepath.Dir(a.store.Path()), ReplHistoryFile))
	defer in.Close()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupts)

	settings := src.Current()
	r := &repl{
		app:        a,
		sess:       sess,
		src:        src,
		in:         in,
		out:        a.Out,
		interrupts: interrupts,
		markdown:   newMarkdownRenderer(isTerminal(a.Out), settings.Theme, terminalWidth(a.Out)-2),
	}
	return r.run(ctx)
}

// probe reports whether the server for s answers.
func probe(ctx context.Context, s config.Settings) bool {
	return ollama.NewClientWithConfig(ollama.ConfigFromSettings(s)).ProbeConnection(ctx)
}

// saveTheme persists a theme choice without persisting run overrides.
func (a *App) saveTheme(theme string) error {
	s := a.store.Current()
	s.Theme = theme
	return a.store.Save(s)
}
