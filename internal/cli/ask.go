// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command for rigchat.
//
// Command: ask [question]
// Short:   Ask a single question
//
// Examples:
//   rigchat ask "What is the capital of France?"
//   git diff | rigchat ask --raw
//
// Flags:
//   --raw               Print the reply without markdown rendering
//
// The exit status is non-zero when the reply is a failure notice.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rigchat/internal/chat"
)

func (a *App) askCommand() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask a single question",
		Long: `Ask a single question and print the reply.

The question is taken from the arguments, or from stdin when no arguments
are given and stdin is not a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAsk(cmd.Context(), args, raw)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the reply without markdown rendering")
	return cmd
}

func (a *App) runAsk(ctx context.Context, args []string, raw bool) error {
	question := strings.Join(args, " ")
	if strings.TrimSpace(question) == "" && !isTerminal(a.In) {
		data, err := io.ReadAll(a.In)
		if err != nil {
			return fmt.Errorf("failed to read question from stdin: %w", err)
		}
		question = string(data)
	}
	if strings.TrimSpace(question) == "" {
		return &UsageError{Message: "no question given; usage: rigchat ask <question>"}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	src := a.settings()
	sess := chat.NewSession(src)
	defer sess.Close()

	start := time.Now()
	if err := sess.Send(question); err != nil {
		return err
	}
	if err := sess.Wait(ctx); err != nil {
		sess.Cancel()
	}

	msgs := sess.Snapshot()
	reply := msgs[len(msgs)-1]
	log.Debug("ask finished", "model", sess.Model(), "elapsed", formatDurationShort(time.Since(start)))

	if !reply.IsAssistant() {
		fmt.Fprintln(a.ErrOut, NoticeStyle.Render(reply.Content))
		return &ExitError{Code: ExitGeneralError, Err: errors.New(reply.Content), Silent: true}
	}

	settings := src.Current()
	md := newMarkdownRenderer(!raw && isTerminal(a.Out), settings.Theme, terminalWidth(a.Out)-2)
	fmt.Fprintln(a.Out, md.Render(reply.Content))
	return nil
}
