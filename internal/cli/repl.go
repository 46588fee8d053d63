// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Line-oriented chat prompt.
//
// Interactive Commands:
//   /help, /h           Show available commands
//   /clear, /c          Clear conversation history
//   /new, /n            Start a new chat
//   /save [name]        Save the transcript (.md and .json pick other formats)
//   /model [name]       Show or switch model for this session
//   /models             List models on the server
//   /history            Show conversation history
//   /quit, /q           Exit chat
//   Ctrl+C              Cancel current generation
//   Ctrl+D              Exit chat

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/peterh/liner"

	"github.com/jeranaias/rigchat/internal/chat"
	"github.com/jeranaias/rigchat/internal/model"
)

// =============================================================================
// INPUT
// =============================================================================

// lineReader is the line editor used by the prompt.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// linerReader provides input history and line editing.
// USABILITY: Supports arrow keys for history navigation and line editing.
type linerReader struct {
	*liner.State
	historyFile string
}

func newLinerReader(historyFile string) *linerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &linerReader{State: line, historyFile: historyFile}
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	return r
}

// Close saves history with owner-only permissions and restores the terminal.
func (r *linerReader) Close() error {
	if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
		_, _ = r.WriteHistory(f)
		f.Close()
	} else {
		log.Debug("input history not saved", "path", r.historyFile, "err", err)
	}
	return r.State.Close()
}

// =============================================================================
// PROMPT LOOP
// =============================================================================

type repl struct {
	app        *App
	sess       *chat.Session
	src        chat.SettingsSource
	in         lineReader
	out        io.Writer
	interrupts <-chan os.Signal
	markdown   *markdownRenderer
}

const promptText = "rigchat> "

func (r *repl) run(ctx context.Context) error {
	for _, msg := range r.sess.Snapshot() {
		r.printMessage(msg)
	}
	fmt.Fprintln(r.out, DimStyle.Render("Type /help for commands, /quit to exit."))

	for {
		input, err := r.in.Prompt(promptText)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				return nil
			}
			return err
		}

		line := strings.TrimSpace(input)
		if line == "" {
			continue
		}
		r.in.AppendHistory(input)

		if strings.HasPrefix(line, "/") {
			quit, err := r.command(ctx, line)
			if err != nil {
				DisplayError(r.out, err)
			}
			if quit {
				return nil
			}
			continue
		}

		if err := r.send(ctx, input); err != nil {
			DisplayError(r.out, err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// send submits text, waits for the outcome and prints what was appended.
func (r *repl) send(ctx context.Context, text string) error {
	before := r.sess.Len()
	if err := r.sess.Send(text); err != nil {
		return err
	}
	r.await(ctx)

	msgs := r.sess.Snapshot()
	if len(msgs) <= before+1 {
		return nil
	}
	for _, msg := range msgs[before+1:] {
		r.printMessage(msg)
	}
	return nil
}

// await blocks until the pending request resolves. An interrupt or a done
// ctx cancels it.
func (r *repl) await(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		_ = r.sess.Wait(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-r.interrupts:
		r.sess.Cancel()
		<-done
	case <-ctx.Done():
		r.sess.Cancel()
		<-done
	}
}

func (r *repl) printMessage(msg model.Message) {
	switch {
	case msg.IsAssistant():
		fmt.Fprintln(r.out, r.markdown.Render(msg.Content))
	case msg.IsSystem():
		fmt.Fprintln(r.out, NoticeStyle.Render(msg.Content))
	default:
		fmt.Fprintln(r.out, UserRoleStyle.Render(msg.Role.DisplayName()+": ")+msg.Content)
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// command runs a slash command and reports whether the prompt should exit.
func (r *repl) command(ctx context.Context, line string) (bool, error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "/help", "/h", "/?":
		r.printHelp()

	case "/clear", "/c":
		r.sess.Clear()
		fmt.Fprintln(r.out, SuccessStyle.Render("Conversation cleared."))

	case "/new", "/n":
		r.sess.NewChat()
		for _, msg := range r.sess.Snapshot() {
			r.printMessage(msg)
		}

	case "/save", "/s":
		path := chat.TranscriptPath(r.src.Current().SavePath, arg)
		if err := r.sess.Export(path); err != nil {
			return false, err
		}
		fmt.Fprintln(r.out, SuccessStyle.Render("Saved to "+path))

	case "/model", "/m":
		if arg == "" {
			fmt.Fprintln(r.out, RenderLabel("Model:")+ValueStyle.Render(r.sess.Model()))
			return false, nil
		}
		r.sess.SetModel(arg)
		fmt.Fprintln(r.out, SuccessStyle.Render("Model set to "+r.sess.Model()+" for this session."))

	case "/models":
		return false, r.app.printModels(ctx, r.out, r.sess.Model())

	case "/history":
		r.printHistory()

	case "/quit", "/q", "/exit":
		return true, nil

	default:
		return false, &UsageError{Message: fmt.Sprintf("unknown command %s; type /help", name)}
	}
	return false, nil
}

func (r *repl) printHelp() {
	rows := [][2]string{
		{"/help", "Show this help"},
		{"/clear", "Clear the conversation"},
		{"/new", "Start a new chat"},
		{"/save [name]", "Save the transcript (default " + chat.DefaultTranscriptName + ")"},
		{"/model [name]", "Show or switch the model for this session"},
		{"/models", "List models on the server"},
		{"/history", "Show the conversation so far"},
		{"/quit", "Exit"},
		{"Ctrl+C", "Cancel the current generation"},
	}
	fmt.Fprintln(r.out, SectionStyle.Render("Commands"))
	for _, row := range rows {
		fmt.Fprintln(r.out, "  "+RenderLabel(row[0], 16)+DimStyle.Render(row[1]))
	}
}

func (r *repl) printHistory() {
	msgs := r.sess.Snapshot()
	if len(msgs) == 0 {
		fmt.Fprintln(r.out, DimStyle.Render("No messages yet."))
		return
	}
	for i, msg := range msgs {
		fmt.Fprintf(r.out, "%3d  %s %s\n", i+1,
			RenderLabel(msg.Role.DisplayName(), 10),
			msg.Preview(terminalWidth(r.out)-18))
	}
}
