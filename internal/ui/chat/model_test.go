// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	session "github.com/jeranaias/rigchat/internal/chat"
	"github.com/jeranaias/rigchat/internal/config"
	"github.com/jeranaias/rigchat/internal/model"
	"github.com/jeranaias/rigchat/internal/ollama"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type staticSettings struct {
	s config.Settings
}

func (src *staticSettings) Current() config.Settings { return src.s }

type replyFunc func(ctx context.Context, req ollama.GenerateRequest) (string, error)

func (f replyFunc) Generate(ctx context.Context, req ollama.GenerateRequest) (string, error) {
	return f(ctx, req)
}

func newTestModel(t *testing.T, reply replyFunc) (*Model, *session.Session, *staticSettings) {
	t.Helper()
	settings := config.Default()
	settings.SavePath = t.TempDir()
	src := &staticSettings{s: settings}

	sess := session.NewSession(src, session.WithGeneratorFactory(func(config.Settings) session.Generator {
		return reply
	}))
	t.Cleanup(sess.Close)

	m := New(Options{Session: sess, Settings: src})
	t.Cleanup(m.Close)
	return m, sess, src
}

func echo(_ context.Context, req ollama.GenerateRequest) (string, error) {
	return "echo: " + req.Prompt, nil
}

// blockUntilCancelled never answers on its own.
func blockUntilCancelled(ctx context.Context, _ ollama.GenerateRequest) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeAndSend(m *Model, text string) {
	m.input.SetValue(text)
	m.Update(keyMsg(tea.KeyEnter))
}

// drain applies a pending change signal, as the event loop would.
func drain(t *testing.T, m *Model) {
	t.Helper()
	select {
	case <-m.changes:
		m.Update(changedMsg{})
	case <-time.After(2 * time.Second):
		t.Fatal("no change signalled")
	}
}

func waitIdle(t *testing.T, sess *session.Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sess.Wait(ctx))
}

func contents(msgs []model.Message) []string {
	out := make([]string, len(msgs))
	for i, msg := range msgs {
		out[i] = msg.Content
	}
	return out
}

// =============================================================================
// TESTS
// =============================================================================

func TestSendAndReceive(t *testing.T) {
	m, sess, _ := newTestModel(t, echo)

	typeAndSend(m, "hello")
	assert.Empty(t, m.input.Value(), "input cleared after send")

	waitIdle(t, sess)
	drain(t, m)

	require.Len(t, m.Messages(), 2)
	assert.Equal(t, model.RoleUser, m.Messages()[0].Role)
	assert.Equal(t, model.RoleAssistant, m.Messages()[1].Role)
	assert.Equal(t, "echo: hello", m.Messages()[1].Content)
	assert.False(t, m.awaiting)
}

func TestBlankInputIgnored(t *testing.T) {
	m, sess, _ := newTestModel(t, echo)

	typeAndSend(m, "   ")
	assert.Equal(t, 0, sess.Len())
	assert.Empty(t, m.Notice())
}

func TestBusyKeepsInput(t *testing.T) {
	m, sess, _ := newTestModel(t, blockUntilCancelled)

	typeAndSend(m, "first")
	drain(t, m)
	assert.True(t, m.awaiting)

	typeAndSend(m, "second")
	assert.Equal(t, NoticeBusy, m.Notice())
	assert.Equal(t, "second", m.input.Value())
	assert.Equal(t, 1, sess.Len())
}

func TestEscCancels(t *testing.T) {
	m, sess, _ := newTestModel(t, blockUntilCancelled)

	typeAndSend(m, "question")
	drain(t, m)

	m.Update(keyMsg(tea.KeyEsc))
	drain(t, m)

	assert.Equal(t, session.Idle, sess.State())
	assert.Equal(t, []string{"question", "Generation cancelled."}, contents(m.Messages()))
}

func TestClearAndNewChat(t *testing.T) {
	m, sess, _ := newTestModel(t, echo)

	typeAndSend(m, "hello")
	waitIdle(t, sess)
	drain(t, m)

	m.Update(keyMsg(tea.KeyCtrlL))
	drain(t, m)
	assert.Empty(t, m.Messages())
	assert.Equal(t, NoticeCleared, m.Notice())

	m.Update(keyMsg(tea.KeyCtrlN))
	drain(t, m)
	assert.Equal(t, []string{session.WelcomeMessage}, contents(m.Messages()))
}

func TestSaveTranscript(t *testing.T) {
	m, sess, src := newTestModel(t, echo)

	typeAndSend(m, "hello")
	waitIdle(t, sess)

	m.Update(keyMsg(tea.KeyCtrlS))
	path := session.TranscriptPath(src.s.SavePath, "")
	assert.Equal(t, "Saved to "+path, m.Notice())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "user: hello\nassistant: echo: hello\n", string(data))
}

func TestToggleTheme(t *testing.T) {
	m, _, _ := newTestModel(t, echo)
	var saved []string
	m.saveTheme = func(theme string) error {
		saved = append(saved, theme)
		return nil
	}

	require.False(t, m.Theme().IsDark)
	m.Update(keyMsg(tea.KeyCtrlT))
	assert.True(t, m.Theme().IsDark)
	m.Update(keyMsg(tea.KeyCtrlT))
	assert.False(t, m.Theme().IsDark)
	assert.Equal(t, []string{config.ThemeDark, config.ThemeLight}, saved)
}

func TestToggleThemeSaveFailure(t *testing.T) {
	m, _, _ := newTestModel(t, echo)
	m.saveTheme = func(string) error { return errors.New("disk full") }

	m.Update(keyMsg(tea.KeyCtrlT))
	assert.True(t, m.Theme().IsDark, "theme still applies for this run")
	assert.Contains(t, m.Notice(), "disk full")
}

func TestProbe(t *testing.T) {
	m, _, _ := newTestModel(t, echo)
	m.probe = func(context.Context, config.Settings) bool { return true }

	msg := m.probeCmd()()
	_, cmd := m.Update(msg)
	assert.True(t, m.online)
	assert.True(t, m.probed)
	assert.NotNil(t, cmd, "next probe scheduled")
	assert.Contains(t, m.renderStatus(), "connected")
}

func TestQuit(t *testing.T) {
	m, sess, _ := newTestModel(t, blockUntilCancelled)

	typeAndSend(m, "question")
	_, cmd := m.Update(keyMsg(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, session.Idle, sess.State())
	assert.Empty(t, m.View())
}

func TestViewAfterResize(t *testing.T) {
	m, sess, _ := newTestModel(t, func(context.Context, ollama.GenerateRequest) (string, error) {
		return "**bold** reply", nil
	})

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	typeAndSend(m, "hi")
	waitIdle(t, sess)
	drain(t, m)

	view := m.View()
	assert.Contains(t, view, "rigchat")
	assert.Contains(t, view, "You")
	assert.Contains(t, view, "Assistant")
	assert.Contains(t, view, config.Default().ModelName)
	assert.True(t, strings.Contains(view, "bold"))
}

func TestResolveMsgRunsOnLoop(t *testing.T) {
	m, _, _ := newTestModel(t, echo)
	ran := false
	m.Update(resolveMsg{fn: func() { ran = true }})
	assert.True(t, ran)
}

func TestDispatcherWithoutProgram(t *testing.T) {
	var d Dispatcher
	ran := false
	d.Dispatch(func() { ran = true })
	assert.True(t, ran)
}
