// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/rigchat/internal/config"
	"github.com/jeranaias/rigchat/internal/model"
	"github.com/jeranaias/rigchat/internal/ollama"
)

// WelcomeMessage is the system message that opens a new chat.
const WelcomeMessage = "Welcome to the Chat Application! Type a message to begin."

var (
	// ErrBusy is returned by Send while a reply is pending.
	ErrBusy = errors.New("a reply is still pending")

	// ErrClosed is returned by Send after Close.
	ErrClosed = errors.New("session closed")
)

// =============================================================================
// TYPES
// =============================================================================

// State is the request state of a session.
type State int

const (
	// Idle means no generation is pending.
	Idle State = iota
	// Awaiting means a generation is in flight.
	Awaiting
)

func (s State) String() string {
	if s == Awaiting {
		return "awaiting"
	}
	return "idle"
}

// SettingsSource supplies the settings snapshot used for each request.
// *config.Store satisfies it.
type SettingsSource interface {
	Current() config.Settings
}

// Generator produces the reply text for one request.
type Generator interface {
	Generate(ctx context.Context, req ollama.GenerateRequest) (string, error)
}

// GeneratorFactory returns the Generator to use with a settings snapshot.
type GeneratorFactory func(config.Settings) Generator

// pendingRequest is the single in-flight generation.
type pendingRequest struct {
	id       uint64
	epoch    uint64
	model    string
	endpoint string
	cancel   context.CancelFunc
	done     chan struct{}
}

// =============================================================================
// SESSION
// =============================================================================

// Session is one conversation. It is safe for concurrent use.
type Session struct {
	settings SettingsSource
	factory  GeneratorFactory
	dispatch func(func())
	welcome  bool

	mu            sync.Mutex
	id            string
	history       *model.History
	epoch         uint64
	nextRequestID uint64
	pending       *pendingRequest
	modelOverride string
	closed        bool

	notifier notifier
}

// Option configures a Session.
type Option func(*Session)

// WithGeneratorFactory replaces the default inference client factory.
func WithGeneratorFactory(f GeneratorFactory) Option {
	return func(s *Session) {
		if f != nil {
			s.factory = f
		}
	}
}

// WithDispatcher sets the function that runs request resolutions. The
// default runs them on the worker goroutine; a UI can marshal them onto its
// own event loop instead.
func WithDispatcher(d func(func())) Option {
	return func(s *Session) {
		if d != nil {
			s.dispatch = d
		}
	}
}

// WithWelcome seeds the history with the welcome message.
func WithWelcome() Option {
	return func(s *Session) {
		s.welcome = true
	}
}

// NewSession creates an idle session reading settings from src.
func NewSession(src SettingsSource, opts ...Option) *Session {
	s := &Session{
		settings: src,
		factory:  newClientFactory(),
		dispatch: func(f func()) { f() },
		id:       uuid.NewString(),
		history:  model.NewHistory(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.welcome {
		s.history.Append(model.RoleSystem, WelcomeMessage)
	}
	return s
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ID returns the session identifier. NewChat assigns a new one.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Epoch returns the history generation counter.
func (s *Session) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// State reports whether a reply is pending.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	if s.pending != nil {
		return Awaiting
	}
	return Idle
}

// Snapshot returns a copy of the history.
func (s *Session) Snapshot() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Snapshot()
}

// Len returns the number of messages in the history.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len()
}

// Model returns the model the next request will use.
func (s *Session) Model() string {
	settings := s.settings.Current()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modelLocked(settings)
}

func (s *Session) modelLocked(settings config.Settings) string {
	if s.modelOverride != "" {
		return s.modelOverride
	}
	return strings.TrimSpace(settings.ModelName)
}

// SetModel overrides the configured model for this session only. An empty
// name restores the configured model.
func (s *Session) SetModel(name string) {
	name = strings.TrimSpace(name)
	s.mu.Lock()
	if s.modelOverride == name {
		s.mu.Unlock()
		return
	}
	s.modelOverride = name
	s.enqueueLocked(ChangeModel, nil)
	s.mu.Unlock()
	s.notifier.flush()
}

// =============================================================================
// SEND AND RESOLVE
// =============================================================================

// Send appends a user message and dispatches a generation for it. Blank
// input is ignored. While a reply is pending Send returns ErrBusy and the
// history is unchanged.
func (s *Session) Send(text string) error {
	text = norm.NFC.String(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	// Settings are read before taking the lock; the snapshot is fixed for
	// the life of this request.
	settings := s.settings.Current()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.pending != nil {
		s.mu.Unlock()
		return ErrBusy
	}

	prompt := buildPrompt(s.history.Snapshot(), text, settings.Context)
	msg := s.history.Append(model.RoleUser, text)

	req := ollama.GenerateRequest{
		Model:  s.modelLocked(settings),
		Prompt: prompt,
		System: settings.SystemPrompt,
		Options: ollama.Options{
			Temperature: settings.Parameters.Temperature,
			TopP:        settings.Parameters.TopP,
			TopK:        settings.Parameters.TopK,
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.nextRequestID++
	p := &pendingRequest{
		id:       s.nextRequestID,
		epoch:    s.epoch,
		model:    req.Model,
		endpoint: strings.TrimSpace(settings.APIEndpoint),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	s.pending = p
	gen := s.factory(settings)

	s.enqueueLocked(ChangeAppended, []model.Message{msg})
	s.mu.Unlock()
	s.notifier.flush()

	log.Debug("generation dispatched", "request", p.id, "model", req.Model, "prompt_chars", len(prompt))
	go s.run(ctx, p, gen, req)
	return nil
}

func (s *Session) run(ctx context.Context, p *pendingRequest, gen Generator, req ollama.GenerateRequest) {
	text, err := gen.Generate(ctx, req)
	s.dispatch(func() {
		s.resolve(p, text, err)
	})
}

// resolve applies a generation result if p is still the pending request of
// the current epoch, and drops it otherwise.
func (s *Session) resolve(p *pendingRequest, text string, err error) {
	s.mu.Lock()
	if s.pending != p || p.epoch != s.epoch {
		s.mu.Unlock()
		log.Debug("dropping stale reply", "request", p.id)
		return
	}
	s.pending = nil
	p.cancel()

	var msg model.Message
	if err != nil {
		log.Warn("generation failed", "request", p.id, "model", p.model, "err", err)
		msg = s.history.Append(model.RoleSystem, describeFailure(err, p.model, p.endpoint))
	} else {
		msg = s.history.Append(model.RoleAssistant, text)
	}
	close(p.done)

	s.enqueueLocked(ChangeAppended, []model.Message{msg})
	s.mu.Unlock()
	s.notifier.flush()
}

// Cancel abandons the pending generation, if any, and records a
// cancellation notice. It reports whether anything was cancelled.
func (s *Session) Cancel() bool {
	s.mu.Lock()
	p := s.pending
	if p == nil {
		s.mu.Unlock()
		return false
	}
	s.abandonLocked()
	msg := s.history.Append(model.RoleSystem, describeFailure(ollama.ErrCanceled, p.model, p.endpoint))
	s.enqueueLocked(ChangeAppended, []model.Message{msg})
	s.mu.Unlock()
	s.notifier.flush()

	log.Info("generation cancelled", "request", p.id)
	return true
}

// abandonLocked signals the pending request to stop and forgets it without
// waiting. Any reply that still arrives is dropped by resolve.
func (s *Session) abandonLocked() {
	if s.pending == nil {
		return
	}
	s.pending.cancel()
	close(s.pending.done)
	s.pending = nil
}

// Wait blocks until no request is pending or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	for {
		s.mu.Lock()
		p := s.pending
		s.mu.Unlock()
		if p == nil {
			return nil
		}
		select {
		case <-p.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// =============================================================================
// CLEAR AND NEW CHAT
// =============================================================================

// Clear empties the history. A pending request is cancelled without
// waiting and its reply, if any, is discarded.
func (s *Session) Clear() {
	s.mu.Lock()
	s.resetLocked()
	s.enqueueLocked(ChangeCleared, nil)
	s.mu.Unlock()
	s.notifier.flush()
}

// NewChat clears the history, starts a new session ID and appends the
// welcome message.
func (s *Session) NewChat() {
	s.mu.Lock()
	s.resetLocked()
	s.id = uuid.NewString()
	msg := s.history.Append(model.RoleSystem, WelcomeMessage)
	s.enqueueLocked(ChangeCleared, []model.Message{msg})
	s.mu.Unlock()
	s.notifier.flush()
}

func (s *Session) resetLocked() {
	s.epoch++
	s.abandonLocked()
	s.history.Reset()
}

// Close cancels any pending request. Later sends fail with ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.epoch++
	s.abandonLocked()
}
