// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"math"
	"net/url"
	"strings"
)

// =============================================================================
// VALIDATION
// =============================================================================

// Validation messages.
const (
	MsgRequired        = "required"
	MsgInvalidURL      = "invalid URL"
	MsgKeyRequired     = "required when remote model selected"
	MsgOutOfRange      = "out of range"
	MsgInvalidTheme    = "must be light or dark"
	MsgPathNoLeadSlash = "must start with /"
)

// FieldError describes one invalid field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError is the full list of problems found in a Settings value.
type ValidationError []FieldError

func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return "invalid settings: " + strings.Join(msgs, "; ")
}

// Has reports whether field has at least one error.
func (e ValidationError) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Validate checks s and returns every violation found. An empty result
// means s is valid.
func Validate(s Settings) []FieldError {
	var errs []FieldError
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	endpoint := strings.TrimSpace(s.APIEndpoint)
	switch {
	case endpoint == "":
		add("endpoint", MsgRequired)
	case !validEndpoint(endpoint):
		add("endpoint", MsgInvalidURL)
	}

	if strings.TrimSpace(s.ModelName) == "" {
		add("model", MsgRequired)
	}

	if !s.UseLocalModel && strings.TrimSpace(s.APIKey) == "" {
		add("apiKey", MsgKeyRequired)
	}

	p := s.Parameters
	if math.IsNaN(p.Temperature) || math.IsInf(p.Temperature, 0) || p.Temperature < 0 {
		add("temperature", MsgOutOfRange)
	}
	if math.IsNaN(p.TopP) || p.TopP <= 0 || p.TopP > 1 {
		add("top_p", MsgOutOfRange)
	}
	if p.TopK < 0 {
		add("top_k", MsgOutOfRange)
	}

	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		add("theme", MsgInvalidTheme)
	}

	if s.RequestTimeoutSecs < 1 {
		add("request_timeout_secs", MsgOutOfRange)
	}
	if s.GenerateTimeoutSecs < 1 {
		add("generate_timeout_secs", MsgOutOfRange)
	}
	if s.Context.MaxMessages < 0 {
		add("context.max_messages", MsgOutOfRange)
	}
	if s.Context.MaxChars < 0 {
		add("context.max_chars", MsgOutOfRange)
	}

	for _, pc := range []struct{ field, path string }{
		{"paths.probe", s.Paths.Probe},
		{"paths.models", s.Paths.Models},
		{"paths.generate", s.Paths.Generate},
	} {
		if !strings.HasPrefix(pc.path, "/") {
			add(pc.field, MsgPathNoLeadSlash)
		}
	}

	return errs
}

// Check validates s and returns a ValidationError, or nil when s is valid.
func Check(s Settings) error {
	if errs := Validate(s); len(errs) > 0 {
		return ValidationError(errs)
	}
	return nil
}

func validEndpoint(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
