// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// DEFAULT TESTS
// =============================================================================

func TestDefault_IsValid(t *testing.T) {
	if errs := Validate(Default()); len(errs) != 0 {
		t.Errorf("Default() has validation errors: %v", errs)
	}
}

func TestDefault_Values(t *testing.T) {
	d := Default()
	assert.Equal(t, "http://localhost:11434", d.APIEndpoint)
	assert.Equal(t, "mistral", d.ModelName)
	assert.True(t, d.UseLocalModel)
	assert.Equal(t, 0.7, d.Parameters.Temperature)
	assert.Equal(t, 0.9, d.Parameters.TopP)
	assert.Equal(t, 40, d.Parameters.TopK)
	assert.Equal(t, ThemeLight, d.Theme)
	assert.Equal(t, "saved_chats", d.SavePath)
	assert.Equal(t, "/api/generate", d.Paths.Generate)
}

func TestSettings_StringRedactsKey(t *testing.T) {
	s := Default()
	s.APIKey = "sk-secret"

	out := s.String()
	if strings.Contains(out, "sk-secret") {
		t.Error("String() leaked the API key")
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Error("String() should mark the key as redacted")
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		field  string
		msg    string
	}{
		{"empty endpoint", func(s *Settings) { s.APIEndpoint = "" }, "endpoint", MsgRequired},
		{"bad endpoint", func(s *Settings) { s.APIEndpoint = "not a url" }, "endpoint", MsgInvalidURL},
		{"ftp endpoint", func(s *Settings) { s.APIEndpoint = "ftp://host" }, "endpoint", MsgInvalidURL},
		{"empty model", func(s *Settings) { s.ModelName = "  " }, "model", MsgRequired},
		{"remote without key", func(s *Settings) { s.UseLocalModel = false }, "apiKey", MsgKeyRequired},
		{"negative temperature", func(s *Settings) { s.Parameters.Temperature = -0.1 }, "temperature", MsgOutOfRange},
		{"nan temperature", func(s *Settings) { s.Parameters.Temperature = math.NaN() }, "temperature", MsgOutOfRange},
		{"zero top_p", func(s *Settings) { s.Parameters.TopP = 0 }, "top_p", MsgOutOfRange},
		{"top_p above one", func(s *Settings) { s.Parameters.TopP = 1.5 }, "top_p", MsgOutOfRange},
		{"negative top_k", func(s *Settings) { s.Parameters.TopK = -1 }, "top_k", MsgOutOfRange},
		{"bad theme", func(s *Settings) { s.Theme = "blue" }, "theme", MsgInvalidTheme},
		{"zero timeout", func(s *Settings) { s.RequestTimeoutSecs = 0 }, "request_timeout_secs", MsgOutOfRange},
		{"relative path", func(s *Settings) { s.Paths.Generate = "api/generate" }, "paths.generate", MsgPathNoLeadSlash},
		{"negative max chars", func(s *Settings) { s.Context.MaxChars = -5 }, "context.max_chars", MsgOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			errs := Validate(s)
			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Equal(t, FieldError{Field: tt.field, Message: tt.msg}, errs[0])
		})
	}
}

func TestValidate_BoundaryValuesAccepted(t *testing.T) {
	s := Default()
	s.Parameters.Temperature = 0
	s.Parameters.TopP = 1
	s.Parameters.TopK = 0
	s.Theme = ThemeDark
	s.UseLocalModel = false
	s.APIKey = "key"
	s.APIEndpoint = "https://example.com:8443/base"

	if errs := Validate(s); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	s := Default()
	s.APIEndpoint = ""
	s.ModelName = ""
	s.Theme = "neon"

	errs := ValidationError(Validate(s))
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
	for _, f := range []string{"endpoint", "model", "theme"} {
		if !errs.Has(f) {
			t.Errorf("missing error for %s", f)
		}
	}
}

func TestCheck(t *testing.T) {
	if err := Check(Default()); err != nil {
		t.Errorf("Check(Default()) = %v, want nil", err)
	}

	s := Default()
	s.ModelName = ""
	err := Check(s)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Check returned %T, want ValidationError", err)
	}
	if !strings.Contains(err.Error(), "model: required") {
		t.Errorf("error text = %q", err.Error())
	}
}

// =============================================================================
// GET/SET TESTS
// =============================================================================

func TestSettings_SetAndGet(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  interface{}
	}{
		{"model_name", "llama3", "llama3"},
		{"parameters.temperature", "0.2", 0.2},
		{"parameters.top_k", "12", 12},
		{"use_local_model", "false", false},
		{"use-local-model", "yes", true},
		{"context.max_messages", "8", 8},
		{"PATHS.PROBE", "/health", "/health"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			s := Default()
			require.NoError(t, s.Set(tt.key, tt.value))
			got, err := s.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettings_SetErrors(t *testing.T) {
	s := Default()

	assert.ErrorIs(t, s.Set("nope", "x"), ErrUnknownKey)
	assert.ErrorIs(t, s.Set("parameters", "x"), ErrUnknownKey)
	assert.ErrorIs(t, s.Set("model_name.extra", "x"), ErrUnknownKey)
	assert.Error(t, s.Set("parameters.top_k", "many"))
	assert.Error(t, s.Set("use_local_model", "maybe"))
	assert.Equal(t, Default(), s, "failed sets must not change settings")
}

func TestKeys(t *testing.T) {
	keys := Keys()
	s := Default()
	for _, k := range keys {
		if _, err := s.Get(k); err != nil {
			t.Errorf("Get(%q) failed: %v", k, err)
		}
	}
	assert.Contains(t, keys, "api_key")
	assert.Contains(t, keys, "parameters.top_p")
	assert.Contains(t, keys, "context.max_chars")
}

// =============================================================================
// ENVIRONMENT TESTS
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvEndpoint, "http://gpu-box:11434")
	t.Setenv(EnvModel, "llama3")
	t.Setenv(EnvTheme, ThemeDark)
	t.Setenv(EnvAPIKey, "")

	s := Default()
	s.ApplyEnvOverrides()

	assert.Equal(t, "http://gpu-box:11434", s.APIEndpoint)
	assert.Equal(t, "llama3", s.ModelName)
	assert.Equal(t, ThemeDark, s.Theme)
	assert.Equal(t, "", s.APIKey, "empty variables are ignored")
	assert.Equal(t, "saved_chats", s.SavePath)
}
