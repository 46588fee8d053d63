// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// SETTINGS STRUCTURES
// =============================================================================

// Settings is the complete set of user preferences. It is a plain value:
// copies are independent snapshots.
type Settings struct {
	APIEndpoint   string          `json:"api_endpoint" toml:"api_endpoint"`
	APIKey        string          `json:"api_key" toml:"api_key"`
	ModelName     string          `json:"model_name" toml:"model_name"`
	UseLocalModel bool            `json:"use_local_model" toml:"use_local_model"`
	Parameters    ModelParameters `json:"parameters" toml:"parameters"`
	Theme         string          `json:"theme" toml:"theme"`
	SavePath      string          `json:"save_path" toml:"save_path"`
	SystemPrompt  string          `json:"system_prompt" toml:"system_prompt"`

	// Deadlines in seconds. The request timeout covers the probe and model
	// listing; generation gets its own, longer budget.
	RequestTimeoutSecs  int `json:"request_timeout_secs" toml:"request_timeout_secs"`
	GenerateTimeoutSecs int `json:"generate_timeout_secs" toml:"generate_timeout_secs"`

	Paths   EndpointPaths `json:"paths" toml:"paths"`
	Context ContextLimits `json:"context" toml:"context"`
}

// ModelParameters are the sampling parameters sent with every generation.
type ModelParameters struct {
	Temperature float64 `json:"temperature" toml:"temperature"`
	TopP        float64 `json:"top_p" toml:"top_p"`
	TopK        int     `json:"top_k" toml:"top_k"`
}

// EndpointPaths are the request paths appended to APIEndpoint.
type EndpointPaths struct {
	Probe    string `json:"probe" toml:"probe"`
	Models   string `json:"models" toml:"models"`
	Generate string `json:"generate" toml:"generate"`
}

// ContextLimits bound how much prior conversation is sent with a turn.
// Zero means no limit.
type ContextLimits struct {
	MaxMessages int `json:"max_messages" toml:"max_messages"`
	MaxChars    int `json:"max_chars" toml:"max_chars"`
}

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// =============================================================================
// DEFAULT SETTINGS
// =============================================================================

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		APIEndpoint:   "http://localhost:11434",
		ModelName:     "mistral",
		UseLocalModel: true,
		Parameters: ModelParameters{
			Temperature: 0.7,
			TopP:        0.9,
			TopK:        40,
		},
		Theme:               ThemeLight,
		SavePath:            "saved_chats",
		RequestTimeoutSecs:  10,
		GenerateTimeoutSecs: 120,
		Paths: EndpointPaths{
			Probe:    "/api/version",
			Models:   "/api/tags",
			Generate: "/api/generate",
		},
		Context: ContextLimits{
			MaxChars: 16000,
		},
	}
}

// RequestTimeout returns the probe/list deadline as a duration.
func (s Settings) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSecs) * time.Second
}

// GenerateTimeout returns the generation deadline as a duration.
func (s Settings) GenerateTimeout() time.Duration {
	return time.Duration(s.GenerateTimeoutSecs) * time.Second
}

// String returns an indented JSON rendering with the API key redacted.
// SECURITY: secrets must never reach logs or the terminal in plaintext.
func (s Settings) String() string {
	safe := s
	if safe.APIKey != "" {
		safe.APIKey = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// ErrUnknownKey is returned by Get and Set for keys that name no setting.
var ErrUnknownKey = errors.New("unknown setting")

// Keys returns every settable key in dot notation, in declaration order.
func Keys() []string {
	var keys []string
	collectKeys(reflect.TypeOf(Settings{}), "", &keys)
	return keys
}

func collectKeys(t reflect.Type, prefix string, keys *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := jsonName(f)
		if f.Type.Kind() == reflect.Struct {
			collectKeys(f.Type, prefix+name+".", keys)
			continue
		}
		*keys = append(*keys, prefix+name)
	}
}

// Get returns the value of a setting by key (e.g. "parameters.top_k").
func (s *Settings) Get(key string) (interface{}, error) {
	field, err := s.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns a setting from its string form. The result is not validated.
func (s *Settings) Set(key, value string) error {
	field, err := s.lookup(key)
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: invalid integer value %q", key, value)
		}
		field.SetInt(int64(n))
	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid number %q", key, value)
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			switch strings.ToLower(value) {
			case "yes", "on":
				b = true
			case "no", "off":
				b = false
			default:
				return fmt.Errorf("%s: invalid boolean %q", key, value)
			}
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("cannot set %s", key)
	}
	return nil
}

// lookup walks the dot-separated key through the struct by JSON name.
func (s *Settings) lookup(key string) (reflect.Value, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(key)), ".")
	v := reflect.ValueOf(s).Elem()

	for i, part := range parts {
		part = strings.ReplaceAll(part, "-", "_")
		field, ok := fieldByJSONName(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		last := i == len(parts)-1
		if field.Kind() == reflect.Struct {
			if last {
				return reflect.Value{}, fmt.Errorf("%w: %s is a section, not a setting", ErrUnknownKey, key)
			}
			v = field
			continue
		}
		if !last {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		return field, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

func fieldByJSONName(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if jsonName(t.Field(i)) == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return f.Name
	}
	return tag
}
