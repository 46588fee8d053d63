// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import "os"

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// Environment variables read by ApplyEnvOverrides.
const (
	EnvEndpoint = "RIGCHAT_ENDPOINT"
	EnvAPIKey   = "RIGCHAT_API_KEY"
	EnvModel    = "RIGCHAT_MODEL"
	EnvTheme    = "RIGCHAT_THEME"
	EnvSavePath = "RIGCHAT_SAVE_PATH"
)

// ApplyEnvOverrides applies environment variable overrides to s.
// Overrides only affect the in-memory value and are never saved.
//
// Supported environment variables:
//   - RIGCHAT_ENDPOINT: overrides api_endpoint
//   - RIGCHAT_API_KEY: overrides api_key
//   - RIGCHAT_MODEL: overrides model_name
//   - RIGCHAT_THEME: overrides theme
//   - RIGCHAT_SAVE_PATH: overrides save_path
func (s *Settings) ApplyEnvOverrides() {
	if v := os.Getenv(EnvEndpoint); v != "" {
		s.APIEndpoint = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		s.APIKey = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		s.ModelName = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		s.Theme = v
	}
	if v := os.Getenv(EnvSavePath); v != "" {
		s.SavePath = v
	}
}
