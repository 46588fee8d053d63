// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides settings loading, validation and persistence for rigchat.
//
// Settings are stored as indented JSON in ~/.rigchat/settings.json. A
// hand-written settings.toml in the same directory is read when the JSON
// file does not exist.
//
// # Key Types
//
//   - Settings: every user preference, a plain copyable value
//   - Store: the persisted settings file plus the current snapshot
//   - FieldError, ValidationError: validation results
//
// # Configuration Precedence
//
// The effective settings for a run are (highest first):
//   - Command-line flags (--endpoint, --model)
//   - Environment variables (RIGCHAT_*)
//   - ~/.rigchat/settings.json (or settings.toml)
//   - Built-in defaults
//
// Flags and environment variables are never written back to the file.
//
// # Usage
//
//	store := config.NewStore(path)
//	settings := store.Load() // never fails; falls back to defaults
//
//	settings.Theme = config.ThemeDark
//	if err := store.Save(settings); err != nil {
//	    var verr config.ValidationError
//	    if errors.As(err, &verr) { ... }
//	}
package config
