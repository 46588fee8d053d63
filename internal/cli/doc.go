// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the rigchat command tree.
//
// Commands are built with cobra around a shared App that owns the global
// flags, the settings store and the standard streams:
//
//	rigchat [chat] [--plain]     interactive chat (full screen or line prompt)
//	rigchat ask <question>       one-shot question
//	rigchat models               list server models
//	rigchat status               probe the server, summarise settings
//	rigchat settings ...         show, validate and change saved settings
//
// Every command returns an error instead of exiting; Execute maps it to an
// exit code with GetExitCode.
package cli
