// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for an Ollama-compatible inference server.
//
// The client is stateless: it probes the server, lists installed models and
// performs single, non-streaming generations. Conversation state lives in
// the chat package.
//
// # Key Types
//
//   - Client: HTTP client with per-call deadlines and a request rate limiter
//   - ClientConfig: endpoint, credentials, paths and timeouts
//   - GenerateRequest: model, prompt, system prompt and sampling Options
//   - ClientError: categorized failure (connection, timeout, protocol,
//     model not found, unauthorized, canceled)
//
// # Usage
//
//	client := ollama.NewClientWithConfig(ollama.ConfigFromSettings(settings))
//	text, err := client.Generate(ctx, ollama.GenerateRequest{
//	    Model:  "mistral",
//	    Prompt: "Hello",
//	})
//	if errors.Is(err, ollama.ErrModelNotFound) {
//	    // suggest pulling the model
//	}
package ollama
