// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"

	"github.com/jeranaias/rigchat/internal/ollama"
)

// describeFailure turns a generation error into the notice shown in the
// transcript. The raw error text is never shown; it goes to the log.
func describeFailure(err error, modelName, endpoint string) string {
	switch ollama.TypeOf(err) {
	case ollama.ErrTypeConnection:
		return fmt.Sprintf("Connection failed: is the inference server running at %s?", endpoint)
	case ollama.ErrTypeTimeout:
		return "The request timed out. The model may still be loading; try again in a moment."
	case ollama.ErrTypeModelNotFound:
		return fmt.Sprintf("Model %q was not found on the server. Pull it or choose another model in settings.", modelName)
	case ollama.ErrTypeUnauthorized:
		return "The server rejected the request. Check the API key in settings."
	case ollama.ErrTypeProtocol:
		return "The server sent a response that could not be understood."
	case ollama.ErrTypeCanceled:
		return "Generation cancelled."
	default:
		return "Generation failed. See the log for details."
	}
}
