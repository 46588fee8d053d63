// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"fmt"
	"time"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Options contains the sampling parameters for inference. Every field is
// always sent; a zero is a meaningful value here.
type Options struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	TopK        int     `json:"top_k"`
}

// GenerateRequest is the request body for the generate endpoint.
type GenerateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	System  string  `json:"system,omitempty"`
	Stream  bool    `json:"stream"`
	Options Options `json:"options"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// GenerateResponse holds the fields read from a generate reply. Servers
// return the text under "response"; some compatible servers use "text".
type GenerateResponse struct {
	Model    string  `json:"model"`
	Response *string `json:"response"`
	Text     *string `json:"text"`
	Done     bool    `json:"done"`
	Error    string  `json:"error"`
}

// Content returns the generated text and whether the reply carried any.
func (r *GenerateResponse) Content() (string, bool) {
	switch {
	case r.Response != nil:
		return *r.Response, true
	case r.Text != nil:
		return *r.Text, true
	}
	return "", false
}

// =============================================================================
// MODEL TYPES
// =============================================================================

// ModelInfo contains information about a model.
type ModelInfo struct {
	Name       string       `json:"name"`
	ModifiedAt time.Time    `json:"modified_at"`
	Size       int64        `json:"size"`
	Digest     string       `json:"digest"`
	Details    ModelDetails `json:"details"`
}

// ModelDetails contains detailed information about a model.
type ModelDetails struct {
	Format            string   `json:"format"`
	Family            string   `json:"family"`
	Families          []string `json:"families"`
	ParameterSize     string   `json:"parameter_size"`
	QuantizationLevel string   `json:"quantization_level"`
}

// ListModelsResponse is the response from the models endpoint. Models is a
// pointer so a reply without the key can be told apart from an empty list.
type ListModelsResponse struct {
	Models *[]ModelInfo `json:"models"`
}

// apiError is the error body the server sends with non-2xx replies.
type apiError struct {
	Error string `json:"error"`
}

// =============================================================================
// HELPER METHODS
// =============================================================================

// FormatSize formats the model size in human-readable form.
func (m ModelInfo) FormatSize() string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case m.Size <= 0:
		return "-"
	case m.Size >= GB:
		return fmt.Sprintf("%.1f GB", float64(m.Size)/GB)
	case m.Size >= MB:
		return fmt.Sprintf("%.1f MB", float64(m.Size)/MB)
	case m.Size >= KB:
		return fmt.Sprintf("%.1f KB", float64(m.Size)/KB)
	default:
		return fmt.Sprintf("%d B", m.Size)
	}
}
