// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sync"

	"github.com/jeranaias/rigchat/internal/config"
	"github.com/jeranaias/rigchat/internal/ollama"
)

// clientKey is the part of the settings that shapes an inference client.
type clientKey struct {
	endpoint        string
	apiKey          string
	paths           config.EndpointPaths
	requestTimeout  int
	generateTimeout int
}

// newClientFactory returns a factory that reuses one *ollama.Client while
// the connection settings stay the same, so its rate limiter is shared
// across turns.
func newClientFactory() GeneratorFactory {
	var (
		mu     sync.Mutex
		key    clientKey
		client *ollama.Client
	)
	return func(s config.Settings) Generator {
		k := clientKey{
			endpoint:        s.APIEndpoint,
			apiKey:          s.APIKey,
			paths:           s.Paths,
			requestTimeout:  s.RequestTimeoutSecs,
			generateTimeout: s.GenerateTimeoutSecs,
		}

		mu.Lock()
		defer mu.Unlock()
		if client == nil || k != key {
			client = ollama.NewClientWithConfig(ollama.ConfigFromSettings(s))
			key = k
		}
		return client
	}
}
