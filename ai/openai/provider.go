// Copyright 2025 Meddollina
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"log/slog"

	"github.com/meddollina/assistant/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages chat and embedder instances that share one configuration.
type Provider struct {
	config    *ai.Config
	chat      *ChatModel
	quickChat *ChatModel
	embedder  *Embedder
	logger    *slog.Logger
}

// NewProvider creates a new inference provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Two chat clients are created: one with the full chat timeout for answer
// generation, and one with the shorter quick timeout for classification and
// validation calls.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction and
// prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	chat, err := newChatModel(config, config.ChatTimeout)
	if err != nil {
		return nil, err
	}

	quickChat, err := newChatModel(config, config.QuickTimeout)
	if err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		chat:      chat,
		quickChat: quickChat,
		embedder:  embedder,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Chat returns the answer-generation chat service.
func (p *Provider) Chat() ai.ChatModel {
	return p.chat
}

// QuickChat returns the short-call chat service.
func (p *Provider) QuickChat() ai.ChatModel {
	return p.quickChat
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
