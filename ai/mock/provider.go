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


package mock

import "github.com/meddollina/assistant/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock chat and embedder instances.
type MockProvider struct {
	chat      *MockChatModel
	quickChat *MockChatModel
	embedder  *MockEmbedder
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockChat()/GetMockQuickChat()/GetMockEmbedder() to access concrete
// types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		chat:      NewMockChatModel(""),
		quickChat: NewMockChatModel(""),
		embedder:  NewMockEmbedder(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(chat, quickChat *MockChatModel, embedder *MockEmbedder) ai.Provider {
	return &MockProvider{
		chat:      chat,
		quickChat: quickChat,
		embedder:  embedder,
	}
}

// Chat returns the mock answer-generation chat model.
func (p *MockProvider) Chat() ai.ChatModel {
	return p.chat
}

// QuickChat returns the mock short-call chat model.
func (p *MockProvider) QuickChat() ai.ChatModel {
	return p.quickChat
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockChat returns the underlying mock chat model for test assertions.
func (p *MockProvider) GetMockChat() *MockChatModel {
	return p.chat
}

// GetMockQuickChat returns the underlying mock quick-chat model for test assertions.
func (p *MockProvider) GetMockQuickChat() *MockChatModel {
	return p.quickChat
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}
