package mock

import (
	"context"
	"sync"

	"github.com/meddollina/assistant/ai"
)

// MockChatModel is a test double for ai.ChatModel.
// It records every request and allows custom behavior injection.
type MockChatModel struct {
	// GenerateFunc is called by Generate if set.
	// If nil, Response is returned.
	GenerateFunc func(ctx context.Context, req ai.GenerationRequest) (string, error)

	// Response is the canned text returned when GenerateFunc is nil.
	Response string

	mu       sync.Mutex
	requests []ai.GenerationRequest
}

// NewMockChatModel creates a mock chat model returning the given canned text.
// Note: Returns concrete type to allow test assertions.
func NewMockChatModel(response string) *MockChatModel {
	return &MockChatModel{Response: response}
}

// Generate records the request and returns the injected or canned response.
func (m *MockChatModel) Generate(ctx context.Context, req ai.GenerationRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return m.Response, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockChatModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of every recorded request, in call order.
func (m *MockChatModel) Requests() []ai.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ai.GenerationRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent recorded request, or a zero request
// when Generate was never called.
func (m *MockChatModel) LastRequest() ai.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return ai.GenerationRequest{}
	}
	return m.requests[len(m.requests)-1]
}

// Reset clears recorded requests and custom functions.
func (m *MockChatModel) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.GenerateFunc = nil
}
