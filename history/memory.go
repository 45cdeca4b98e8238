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


package history

import (
	"context"
	"strings"

	"github.com/meddollina/assistant/core"
	"github.com/meddollina/assistant/storage"
)

// storedTurnLimit bounds how many turns StoredMemory loads; the formatter
// keeps at most this many pairs anyway.
const storedTurnLimit = 10

// Memory provides the conversation turns for one session.
type Memory interface {
	// LoadHistory returns the session's turns in chronological order.
	LoadHistory(ctx context.Context, question string) ([]core.Turn, error)

	// SaveTurn records a completed exchange. Read-only implementations
	// treat this as a no-op.
	SaveTurn(ctx context.Context, question, answer string) error
}

// FlatMessage is one role-tagged message in a caller-owned history list.
type FlatMessage struct {
	Role    string
	Content string
}

// FlatMemory adapts a flat message list, as delivered by an upstream
// service, into turns. Messages pair up positionally: even indices are the
// user, odd indices the assistant. FlatMemory is a read-only view; saving
// turns is the owner's responsibility.
type FlatMemory struct {
	messages []FlatMessage
}

var _ Memory = (*FlatMemory)(nil)

// NewFlatMemory creates a read-only Memory over the given messages.
func NewFlatMemory(messages []FlatMessage) *FlatMemory {
	return &FlatMemory{messages: messages}
}

// LoadHistory pairs the messages into turns. A trailing user message with no
// assistant reply yields a turn with an empty assistant side.
func (m *FlatMemory) LoadHistory(ctx context.Context, question string) ([]core.Turn, error) {
	var turns []core.Turn
	for i := 0; i < len(m.messages); i += 2 {
		human := strings.TrimSpace(strings.ReplaceAll(m.messages[i].Content, "Human:", ""))

		var assistant string
		if i+1 < len(m.messages) {
			assistant = strings.TrimSpace(m.messages[i+1].Content)
		}

		turns = append(turns, core.Turn{Human: human, Assistant: assistant})
	}
	return turns, nil
}

// SaveTurn is a no-op: the message list belongs to the caller.
func (m *FlatMemory) SaveTurn(ctx context.Context, question, answer string) error {
	return nil
}

// StoredMemory persists turns through a storage.TurnStore, scoped to one
// session.
type StoredMemory struct {
	store   storage.TurnStore
	session core.ID
}

var _ Memory = (*StoredMemory)(nil)

// NewStoredMemory creates a Memory over the given store and session.
func NewStoredMemory(store storage.TurnStore, session core.ID) *StoredMemory {
	return &StoredMemory{store: store, session: session}
}

// LoadHistory returns the session's most recent turns, oldest first.
func (m *StoredMemory) LoadHistory(ctx context.Context, question string) ([]core.Turn, error) {
	return m.store.RecentTurns(ctx, m.session, storedTurnLimit)
}

// SaveTurn appends the exchange to the session.
func (m *StoredMemory) SaveTurn(ctx context.Context, question, answer string) error {
	return m.store.AppendTurn(ctx, m.session, core.Turn{Human: question, Assistant: answer})
}
