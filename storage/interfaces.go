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


package storage

import (
	"context"

	"github.com/meddollina/assistant/core"
)

// TurnStore persists conversation turns per session.
// Implementations must be thread-safe and support concurrent access.
type TurnStore interface {
	// AppendTurn stores one completed exchange for a session, stamped with
	// the current time so iteration order matches conversation order.
	AppendTurn(ctx context.Context, session core.ID, turn core.Turn) error

	// RecentTurns returns up to limit of the session's most recent turns,
	// ordered oldest first. A session with no turns yields an empty slice.
	RecentTurns(ctx context.Context, session core.ID, limit int) ([]core.Turn, error)

	// Close releases resources held by the store.
	Close() error
}
