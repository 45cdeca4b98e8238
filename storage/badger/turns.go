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


package badger

import (
	"bytes"
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/meddollina/assistant/core"
	"github.com/meddollina/assistant/storage"
)

// TurnStore implements storage.TurnStore for BadgerDB.
type TurnStore struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.TurnStore = (*TurnStore)(nil)

// NewTurnStore creates a new TurnStore over the given backend.
func NewTurnStore(backend *Backend) (*TurnStore, error) {
	idSeq, err := backend.GetSequence(turnIDSeq)
	if err != nil {
		return nil, err
	}

	return &TurnStore{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence. The backend is owned and closed by the
// caller that opened it.
func (s *TurnStore) Close() error {
	return s.idSeq.Release()
}

// AppendTurn stores one completed exchange for a session.
func (s *TurnStore) AppendTurn(ctx context.Context, session core.ID, turn core.Turn) error {
	if err := core.ValidateTurn(turn); err != nil {
		return err
	}

	// The sequence disambiguates turns landing in the same microsecond.
	seq, err := s.idSeq.Next()
	if err != nil {
		return err
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTurnKey(session, time.Now().UTC(), seq)
		if err := tx.Set(key, storage.MarshalTurn(turn)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// RecentTurns returns up to limit of the session's most recent turns,
// ordered oldest first.
func (s *TurnStore) RecentTurns(ctx context.Context, session core.ID, limit int) ([]core.Turn, error) {
	if limit <= 0 {
		return nil, nil
	}

	var newestFirst []core.Turn
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := makePartialTurnKey(session)
		for iter.Seek(makeTurnSeekKey(session)); iter.Valid() && len(newestFirst) < limit; iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}

			var turn core.Turn
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				turn, err = storage.UnmarshalTurn(val)
				return err
			}); err != nil {
				return err
			}
			newestFirst = append(newestFirst, turn)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	turns := make([]core.Turn, len(newestFirst))
	for i, turn := range newestFirst {
		turns[len(newestFirst)-1-i] = turn
	}
	return turns, nil
}
