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
	"encoding/binary"
	"time"

	"github.com/meddollina/assistant/core"
)

// Key prefixes for different data types
const (
	turnRecordPrefix = "sesturn"
	turnIDSeq        = "sesturnseq"
)

// makeTurnKey generates a composite key for a session turn.
// Format: prefix:sessionID:timestamp:seq
// All fixed-width fields are BigEndian so lexicographic sort matches
// chronological order within a session.
func makeTurnKey(session core.ID, timestamp time.Time, seq uint64) []byte {
	prefix := turnRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 24 // 8 bytes each for session, timestamp, seq
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(session))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makePartialTurnKey generates a partial key covering every turn of one
// session. Used as an iteration prefix.
func makePartialTurnKey(session core.ID) []byte {
	prefix := turnRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(session))
	return buf
}

// makeTurnSeekKey generates the highest possible key for a session, used to
// start reverse iteration at the most recent turn.
func makeTurnSeekKey(session core.ID) []byte {
	return makeTurnKey(session, time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC), ^uint64(0))
}
