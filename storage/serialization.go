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
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/meddollina/assistant/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	return core.ID(v), err
}

// MarshalTurn serializes a Turn to bytes: the human text followed by the
// assistant text, both length-prefixed.
func MarshalTurn(turn core.Turn) []byte {
	buf := make([]byte, ord.String.Size(turn.Human)+ord.String.Size(turn.Assistant))
	n := ord.String.Marshal(turn.Human, buf)
	ord.String.Marshal(turn.Assistant, buf[n:])
	return buf
}

// UnmarshalTurn deserializes a Turn from bytes.
func UnmarshalTurn(data []byte) (core.Turn, error) {
	human, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return core.Turn{}, err
	}
	assistant, _, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return core.Turn{}, err
	}
	return core.Turn{Human: human, Assistant: assistant}, nil
}
