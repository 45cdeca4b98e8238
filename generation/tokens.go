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


package generation

import (
	"log/slog"

	"github.com/pkoukk/tiktoken-go"
)

const tokenEncoding = "cl100k_base"

// TokenCounter counts tokens with a tiktoken encoding. When the encoding
// cannot be loaded it degrades to the four-characters-per-token
// approximation, so counting never fails.
type TokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTokenCounter loads the cl100k_base encoding.
func NewTokenCounter() *TokenCounter {
	enc, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		slog.Warn("tokenizer unavailable, approximating token counts", "encoding", tokenEncoding, "error", err)
		return &TokenCounter{}
	}
	return &TokenCounter{enc: enc}
}

// Count returns the number of tokens in text.
func (c *TokenCounter) Count(text string) int {
	if c.enc == nil {
		return len(text) / 4
	}
	return len(c.enc.Encode(text, nil, nil))
}
