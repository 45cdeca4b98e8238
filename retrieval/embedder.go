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


package retrieval

import (
	"context"

	"github.com/tmc/langchaingo/embeddings"

	"github.com/meddollina/assistant/ai"
)

// LangchainEmbedder adapts an ai.Embedder to the langchaingo embeddings
// interface so the vector store can embed queries through the same service
// the rest of the pipeline uses.
type LangchainEmbedder struct {
	inner ai.Embedder
}

var _ embeddings.Embedder = (*LangchainEmbedder)(nil)

// NewLangchainEmbedder wraps an ai.Embedder for vector store use.
func NewLangchainEmbedder(inner ai.Embedder) *LangchainEmbedder {
	return &LangchainEmbedder{inner: inner}
}

// EmbedDocuments embeds a batch of texts, preserving order.
func (e *LangchainEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return e.inner.EmbedTexts(ctx, texts)
}

// EmbedQuery embeds a single query string.
func (e *LangchainEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.inner.EmbedText(ctx, text)
}
