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
	"fmt"
	"strconv"

	"github.com/tmc/langchaingo/vectorstores/chroma"

	"github.com/meddollina/assistant/core"
)

// DocumentStore finds passages relevant to a query.
// Implementations must be thread-safe for concurrent use.
type DocumentStore interface {
	// SimilaritySearch returns up to k passages ordered by relevance.
	SimilaritySearch(ctx context.Context, query string, k int) ([]core.RetrievedDocument, error)
}

// ChromaStore is a DocumentStore backed by a Chroma vector database.
type ChromaStore struct {
	store chroma.Store
}

var _ DocumentStore = (*ChromaStore)(nil)

// NewChromaStore connects to a Chroma server and scopes searches to the
// given namespace. Queries are embedded through the provided embedder, so
// the namespace must have been populated with the same embedding model.
func NewChromaStore(url, namespace string, embedder *LangchainEmbedder) (*ChromaStore, error) {
	store, err := chroma.New(
		chroma.WithChromaURL(url),
		chroma.WithEmbedder(embedder),
		chroma.WithNameSpace(namespace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to chroma at %s: %w", url, err)
	}
	return &ChromaStore{store: store}, nil
}

// SimilaritySearch returns up to k passages ordered by relevance.
func (s *ChromaStore) SimilaritySearch(ctx context.Context, query string, k int) ([]core.RetrievedDocument, error) {
	docs, err := s.store.SimilaritySearch(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	results := make([]core.RetrievedDocument, 0, len(docs))
	for _, doc := range docs {
		results = append(results, core.RetrievedDocument{
			Content: doc.PageContent,
			Source:  metadataString(doc.Metadata, "source"),
			Page:    metadataInt(doc.Metadata, "page_number"),
		})
	}
	return results, nil
}

func metadataString(metadata map[string]any, key string) string {
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}

// metadataInt reads a numeric metadata value. Chroma round-trips numbers as
// float64 through JSON, but loaders sometimes write them as strings.
func metadataInt(metadata map[string]any, key string) int {
	switch v := metadata[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}
