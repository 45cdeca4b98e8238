package retrieval

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meddollina/assistant/ai/mock"
	"github.com/meddollina/assistant/core"
	"github.com/meddollina/assistant/metrics"
)

// fakeDocumentStore returns canned documents or a canned error.
type fakeDocumentStore struct {
	docs      []core.RetrievedDocument
	err       error
	lastQuery string
	lastK     int
}

func (f *fakeDocumentStore) SimilaritySearch(ctx context.Context, query string, k int) ([]core.RetrievedDocument, error) {
	f.lastQuery = query
	f.lastK = k
	if f.err != nil {
		return nil, f.err
	}
	if len(f.docs) > k {
		return f.docs[:k], nil
	}
	return f.docs, nil
}

func newTestCoordinator(t *testing.T, store DocumentStore, embedder *mock.MockEmbedder, opts ...CoordinatorOption) *Coordinator {
	t.Helper()
	c, err := NewCoordinator(store, embedder, opts...)
	require.NoError(t, err)
	t.Cleanup(c.Release)
	return c
}

func TestCoordinatorRetrieve(t *testing.T) {
	t.Run("assembles documents into context and citations", func(t *testing.T) {
		store := &fakeDocumentStore{docs: []core.RetrievedDocument{
			{Content: "Diabetes is a chronic condition.", Source: "ref.pdf", Page: 4},
			{Content: "Insulin regulates blood sugar.", Source: "ref.pdf", Page: 7},
			{Content: "Unattributed passage."},
		}}
		c := newTestCoordinator(t, store, mock.NewMockEmbedder())

		result := c.Retrieve(context.Background(), "What is diabetes?")

		assert.Len(t, result.Documents, 3)
		assert.Equal(t, []string{"ref.pdf (Page: 4)", "ref.pdf (Page: 7)"}, result.SourceLinks)
		assert.Equal(t, []string{"ref.pdf", "ref.pdf"}, result.Sources)
		assert.Equal(t,
			"Diabetes is a chronic condition.\n\nInsulin regulates blood sugar.\n\nUnattributed passage.",
			result.Context)
	})

	t.Run("over-fetches candidates for the re-rank", func(t *testing.T) {
		store := &fakeDocumentStore{}
		c := newTestCoordinator(t, store, mock.NewMockEmbedder())

		c.Retrieve(context.Background(), "question")

		assert.Equal(t, defaultK*fetchFactor, store.lastK)
		assert.Equal(t, "question", store.lastQuery)
	})

	t.Run("search failure degrades to an empty result", func(t *testing.T) {
		store := &fakeDocumentStore{err: errors.New("connection refused")}
		c := newTestCoordinator(t, store, mock.NewMockEmbedder())

		result := c.Retrieve(context.Background(), "question")

		assert.Empty(t, result.Documents)
		assert.Empty(t, result.SourceLinks)
		assert.Empty(t, result.Context)
	})

	t.Run("re-rank prefers diverse passages", func(t *testing.T) {
		store := &fakeDocumentStore{docs: []core.RetrievedDocument{
			{Content: "alpha"},
			{Content: "alpha twin"},
			{Content: "beta"},
		}}
		embedder := mock.NewMockEmbedder()
		vectors := map[string][]float32{
			"question":   {1, 1},
			"alpha":      {1, 0.2},
			"alpha twin": {1, 0.19},
			"beta":       {0.1, 1},
		}
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return vectors[text], nil
		}
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, text := range texts {
				out[i] = vectors[text]
			}
			return out, nil
		}
		c := newTestCoordinator(t, store, embedder, WithK(2))

		result := c.Retrieve(context.Background(), "question")

		require.Len(t, result.Documents, 2)
		assert.Equal(t, "alpha", result.Documents[0].Content)
		// The near duplicate is passed over for the diverse passage.
		assert.Equal(t, "beta", result.Documents[1].Content)
	})

	t.Run("embedding failure falls back to search order", func(t *testing.T) {
		store := &fakeDocumentStore{docs: []core.RetrievedDocument{
			{Content: "a"}, {Content: "b"}, {Content: "c"}, {Content: "d"},
		}}
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("embedding service down")
		}
		c := newTestCoordinator(t, store, embedder)

		result := c.Retrieve(context.Background(), "question")

		require.Len(t, result.Documents, 3)
		assert.Equal(t, "a", result.Documents[0].Content)
		assert.Equal(t, "b", result.Documents[1].Content)
		assert.Equal(t, "c", result.Documents[2].Content)
	})

	t.Run("small result sets skip the re-rank", func(t *testing.T) {
		store := &fakeDocumentStore{docs: []core.RetrievedDocument{
			{Content: "only one"},
		}}
		embedder := mock.NewMockEmbedder()
		c := newTestCoordinator(t, store, embedder)

		result := c.Retrieve(context.Background(), "question")

		require.Len(t, result.Documents, 1)
		// No recorder means no embedding accounting either.
		assert.Zero(t, embedder.CallCount())
	})

	t.Run("records retrieval latency and sources", func(t *testing.T) {
		var buf bytes.Buffer
		recorder := metrics.NewRecorder(&buf)
		store := &fakeDocumentStore{docs: []core.RetrievedDocument{
			{Content: "x", Source: "ref.pdf", Page: 1},
			{Content: "y", Source: "notes.pdf", Page: 2},
		}}
		c := newTestCoordinator(t, store, mock.NewMockEmbedder(), WithRecorder(recorder))

		c.Retrieve(context.Background(), "question")

		summary, err := recorder.Summary()
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"ref.pdf": 1, "notes.pdf": 1}, summary.SourceUsage)
	})

	t.Run("accounts embedding sizes for selected documents", func(t *testing.T) {
		sampler, err := metrics.NewResourceSampler()
		require.NoError(t, err)

		var buf bytes.Buffer
		recorder := metrics.NewRecorder(&buf, metrics.WithSampler(sampler))
		store := &fakeDocumentStore{docs: []core.RetrievedDocument{
			{Content: "x"}, {Content: "y"},
		}}
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return make([]float32, 256), nil
		}
		c := newTestCoordinator(t, store, embedder, WithRecorder(recorder))

		c.Retrieve(context.Background(), "question")

		// Two documents at 256 floats of 4 bytes each.
		assert.InDelta(t, 2.0, sampler.TotalEmbeddingKB(), 1e-6)
	})

	t.Run("custom k", func(t *testing.T) {
		store := &fakeDocumentStore{docs: []core.RetrievedDocument{
			{Content: "a"}, {Content: "b"}, {Content: "c"},
		}}
		c := newTestCoordinator(t, store, mock.NewMockEmbedder(), WithK(1))

		result := c.Retrieve(context.Background(), "question")

		assert.Len(t, result.Documents, 1)
		assert.Equal(t, 1*fetchFactor, store.lastK)
	})
}

func TestChromaStoreMetadata(t *testing.T) {
	t.Run("metadataString", func(t *testing.T) {
		assert.Equal(t, "ref.pdf", metadataString(map[string]any{"source": "ref.pdf"}, "source"))
		assert.Empty(t, metadataString(map[string]any{"source": 42}, "source"))
		assert.Empty(t, metadataString(nil, "source"))
	})

	t.Run("metadataInt", func(t *testing.T) {
		assert.Equal(t, 4, metadataInt(map[string]any{"page_number": 4}, "page_number"))
		assert.Equal(t, 4, metadataInt(map[string]any{"page_number": 4.0}, "page_number"))
		assert.Equal(t, 4, metadataInt(map[string]any{"page_number": "4"}, "page_number"))
		assert.Zero(t, metadataInt(map[string]any{"page_number": "n/a"}, "page_number"))
		assert.Zero(t, metadataInt(nil, "page_number"))
	})
}
