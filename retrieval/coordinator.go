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
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/meddollina/assistant/ai"
	"github.com/meddollina/assistant/core"
	"github.com/meddollina/assistant/metrics"
)

const (
	// defaultK is how many passages ground an answer.
	defaultK = 3

	// fetchFactor over-fetches candidates so the diversity re-rank has
	// something to choose from.
	fetchFactor = 4

	// mmrLambda balances relevance against diversity in the re-rank.
	mmrLambda = 0.5
)

// Result is the assembled retrieval output for one question.
type Result struct {
	// Documents are the selected passages, most relevant first.
	Documents []core.RetrievedDocument

	// SourceLinks are citation strings, only for documents that carry both
	// a source and a page.
	SourceLinks []string

	// Sources lists the source of every selected document, for usage
	// accounting.
	Sources []string

	// Context is the passage bodies joined by blank lines, ready for the
	// prompt.
	Context string
}

// Coordinator runs retrieval for the pipeline: over-fetch, diversity
// re-rank, and context assembly.
type Coordinator struct {
	store    DocumentStore
	embedder ai.Embedder
	recorder *metrics.Recorder
	pool     *ants.Pool
	k        int
}

// CoordinatorOption is a functional option for configuring a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithK sets how many passages are selected per question.
func WithK(k int) CoordinatorOption {
	return func(c *Coordinator) {
		c.k = k
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec *metrics.Recorder) CoordinatorOption {
	return func(c *Coordinator) {
		c.recorder = rec
	}
}

// NewCoordinator creates a Coordinator. It owns a small worker pool for the
// post-retrieval embedding accounting pass; call Release when done.
func NewCoordinator(store DocumentStore, embedder ai.Embedder, opts ...CoordinatorOption) (*Coordinator, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		store:    store,
		embedder: embedder,
		pool:     pool,
		k:        defaultK,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Release shuts down the worker pool.
func (c *Coordinator) Release() {
	c.pool.Release()
}

// Retrieve finds the passages grounding an answer to the question.
// It never fails: search and embedding errors degrade to fewer or no
// documents, logged but not surfaced, so the pipeline can still answer from
// the model's own knowledge.
func (c *Coordinator) Retrieve(ctx context.Context, question string) Result {
	start := time.Now()
	memBefore, memSampled := c.sampleMemory()

	candidates, err := c.store.SimilaritySearch(ctx, question, c.k*fetchFactor)
	if err != nil {
		slog.Error("document search failed, answering without context", "error", err)
		candidates = nil
	}

	selected := c.rerank(ctx, question, candidates)
	c.accountEmbeddings(ctx, selected)

	result := assemble(selected)

	if c.recorder != nil {
		memAfter, _ := c.sampleMemory()
		if err := c.recorder.LogOperation(metrics.Operation{
			Name:       metrics.OpRetrieval,
			Duration:   time.Since(start),
			Sources:    result.Sources,
			MemBefore:  memBefore,
			MemAfter:   memAfter,
			MemSampled: memSampled,
		}); err != nil {
			slog.Warn("failed to record retrieval metrics", "error", err)
		}
	}

	return result
}

// rerank applies maximal marginal relevance over the candidate set. When
// embeddings cannot be computed the top k candidates pass through in search
// order.
func (c *Coordinator) rerank(ctx context.Context, question string, candidates []core.RetrievedDocument) []core.RetrievedDocument {
	if len(candidates) <= c.k {
		return candidates
	}

	queryVec, err := c.embedder.EmbedText(ctx, question)
	if err != nil {
		slog.Warn("query embedding failed, skipping diversity re-rank", "error", err)
		return candidates[:c.k]
	}

	texts := make([]string, len(candidates))
	for i, doc := range candidates {
		texts[i] = doc.Content
	}
	candidateVecs, err := c.embedder.EmbedTexts(ctx, texts)
	if err != nil || len(candidateVecs) != len(candidates) {
		slog.Warn("candidate embedding failed, skipping diversity re-rank", "error", err)
		return candidates[:c.k]
	}

	indices := maximalMarginalRelevance(queryVec, candidateVecs, mmrLambda, c.k)
	selected := make([]core.RetrievedDocument, 0, len(indices))
	for _, idx := range indices {
		selected = append(selected, candidates[idx])
	}
	return selected
}

// accountEmbeddings re-embeds the selected passages on the worker pool and
// adds their vector sizes to the resource sampler. Purely bookkeeping;
// failures only lose a sample.
func (c *Coordinator) accountEmbeddings(ctx context.Context, docs []core.RetrievedDocument) {
	sampler := c.samplerOrNil()
	if sampler == nil || len(docs) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, doc := range docs {
		content := doc.Content
		wg.Add(1)
		submitErr := c.pool.Submit(func() {
			defer wg.Done()
			vector, err := c.embedder.EmbedText(ctx, content)
			if err != nil {
				slog.Debug("embedding accounting sample lost", "error", err)
				return
			}
			sampler.RecordEmbedding(vector)
		})
		if submitErr != nil {
			wg.Done()
		}
	}
	wg.Wait()
}

func assemble(docs []core.RetrievedDocument) Result {
	result := Result{Documents: docs}

	bodies := make([]string, 0, len(docs))
	for _, doc := range docs {
		if link := doc.SourceLink(); link != "" {
			result.SourceLinks = append(result.SourceLinks, link)
		}
		if doc.Source != "" {
			result.Sources = append(result.Sources, doc.Source)
		}
		bodies = append(bodies, doc.Content)
	}
	result.Context = strings.Join(bodies, "\n\n")
	return result
}

func (c *Coordinator) samplerOrNil() *metrics.ResourceSampler {
	if c.recorder == nil {
		return nil
	}
	return c.recorder.Sampler()
}

func (c *Coordinator) sampleMemory() (uint64, bool) {
	sampler := c.samplerOrNil()
	if sampler == nil {
		return 0, false
	}
	return sampler.MemoryUsageBytes(), true
}
