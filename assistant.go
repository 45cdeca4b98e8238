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


// Package assistant assembles the Meddollina question answering pipeline:
// an OpenAI-compatible inference provider, a Chroma document store, a
// Badger-backed conversation store, and NDJSON performance metrics, wired
// into one Assistant facade.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/meddollina/assistant/ai"
	"github.com/meddollina/assistant/ai/openai"
	"github.com/meddollina/assistant/core"
	"github.com/meddollina/assistant/generation"
	"github.com/meddollina/assistant/history"
	"github.com/meddollina/assistant/intent"
	"github.com/meddollina/assistant/metrics"
	"github.com/meddollina/assistant/pipeline"
	"github.com/meddollina/assistant/retrieval"
	"github.com/meddollina/assistant/safety"
	badgerstore "github.com/meddollina/assistant/storage/badger"
)

// Config describes one Assistant deployment.
type Config struct {
	// AI configures the inference services. Nil means local defaults.
	AI *ai.Config

	// ChromaURL is the Chroma server address holding the document corpus.
	ChromaURL string

	// ChromaNamespace scopes searches to one collection namespace.
	ChromaNamespace string

	// DBPath is the Badger directory for conversation persistence. Empty
	// with InMemory false disables persistence entirely; sessions then see
	// no history.
	DBPath string

	// InMemory keeps conversation turns in a non-persistent Badger instance.
	InMemory bool

	// MetricsPath is the NDJSON performance log file. Empty discards
	// metrics records while still tracking in-process aggregates.
	MetricsPath string
}

// DefaultConfig returns a Config for an all-local deployment.
func DefaultConfig() Config {
	return Config{
		AI:              ai.DefaultConfig(),
		ChromaURL:       "http://localhost:8000",
		ChromaNamespace: "meddollina",
		MetricsPath:     "performance_log.json",
	}
}

// Assistant is the assembled pipeline plus the resources it owns.
type Assistant struct {
	provider     ai.Provider
	backend      *badgerstore.Backend
	turns        *badgerstore.TurnStore
	retriever    *retrieval.Coordinator
	generator    *generation.Generator
	orchestrator *pipeline.Orchestrator
	recorder     *metrics.Recorder
	metricsFile  *os.File
}

// New builds an Assistant from the configuration. The returned Assistant
// owns its connections; call Close when done.
func New(cfg Config) (*Assistant, error) {
	if cfg.AI == nil {
		cfg.AI = ai.DefaultConfig()
	}

	provider, err := openai.NewProvider(cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("create inference provider: %w", err)
	}

	a := &Assistant{provider: provider}
	if err := a.init(cfg); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *Assistant) init(cfg Config) error {
	var metricsWriter io.Writer = io.Discard
	if cfg.MetricsPath != "" {
		f, err := os.OpenFile(cfg.MetricsPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open metrics log: %w", err)
		}
		a.metricsFile = f
		metricsWriter = f
	}

	sampler, err := metrics.NewResourceSampler()
	if err != nil {
		slog.Warn("resource sampling unavailable", "error", err)
		a.recorder = metrics.NewRecorder(metricsWriter)
	} else {
		a.recorder = metrics.NewRecorder(metricsWriter, metrics.WithSampler(sampler))
	}

	if cfg.DBPath != "" || cfg.InMemory {
		backend, err := badgerstore.OpenBackend(cfg.DBPath, cfg.InMemory)
		if err != nil {
			return fmt.Errorf("open conversation store: %w", err)
		}
		a.backend = backend

		turns, err := badgerstore.NewTurnStore(backend)
		if err != nil {
			return fmt.Errorf("create turn store: %w", err)
		}
		a.turns = turns
	}

	store, err := retrieval.NewChromaStore(
		cfg.ChromaURL,
		cfg.ChromaNamespace,
		retrieval.NewLangchainEmbedder(a.provider.Embedder()),
	)
	if err != nil {
		return fmt.Errorf("connect document store: %w", err)
	}

	a.retriever, err = retrieval.NewCoordinator(store, a.provider.Embedder(),
		retrieval.WithRecorder(a.recorder))
	if err != nil {
		return fmt.Errorf("create retriever: %w", err)
	}

	counter := generation.NewTokenCounter()
	a.generator = generation.NewGenerator(a.provider.Chat(),
		generation.WithRecorder(a.recorder),
		generation.WithCounter(counter),
	)

	a.orchestrator = pipeline.NewOrchestrator(
		safety.NewValidator(a.provider.QuickChat(),
			safety.WithRecorder(a.recorder),
			safety.WithTokenCounter(counter),
		),
		intent.NewClassifier(a.provider.QuickChat(), intent.WithRecorder(a.recorder)),
		a.retriever,
		a.generator,
		pipeline.WithRecorder(a.recorder),
	)
	return nil
}

// Ask answers one question. A non-empty session key gives the question
// access to that session's conversation history and records the exchange;
// sessions require a configured conversation store.
func (a *Assistant) Ask(ctx context.Context, question, session string) (pipeline.Result, error) {
	var memory history.Memory
	if session != "" && a.turns != nil {
		memory = history.NewStoredMemory(a.turns, core.IDFromContent(session))
	}
	return a.orchestrator.Answer(ctx, question, memory)
}

// Suggestions generates n candidate questions to show an idle user.
func (a *Assistant) Suggestions(ctx context.Context, n int) []string {
	return a.generator.Suggestions(ctx, n)
}

// Close releases every resource the Assistant owns.
func (a *Assistant) Close() error {
	var errs []error
	if a.retriever != nil {
		a.retriever.Release()
	}
	if a.turns != nil {
		errs = append(errs, a.turns.Close())
	}
	if a.backend != nil {
		errs = append(errs, a.backend.Close())
	}
	if a.provider != nil {
		errs = append(errs, a.provider.Close())
	}
	if a.metricsFile != nil {
		errs = append(errs, a.metricsFile.Close())
	}
	return errors.Join(errs...)
}
