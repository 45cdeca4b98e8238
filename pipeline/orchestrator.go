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


package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/meddollina/assistant/core"
	"github.com/meddollina/assistant/generation"
	"github.com/meddollina/assistant/history"
	"github.com/meddollina/assistant/intent"
	"github.com/meddollina/assistant/metrics"
	"github.com/meddollina/assistant/retrieval"
	"github.com/meddollina/assistant/safety"
)

// ErrGenerationExhausted reports that the main answer pass failed every
// retry. The accompanying Result still carries the heading and error
// metadata.
var ErrGenerationExhausted = generation.ErrGenerationExhausted

// Result is the complete outcome of answering one question.
type Result struct {
	Answer      string
	SourceLinks []string
	Heading     string
	Metadata    map[string]string
}

// Orchestrator runs questions through the full answering pipeline. All
// dependencies are injected at construction; the orchestrator itself holds
// no model or storage state.
type Orchestrator struct {
	validator  *safety.Validator
	classifier *intent.Classifier
	retriever  *retrieval.Coordinator
	generator  *generation.Generator
	recorder   *metrics.Recorder
}

// OrchestratorOption is a functional option for configuring an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithRecorder sets the metrics recorder used for per-question processing
// time and the session summary.
func WithRecorder(rec *metrics.Recorder) OrchestratorOption {
	return func(o *Orchestrator) {
		o.recorder = rec
	}
}

// NewOrchestrator wires the pipeline stages together.
func NewOrchestrator(
	validator *safety.Validator,
	classifier *intent.Classifier,
	retriever *retrieval.Coordinator,
	generator *generation.Generator,
	opts ...OrchestratorOption,
) *Orchestrator {
	o := &Orchestrator{
		validator:  validator,
		classifier: classifier,
		retriever:  retriever,
		generator:  generator,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Answer processes one question. memory may be nil for a stateless call.
//
// Rejections, refusals, and clarification requests come back as ordinary
// Results with tagged metadata and a nil error. A non-nil error is returned
// only when answer generation exhausted its retries; the Result still
// carries the heading so the caller can render the failure.
func (o *Orchestrator) Answer(ctx context.Context, question string, memory history.Memory) (Result, error) {
	start := time.Now()

	// The heading comes first so even rejected questions get a title.
	heading := o.generator.Heading(ctx, question)
	historyText := o.loadHistory(ctx, question, memory)

	verdict, err := o.validator.Validate(ctx, question, historyText)
	if err != nil {
		slog.Error("validation unavailable", "error", err)
		return Result{
			Answer:   err.Error(),
			Heading:  heading,
			Metadata: map[string]string{"intent": "validation_error", "urgency": "low"},
		}, nil
	}
	if !verdict.Allowed {
		o.finish(start)
		return Result{
			Answer:   verdict.Message,
			Heading:  heading,
			Metadata: map[string]string{"intent": "validation_failed", "urgency": "low"},
		}, nil
	}

	result := o.classifier.Classify(ctx, question, historyText)

	if result.Intent == core.IntentMalicious {
		o.finish(start)
		return Result{
			Answer:   safety.RefusalMessage,
			Heading:  heading,
			Metadata: map[string]string{"intent": "malicious", "urgency": "blocked"},
		}, nil
	}

	if result.Intent == core.IntentClarificationNeeded {
		o.finish(start)
		return Result{
			Answer:  generation.Clarification(result),
			Heading: heading,
			Metadata: map[string]string{
				"intent":              string(core.IntentClarificationNeeded),
				"focus_area":          result.FocusArea,
				"urgency":             string(result.Urgency),
				"needs_clarification": result.NeedsClarification,
			},
		}, nil
	}

	retrieved := o.retriever.Retrieve(ctx, question)

	answer, err := o.generator.Generate(ctx, generation.Input{
		Question: question,
		History:  historyText,
		Context:  retrieved.Context,
		Intent:   result,
	})
	if err != nil {
		o.finish(start)
		return Result{
			Heading: heading,
			Metadata: map[string]string{
				"intent":         "error",
				"urgency":        "low",
				"main_condition": "",
				"focus_area":     "",
			},
		}, err
	}

	if memory != nil {
		if err := memory.SaveTurn(ctx, question, answer); err != nil {
			slog.Warn("failed to save conversation turn", "error", err)
		}
	}

	o.finish(start)
	o.summarize()
	return Result{
		Answer:      answer,
		SourceLinks: retrieved.SourceLinks,
		Heading:     heading,
		Metadata: map[string]string{
			"intent":         string(result.Intent),
			"focus_area":     result.FocusArea,
			"urgency":        string(result.Urgency),
			"main_condition": result.MainCondition,
		},
	}, nil
}

func (o *Orchestrator) loadHistory(ctx context.Context, question string, memory history.Memory) string {
	if memory == nil {
		return ""
	}
	turns, err := memory.LoadHistory(ctx, question)
	if err != nil {
		slog.Warn("failed to load conversation history", "error", err)
		return ""
	}
	return history.Format(turns)
}

// finish records the question's total processing time.
func (o *Orchestrator) finish(start time.Time) {
	if o.recorder == nil {
		return
	}
	o.recorder.LogProcessingTime(time.Since(start))
}

// summarize appends the running session summary to the metrics log. Only
// fully answered questions trigger it.
func (o *Orchestrator) summarize() {
	if o.recorder == nil {
		return
	}
	if _, err := o.recorder.Summary(); err != nil {
		slog.Warn("failed to write metrics summary", "error", err)
	}
}
