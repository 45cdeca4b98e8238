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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/meddollina/assistant/ai"
	"github.com/meddollina/assistant/core"
	"github.com/meddollina/assistant/metrics"
	"github.com/meddollina/assistant/retry"
)

const (
	// reasoningMaxTokens bounds the chain of thought pass.
	reasoningMaxTokens = 2000

	// maxInputTokens is the prompt budget for the main pass, leaving room in
	// the model's context window for the answer.
	maxInputTokens = 6000

	// Truncation limits applied when the prompt exceeds the budget.
	truncatedContextChars   = 2000
	truncatedHistoryChars   = 1000
	truncatedReasoningChars = 1000
	truncationNotice        = "...[truncated for length]"

	answerMaxAttempts = 5
	answerBaseDelay   = 2 * time.Second
	answerTopP        = 0.9

	headingMaxTokens    = 12
	headingTemperature  = 0.5
	headingFallbackLen  = 50
	suggestionMaxTokens = 20
	suggestionTemp      = 0.7
)

// ErrGenerationExhausted reports that every attempt at the main answer pass
// failed. It is the only fatal error the generator produces.
var ErrGenerationExhausted = errors.New("answer generation attempts exhausted")

// Counter counts prompt tokens for budget enforcement.
type Counter interface {
	Count(text string) int
}

// Input carries everything the generator needs for one answer.
type Input struct {
	Question string
	History  string
	Context  string
	Intent   core.IntentResult
}

// Generator produces answers with a reasoning pass followed by the main
// answer pass.
type Generator struct {
	chat        ai.ChatModel
	recorder    *metrics.Recorder
	counter     Counter
	maxAttempts int
	baseDelay   time.Duration
}

// GeneratorOption is a functional option for configuring a Generator.
type GeneratorOption func(*Generator)

// WithRecorder sets the metrics recorder.
func WithRecorder(rec *metrics.Recorder) GeneratorOption {
	return func(g *Generator) {
		g.recorder = rec
	}
}

// WithCounter sets the token counter used for budget enforcement.
func WithCounter(c Counter) GeneratorOption {
	return func(g *Generator) {
		g.counter = c
	}
}

// WithRetryPolicy overrides the retry schedule of the main answer pass.
func WithRetryPolicy(maxAttempts int, baseDelay time.Duration) GeneratorOption {
	return func(g *Generator) {
		g.maxAttempts = maxAttempts
		g.baseDelay = baseDelay
	}
}

// NewGenerator creates a Generator over the given chat model.
func NewGenerator(chat ai.ChatModel, opts ...GeneratorOption) *Generator {
	g := &Generator{
		chat:        chat,
		maxAttempts: answerMaxAttempts,
		baseDelay:   answerBaseDelay,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.counter == nil {
		g.counter = NewTokenCounter()
	}
	return g
}

// Generate produces the cleaned answer for the input. The reasoning pass is
// best effort; a main pass that fails every retry returns an error wrapping
// ErrGenerationExhausted.
func (g *Generator) Generate(ctx context.Context, in Input) (string, error) {
	reasoning := g.reason(ctx, in)
	return g.answer(ctx, in, reasoning)
}

// reason runs the chain of thought pass. Failures degrade to empty
// reasoning.
func (g *Generator) reason(ctx context.Context, in Input) string {
	messages := cotMessages(in.History, in.Context, in.Question)
	inputTokens := g.counter.Count(messagesText(messages))

	start := time.Now()
	memBefore, memSampled := g.sampleMemory()

	raw, err := g.chat.Generate(ctx, ai.GenerationRequest{
		Messages:  messages,
		MaxTokens: reasoningMaxTokens,
	})
	if err != nil {
		slog.Warn("reasoning pass failed, answering without it", "error", err)
		return ""
	}
	reasoning := strings.TrimSpace(raw)

	memAfter, _ := g.sampleMemory()
	g.record(metrics.Operation{
		Name:       metrics.OpChainOfThought,
		Tokens:     inputTokens + g.counter.Count(reasoning),
		Duration:   time.Since(start),
		Question:   in.Question,
		Context:    in.Context,
		Response:   reasoning,
		MemBefore:  memBefore,
		MemAfter:   memAfter,
		MemSampled: memSampled,
	})
	return reasoning
}

// answer runs the main pass with intent-selected parameters, prompt budget
// enforcement, and retries.
func (g *Generator) answer(ctx context.Context, in Input, reasoning string) (string, error) {
	params := paramsFor(in.Intent)
	filtered := filterReasoning(reasoning)

	messages := mainMessages(in.History, in.Context, in.Question, filtered, in.Intent)
	inputTokens := g.counter.Count(messagesText(messages))
	if inputTokens > maxInputTokens {
		slog.Info("prompt over budget, truncating", "tokens", inputTokens)
		messages = mainMessages(
			truncate(in.History, truncatedHistoryChars),
			truncate(in.Context, truncatedContextChars)+truncationNotice,
			in.Question,
			truncate(filtered, truncatedReasoningChars),
			in.Intent,
		)
		inputTokens = g.counter.Count(messagesText(messages))
	}

	start := time.Now()
	memBefore, memSampled := g.sampleMemory()

	var raw string
	err := retry.WithBackoff(ctx, func() error {
		out, genErr := g.chat.Generate(ctx, ai.GenerationRequest{
			Messages:    messages,
			MaxTokens:   params.MaxTokens,
			Temperature: params.Temperature,
			TopP:        answerTopP,
		})
		if genErr != nil {
			return genErr
		}
		raw = out
		return nil
	}, g.maxAttempts, g.baseDelay)
	if err != nil {
		g.record(metrics.Operation{Name: metrics.OpGeneration, IsError: true})
		return "", fmt.Errorf("%w after %d attempts: %v", ErrGenerationExhausted, g.maxAttempts, err)
	}

	answer := CleanResponse(raw)

	memAfter, _ := g.sampleMemory()
	g.record(metrics.Operation{
		Name:       metrics.OpGeneration,
		Tokens:     inputTokens + g.counter.Count(answer),
		Duration:   time.Since(start),
		Intent:     string(in.Intent.Intent),
		Question:   in.Question,
		Context:    in.Context,
		Response:   answer,
		MemBefore:  memBefore,
		MemAfter:   memAfter,
		MemSampled: memSampled,
	})
	return answer, nil
}

// Heading writes a short title for the question. Failures fall back to a
// prefix of the question itself, so a heading is always available.
func (g *Generator) Heading(ctx context.Context, question string) string {
	raw, err := g.chat.Generate(ctx, ai.GenerationRequest{
		Messages:    headingMessages(question),
		MaxTokens:   headingMaxTokens,
		Temperature: headingTemperature,
	})
	if err != nil {
		slog.Warn("heading generation failed, using question prefix", "error", err)
		return truncate(question, headingFallbackLen) + "..."
	}
	return strings.Trim(strings.TrimSpace(raw), `"`)
}

// Suggestions generates n short candidate questions, each with a distinct
// sampling seed so repeated calls vary. Any failure returns no suggestions.
func (g *Generator) Suggestions(ctx context.Context, n int) []string {
	suggestions := make([]string, 0, n)
	for i := 0; i < n; i++ {
		raw, err := g.chat.Generate(ctx, ai.GenerationRequest{
			Messages:    suggestionMessages(),
			MaxTokens:   suggestionMaxTokens,
			Temperature: suggestionTemp,
			Seed:        i + 1,
		})
		if err != nil {
			slog.Warn("suggestion generation failed", "error", err)
			return nil
		}
		suggestions = append(suggestions, strings.ReplaceAll(strings.TrimSpace(raw), "\n", ""))
	}
	return suggestions
}

func (g *Generator) record(op metrics.Operation) {
	if g.recorder == nil {
		return
	}
	if err := g.recorder.LogOperation(op); err != nil {
		slog.Warn("failed to record generation metrics", "error", err)
	}
}

func (g *Generator) sampleMemory() (uint64, bool) {
	if g.recorder == nil || g.recorder.Sampler() == nil {
		return 0, false
	}
	return g.recorder.Sampler().MemoryUsageBytes(), true
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
