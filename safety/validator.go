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


package safety

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/meddollina/assistant/ai"
	"github.com/meddollina/assistant/metrics"
)

// ErrNothingToSummarize is returned by Summarize when neither a question nor
// history text is provided.
var ErrNothingToSummarize = errors.New("either question or history text must be provided")

// Verdict is the outcome of validating one question. When Allowed is false,
// Message carries the text to show the user instead of an answer.
type Verdict struct {
	Allowed bool
	Message string
}

// TokenCounter counts tokens in text for usage accounting.
type TokenCounter interface {
	Count(text string) int
}

// approxCounter estimates roughly four characters per token. Used when no
// real tokenizer is injected.
type approxCounter struct{}

func (approxCounter) Count(text string) int { return len(text) / 4 }

// Validator decides whether a question may enter the answering pipeline.
// Local rules decide most questions; the rest go to the model for a
// structured relevance check.
type Validator struct {
	quick    ai.ChatModel
	recorder *metrics.Recorder
	counter  TokenCounter
}

// ValidatorOption is a functional option for configuring a Validator.
type ValidatorOption func(*Validator)

// WithRecorder sets the metrics recorder for the network validation path.
func WithRecorder(rec *metrics.Recorder) ValidatorOption {
	return func(v *Validator) {
		v.recorder = rec
	}
}

// WithTokenCounter sets the token counter used for usage accounting.
func WithTokenCounter(c TokenCounter) ValidatorOption {
	return func(v *Validator) {
		v.counter = c
	}
}

// NewValidator creates a Validator using the given quick chat model for the
// remote relevance check.
func NewValidator(quick ai.ChatModel, opts ...ValidatorOption) *Validator {
	v := &Validator{
		quick:   quick,
		counter: approxCounter{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks whether a question is medically relevant.
//
// Misconduct, malicious phrases, and farewells are rejected locally with a
// fixed message. Questions the medical likelihood heuristic accepts skip the
// model entirely. Everything else is classified by the model; a malformed
// model response yields a rejection verdict, while a transport failure is
// returned as an error so the caller can distinguish it from a rejection.
func (v *Validator) Validate(ctx context.Context, question, historyText string) (Verdict, error) {
	if IsMisconduct(question) {
		slog.Debug("question rejected by misconduct rules")
		return Verdict{Allowed: false, Message: RefusalMessage}, nil
	}
	if IsMaliciousPhrase(question) {
		slog.Debug("question rejected by malicious phrase rules")
		return Verdict{Allowed: false, Message: RefusalMessage}, nil
	}
	if IsFarewell(question) {
		return Verdict{Allowed: false, Message: FarewellMessage}, nil
	}
	if IsLikelyMedical(question, historyText) {
		return Verdict{Allowed: true}, nil
	}

	messages := validationMessages(historyText, question)
	start := time.Now()
	memBefore, memSampled := v.sampleMemory()

	raw, err := v.quick.Generate(ctx, ai.GenerationRequest{
		Messages:  messages,
		MaxTokens: 250,
		JSON:      true,
	})
	if err != nil {
		v.logFailure(memBefore, memSampled)
		return Verdict{}, fmt.Errorf("validate question: %w", err)
	}

	var parsed struct {
		Status      string `json:"status"`
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(ai.ExtractJSONObject(raw)), &parsed); err != nil {
		slog.Warn("validation response is not valid JSON", "error", err)
		v.logFailure(memBefore, memSampled)
		return Verdict{Allowed: false, Message: "Invalid JSON response from LLM"}, nil
	}

	if v.recorder != nil {
		memAfter, _ := v.sampleMemory()
		if err := v.recorder.LogOperation(metrics.Operation{
			Name:       metrics.OpValidation,
			Tokens:     v.counter.Count(messagesText(messages) + raw),
			Duration:   time.Since(start),
			MemBefore:  memBefore,
			MemAfter:   memAfter,
			MemSampled: memSampled,
		}); err != nil {
			slog.Warn("failed to record validation metrics", "error", err)
		}
	}

	switch strings.ToLower(parsed.Status) {
	case "relevant":
		return Verdict{Allowed: true}, nil
	case "salutations":
		message := parsed.Explanation
		if message == "" {
			message = GreetingMessage
		}
		return Verdict{Allowed: false, Message: message}, nil
	case "malicious":
		return Verdict{Allowed: false, Message: RefusalMessage}, nil
	default:
		message := parsed.Explanation
		if message == "" {
			message = "Not relevant"
		}
		return Verdict{Allowed: false, Message: message}, nil
	}
}

// Summarize produces a short model-written summary of the question, or of
// the conversation history when the question is empty.
func (v *Validator) Summarize(ctx context.Context, question, historyText string) (string, error) {
	if question == "" && historyText == "" {
		return "", ErrNothingToSummarize
	}

	summary, err := v.quick.Generate(ctx, ai.GenerationRequest{
		Messages:  summarizeMessages(question, historyText),
		MaxTokens: 12,
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

func (v *Validator) sampleMemory() (uint64, bool) {
	if v.recorder == nil || v.recorder.Sampler() == nil {
		return 0, false
	}
	return v.recorder.Sampler().MemoryUsageBytes(), true
}

func (v *Validator) logFailure(memBefore uint64, memSampled bool) {
	if v.recorder == nil {
		return
	}
	memAfter, _ := v.sampleMemory()
	if err := v.recorder.LogOperation(metrics.Operation{
		Name:       metrics.OpValidation,
		IsError:    true,
		MemBefore:  memBefore,
		MemAfter:   memAfter,
		MemSampled: memSampled,
	}); err != nil {
		slog.Warn("failed to record validation metrics", "error", err)
	}
}
