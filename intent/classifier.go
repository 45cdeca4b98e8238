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


package intent

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/meddollina/assistant/ai"
	"github.com/meddollina/assistant/core"
	"github.com/meddollina/assistant/metrics"
	"github.com/meddollina/assistant/retry"
	"github.com/meddollina/assistant/safety"
)

const (
	classifyMaxAttempts = 3
	classifyBaseDelay   = time.Second
)

// conditionVocabulary backfills the main condition from conversation history
// when a follow-up question names none, e.g. "now give me the treatment plan".
var conditionVocabulary = []string{
	"anaplastic oligodendroglioma", "brain mass", "seizures", "glioma", "tumor",
	"cancer", "stroke", "heart attack", "pneumonia", "diabetes", "hypertension",
	"chest pain", "headache", "fever", "covid", "infection", "surgery",
}

// planPhrases force the specific_info intent regardless of what the model
// classified, since plan and dosage requests need the detailed response path.
var planPhrases = []string{
	"treatment plan", "surgical plan", "complete plan", "entire plan", "dosage", "medication",
}

// Classifier determines the intent of a user question.
type Classifier struct {
	quick       ai.ChatModel
	recorder    *metrics.Recorder
	maxAttempts int
	baseDelay   time.Duration
}

// ClassifierOption is a functional option for configuring a Classifier.
type ClassifierOption func(*Classifier)

// WithRecorder sets the metrics recorder for the network classification path.
func WithRecorder(rec *metrics.Recorder) ClassifierOption {
	return func(c *Classifier) {
		c.recorder = rec
	}
}

// NewClassifier creates a Classifier using the given quick chat model.
func NewClassifier(quick ai.ChatModel, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		quick:       quick,
		maxAttempts: classifyMaxAttempts,
		baseDelay:   classifyBaseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify determines the intent of the question given the formatted
// conversation history. It never fails: misconduct and malicious-phrase
// questions are flagged locally before any network call, endpoint exhaustion
// yields the default result, and unparseable output yields the full-analysis
// fallback.
func (c *Classifier) Classify(ctx context.Context, question, historyText string) core.IntentResult {
	if safety.IsMisconduct(question) {
		slog.Debug("question flagged as malicious before classification")
		return core.MaliciousIntentResult()
	}
	if safety.IsMaliciousPhrase(question) {
		slog.Debug("question matched malicious phrases before classification")
		return core.MaliciousIntentResult()
	}

	start := time.Now()
	var raw string
	err := retry.WithBackoff(ctx, func() error {
		var genErr error
		raw, genErr = c.quick.Generate(ctx, ai.GenerationRequest{
			Messages:    classificationMessages(historyText, question),
			MaxTokens:   250,
			Temperature: 0.1,
			TopP:        0.9,
		})
		return genErr
	}, c.maxAttempts, c.baseDelay)
	if err != nil {
		slog.Warn("intent classification exhausted retries, using default", "error", err)
		c.record(metrics.Operation{Name: metrics.OpIntent, IsError: true})
		return core.DefaultIntentResult()
	}

	var parsed struct {
		Intent             string `json:"intent"`
		Urgency            string `json:"urgency"`
		MainCondition      string `json:"main_condition"`
		FocusArea          string `json:"focus_area"`
		NeedsClarification string `json:"needs_clarification"`
	}
	if err := json.Unmarshal([]byte(ai.ExtractJSONObject(raw)), &parsed); err != nil {
		slog.Warn("intent classification output is not valid JSON, using fallback", "error", err)
		fallback := core.FallbackIntentResult()
		c.record(metrics.Operation{
			Name:     metrics.OpIntent,
			Duration: time.Since(start),
			Intent:   string(fallback.Intent),
		})
		return fallback
	}

	result := core.IntentResult{
		Intent:             core.ParseIntent(parsed.Intent),
		Urgency:            core.ParseUrgency(parsed.Urgency),
		FocusArea:          parsed.FocusArea,
		MainCondition:      parsed.MainCondition,
		NeedsClarification: parsed.NeedsClarification,
	}

	result = postProcess(result, question, historyText)
	c.record(metrics.Operation{
		Name:     metrics.OpIntent,
		Duration: time.Since(start),
		Intent:   string(result.Intent),
	})
	return result
}

func (c *Classifier) record(op metrics.Operation) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.LogOperation(op); err != nil {
		slog.Warn("failed to record intent metrics", "error", err)
	}
}

// postProcess applies deterministic corrections the model tends to get
// wrong: a missing main condition is backfilled from history, and plan or
// dosage phrasing forces the detailed specific_info path.
func postProcess(result core.IntentResult, question, historyText string) core.IntentResult {
	if result.MainCondition == "" && historyText != "" {
		historyLower := strings.ToLower(historyText)
		for _, condition := range conditionVocabulary {
			if strings.Contains(historyLower, condition) {
				result.MainCondition = strings.ReplaceAll(condition, " ", "_")
				break
			}
		}
	}

	questionLower := strings.ToLower(question)
	for _, phrase := range planPhrases {
		if strings.Contains(questionLower, phrase) {
			result.Intent = core.IntentSpecificInfo
			switch {
			case strings.Contains(questionLower, "surgical"), strings.Contains(questionLower, "surgery"):
				result.FocusArea = "surgical_plan"
			case strings.Contains(questionLower, "medication"), strings.Contains(questionLower, "dosage"):
				result.FocusArea = "medications"
			default:
				result.FocusArea = "treatment"
			}
			break
		}
	}

	return result
}
