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


package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sync"
	"time"
)

// Operation names used throughout the pipeline. Latencies are accumulated
// per name, so each network-bound step uses a stable identifier.
const (
	OpValidation     = "validation"
	OpIntent         = "intent_detection"
	OpRetrieval      = "retrieval"
	OpChainOfThought = "chain of thought"
	OpGeneration     = "generation"
)

// Operation describes one completed pipeline step for recording.
// Zero-valued optional fields are omitted from the log record.
type Operation struct {
	// Name identifies the step, usually one of the Op constants.
	Name string

	// Tokens is the token count consumed by the step. 0 means unknown.
	Tokens int

	// Duration is the wall-clock latency. 0 means not measured.
	Duration time.Duration

	// IsError marks the step as failed.
	IsError bool

	// Intent tags the record with the detected question intent.
	Intent string

	// Sources lists the document sources used by a retrieval step.
	Sources []string

	// MemBefore/MemAfter are process RSS samples in bytes taken around the
	// step. MemSampled gates whether a delta is recorded.
	MemBefore  uint64
	MemAfter   uint64
	MemSampled bool

	// Question, Context and Response feed response quality scoring for
	// generation steps. Quality is scored only when all three are set.
	Question string
	Context  string
	Response string
}

// Summary is the aggregate record appended to the log after a session.
type Summary struct {
	Performance PerformanceSummary `json:"Performance Summary"`
	Memory      MemoryUsage        `json:"Memory Usage"`
	SourceUsage map[string]int     `json:"Source Usage"`
	IntentUsage map[string]int     `json:"Intent Usage"`
}

// PerformanceSummary aggregates per-operation latencies and totals.
type PerformanceSummary struct {
	AverageRetrievalTime  float64            `json:"average_retrieval_time"`
	AverageValidationTime float64            `json:"average_validation_time"`
	AverageGenerationTime float64            `json:"average_generation_time"`
	TotalTokensProcessed  int                `json:"total_tokens_processed"`
	TotalProcessingTime   float64            `json:"total_processing_time"`
	ErrorCount            int                `json:"error_count"`
	AverageQuality        map[string]float64 `json:"average_response_quality_metrics"`
}

// MemoryUsage reports process resource figures at summary time.
type MemoryUsage struct {
	CPUUtilization float64 `json:"cpu_utilization"`
	MemoryUsageKB  float64 `json:"memory_usage"`
	EmbeddingKB    float64 `json:"embedding_size"`
}

// Recorder accumulates performance metrics and writes newline-delimited JSON
// records to its writer. All methods are safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	w        io.Writer
	analyzer QualityAnalyzer
	sampler  *ResourceSampler

	totalTokens     int
	errorCount      int
	times           map[string][]float64
	processingTimes []float64
	memoryDeltas    []float64
	sourceUsage     map[string]int
	intentUsage     map[string]int
	quality         map[string][]float64
	questionOpen    bool
}

// RecorderOption is a functional option for configuring a Recorder.
type RecorderOption func(*Recorder)

// WithQualityAnalyzer sets the analyzer used to score generation steps.
func WithQualityAnalyzer(a QualityAnalyzer) RecorderOption {
	return func(r *Recorder) {
		r.analyzer = a
	}
}

// WithSampler sets the resource sampler consulted at summary time.
func WithSampler(s *ResourceSampler) RecorderOption {
	return func(r *Recorder) {
		r.sampler = s
	}
}

// NewRecorder creates a Recorder writing NDJSON records to w.
// Without options it scores quality with the heuristic analyzer and reports
// zero resource figures.
func NewRecorder(w io.Writer, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		w:           w,
		analyzer:    NewHeuristicAnalyzer(),
		times:       make(map[string][]float64),
		sourceUsage: make(map[string]int),
		intentUsage: make(map[string]int),
		quality:     make(map[string][]float64),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sampler returns the recorder's resource sampler, or nil when none is set.
func (r *Recorder) Sampler() *ResourceSampler {
	return r.sampler
}

// StartQuestion writes a timestamp record marking the start of a question.
func (r *Recorder) StartQuestion() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startQuestionLocked()
}

func (r *Recorder) startQuestionLocked() error {
	r.questionOpen = true
	return r.writeLocked(map[string]any{
		"timestamp": time.Now().Format(time.RFC3339Nano),
	})
}

// LogOperation records one pipeline step: it updates the accumulators and
// appends an operation record to the log.
func (r *Recorder) LogOperation(op Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.questionOpen {
		if err := r.startQuestionLocked(); err != nil {
			return err
		}
	}

	entry := map[string]any{
		"operation":   op.Name,
		"tokens_used": nil,
		"latency":     nil,
	}
	if op.Tokens > 0 {
		entry["tokens_used"] = op.Tokens
		r.totalTokens += op.Tokens
	}
	if op.Duration > 0 {
		latency := round2(op.Duration.Seconds())
		entry["latency"] = latency
		r.times[op.Name] = append(r.times[op.Name], latency)
	}
	if op.IsError {
		r.errorCount++
	}
	if op.Intent != "" {
		entry["intent"] = op.Intent
		r.intentUsage[op.Intent]++
	}
	if op.MemSampled {
		delta := round2((float64(op.MemAfter) - float64(op.MemBefore)) / bytesPerKB)
		entry["memory_usage_delta"] = delta
		r.memoryDeltas = append(r.memoryDeltas, delta)
	}
	if op.Name == OpRetrieval {
		for _, source := range op.Sources {
			r.sourceUsage[source]++
		}
	}
	if (op.Name == OpGeneration || op.Name == OpChainOfThought) &&
		op.Question != "" && op.Context != "" && op.Response != "" && r.analyzer != nil {
		q := r.analyzer.Analyze(op.Question, op.Context, op.Response)
		rounded := map[string]float64{
			"readability_score":  round2(q.ReadabilityScore),
			"coherence_score":    round2(q.CoherenceScore),
			"hallucination_rate": round2(q.HallucinationRate),
			"redundancy_rate":    round2(q.RedundancyRate),
		}
		for name, value := range rounded {
			r.quality[name] = append(r.quality[name], value)
		}
		entry["response_quality_metrics"] = rounded
	}

	return r.writeLocked(entry)
}

// LogProcessingTime records the total wall-clock time for one question and
// closes the question, so the next operation opens a fresh timestamp.
func (r *Recorder) LogProcessingTime(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processingTimes = append(r.processingTimes, round2(d.Seconds()))
	r.questionOpen = false
}

// Summary computes the aggregate metrics, appends a summary record to the
// log, and resets the per-session processing time accumulator. The other
// accumulators carry across summaries.
func (r *Recorder) Summary() (Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	avgQuality := make(map[string]float64, len(r.quality))
	for _, name := range []string{"readability_score", "coherence_score", "hallucination_rate", "redundancy_rate"} {
		avgQuality["average_"+name] = round2(average(r.quality[name]))
	}

	var totalProcessing float64
	for _, t := range r.processingTimes {
		totalProcessing += t
	}

	var memory MemoryUsage
	if r.sampler != nil {
		memory = MemoryUsage{
			CPUUtilization: round2(r.sampler.CPUUtilization()),
			MemoryUsageKB:  round2(r.sampler.MemoryUsageKB()),
			EmbeddingKB:    round2(r.sampler.TotalEmbeddingKB()),
		}
	}

	summary := Summary{
		Performance: PerformanceSummary{
			AverageRetrievalTime:  round2(average(r.times[OpRetrieval])),
			AverageValidationTime: round2(average(r.times[OpValidation])),
			AverageGenerationTime: round2(average(r.times[OpGeneration])),
			TotalTokensProcessed:  r.totalTokens,
			TotalProcessingTime:   round2(totalProcessing),
			ErrorCount:            r.errorCount,
			AverageQuality:        avgQuality,
		},
		Memory:      memory,
		SourceUsage: copyCounter(r.sourceUsage),
		IntentUsage: copyCounter(r.intentUsage),
	}

	if err := r.writeLocked(summary); err != nil {
		return Summary{}, err
	}
	r.processingTimes = nil
	return summary, nil
}

// ErrorCount returns the number of failed operations recorded so far.
func (r *Recorder) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errorCount
}

func (r *Recorder) writeLocked(record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal metrics record: %w", err)
	}
	if _, err := r.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write metrics record: %w", err)
	}
	return nil
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func copyCounter(src map[string]int) map[string]int {
	out := make(map[string]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
