package metrics

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record), "line: %s", line)
		records = append(records, record)
	}
	return records
}

func TestRecorder_OperationRecord(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)

	require.NoError(t, rec.StartQuestion())
	require.NoError(t, rec.LogOperation(Operation{
		Name:     OpValidation,
		Tokens:   120,
		Duration: 1530 * time.Millisecond,
	}))

	records := logLines(t, &buf)
	require.Len(t, records, 2)

	assert.Contains(t, records[0], "timestamp")

	op := records[1]
	assert.Equal(t, "validation", op["operation"])
	assert.Equal(t, float64(120), op["tokens_used"])
	assert.Equal(t, 1.53, op["latency"])
	assert.NotContains(t, op, "intent")
	assert.NotContains(t, op, "memory_usage_delta")
}

func TestRecorder_OpensQuestionImplicitly(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)

	require.NoError(t, rec.LogOperation(Operation{Name: OpRetrieval}))

	records := logLines(t, &buf)
	require.Len(t, records, 2)
	assert.Contains(t, records[0], "timestamp")
	assert.Equal(t, "retrieval", records[1]["operation"])
}

func TestRecorder_MemoryDelta(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)

	require.NoError(t, rec.LogOperation(Operation{
		Name:       OpValidation,
		MemBefore:  100 * 1024,
		MemAfter:   164 * 1024,
		MemSampled: true,
	}))

	records := logLines(t, &buf)
	op := records[len(records)-1]
	assert.Equal(t, float64(64), op["memory_usage_delta"])
}

func TestRecorder_QualityMetricsOnGeneration(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)

	require.NoError(t, rec.LogOperation(Operation{
		Name:     OpGeneration,
		Question: "What is diabetes?",
		Context:  "Diabetes is a chronic condition affecting blood sugar regulation.",
		Response: "Diabetes is a chronic condition where blood sugar is poorly regulated.",
		Intent:   "medical",
	}))

	records := logLines(t, &buf)
	op := records[len(records)-1]
	assert.Equal(t, "medical", op["intent"])

	quality, ok := op["response_quality_metrics"].(map[string]any)
	require.True(t, ok, "generation records with question, context and response carry quality metrics")
	assert.Contains(t, quality, "readability_score")
	assert.Contains(t, quality, "coherence_score")
	assert.Contains(t, quality, "hallucination_rate")
	assert.Contains(t, quality, "redundancy_rate")
}

func TestRecorder_QualitySkippedWhenContextMissing(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)

	require.NoError(t, rec.LogOperation(Operation{
		Name:     OpGeneration,
		Question: "What is diabetes?",
		Response: "Diabetes is a chronic condition.",
	}))

	records := logLines(t, &buf)
	op := records[len(records)-1]
	assert.NotContains(t, op, "response_quality_metrics")
}

func TestRecorder_Summary(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)

	require.NoError(t, rec.LogOperation(Operation{Name: OpValidation, Tokens: 100, Duration: time.Second}))
	require.NoError(t, rec.LogOperation(Operation{Name: OpRetrieval, Duration: 2 * time.Second, Sources: []string{"ref.pdf", "ref.pdf", "notes.pdf"}}))
	require.NoError(t, rec.LogOperation(Operation{Name: OpGeneration, Tokens: 400, Duration: 3 * time.Second, Intent: "medical"}))
	require.NoError(t, rec.LogOperation(Operation{Name: OpGeneration, IsError: true}))
	rec.LogProcessingTime(6 * time.Second)

	summary, err := rec.Summary()
	require.NoError(t, err)

	assert.Equal(t, 1.0, summary.Performance.AverageValidationTime)
	assert.Equal(t, 2.0, summary.Performance.AverageRetrievalTime)
	assert.Equal(t, 3.0, summary.Performance.AverageGenerationTime)
	assert.Equal(t, 500, summary.Performance.TotalTokensProcessed)
	assert.Equal(t, 6.0, summary.Performance.TotalProcessingTime)
	assert.Equal(t, 1, summary.Performance.ErrorCount)
	assert.Equal(t, map[string]int{"ref.pdf": 2, "notes.pdf": 1}, summary.SourceUsage)
	assert.Equal(t, map[string]int{"medical": 1}, summary.IntentUsage)

	records := logLines(t, &buf)
	last := records[len(records)-1]
	assert.Contains(t, last, "Performance Summary")
	assert.Contains(t, last, "Memory Usage")
	assert.Contains(t, last, "Source Usage")
	assert.Contains(t, last, "Intent Usage")
}

func TestRecorder_SummaryResetsOnlyProcessingTimes(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf)

	require.NoError(t, rec.LogOperation(Operation{Name: OpGeneration, Tokens: 200, Duration: time.Second}))
	rec.LogProcessingTime(time.Second)

	first, err := rec.Summary()
	require.NoError(t, err)
	assert.Equal(t, 1.0, first.Performance.TotalProcessingTime)

	second, err := rec.Summary()
	require.NoError(t, err)
	assert.Equal(t, 0.0, second.Performance.TotalProcessingTime, "processing times reset after summary")
	assert.Equal(t, 200, second.Performance.TotalTokensProcessed, "token totals carry across summaries")
}

func TestResourceSampler_EmbeddingAccumulation(t *testing.T) {
	sampler, err := NewResourceSampler()
	require.NoError(t, err)

	sampler.RecordEmbedding(make([]float32, 256))
	sampler.RecordEmbedding(make([]float32, 256))

	// 512 floats at 4 bytes each is exactly 2 KB.
	assert.Equal(t, 2.0, sampler.TotalEmbeddingKB())
	assert.Greater(t, sampler.MemoryUsageKB(), 0.0)
}
