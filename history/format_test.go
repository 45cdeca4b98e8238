package history

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meddollina/assistant/core"
)

func TestFormat_Empty(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Equal(t, "", Format([]core.Turn{}))
}

func TestFormat_LabelsAndJoining(t *testing.T) {
	turns := []core.Turn{
		{Human: "What is a hernia?", Assistant: "A hernia is a protrusion of tissue."},
		{Human: "Is surgery needed?", Assistant: "Often, yes."},
	}

	got := Format(turns)

	want := "Previous Question: What is a hernia?\nPrevious Response Summary: A hernia is a protrusion of tissue." +
		"\n\n" +
		"Previous Question: Is surgery needed?\nPrevious Response Summary: Often, yes."
	assert.Equal(t, want, got)
}

func TestFormat_KeepsMostRecentTenPairs(t *testing.T) {
	turns := make([]core.Turn, 24)
	for i := range turns {
		turns[i] = core.Turn{
			Human:     fmt.Sprintf("question %d", i+1),
			Assistant: fmt.Sprintf("answer %d", i+1),
		}
	}

	got := Format(turns)

	assert.NotContains(t, got, "question 14")
	assert.Contains(t, got, "question 15")
	assert.Contains(t, got, "question 24")
	assert.Equal(t, 10, strings.Count(got, "Previous Question:"))
}

func TestFormat_CondensesLongResponses(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Overview line one.\n")
	sb.WriteString("Overview line two.\n")
	sb.WriteString("Overview line three.\n")
	sb.WriteString("Overview line four.\n")
	sb.WriteString("Overview line five.\n")
	sb.WriteString("Overview line six.\n")
	for i := 0; i < 30; i++ {
		sb.WriteString("Filler sentence that pads the response well past the threshold.\n")
	}
	sb.WriteString("Diagnosis: anaplastic oligodendroglioma\n")
	sb.WriteString("Treatment: surgical resection followed by radiotherapy\n")
	long := sb.String()
	require.Greater(t, len(long), 800)

	got := Format([]core.Turn{{Human: "What did the MRI show?", Assistant: long}})

	assert.Contains(t, got, "Overview line one.")
	assert.Contains(t, got, "Overview line five.")
	assert.NotContains(t, got, "Overview line six.", "only the first five lead lines survive")
	assert.Contains(t, got, "\n...\n")
	assert.Contains(t, got, "Diagnosis: anaplastic oligodendroglioma")
	assert.Contains(t, got, "Treatment: surgical resection followed by radiotherapy")
	assert.NotContains(t, got, "Filler sentence")
}

func TestFormat_ShortResponsesPassThrough(t *testing.T) {
	got := Format([]core.Turn{{Human: "q", Assistant: "short answer"}})
	assert.Contains(t, got, "Previous Response Summary: short answer")
	assert.NotContains(t, got, "...")
}
