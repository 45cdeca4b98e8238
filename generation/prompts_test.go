package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meddollina/assistant/ai"
	"github.com/meddollina/assistant/core"
)

func TestFilterReasoning(t *testing.T) {
	t.Run("keeps text after the marker line", func(t *testing.T) {
		reasoning := "QUESTION TYPE IDENTIFIED: definition\n1. The user asks what a spleen does.\n2. Context covers it."
		got := filterReasoning(reasoning)

		assert.NotContains(t, got, cotMarker)
		assert.Contains(t, got, "1. The user asks")
	})

	t.Run("unstructured reasoning passes through", func(t *testing.T) {
		reasoning := "The user wants a definition."
		assert.Equal(t, reasoning, filterReasoning(reasoning))
	})

	t.Run("marker with nothing after it", func(t *testing.T) {
		assert.Empty(t, filterReasoning("QUESTION TYPE IDENTIFIED: definition"))
	})

	t.Run("empty reasoning", func(t *testing.T) {
		assert.Empty(t, filterReasoning(""))
	})
}

func TestMainMessages(t *testing.T) {
	result := core.IntentResult{Intent: core.IntentQuickAnswer, FocusArea: "recovery_time"}
	messages := mainMessages("history text", "context text", "What is a spleen?", "notes", result)

	require.Len(t, messages, 2)
	assert.Equal(t, ai.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, "quick answer")
	assert.Contains(t, messages[0].Content, "recovery time")

	assert.Equal(t, ai.RoleHuman, messages[1].Role)
	human := messages[1].Content
	assert.Contains(t, human, "Reference material:\ncontext text")
	assert.Contains(t, human, "Conversation history:\nhistory text")
	assert.Contains(t, human, "Reasoning notes:\nnotes")
	assert.True(t, strings.HasSuffix(human, "Question: What is a spleen?"))
}

func TestMainMessagesOmitsEmptySections(t *testing.T) {
	messages := mainMessages("", "", "What is a spleen?", "", core.IntentResult{Intent: core.IntentMedical})

	require.Len(t, messages, 2)
	human := messages[1].Content
	assert.NotContains(t, human, "Reference material:")
	assert.NotContains(t, human, "Conversation history:")
	assert.NotContains(t, human, "Reasoning notes:")
	assert.Equal(t, "Question: What is a spleen?", human)
}

func TestMainMessagesGeneralFocusNotMentioned(t *testing.T) {
	messages := mainMessages("", "", "q", "", core.IntentResult{Intent: core.IntentMedical, FocusArea: "general"})
	assert.NotContains(t, messages[0].Content, "Focus area")
}
