package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent_Deterministic(t *testing.T) {
	id1 := IDFromContent("what is diabetes?")
	id2 := IDFromContent("what is diabetes?")
	id3 := IDFromContent("what is hypertension?")

	assert.Equal(t, id1, id2, "identical content must produce identical IDs")
	assert.NotEqual(t, id1, id3, "different content should produce different IDs")
}

func TestNewQuestion(t *testing.T) {
	q := NewQuestion("what is diabetes?")
	assert.Equal(t, "what is diabetes?", q.Text)
	assert.WithinDuration(t, time.Now().UTC(), q.ReceivedAt, time.Second)
}

func TestRetrievedDocument_SourceLink(t *testing.T) {
	tests := []struct {
		name string
		doc  RetrievedDocument
		want string
	}{
		{"both present", RetrievedDocument{Source: "ref.pdf", Page: 4}, "ref.pdf (Page: 4)"},
		{"missing page", RetrievedDocument{Source: "ref.pdf"}, ""},
		{"missing source", RetrievedDocument{Page: 4}, ""},
		{"missing both", RetrievedDocument{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.SourceLink())
		})
	}
}

func TestParseIntent(t *testing.T) {
	assert.Equal(t, IntentMedical, ParseIntent("medical"))
	assert.Equal(t, IntentSpecificInfo, ParseIntent(" Specific_Info "))
	assert.Equal(t, IntentEmergency, ParseIntent("EMERGENCY"))

	// Unknown or garbage values never escape the enum.
	assert.Equal(t, IntentFullAnalysis, ParseIntent("banana"))
	assert.Equal(t, IntentFullAnalysis, ParseIntent(""))
}

func TestParseUrgency(t *testing.T) {
	assert.Equal(t, UrgencyHigh, ParseUrgency("high"))
	assert.Equal(t, UrgencyBlocked, ParseUrgency("Blocked"))
	assert.Equal(t, UrgencyMedium, ParseUrgency("unknown-value"))
	assert.Equal(t, UrgencyMedium, ParseUrgency(""))
}

func TestIntentResultConstructors(t *testing.T) {
	def := DefaultIntentResult()
	assert.Equal(t, IntentMedical, def.Intent)
	assert.Equal(t, UrgencyMedium, def.Urgency)
	assert.Equal(t, "unknown", def.MainCondition)
	assert.Equal(t, "general", def.FocusArea)

	fb := FallbackIntentResult()
	assert.Equal(t, IntentFullAnalysis, fb.Intent)
	assert.True(t, fb.RequiresFullStructure)

	mal := MaliciousIntentResult()
	assert.Equal(t, IntentMalicious, mal.Intent)
	assert.Equal(t, UrgencyBlocked, mal.Urgency)
}
