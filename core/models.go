package core

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Question is a user question as received by the pipeline.
// It is immutable once constructed.
type Question struct {
	Text       string
	ReceivedAt time.Time
}

// NewQuestion creates a Question stamped with the current time.
func NewQuestion(text string) Question {
	return Question{Text: text, ReceivedAt: time.Now().UTC()}
}

// Turn is one completed conversational exchange: what the user asked
// and what the assistant answered.
type Turn struct {
	Human     string
	Assistant string
}

// RetrievedDocument is a passage returned by the document store.
// Page is 1-based; 0 means the page is unknown.
type RetrievedDocument struct {
	Content string
	Source  string
	Page    int
}

// SourceLink renders the document's citation, e.g. "guide.pdf (Page: 4)".
// Returns "" unless both source and page are present.
func (d RetrievedDocument) SourceLink() string {
	if d.Source == "" || d.Page == 0 {
		return ""
	}
	return fmt.Sprintf("%s (Page: %d)", d.Source, d.Page)
}

// Intent is the classified purpose of a user question. It selects the
// generation parameters and the response handling path.
type Intent string

const (
	IntentMedical             Intent = "medical"
	IntentSpecificInfo        Intent = "specific_info"
	IntentQuickAnswer         Intent = "quick_answer"
	IntentEmergency           Intent = "emergency"
	IntentFollowUp            Intent = "follow_up"
	IntentClarificationNeeded Intent = "clarification_needed"
	IntentMalicious           Intent = "malicious"
	IntentFullAnalysis        Intent = "full_analysis"
)

// intents holds every valid Intent value, used for parsing and validation.
var intents = map[Intent]struct{}{
	IntentMedical:             {},
	IntentSpecificInfo:        {},
	IntentQuickAnswer:         {},
	IntentEmergency:           {},
	IntentFollowUp:            {},
	IntentClarificationNeeded: {},
	IntentMalicious:           {},
	IntentFullAnalysis:        {},
}

// ParseIntent maps a classifier string to an Intent.
// Unknown values map to IntentFullAnalysis so a misbehaving classifier
// can never introduce an unhandled intent.
func ParseIntent(s string) Intent {
	in := Intent(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := intents[in]; ok {
		return in
	}
	return IntentFullAnalysis
}

// Urgency is the classified urgency of a question.
type Urgency string

const (
	UrgencyLow     Urgency = "low"
	UrgencyMedium  Urgency = "medium"
	UrgencyHigh    Urgency = "high"
	UrgencyBlocked Urgency = "blocked"
)

var urgencies = map[Urgency]struct{}{
	UrgencyLow:     {},
	UrgencyMedium:  {},
	UrgencyHigh:    {},
	UrgencyBlocked: {},
}

// ParseUrgency maps a classifier string to an Urgency.
// Unknown values map to UrgencyMedium.
func ParseUrgency(s string) Urgency {
	u := Urgency(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := urgencies[u]; ok {
		return u
	}
	return UrgencyMedium
}

// IntentResult is the structured outcome of intent classification.
// Intent and Urgency are always populated; the remaining fields are
// optional refinements.
type IntentResult struct {
	Intent             Intent
	Urgency            Urgency
	FocusArea          string
	MainCondition      string
	NeedsClarification string

	// RequiresFullStructure marks a result produced by the parse-failure
	// fallback, signalling that the generator should not trust any of the
	// optional fields.
	RequiresFullStructure bool
}

// DefaultIntentResult is the safe result used when every classification
// attempt against the inference endpoint has failed.
func DefaultIntentResult() IntentResult {
	return IntentResult{
		Intent:        IntentMedical,
		Urgency:       UrgencyMedium,
		MainCondition: "unknown",
		FocusArea:     "general",
	}
}

// FallbackIntentResult is the result used when the endpoint answered but
// its output could not be parsed as a classification.
func FallbackIntentResult() IntentResult {
	return IntentResult{
		Intent:                IntentFullAnalysis,
		Urgency:               UrgencyMedium,
		RequiresFullStructure: true,
	}
}

// MaliciousIntentResult is the result used when the local pattern rules
// flag the question before any network call.
func MaliciousIntentResult() IntentResult {
	return IntentResult{
		Intent:        IntentMalicious,
		Urgency:       UrgencyBlocked,
		MainCondition: "malicious_request",
		FocusArea:     "blocked",
	}
}
