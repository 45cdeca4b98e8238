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

import "strings"

// Fixed responses for questions the local rules decide.
const (
	// RefusalMessage is returned for misconduct and malicious questions.
	RefusalMessage = "I can't help with that request."

	// FarewellMessage is returned for farewell questions.
	FarewellMessage = "Goodbye! It was nice interacting with you. Feel free to return if you have more questions."

	// GreetingMessage is the default reply for greetings the model flags
	// as salutations without its own explanation.
	GreetingMessage = "Hello! I'm Meddollina, your surgical assistant. How can I help you today?"
)

// misconductPhrases flag questions about exploiting patients. A phrase match
// alone is not enough: the question must also name a clinical role and use an
// abuse term, so legitimate questions about patient safety pass through.
var misconductPhrases = []string{
	"take advantage",
	"advantage of",
	"sedated patient",
	"unconscious patient",
	"exploit patient",
	"inappropriate exam",
	"sexual harassment",
	"non-consensual",
	"without consent",
	"abuse patient",
}

var roleTerms = []string{"doctor", "physician", "medical", "nurse", "staff"}

var abuseTerms = []string{"advantage", "exploit", "abuse", "inappropriate"}

// maliciousPhrases are rejected outright: prompt injection, forgery, and
// harm-seeking requests.
var maliciousPhrases = []string{
	"ignore instruction",
	"bypass rule",
	"show chain of thought",
	"internal prompt",
	"fake medical",
	"forge report",
	"overdose",
	"worsen condition",
	"prescription for",
	"write me a prescription",
	"show your prompt",
	"reveal rule",
	"toxic combination",
}

var farewells = map[string]bool{
	"bye":     true,
	"goodbye": true,
	"exit":    true,
	"quit":    true,
}

// medicalKeywords indicate a high likelihood of medical relevance. The first
// 15 entries are the most common ones and double as the history vocabulary
// for short follow-up questions.
var medicalKeywords = []string{
	"symptom", "symptoms", "pain", "ache", "hurt", "surgery", "surgical", "operation",
	"doctor", "physician", "hospital", "clinic", "treatment", "medicine", "medication",
	"diagnosis", "diagnose", "disease", "condition", "illness", "sick", "health",
	"infection", "fever", "headache", "nausea", "vomiting", "bleeding", "swelling",
	"recovery", "healing", "wound", "injury", "fracture", "broken", "sprain",
	"cancer", "tumor", "cyst", "rash", "allergic", "allergy", "chest pain",
	"abdomen", "stomach", "liver", "kidney", "heart", "lung", "brain", "spine",
	"blood", "pressure", "diabetic", "diabetes", "hypertension",
	"prescription", "dosage", "side effect", "complication", "emergency",
	"urgent", "acute", "chronic", "patient", "medical history",
}

// commonKeywordCount bounds the history vocabulary to the most common
// medical keywords.
const commonKeywordCount = 15

var temporalTerms = []string{
	"days ago", "weeks ago", "months ago", "years ago", "yesterday", "last week",
	"last month", "since", "after", "before", "during", "following", "prior to",
	"recently", "lately", "ongoing", "persistent", "recurring", "intermittent",
}

var healthIndicators = []string{
	"feel", "feeling", "experience", "experiencing", "having", "been", "was", "got", "developed",
}

// IsMisconduct reports whether the question describes patient exploitation:
// a misconduct phrase combined with a clinical role term and an abuse term.
func IsMisconduct(question string) bool {
	lower := strings.ToLower(question)
	return containsAny(lower, misconductPhrases) &&
		containsAny(lower, roleTerms) &&
		containsAny(lower, abuseTerms)
}

// IsMaliciousPhrase reports whether the question matches the malicious
// phrase list.
func IsMaliciousPhrase(question string) bool {
	return containsAny(strings.ToLower(question), maliciousPhrases)
}

// IsFarewell reports whether the question is exactly a farewell token.
func IsFarewell(question string) bool {
	return farewells[strings.ToLower(strings.TrimSpace(question))]
}

// IsLikelyMedical reports whether the question is very likely medical,
// allowing it to skip the model relevance check. It matches medical
// keywords, temporal phrasing combined with health indicators, and short
// follow-up questions whose history carries common medical terms.
func IsLikelyMedical(question, historyText string) bool {
	lower := strings.ToLower(question)

	if containsAny(lower, medicalKeywords) {
		return true
	}

	if containsAny(lower, temporalTerms) && containsAny(lower, healthIndicators) {
		return true
	}

	if historyText != "" && len(strings.Fields(question)) <= 10 {
		historyLower := strings.ToLower(historyText)
		if containsAny(historyLower, medicalKeywords[:commonKeywordCount]) {
			return true
		}
	}

	return false
}

func containsAny(haystack string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(haystack, phrase) {
			return true
		}
	}
	return false
}
