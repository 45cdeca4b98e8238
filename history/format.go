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


package history

import (
	"strings"

	"github.com/meddollina/assistant/core"
)

const (
	// maxAssistantChars is the threshold beyond which an assistant response
	// is condensed before entering the prompt.
	maxAssistantChars = 800

	// leadLineWindow is how many leading lines are scanned for context,
	// of which keptLeadLines survive condensation.
	leadLineWindow = 10
	keptLeadLines  = 5

	// keptConditionLines caps the clinical-keyword lines appended after the
	// lead context.
	keptConditionLines = 5

	// maxPairs is the number of most recent exchanges kept in the prompt.
	maxPairs = 10
)

// conditionMarkers pick out lines carrying clinical facts worth preserving
// when a long response is condensed.
var conditionMarkers = []string{
	"diagnosis:", "condition:", "treatment:", "medication:",
	"patient:", "symptoms:", "surgery:", "procedure:",
}

// Format renders conversation turns into the text block the prompts consume.
// Long assistant responses are condensed to their lead lines plus any lines
// naming diagnoses, treatments, or procedures. Only the most recent ten
// exchanges are kept. No turns yields "".
func Format(turns []core.Turn) string {
	entries := make([]string, 0, len(turns))
	for _, turn := range turns {
		assistant := turn.Assistant
		if len(assistant) > maxAssistantChars {
			assistant = condense(assistant)
		}
		entries = append(entries, "Previous Question: "+turn.Human+"\nPrevious Response Summary: "+assistant)
	}

	if len(entries) > maxPairs {
		entries = entries[len(entries)-maxPairs:]
	}

	return strings.Join(entries, "\n\n")
}

// condense keeps the first lines of a long response plus the lines that name
// clinical specifics.
func condense(text string) string {
	lines := strings.Split(text, "\n")

	window := lines
	if len(window) > leadLineWindow {
		window = window[:leadLineWindow]
	}
	keyLines := make([]string, 0, len(window))
	for _, line := range window {
		keyLines = append(keyLines, strings.TrimSpace(line))
	}
	if len(keyLines) > keptLeadLines {
		keyLines = keyLines[:keptLeadLines]
	}

	var conditionLines []string
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, marker := range conditionMarkers {
			if strings.Contains(lower, marker) {
				conditionLines = append(conditionLines, strings.TrimSpace(line))
				break
			}
		}
	}
	if len(conditionLines) > keptConditionLines {
		conditionLines = conditionLines[:keptConditionLines]
	}

	return strings.Join(keyLines, "\n") + "\n...\n" + strings.Join(conditionLines, "\n")
}
