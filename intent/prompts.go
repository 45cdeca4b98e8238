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
	"strings"

	"github.com/meddollina/assistant/ai"
)

const classificationSystemPrompt = `You classify questions asked of a surgical and medical assistant.
Respond with a single JSON object and nothing else:

{
  "intent": one of "medical", "specific_info", "quick_answer", "emergency", "follow_up", "clarification_needed",
  "urgency": one of "low", "medium", "high",
  "main_condition": the medical condition the question is about, or "",
  "focus_area": one of "treatment", "surgical_plan", "medications", "symptoms", "general", or "",
  "needs_clarification": what detail is missing when intent is "clarification_needed", otherwise ""
}

Use the conversation history to resolve follow-up questions. Use "emergency"
for acute, time-critical situations. Use "quick_answer" for simple factual
questions. Use "clarification_needed" only when the question is too vague to
answer at all.`

func classificationMessages(historyText, question string) []ai.Message {
	var sb strings.Builder
	if historyText != "" {
		sb.WriteString("Conversation history:\n")
		sb.WriteString(historyText)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Question: ")
	sb.WriteString(question)

	return []ai.Message{
		{Role: ai.RoleSystem, Content: classificationSystemPrompt},
		{Role: ai.RoleHuman, Content: sb.String()},
	}
}
