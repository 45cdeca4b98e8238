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


package generation

import (
	"fmt"
	"strings"

	"github.com/meddollina/assistant/ai"
	"github.com/meddollina/assistant/core"
)

// cotMarker is the lead line the reasoning prompt asks for. Its presence
// tells the main pass that the reasoning followed the structure and can be
// trimmed to the part after the marker.
const cotMarker = "QUESTION TYPE IDENTIFIED:"

const cotSystemPrompt = `You are the reasoning stage of Meddollina, a surgical assistant.
Think through the user's question before any answer is written.

Start your output with a line of the exact form:
QUESTION TYPE IDENTIFIED: <type>

Then reason step by step:
1. What is the user actually asking?
2. Which parts of the reference material are relevant?
3. What does the conversation history add?
4. What must a safe and complete answer cover?

Be concise. This reasoning is never shown to the user.`

const mainSystemPrompt = `You are Meddollina, a surgical assistant for patients and clinicians.
Answer using the reference material below; when it does not cover the question, say so and answer from general medical knowledge.
Be accurate, structured, and compassionate. Never invent sources, dosages, or study results.
Recommend consulting a healthcare professional for diagnosis and treatment decisions.`

const headingPrompt = `Write a title of at most six words for the following medical question. Reply with the title only, no quotes.

Question: %s`

const suggestionPrompt = `Suggest one short question a patient might ask a surgical assistant about conditions, treatments, surgery, or recovery. Reply with the question only.`

// intentGuidance maps an intent to an extra instruction for the main pass.
var intentGuidance = map[core.Intent]string{
	core.IntentQuickAnswer:  "The user wants a quick answer. Reply in a few sentences without preamble.",
	core.IntentEmergency:    "The question may describe an emergency. Lead with what to do right now and when to seek immediate care.",
	core.IntentSpecificInfo: "The user wants specific information. Cover it completely and skip unrelated background.",
	core.IntentFollowUp:     "This is a follow-up. Build on the conversation history instead of restarting from scratch.",
	core.IntentFullAnalysis: "Give a full, well-organized analysis of the question.",
}

func cotMessages(historyText, contextText, question string) []ai.Message {
	return []ai.Message{
		{Role: ai.RoleSystem, Content: cotSystemPrompt},
		{Role: ai.RoleHuman, Content: userContent(historyText, contextText, "", question)},
	}
}

func mainMessages(historyText, contextText, question, reasoning string, result core.IntentResult) []ai.Message {
	system := mainSystemPrompt
	if guidance, ok := intentGuidance[result.Intent]; ok {
		system += "\n\n" + guidance
	}
	if result.FocusArea != "" && result.FocusArea != "general" {
		system += fmt.Sprintf("\nFocus area: %s.", strings.ReplaceAll(result.FocusArea, "_", " "))
	}

	return []ai.Message{
		{Role: ai.RoleSystem, Content: system},
		{Role: ai.RoleHuman, Content: userContent(historyText, contextText, reasoning, question)},
	}
}

func headingMessages(question string) []ai.Message {
	return []ai.Message{{Role: ai.RoleHuman, Content: fmt.Sprintf(headingPrompt, question)}}
}

func suggestionMessages() []ai.Message {
	return []ai.Message{{Role: ai.RoleHuman, Content: suggestionPrompt}}
}

func userContent(historyText, contextText, reasoning, question string) string {
	var sb strings.Builder
	if contextText != "" {
		sb.WriteString("Reference material:\n")
		sb.WriteString(contextText)
		sb.WriteString("\n\n")
	}
	if historyText != "" {
		sb.WriteString("Conversation history:\n")
		sb.WriteString(historyText)
		sb.WriteString("\n\n")
	}
	if reasoning != "" {
		sb.WriteString("Reasoning notes:\n")
		sb.WriteString(reasoning)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Question: ")
	sb.WriteString(question)
	return sb.String()
}

// filterReasoning keeps the part of the reasoning after the marker line when
// the reasoning followed the requested structure, and the whole text when it
// did not.
func filterReasoning(reasoning string) string {
	idx := strings.Index(reasoning, cotMarker)
	if idx < 0 {
		return reasoning
	}
	rest := reasoning[idx+len(cotMarker):]
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		return strings.TrimSpace(rest[nl+1:])
	}
	return ""
}

// messagesText flattens messages for token counting.
func messagesText(messages []ai.Message) string {
	var sb strings.Builder
	for _, m := range messages {
		sb.WriteString(string(m.Role))
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}
