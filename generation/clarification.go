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
	"strings"

	"github.com/meddollina/assistant/core"
)

// Fixed follow-up texts for questions too vague to answer. Canned rather
// than generated so an under-specified question never costs a model call.
const (
	clarifySymptoms = "To provide you with the most accurate medical information, I need more specific details about your symptoms. " +
		"Could you please tell me:\n\n• When did the symptoms start?\n• How severe are they on a scale of 1-10?\n" +
		"• Are there any associated symptoms?\n• Does anything make them better or worse?"

	clarifyCondition = "I'd like to help you with specific information about your medical concern. " +
		"Could you please provide more details such as:\n\n• What specific condition or symptoms are you experiencing?\n" +
		"• How long have you been experiencing this?\n• Have you been diagnosed with anything specific?"

	clarifyTreatment = "To recommend appropriate treatment options, I need to understand your specific situation better. " +
		"Please tell me:\n\n• What condition are you seeking treatment for?\n• Have you tried any treatments before?\n" +
		"• Do you have any allergies or other medical conditions?"

	clarifyMedications = "For medication information, I need more specific details:\n\n• What condition do you need medication for?\n" +
		"• Are you currently taking any medications?\n• Do you have any known allergies?\n" +
		"• What is your age and general health status?"
)

// Clarification picks the follow-up text matching what the classifier said
// was missing. Unrecognized hints get the general condition prompt.
func Clarification(result core.IntentResult) string {
	needs := strings.ToLower(result.NeedsClarification)
	switch {
	case strings.Contains(needs, "symptoms"):
		return clarifySymptoms
	case strings.Contains(needs, "treatment"), strings.Contains(needs, "medication"):
		return clarifyTreatment
	case strings.Contains(needs, "dosage"):
		return clarifyMedications
	default:
		return clarifyCondition
	}
}
