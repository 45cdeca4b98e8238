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

import "github.com/meddollina/assistant/core"

// Params are the sampling parameters for the main answer pass.
type Params struct {
	MaxTokens   int
	Temperature float64
}

// detailedFocusAreas are the focus areas that warrant the long-form token
// budget when the intent asks for specific information.
var detailedFocusAreas = map[string]bool{
	"treatment":     true,
	"surgical_plan": true,
	"medications":   true,
}

// paramsFor selects the token budget and temperature for an answer.
// Short factual intents get tight, near-deterministic settings; detailed
// plans get the largest budget; everything else falls back to a balanced
// default. The checks are ordered by priority, first match wins.
func paramsFor(result core.IntentResult) Params {
	switch {
	case result.Intent == core.IntentQuickAnswer:
		return Params{MaxTokens: 800, Temperature: 0.1}
	case result.Intent == core.IntentEmergency:
		return Params{MaxTokens: 1000, Temperature: 0.2}
	case result.Intent == core.IntentSpecificInfo && detailedFocusAreas[result.FocusArea]:
		return Params{MaxTokens: 1500, Temperature: 0.2}
	case result.Intent == core.IntentFollowUp:
		return Params{MaxTokens: 1200, Temperature: 0.2}
	case result.Urgency == core.UrgencyHigh:
		return Params{MaxTokens: 1000, Temperature: 0.2}
	default:
		return Params{MaxTokens: 1200, Temperature: 0.3}
	}
}
