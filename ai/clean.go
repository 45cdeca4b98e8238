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


package ai

import "strings"

// ExtractJSONObject cleans a raw model response down to the JSON object it
// should contain. Models asked for structured output routinely wrap the
// object in markdown code fences or surround it with prose; this strips
// fences, slices to the span between the first '{' and the last '}', and
// repairs common key-quoting mistakes. The result is not guaranteed to
// parse; callers must still handle json.Unmarshal failures.
func ExtractJSONObject(raw string) string {
	s := strings.TrimSpace(raw)

	// Prefer the contents of a ```json fence when one is present.
	if idx := strings.Index(s, "```json"); idx != -1 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end != -1 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	} else {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}

	// Slice to the outermost object boundaries.
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end > start {
		s = s[start : end+1]
	}

	return repairJSON(s)
}

// repairJSON attempts to fix common JSON formatting issues from model
// responses. It specifically handles missing opening quotes before keys,
// e.g. `, type":` becomes `, "type":`.
func repairJSON(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in)+16)

	i := 0
	for i < len(in) {
		ch := in[i]
		if ch != '{' && ch != ',' {
			out = append(out, ch)
			i++
			continue
		}

		out = append(out, ch)
		i++

		// Skip whitespace after the separator.
		for i < len(in) && (in[i] == ' ' || in[i] == '\n' || in[i] == '\t') {
			out = append(out, in[i])
			i++
		}

		// A bare word followed by `":` is a key that lost its opening quote.
		if i < len(in) && in[i] != '"' && isLetter(in[i]) {
			keyStart := i
			for i < len(in) && (isLetter(in[i]) || in[i] == '_' || in[i] == ' ') {
				i++
			}
			if i+1 < len(in) && in[i] == '"' && in[i+1] == ':' {
				out = append(out, '"')
				out = append(out, in[keyStart:i]...)
				continue
			}
			// Not a broken key; emit what was skipped unchanged.
			out = append(out, in[keyStart:i]...)
		}
	}

	return string(out)
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
