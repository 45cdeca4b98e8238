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
	"regexp"
	"strings"
)

// boilerplate matches lead-in phrases that models prepend to answers.
var boilerplate = regexp.MustCompile(`(?i)(?:Please provide.?\.|Here['’]s.?:|Let me explain:|According to the data:|In summary:|Explanation:|Clarification:|Here is my response:|AI Assistant:|Response:|Answer:|System:)`)

// CleanResponse strips model boilerplate from an answer. Each line loses any
// boilerplate phrase and surrounding whitespace; blank runs collapse to a
// single separator line; the result carries no leading or trailing blanks.
func CleanResponse(response string) string {
	var cleaned []string
	blankPending := false
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(boilerplate.ReplaceAllString(line, ""))
		if line == "" {
			blankPending = len(cleaned) > 0
			continue
		}
		if blankPending {
			cleaned = append(cleaned, "")
			blankPending = false
		}
		cleaned = append(cleaned, line)
	}
	return strings.Join(cleaned, "\n")
}
