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


package core

import (
	"fmt"
	"strings"
	"time"
)

// IsValidTimestamp reports whether a timestamp is usable: non-zero and not
// in the future (with a small allowance for clock skew).
func IsValidTimestamp(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.After(time.Now().Add(5 * time.Second))
}

// ValidateQuestion validates a Question according to domain rules.
//
// Validation rules:
//   - Text must not be empty or whitespace-only
//   - ReceivedAt must not be in the future
func ValidateQuestion(q Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuestion, ErrEmptyContent)
	}

	if !IsValidTimestamp(q.ReceivedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidQuestion, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateTurn validates a Turn according to domain rules.
//
// Validation rules:
//   - Human text must not be empty
//
// The assistant side may be empty: a rejected question still produces a
// turn whose answer is the refusal message, and some callers store the
// human side before the answer arrives.
func ValidateTurn(t Turn) error {
	if strings.TrimSpace(t.Human) == "" {
		return fmt.Errorf("%w: human %w", ErrInvalidTurn, ErrEmptyContent)
	}
	return nil
}

// ValidateIntentResult validates an IntentResult according to domain rules.
//
// Validation rules:
//   - Intent must be one of the known intent values
//   - Urgency must be one of the known urgency values
func ValidateIntentResult(r IntentResult) error {
	if _, ok := intents[r.Intent]; !ok {
		return fmt.Errorf("%w: unknown intent %q", ErrInvalidIntentResult, r.Intent)
	}
	if _, ok := urgencies[r.Urgency]; !ok {
		return fmt.Errorf("%w: unknown urgency %q", ErrInvalidIntentResult, r.Urgency)
	}
	return nil
}
