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


// Package generation turns a validated question, its retrieved context, and
// its classified intent into the final answer text.
//
// Answering is two model passes: a reasoning pass that drafts a structured
// chain of thought, then the main pass that writes the user-facing answer
// with parameters chosen by intent. The reasoning pass is best effort; the
// main pass is retried aggressively and its exhaustion is the only fatal
// failure in the package.
//
// The package also generates the short conversation heading, canned
// clarification follow-ups, and seeded question suggestions.
package generation
