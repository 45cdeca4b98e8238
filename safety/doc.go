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


// Package safety decides whether a question may enter the answering
// pipeline.
//
// Local rules run first and never touch the network: a misconduct check, a
// malicious phrase list, farewell detection, and a medical likelihood
// heuristic that lets obviously on-topic questions through. Only questions
// the local rules cannot decide are sent to the model for a structured
// relevance check.
//
// The rule tables are exported as predicate functions so the intent
// classifier screens with the same rules instead of keeping its own copies.
package safety
