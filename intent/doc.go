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


// Package intent classifies user questions so the generator can pick
// response parameters.
//
// Classification is best-effort by construction: the classifier screens
// locally with the safety rules, asks the model with bounded retries, and
// falls back to safe defaults on exhaustion or unparseable output. It never
// returns an error; every path yields a structurally valid
// core.IntentResult.
package intent
