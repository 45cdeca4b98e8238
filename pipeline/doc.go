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


// Package pipeline orchestrates one question through the answering stages:
// heading, history, validation, intent classification, retrieval, and
// two-pass generation.
//
// Every stage short-circuit carries a user-facing message and tagged
// metadata, so the caller always gets a presentable Result. The only error
// the orchestrator surfaces is exhausted answer generation.
package pipeline
