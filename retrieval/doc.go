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


// Package retrieval fetches the document passages that ground an answer.
//
// The Coordinator over-fetches candidates from a DocumentStore, re-ranks
// them with maximal marginal relevance so the selected passages are both
// relevant and diverse, and assembles the context text and source citations
// for the generator. Retrieval failures degrade to an empty result; the
// pipeline answers from the model's own knowledge rather than failing the
// question.
package retrieval
