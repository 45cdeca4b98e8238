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


// Package ai provides abstractions for the inference services used by the
// question-answering pipeline.
//
// This package defines interfaces for chat completion and text embeddings.
// It follows the dependency inversion principle, allowing the pipeline to
// depend on abstractions rather than concrete implementations.
//
// The package is designed around three key interfaces:
//
//   - ChatModel: Generates text from role-tagged messages
//   - Embedder: Generates vector embeddings from text
//   - Provider: Aggregates inference services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider etc.) return INTERFACE types to
// enforce abstraction. Test utility constructors (mock.NewMockChatModel,
// mock.NewMockEmbedder) return CONCRETE types to enable test assertions and
// behavior injection via function fields.
package ai
