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


// Package metrics records per-operation performance data for the question
// answering pipeline and emits it as newline-delimited JSON.
//
// A Recorder accumulates latencies, token counts, error counts, source and
// intent usage, response quality samples, and memory deltas across the
// operations of one or more questions, and periodically writes a summary
// record with per-operation averages and process resource usage.
//
// Response quality is scored through the QualityAnalyzer interface;
// HeuristicAnalyzer is the built-in lexical implementation. Process CPU and
// memory figures come from a ResourceSampler.
package metrics
