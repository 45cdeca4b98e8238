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


// Package history loads conversation turns and renders them into the text
// block the prompts consume.
//
// Two Memory implementations exist: FlatMemory adapts a caller-owned list of
// role-tagged messages and is read-only, while StoredMemory persists turns
// through a storage.TurnStore. The formatter condenses long assistant
// responses so key clinical facts survive without flooding the context
// window.
package history
