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


package retrieval

// maximalMarginalRelevance selects up to k candidate indices balancing
// relevance to the query against redundancy with already-selected
// candidates. lambda 1.0 is pure relevance, 0.0 pure diversity.
func maximalMarginalRelevance(query []float32, candidates [][]float32, lambda float32, k int) []int {
	if k > len(candidates) {
		k = len(candidates)
	}
	if k <= 0 {
		return nil
	}

	relevance := make([]float32, len(candidates))
	for i, c := range candidates {
		relevance[i] = CosineSimilarity(query, c)
	}

	selected := make([]int, 0, k)
	taken := make([]bool, len(candidates))

	for len(selected) < k {
		bestIdx := -1
		var bestScore float32
		// Ascending scan keeps ties deterministic: the lowest index wins.
		for i := range candidates {
			if taken[i] {
				continue
			}

			// Highest similarity to anything already selected.
			var maxRedundancy float32
			for _, s := range selected {
				if sim := CosineSimilarity(candidates[i], candidates[s]); sim > maxRedundancy {
					maxRedundancy = sim
				}
			}

			score := lambda*relevance[i] - (1-lambda)*maxRedundancy
			if bestIdx == -1 || score > bestScore {
				bestIdx = i
				bestScore = score
			}
		}

		selected = append(selected, bestIdx)
		taken[bestIdx] = true
	}

	return selected
}
