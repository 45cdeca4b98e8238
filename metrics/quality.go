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


package metrics

import (
	"strings"
	"unicode"
)

// QualityMetrics holds the quality scores for one generated response.
type QualityMetrics struct {
	// ReadabilityScore is the Flesch reading ease of the response
	// (0-100, higher is more readable).
	ReadabilityScore float64 `json:"readability_score"`

	// CoherenceScore measures how well the response relates to the
	// question and the retrieved context (0-1, higher is better).
	CoherenceScore float64 `json:"coherence_score"`

	// HallucinationRate estimates the share of response terms not
	// grounded in the context (0-1, lower is better).
	HallucinationRate float64 `json:"hallucination_rate"`

	// RedundancyRate measures repetition across response sentences
	// (0-1, lower is better).
	RedundancyRate float64 `json:"redundancy_rate"`
}

// QualityAnalyzer scores a generated response against its question and
// retrieved context.
type QualityAnalyzer interface {
	Analyze(question, context, response string) QualityMetrics
}

// HeuristicAnalyzer is a lexical QualityAnalyzer. It needs no models or
// network: readability uses the Flesch reading ease formula, coherence and
// hallucination use content-word overlap, and redundancy uses pairwise
// sentence similarity.
type HeuristicAnalyzer struct{}

// NewHeuristicAnalyzer creates the default lexical analyzer.
func NewHeuristicAnalyzer() *HeuristicAnalyzer {
	return &HeuristicAnalyzer{}
}

// Analyze computes all quality metrics for the response.
func (a *HeuristicAnalyzer) Analyze(question, context, response string) QualityMetrics {
	return QualityMetrics{
		ReadabilityScore:  fleschReadingEase(response),
		CoherenceScore:    coherence(question, context, response),
		HallucinationRate: hallucinationRate(response, context),
		RedundancyRate:    redundancyRate(response),
	}
}

// fleschReadingEase computes 206.835 - 1.015*(words/sentences) -
// 84.6*(syllables/words) with a vowel-group syllable heuristic.
func fleschReadingEase(text string) float64 {
	words := contentTokens(text)
	if len(words) == 0 {
		return 0
	}
	sentences := splitSentences(text)
	sentenceCount := len(sentences)
	if sentenceCount == 0 {
		sentenceCount = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	score := 206.835 -
		1.015*(float64(len(words))/float64(sentenceCount)) -
		84.6*(float64(syllables)/float64(len(words)))

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// coherence averages the question-response and context-response term overlap.
func coherence(question, context, response string) float64 {
	respSet := tokenSet(response)
	if len(respSet) == 0 {
		return 0
	}
	qr := overlapRatio(tokenSet(question), respSet)
	cr := overlapRatio(tokenSet(context), respSet)
	return (qr + cr) / 2
}

// hallucinationRate is the share of significant response terms absent from
// the context. A response with no significant terms scores 0.
func hallucinationRate(response, context string) float64 {
	contextSet := tokenSet(context)
	significant := 0
	unsupported := 0
	for term := range tokenSet(response) {
		if len(term) <= 3 {
			continue
		}
		significant++
		if !contextSet[term] {
			unsupported++
		}
	}
	if significant == 0 {
		return 0
	}
	return float64(unsupported) / float64(significant)
}

// redundancyRate averages pairwise term overlap between sentences.
// Single-sentence responses score 0.
func redundancyRate(text string) float64 {
	sentences := splitSentences(text)
	if len(sentences) <= 1 {
		return 0
	}

	sets := make([]map[string]bool, len(sentences))
	for i, s := range sentences {
		sets[i] = tokenSet(s)
	}

	var total float64
	count := 0
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			total += jaccard(sets[i], sets[j])
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// overlapRatio is the fraction of terms in a that also appear in b.
func overlapRatio(a, b map[string]bool) float64 {
	if len(a) == 0 {
		return 0
	}
	shared := 0
	for term := range a {
		if b[term] {
			shared++
		}
	}
	return float64(shared) / float64(len(a))
}

func jaccard(a, b map[string]bool) float64 {
	union := len(b)
	shared := 0
	for term := range a {
		if b[term] {
			shared++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range contentTokens(text) {
		set[tok] = true
	}
	return set
}

// contentTokens splits text into lowercase alphanumeric words.
func contentTokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func splitSentences(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, strings.TrimSpace(s))
		}
	}
	return sentences
}

// countSyllables approximates syllables as vowel groups, with a silent
// trailing 'e' adjustment. Every word has at least one syllable.
func countSyllables(word string) int {
	vowels := "aeiouy"
	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune(vowels, r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}
