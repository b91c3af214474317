// Package similarity implements order-independent fuzzy matching of
// transaction descriptions and bulk recategorization built on top of it.
package similarity

import (
	"regexp"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var tokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

// tokenize lowercases s and splits it into unique sorted alphanumeric tokens.
func tokenize(s string) []string {
	parts := tokenSplit.Split(strings.ToLower(s), -1)
	seen := make(map[string]struct{}, len(parts))
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		tokens = append(tokens, p)
	}
	sort.Strings(tokens)
	return tokens
}

// levRatio is a normalized Levenshtein similarity in [0,1].
func levRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1.0
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

// TokenSetRatio computes a token-set similarity score in [0,1] between two
// strings. The comparison is word-order independent: both strings are reduced
// to sorted token sets, and the score is the best ratio among the common
// tokens alone and the common tokens extended with each side's remainder.
func TokenSetRatio(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 && len(tokensB) == 0 {
		return 1.0
	}

	setB := make(map[string]struct{}, len(tokensB))
	for _, t := range tokensB {
		setB[t] = struct{}{}
	}
	setA := make(map[string]struct{}, len(tokensA))
	for _, t := range tokensA {
		setA[t] = struct{}{}
	}

	var common, diffA, diffB []string
	for _, t := range tokensA {
		if _, ok := setB[t]; ok {
			common = append(common, t)
		} else {
			diffA = append(diffA, t)
		}
	}
	for _, t := range tokensB {
		if _, ok := setA[t]; !ok {
			diffB = append(diffB, t)
		}
	}

	base := strings.Join(common, " ")
	full1 := strings.TrimSpace(base + " " + strings.Join(diffA, " "))
	full2 := strings.TrimSpace(base + " " + strings.Join(diffB, " "))

	// Identical token sets compare equal no matter the original ordering.
	if base != "" && full1 == base && full2 == base {
		return 1.0
	}

	score := levRatio(full1, full2)
	if base != "" {
		if s := levRatio(base, full1); s > score {
			score = s
		}
		if s := levRatio(base, full2); s > score {
			score = s
		}
	}
	return score
}
