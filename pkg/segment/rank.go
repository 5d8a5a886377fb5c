package segment

import (
	"sort"
	"strings"

	"github.com/weiyin/cidian/pkg/dictionary"
)

// referencePrefixes mark glosses that only point at another entry.
var referencePrefixes = []string{
	"variant of", "see ", "old variant", "archaic variant", "same as",
}

// IsReference reports whether a gloss is a cross-reference rather than a
// real definition.
func IsReference(def string) bool {
	lower := strings.ToLower(def)
	for _, p := range referencePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// ScoreDefinition rates how useful a gloss is to a learner. Higher sorts
// first. The deltas are additive from a base of 100.
func ScoreDefinition(def string) int {
	score := 100
	lower := strings.ToLower(def)

	if IsReference(def) {
		score -= 80
	}
	for _, w := range []string{"archaic", "literary", "dialect", "old-fashioned"} {
		if strings.Contains(lower, w) {
			score -= 40
			break
		}
	}
	for _, w := range []string{"Taiwan pr.", "also pr.", "Taiwan variant"} {
		if strings.Contains(def, w) {
			score -= 30
			break
		}
	}
	if strings.HasPrefix(lower, "abbr.") || strings.HasPrefix(lower, "abbreviation") {
		score -= 25
	}
	if strings.Contains(lower, "euphemism") {
		score -= 20
	}
	if strings.HasPrefix(def, "lit. ") {
		score -= 15
	}
	if strings.HasPrefix(def, "fig. ") {
		score -= 10
	}
	if strings.HasPrefix(def, "CL:") {
		score -= 35
	}
	if len([]rune(def)) < 5 {
		score -= 20
	}
	if strings.HasPrefix(lower, "to ") {
		score += 10
	}
	if strings.HasPrefix(lower, "a ") || strings.HasPrefix(lower, "the ") {
		score += 5
	}
	return score
}

// SelectBest picks the canonical sense for a matched word: the one with the
// most non-reference definitions. Score only orders the pooled gloss list,
// not this choice. An empty input returns a zero Entry.
func SelectBest(senses []dictionary.Entry) dictionary.Entry {
	var best dictionary.Entry
	bestCount := -1
	for _, sense := range senses {
		count := 0
		for _, def := range sense.Definitions {
			if !IsReference(def) {
				count++
			}
		}
		if count > bestCount {
			best = sense
			bestCount = count
		}
	}
	return best
}

// RankDefinitions pools the definitions of every sense, deduplicates them,
// and orders them by relevance score (stable, so source order breaks ties).
// A beginner benefits from seeing every attested gloss, with the most useful
// meaning first.
func RankDefinitions(senses []dictionary.Entry) []string {
	seen := make(map[string]struct{})
	var pooled []string
	for _, sense := range senses {
		for _, def := range sense.Definitions {
			if _, dup := seen[def]; dup {
				continue
			}
			seen[def] = struct{}{}
			pooled = append(pooled, def)
		}
	}
	sort.SliceStable(pooled, func(i, j int) bool {
		return ScoreDefinition(pooled[i]) > ScoreDefinition(pooled[j])
	})
	return pooled
}
