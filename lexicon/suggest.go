package lexicon

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Suggest returns up to limit known words closest to word by edit distance,
// nearest first. Exact matches and candidates at a distance of the word's
// own length or more are never returned.
func (l *Lexicon) Suggest(word string, limit int) []string {
	if limit <= 0 || word == "" {
		return nil
	}
	maxDist := utf8.RuneCountInString(word)

	type candidate struct {
		word string
		dist int
	}
	var found []candidate
	for _, k := range l.keys {
		d := levenshtein.ComputeDistance(word, k)
		if d == 0 || d >= maxDist {
			continue
		}
		found = append(found, candidate{k, d})
	}

	// keys 已排序，稳定排序后距离相同的按字典序
	slices.SortStableFunc(found, func(a, b candidate) int {
		return cmp.Compare(a.dist, b.dist)
	})

	out := make([]string, 0, min(limit, len(found)))
	for _, c := range found[:min(limit, len(found))] {
		out = append(out, c.word)
	}
	return out
}
