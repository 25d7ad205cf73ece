package present

import (
	"sort"
	"strings"
)

// MaxSuggestDistance bounds the edit distance Suggest accepts.
const MaxSuggestDistance = 3

// Suggest returns up to limit names close to target, nearest first. Matching
// ignores case; ties keep the order of names.
func Suggest(target string, names []string, limit int) []string {
	if limit <= 0 || target == "" {
		return nil
	}

	type candidate struct {
		name     string
		distance int
	}
	wanted := strings.ToLower(target)
	var found []candidate
	for _, name := range names {
		d := levenshtein(wanted, strings.ToLower(name))
		if d <= MaxSuggestDistance {
			found = append(found, candidate{name: name, distance: d})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].distance < found[j].distance
	})

	out := make([]string, 0, min(limit, len(found)))
	for i := 0; i < len(found) && i < limit; i++ {
		out = append(out, found[i].name)
	}
	return out
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
