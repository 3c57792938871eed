// Package search implements title matching for the collection: exact lookup
// on normalized titles, case/space-insensitive substring matching, and ranked
// fuzzy matching for typo-tolerant search.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultThreshold is the minimum fuzzy score (0-100) a title must reach to
// be reported as a match.
const DefaultThreshold = 60

var folder = cases.Fold()

// Normalize prepares a title for comparison: Unicode compatibility
// decomposition (NFKD), case folding, and collapsing internal whitespace.
// "  Amélie " and "AMÉLIE" normalize to the same string.
func Normalize(s string) string {
	s = norm.NFKD.String(s)
	s = folder.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Substring returns the titles whose normalized form contains the normalized
// query, preserving input order. An empty query matches nothing.
func Substring(titles []string, query string) []string {
	q := Normalize(query)
	if q == "" {
		return nil
	}
	var out []string
	for _, title := range titles {
		if strings.Contains(Normalize(title), q) {
			out = append(out, title)
		}
	}
	return out
}

// Match is one fuzzy search result. Score is a similarity in [0, 100].
type Match struct {
	Title string `json:"title" yaml:"title"`
	Score int    `json:"score" yaml:"score"`
}

// Fuzzy ranks titles by similarity to the query and returns those scoring at
// least threshold, ordered by score descending then title ascending. A
// threshold <= 0 uses DefaultThreshold. An empty query returns no matches.
func Fuzzy(titles []string, query string, threshold int) []Match {
	q := Normalize(query)
	if q == "" {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var out []Match
	for _, title := range titles {
		if score := score(q, Normalize(title)); score >= threshold {
			out = append(out, Match{Title: title, Score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// score converts the Levenshtein distance between two normalized strings to
// a 0-100 similarity. A contained query scores at least as well as a full
// rewrite of the longer string would suggest.
func score(query, title string) int {
	if query == title {
		return 100
	}
	longest := max(len([]rune(query)), len([]rune(title)))
	if longest == 0 {
		return 0
	}
	dist := fuzzy.LevenshteinDistance(query, title)
	s := 100 - (dist*100+longest-1)/longest
	// Containment deserves better than raw edit distance gives it: matching
	// "alien" against "alien resurrection" is mostly insertions.
	if strings.Contains(title, query) {
		sub := 100 * len([]rune(query)) / longest
		if sub > s {
			s = sub
		}
	}
	if s < 0 {
		return 0
	}
	return s
}

// Candidates is the result of resolving user input against stored titles.
// Exactly one of the fields is populated: Exact when a single unambiguous
// title matched, Substring when containment matching found candidates, and
// Fuzzy as the last resort.
type Candidates struct {
	Exact     string
	Substring []string
	Fuzzy     []Match
}

// Resolved reports whether resolution found a single unambiguous title.
func (c Candidates) Resolved() bool {
	return c.Exact != ""
}

// Empty reports whether resolution found nothing at all.
func (c Candidates) Empty() bool {
	return c.Exact == "" && len(c.Substring) == 0 && len(c.Fuzzy) == 0
}

// Resolve matches user input against titles: exact normalized equality first,
// then substring containment, then fuzzy ranking. A single substring hit is
// promoted to an exact resolution; multiple hits are returned for the caller
// to disambiguate.
func Resolve(titles []string, input string) Candidates {
	q := Normalize(input)
	if q == "" {
		return Candidates{}
	}

	for _, title := range titles {
		if Normalize(title) == q {
			return Candidates{Exact: title}
		}
	}

	if subs := Substring(titles, input); len(subs) > 0 {
		if len(subs) == 1 {
			return Candidates{Exact: subs[0]}
		}
		return Candidates{Substring: subs}
	}

	return Candidates{Fuzzy: Fuzzy(titles, input, DefaultThreshold)}
}
