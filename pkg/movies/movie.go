// Package movies defines the movie record and collection types together with
// the pure operations (stats, sorting, filtering, random pick) that commands
// run over an in-memory snapshot loaded from storage.
package movies

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Movie is one stored movie record. Title is the unique key within a
// collection. Year is kept as the raw string from the source data because
// lookup APIs return values like "2015–2019" or "1997/II"; use YearInt for
// the parsed form. A nil Rating means the movie has no usable rating and is
// excluded from statistics.
type Movie struct {
	Title  string   `json:"title" yaml:"title"`
	Year   string   `json:"year,omitempty" yaml:"year,omitempty"`
	Rating *float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	Poster string   `json:"poster,omitempty" yaml:"poster,omitempty"`
	Notes  string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	IMDbID string   `json:"imdb_id,omitempty" yaml:"imdb_id,omitempty"`
}

// Rated reports whether the movie has a rating.
func (m Movie) Rated() bool {
	return m.Rating != nil
}

// YearInt returns the parsed release year, if the raw year has one.
func (m Movie) YearInt() (int, bool) {
	return ParseYear(m.Year)
}

// Rate returns a movie copy with the given rating set.
func (m Movie) Rate(rating float64) Movie {
	m.Rating = &rating
	return m
}

// ParseYear extracts an integer year from raw source data. The leading four
// digits decide: "1997" and "1997/II" and "2015–2019" all parse, while "N/A",
// "", and non-numeric input report absence. It never fails hard.
func ParseYear(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if len(s) < 4 {
		return 0, false
	}
	head := s[:4]
	for _, r := range head {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return year, true
}

// ParseRating converts raw source data to a finite float rating. Both '.'
// and ',' decimal separators are accepted; "N/A", empty input, NaN and ±Inf
// report absence. No range is enforced here.
func ParseRating(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "n/a") {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Collection maps canonical titles to movie records. Keys are unique; every
// key maps to a record whose Title matches the key.
type Collection map[string]Movie

// Titles returns all titles sorted case-insensitively, giving every
// operation over the collection a deterministic base order.
func (c Collection) Titles() []string {
	titles := make([]string, 0, len(c))
	for title := range c {
		titles = append(titles, title)
	}
	sort.Slice(titles, func(i, j int) bool {
		a, b := strings.ToLower(titles[i]), strings.ToLower(titles[j])
		if a != b {
			return a < b
		}
		return titles[i] < titles[j]
	})
	return titles
}

// Movies returns all records in title order.
func (c Collection) Movies() []Movie {
	out := make([]Movie, 0, len(c))
	for _, title := range c.Titles() {
		out = append(out, c[title])
	}
	return out
}
