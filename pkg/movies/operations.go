package movies

import (
	"math/rand/v2"
	"sort"

	"github.com/reelkeeper/reelkeeper/pkg/errors"
)

// Stats summarizes the rated part of a collection. Unrated movies count
// toward Total but are excluded from every other field.
type Stats struct {
	Average float64 `json:"average" yaml:"average"`
	Median  float64 `json:"median" yaml:"median"`
	Best    Movie   `json:"best" yaml:"best"`
	Worst   Movie   `json:"worst" yaml:"worst"`
	Rated   int     `json:"rated" yaml:"rated"`
	Total   int     `json:"total" yaml:"total"`
}

// ComputeStats computes average, median, best and worst over movies that have
// a rating. Returns ErrEmptyCollection when no movie is rated. The median of
// an even-sized set is the upper middle element. Ties for best and worst go
// to the first movie in title order.
func ComputeStats(c Collection) (Stats, error) {
	stats := Stats{Total: len(c)}

	var ratings []float64
	for _, title := range c.Titles() {
		m := c[title]
		if !m.Rated() {
			continue
		}
		ratings = append(ratings, *m.Rating)
		if !stats.Best.Rated() || *m.Rating > *stats.Best.Rating {
			stats.Best = m
		}
		if !stats.Worst.Rated() || *m.Rating < *stats.Worst.Rating {
			stats.Worst = m
		}
	}
	if len(ratings) == 0 {
		return Stats{}, errors.ErrEmptyCollection
	}

	var sum float64
	for _, r := range ratings {
		sum += r
	}
	sort.Float64s(ratings)

	stats.Rated = len(ratings)
	stats.Average = sum / float64(len(ratings))
	stats.Median = ratings[len(ratings)/2]
	return stats, nil
}

// RandomPick returns a uniformly chosen movie from the collection, rated or
// not. Returns ErrEmptyCollection when there is nothing to pick from.
func RandomPick(c Collection) (Movie, error) {
	titles := c.Titles()
	if len(titles) == 0 {
		return Movie{}, errors.ErrEmptyCollection
	}
	return c[titles[rand.IntN(len(titles))]], nil
}

// SortByRating returns all movies ordered by rating, highest first. Movies
// without a rating come after all rated movies; ties keep title order.
func SortByRating(c Collection) []Movie {
	sorted := c.Movies()
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.Rated() && !b.Rated():
			return true
		case !a.Rated():
			return false
		default:
			return *a.Rating > *b.Rating
		}
	})
	return sorted
}

// SortByYear returns all movies ordered by parsed release year, oldest first
// unless latestFirst is set. Movies without a parseable year come last in
// either direction; ties keep title order.
func SortByYear(c Collection, latestFirst bool) []Movie {
	sorted := c.Movies()
	sort.SliceStable(sorted, func(i, j int) bool {
		ya, oka := sorted[i].YearInt()
		yb, okb := sorted[j].YearInt()
		switch {
		case oka && !okb:
			return true
		case !oka:
			return false
		case latestFirst:
			return ya > yb
		default:
			return ya < yb
		}
	})
	return sorted
}

// FilterOptions bound a Filter call. A nil bound is unconstrained.
type FilterOptions struct {
	MinRating *float64
	StartYear *int
	EndYear   *int
}

// Filter returns the subset of movies that satisfy every active bound.
// A movie missing the field an active bound needs is excluded.
func Filter(c Collection, opts FilterOptions) Collection {
	out := make(Collection)
	for title, m := range c {
		if opts.MinRating != nil && (!m.Rated() || *m.Rating < *opts.MinRating) {
			continue
		}
		if opts.StartYear != nil || opts.EndYear != nil {
			year, ok := m.YearInt()
			if !ok {
				continue
			}
			if opts.StartYear != nil && year < *opts.StartYear {
				continue
			}
			if opts.EndYear != nil && year > *opts.EndYear {
				continue
			}
		}
		out[title] = m
	}
	return out
}
