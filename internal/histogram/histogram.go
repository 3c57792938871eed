// Package histogram renders the rating distribution of a collection as a PNG
// bar chart. Ratings are bucketed into fixed-width bins over the 0-10 scale;
// unrated movies are excluded.
package histogram

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/reelkeeper/reelkeeper/pkg/errors"
	"github.com/reelkeeper/reelkeeper/pkg/movies"
)

const (
	// Bins is the number of histogram buckets over the 0-10 rating scale.
	Bins = 20

	maxRating = 10.0
)

// Bucket counts the ratings falling into one bin.
type Bucket struct {
	Low   float64
	High  float64
	Count int
}

// Buckets computes the binned rating distribution. Ratings outside [0, 10]
// are clamped into the edge bins so off-scale source data still shows up.
func Buckets(c movies.Collection) []Bucket {
	width := maxRating / Bins
	buckets := make([]Bucket, Bins)
	for i := range buckets {
		buckets[i].Low = float64(i) * width
		buckets[i].High = float64(i+1) * width
	}

	for _, m := range c {
		if !m.Rated() {
			continue
		}
		idx := int(*m.Rating / width)
		if idx < 0 {
			idx = 0
		}
		if idx >= Bins {
			idx = Bins - 1
		}
		buckets[idx].Count++
	}
	return buckets
}

// Render writes a PNG histogram of all ratings to path. Returns
// ErrEmptyCollection when no movie is rated.
func Render(c movies.Collection, path string) error {
	buckets := Buckets(c)

	rated := 0
	for _, b := range buckets {
		rated += b.Count
	}
	if rated == 0 {
		return errors.ErrEmptyCollection
	}

	bars := make([]chart.Value, len(buckets))
	for i, b := range buckets {
		label := ""
		// Label every other bin to keep the axis readable.
		if i%2 == 0 {
			label = fmt.Sprintf("%.1f", b.Low)
		}
		bars[i] = chart.Value{Value: float64(b.Count), Label: label}
	}

	graph := chart.BarChart{
		Title:    "Movie Ratings Histogram",
		Width:    1024,
		Height:   512,
		BarWidth: 36,
		Bars:     bars,
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapIO("create directory for", path, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("write", path, err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return errors.WrapIO("render", path, err)
	}
	return nil
}
