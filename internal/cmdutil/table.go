package cmdutil

import (
	"fmt"

	"github.com/reelkeeper/reelkeeper/pkg/movies"
)

// MovieTable prepares an ordered movie list for rendering.
func MovieTable(list []movies.Movie) Table {
	rows := make([][]string, 0, len(list))
	for _, m := range list {
		rows = append(rows, []string{m.Title, YearCell(m), RatingCell(m), m.Notes})
	}
	return Table{
		Headers: []string{"Title", "Year", "Rating", "Notes"},
		Rows:    rows,
		Raw:     list,
	}
}

// RatingCell formats a rating for display; absent ratings show as "N/A".
func RatingCell(m movies.Movie) string {
	if !m.Rated() {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *m.Rating)
}

// YearCell formats a year for display; absent years show as "?".
func YearCell(m movies.Movie) string {
	if m.Year == "" {
		return "?"
	}
	return m.Year
}

// OneLine formats a movie the way the interactive menu prints it:
// "Title (Year): Rating".
func OneLine(m movies.Movie) string {
	return fmt.Sprintf("%s (%s): %s", m.Title, YearCell(m), RatingCell(m))
}
