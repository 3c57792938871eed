// Package csvfile persists a movie collection as a headered CSV file with
// the columns:
//
//	title,rating,year,poster,notes,imdb_id
//
// Blank cells mean absent fields. Files written before the notes and imdb_id
// columns existed are read transparently and rewritten in full by Migrate.
package csvfile

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/reelkeeper/reelkeeper/pkg/errors"
	"github.com/reelkeeper/reelkeeper/pkg/movies"
	"github.com/reelkeeper/reelkeeper/pkg/movies/search"
)

// Header lists the CSV columns in write order.
var Header = []string{"title", "rating", "year", "poster", "notes", "imdb_id"}

// Store is the CSV-backed storage implementation.
type Store struct {
	path string
}

// New opens (or creates) the CSV storage file at path and validates that it
// is loadable.
func New(path string) (*Store, error) {
	s := &Store{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.writeAll(nil); err != nil {
			return nil, err
		}
		return s, nil
	}

	if _, err := s.readAll(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// List returns a snapshot of the whole collection.
func (s *Store) List() (movies.Collection, error) {
	rows, err := s.readAll()
	if err != nil {
		return nil, err
	}
	c := make(movies.Collection, len(rows))
	for _, m := range rows {
		c[m.Title] = m
	}
	return c, nil
}

// Get returns the movie stored under the given title.
func (s *Store) Get(title string) (movies.Movie, error) {
	rows, err := s.readAll()
	if err != nil {
		return movies.Movie{}, err
	}
	idx := indexOf(rows, title)
	if idx < 0 {
		return movies.Movie{}, errors.NewNotFoundError("movie", title)
	}
	return rows[idx], nil
}

// Add persists a new movie. Fails with ErrAlreadyExists for known titles.
func (s *Store) Add(m movies.Movie) error {
	rows, err := s.readAll()
	if err != nil {
		return err
	}
	if indexOf(rows, m.Title) >= 0 {
		return errors.NewDuplicateError("movie", m.Title)
	}
	return s.writeAll(append(rows, m))
}

// Delete removes a movie. Fails with ErrNotFound for unknown titles.
func (s *Store) Delete(title string) error {
	rows, err := s.readAll()
	if err != nil {
		return err
	}
	idx := indexOf(rows, title)
	if idx < 0 {
		return errors.NewNotFoundError("movie", title)
	}
	return s.writeAll(append(rows[:idx], rows[idx+1:]...))
}

// UpdateRating replaces the rating of an existing movie.
func (s *Store) UpdateRating(title string, rating *float64) error {
	return s.update(title, func(m *movies.Movie) {
		m.Rating = rating
	})
}

// UpdateNotes replaces the notes of an existing movie.
func (s *Store) UpdateNotes(title, notes string) error {
	return s.update(title, func(m *movies.Movie) {
		m.Notes = notes
	})
}

// Migrate rewrites the backing file with the current header, backfilling the
// notes and imdb_id columns on files written by older versions. It reports
// whether the file changed.
func (s *Store) Migrate() (bool, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return false, errors.WrapIO("read", s.path, err)
	}
	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	if err != nil {
		return false, errors.WrapParse("csv", s.path, err)
	}
	if len(records) > 0 && equalHeader(records[0]) {
		return false, nil
	}

	rows, err := s.readAll()
	if err != nil {
		return false, err
	}
	if err := s.writeAll(rows); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) update(title string, fn func(*movies.Movie)) error {
	rows, err := s.readAll()
	if err != nil {
		return err
	}
	idx := indexOf(rows, title)
	if idx < 0 {
		return errors.NewNotFoundError("movie", title)
	}
	fn(&rows[idx])
	return s.writeAll(rows)
}

// readAll parses the whole file, tolerating older headers with missing
// columns and ignoring unknown ones. Rows without a title are skipped.
func (s *Store) readAll() ([]movies.Movie, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.WrapIO("read", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", s.path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["title"]; !ok {
		return nil, errors.WrapParse("csv", s.path, errors.New("missing title column"))
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rows []movies.Movie
	for _, row := range records[1:] {
		title := cell(row, "title")
		if title == "" {
			continue
		}
		m := movies.Movie{
			Title:  title,
			Year:   cell(row, "year"),
			Poster: cell(row, "poster"),
			Notes:  cell(row, "notes"),
			IMDbID: cell(row, "imdb_id"),
		}
		if rating, ok := movies.ParseRating(cell(row, "rating")); ok {
			m.Rating = &rating
		}
		rows = append(rows, m)
	}
	return rows, nil
}

func (s *Store) writeAll(rows []movies.Movie) error {
	f, err := os.Create(s.path)
	if err != nil {
		return errors.WrapIO("write", s.path, err)
	}

	w := csv.NewWriter(f)
	werr := w.Write(Header)
	for _, m := range rows {
		if werr != nil {
			break
		}
		rating := ""
		if m.Rated() {
			rating = strconv.FormatFloat(*m.Rating, 'f', -1, 64)
		}
		werr = w.Write([]string{m.Title, rating, m.Year, m.Poster, m.Notes, m.IMDbID})
	}
	if werr == nil {
		w.Flush()
		werr = w.Error()
	}

	// A failed close after buffered writes can still lose data.
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return errors.WrapIO("write", s.path, werr)
	}
	return nil
}

// indexOf locates a row by case-insensitive title match.
func indexOf(rows []movies.Movie, title string) int {
	q := search.Normalize(title)
	for i, m := range rows {
		if search.Normalize(m.Title) == q {
			return i
		}
	}
	return -1
}

func equalHeader(row []string) bool {
	if len(row) != len(Header) {
		return false
	}
	for i, name := range row {
		if strings.ToLower(strings.TrimSpace(name)) != Header[i] {
			return false
		}
	}
	return true
}
