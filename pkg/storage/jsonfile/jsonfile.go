// Package jsonfile persists a movie collection as a JSON object keyed by
// title:
//
//	{
//	  "Titanic": {"year": "1997", "rating": 8.5, "poster": null}
//	}
//
// A missing file is created empty. A file whose root is not an object is a
// fatal load error; per-record oddities degrade to absent fields instead.
package jsonfile

import (
	"encoding/json"
	"os"

	"github.com/reelkeeper/reelkeeper/pkg/errors"
	"github.com/reelkeeper/reelkeeper/pkg/movies"
	"github.com/reelkeeper/reelkeeper/pkg/movies/search"
)

// record is the on-disk shape of one movie, without its title key.
type record struct {
	Year   string   `json:"year,omitempty"`
	Rating *float64 `json:"rating"`
	Poster string   `json:"poster,omitempty"`
	Notes  string   `json:"notes,omitempty"`
	IMDbID string   `json:"imdb_id,omitempty"`
}

// Store is the JSON-backed storage implementation.
type Store struct {
	path string
}

// New opens (or creates) the JSON storage file at path and validates that it
// is loadable.
func New(path string) (*Store, error) {
	s := &Store{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.write(map[string]record{}); err != nil {
			return nil, err
		}
		return s, nil
	}

	// Corrupt storage is fatal and surfaced immediately rather than on the
	// first command that happens to read.
	if _, err := s.read(); err != nil {
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
	data, err := s.read()
	if err != nil {
		return nil, err
	}

	c := make(movies.Collection, len(data))
	for title, rec := range data {
		if title == "" {
			continue
		}
		c[title] = movies.Movie{
			Title:  title,
			Year:   rec.Year,
			Rating: rec.Rating,
			Poster: rec.Poster,
			Notes:  rec.Notes,
			IMDbID: rec.IMDbID,
		}
	}
	return c, nil
}

// Get returns the movie stored under the given title.
func (s *Store) Get(title string) (movies.Movie, error) {
	c, err := s.List()
	if err != nil {
		return movies.Movie{}, err
	}
	canonical, ok := findTitle(c, title)
	if !ok {
		return movies.Movie{}, errors.NewNotFoundError("movie", title)
	}
	return c[canonical], nil
}

// Add persists a new movie. Fails with ErrAlreadyExists for known titles.
func (s *Store) Add(m movies.Movie) error {
	data, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := findKey(data, m.Title); ok {
		return errors.NewDuplicateError("movie", m.Title)
	}
	data[m.Title] = record{
		Year:   m.Year,
		Rating: m.Rating,
		Poster: m.Poster,
		Notes:  m.Notes,
		IMDbID: m.IMDbID,
	}
	return s.write(data)
}

// Delete removes a movie. Fails with ErrNotFound for unknown titles.
func (s *Store) Delete(title string) error {
	data, err := s.read()
	if err != nil {
		return err
	}
	canonical, ok := findKey(data, title)
	if !ok {
		return errors.NewNotFoundError("movie", title)
	}
	delete(data, canonical)
	return s.write(data)
}

// UpdateRating replaces the rating of an existing movie.
func (s *Store) UpdateRating(title string, rating *float64) error {
	return s.update(title, func(rec *record) {
		rec.Rating = rating
	})
}

// UpdateNotes replaces the notes of an existing movie.
func (s *Store) UpdateNotes(title, notes string) error {
	return s.update(title, func(rec *record) {
		rec.Notes = notes
	})
}

func (s *Store) update(title string, fn func(*record)) error {
	data, err := s.read()
	if err != nil {
		return err
	}
	canonical, ok := findKey(data, title)
	if !ok {
		return errors.NewNotFoundError("movie", title)
	}
	rec := data[canonical]
	fn(&rec)
	data[canonical] = rec
	return s.write(data)
}

func (s *Store) read() (map[string]record, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.WrapIO("read", s.path, err)
	}
	var data map[string]record
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.WrapParse("json", s.path, err)
	}
	if data == nil {
		data = map[string]record{}
	}
	return data, nil
}

func (s *Store) write(data map[string]record) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.WrapParse("json", s.path, err)
	}
	if err := os.WriteFile(s.path, append(raw, '\n'), 0o644); err != nil {
		return errors.WrapIO("write", s.path, err)
	}
	return nil
}

// findKey locates the canonical map key matching title case-insensitively.
func findKey(data map[string]record, title string) (string, bool) {
	q := search.Normalize(title)
	for key := range data {
		if search.Normalize(key) == q {
			return key, true
		}
	}
	return "", false
}

// findTitle is findKey over an already materialized collection.
func findTitle(c movies.Collection, title string) (string, bool) {
	q := search.Normalize(title)
	for key := range c {
		if search.Normalize(key) == q {
			return key, true
		}
	}
	return "", false
}
