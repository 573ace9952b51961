package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// ShowKey identifies one performance in the catalog.
type ShowKey struct {
	Year      int
	Month     int
	Day       int
	Band      int    // 1 for the main act, 0 for side bands
	EarlyLate string // "EARLY", "LATE", or "" when the date had one show
}

// SetlistEntry is one performed song in catalog order.
type SetlistEntry struct {
	SongName string
	SetSeq   int
	SetName  string
	SongSeq  int
	Segue    bool
	Encore   bool
}

// SetInfo summarizes one set of a show.
type SetInfo struct {
	SetSeq    int
	SetName   string
	Encore    bool
	SongCount int
}

// Show carries venue-level facts about a performance.
type Show struct {
	Artist    string
	Venue     string
	City      string
	State     string
	Country   string
	EarlyLate string
}

// Store provides read-only access to the canonical show database.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to an existing catalog database.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("catalog database not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("stat catalog %s: %w", path, err)
	}
	return open(path)
}

// Create opens the database at path, creating it and applying the schema
// when missing. Used by fixtures and the import tooling.
func Create(path string) (*Store, error) {
	store, err := open(path)
	if err != nil {
		return nil, err
	}
	if _, err := store.db.Exec(Schema); err != nil {
		_ = store.db.Close()
		return nil, fmt.Errorf("apply catalog schema: %w", err)
	}
	return store, nil
}

func open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// DB exposes the handle for fixtures and import tooling.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Vocabulary returns every known song name keyed by its lowercased form.
func (s *Store) Vocabulary(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM songs WHERE name IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	vocab := make(map[string]string)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan song name: %w", err)
		}
		vocab[strings.ToLower(strings.TrimSpace(name))] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return vocab, nil
}

const setlistSelect = `
SELECT s.name, es.seq_no, es.name, ev_s.seq_no, ev_s.segue, es.encore
FROM events e
JOIN event_sets es ON e.id = es.event_id
JOIN event_songs ev_s ON es.id = ev_s.event_set_id
JOIN songs s ON ev_s.song_id = s.id
JOIN acts a ON e.act_id = a.id
WHERE e.year = ? AND e.month = ? AND e.day = ?
AND a.gd = ? AND es.soundcheck = 0`

// Setlist returns the performed songs for a show in set and song order.
// Soundcheck sets are excluded.
func (s *Store) Setlist(ctx context.Context, key ShowKey) ([]SetlistEntry, error) {
	query := setlistSelect
	args := []any{key.Year, key.Month, key.Day, key.Band}
	if key.EarlyLate != "" {
		query += " AND e.early_late = ?"
		args = append(args, key.EarlyLate)
	}
	query += " ORDER BY es.seq_no, ev_s.seq_no"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query setlist: %w", err)
	}
	defer rows.Close()

	var entries []SetlistEntry
	for rows.Next() {
		var entry SetlistEntry
		var segue, encore int
		if err := rows.Scan(&entry.SongName, &entry.SetSeq, &entry.SetName, &entry.SongSeq, &segue, &encore); err != nil {
			return nil, fmt.Errorf("scan setlist row: %w", err)
		}
		entry.Segue = segue == 1
		entry.Encore = encore == 1
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate setlist: %w", err)
	}
	return entries, nil
}

const setInfoSelect = `
SELECT es.seq_no, es.name, es.encore, COUNT(ev_s.id)
FROM events e
JOIN event_sets es ON e.id = es.event_id
JOIN event_songs ev_s ON es.id = ev_s.event_set_id
JOIN acts a ON e.act_id = a.id
WHERE e.year = ? AND e.month = ? AND e.day = ?
AND a.gd = ? AND es.soundcheck = 0`

// SetInfo returns the set structure of a show with per-set song counts.
func (s *Store) SetInfo(ctx context.Context, key ShowKey) ([]SetInfo, error) {
	query := setInfoSelect
	args := []any{key.Year, key.Month, key.Day, key.Band}
	if key.EarlyLate != "" {
		query += " AND e.early_late = ?"
		args = append(args, key.EarlyLate)
	}
	query += " GROUP BY es.id ORDER BY es.seq_no"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query set info: %w", err)
	}
	defer rows.Close()

	var sets []SetInfo
	for rows.Next() {
		var info SetInfo
		var encore int
		if err := rows.Scan(&info.SetSeq, &info.SetName, &encore, &info.SongCount); err != nil {
			return nil, fmt.Errorf("scan set info row: %w", err)
		}
		info.Encore = encore == 1
		sets = append(sets, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate set info: %w", err)
	}
	return sets, nil
}

// ErrShowNotFound is returned when no performance matches the key.
var ErrShowNotFound = errors.New("show not found")

// ShowInfo returns venue-level facts for the show. When a date holds both
// an early and a late show and the key names one, that one wins; otherwise
// the first row is returned.
func (s *Store) ShowInfo(ctx context.Context, key ShowKey) (*Show, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT a.name, v.name, v.city, v.state, v.country, e.early_late
FROM events e
JOIN acts a ON e.act_id = a.id
JOIN venues v ON e.venue_id = v.id
WHERE e.year = ? AND e.month = ? AND e.day = ?
AND a.gd = ? AND e.canceled = 0`,
		key.Year, key.Month, key.Day, key.Band)
	if err != nil {
		return nil, fmt.Errorf("query show info: %w", err)
	}
	defer rows.Close()

	var shows []Show
	for rows.Next() {
		var show Show
		var artist, venue, city, state, country, earlyLate sql.NullString
		if err := rows.Scan(&artist, &venue, &city, &state, &country, &earlyLate); err != nil {
			return nil, fmt.Errorf("scan show info row: %w", err)
		}
		show.Artist = artist.String
		show.Venue = venue.String
		show.City = city.String
		show.State = state.String
		show.Country = country.String
		show.EarlyLate = earlyLate.String
		shows = append(shows, show)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate show info: %w", err)
	}

	if len(shows) == 0 {
		return nil, fmt.Errorf("%w: %04d-%02d-%02d", ErrShowNotFound, key.Year, key.Month, key.Day)
	}
	if len(shows) > 1 && key.EarlyLate != "" {
		for i := range shows {
			if shows[i].EarlyLate == key.EarlyLate {
				return &shows[i], nil
			}
		}
	}
	return &shows[0], nil
}
