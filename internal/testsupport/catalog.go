package testsupport

import (
	"database/sql"
	"testing"

	"setscan/internal/catalog"
)

// SongFixture is one performed song for a seeded show.
type SongFixture struct {
	Title string
	Segue bool
}

// SetFixture is one set of a seeded show.
type SetFixture struct {
	Name       string
	Encore     bool
	Soundcheck bool
	Songs      []SongFixture
}

// ShowFixture describes a complete show to seed into a test catalog.
type ShowFixture struct {
	Key     catalog.ShowKey
	Artist  string
	Venue   string
	City    string
	State   string
	Country string
	Sets    []SetFixture
}

// MustCreateCatalog creates an empty catalog database for tests and
// registers cleanup.
func MustCreateCatalog(t testing.TB, path string) *catalog.Store {
	t.Helper()

	store, err := catalog.Create(path)
	if err != nil {
		t.Fatalf("catalog.Create: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedShow inserts a full show into the catalog. Songs are created on
// first use and reused by name afterwards.
func SeedShow(t testing.TB, store *catalog.Store, fixture ShowFixture) {
	t.Helper()

	db := store.DB()
	actID := upsertByName(t, db, `SELECT id FROM acts WHERE name = ?`,
		`INSERT INTO acts (name, gd) VALUES (?, ?)`, fixture.Artist, fixture.Key.Band)

	var venueID int64
	if fixture.Venue != "" {
		res, err := db.Exec(`INSERT INTO venues (name, city, state, country) VALUES (?, ?, ?, ?)`,
			fixture.Venue, fixture.City, fixture.State, fixture.Country)
		if err != nil {
			t.Fatalf("insert venue: %v", err)
		}
		venueID, err = res.LastInsertId()
		if err != nil {
			t.Fatalf("venue id: %v", err)
		}
	}

	res, err := db.Exec(`INSERT INTO events (act_id, venue_id, year, month, day, early_late, canceled) VALUES (?, ?, ?, ?, ?, ?, 0)`,
		actID, nullableID(venueID), fixture.Key.Year, fixture.Key.Month, fixture.Key.Day, nullableText(fixture.Key.EarlyLate))
	if err != nil {
		t.Fatalf("insert event: %v", err)
	}
	eventID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("event id: %v", err)
	}

	for setIdx, set := range fixture.Sets {
		res, err := db.Exec(`INSERT INTO event_sets (event_id, seq_no, name, encore, soundcheck) VALUES (?, ?, ?, ?, ?)`,
			eventID, setIdx+1, set.Name, boolInt(set.Encore), boolInt(set.Soundcheck))
		if err != nil {
			t.Fatalf("insert event set: %v", err)
		}
		setID, err := res.LastInsertId()
		if err != nil {
			t.Fatalf("event set id: %v", err)
		}

		for songIdx, song := range set.Songs {
			songID := upsertByName(t, db, `SELECT id FROM songs WHERE name = ?`,
				`INSERT INTO songs (name) VALUES (?)`, song.Title)
			if _, err := db.Exec(`INSERT INTO event_songs (event_set_id, song_id, seq_no, segue) VALUES (?, ?, ?, ?)`,
				setID, songID, songIdx+1, boolInt(song.Segue)); err != nil {
				t.Fatalf("insert event song: %v", err)
			}
		}
	}
}

func upsertByName(t testing.TB, db *sql.DB, selectSQL, insertSQL string, args ...any) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(selectSQL, args[0]).Scan(&id)
	if err == nil {
		return id
	}
	if err != sql.ErrNoRows {
		t.Fatalf("lookup %q: %v", args[0], err)
	}

	res, err := db.Exec(insertSQL, args...)
	if err != nil {
		t.Fatalf("insert %q: %v", args[0], err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		t.Fatalf("insert id: %v", err)
	}
	return id
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
