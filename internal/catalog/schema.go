package catalog

// Schema mirrors the subset of the canonical show database that the
// reconciliation queries touch.
const Schema = `
CREATE TABLE IF NOT EXISTS acts (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    gd INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS venues (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    city TEXT,
    state TEXT,
    country TEXT
);

CREATE TABLE IF NOT EXISTS songs (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY,
    act_id INTEGER NOT NULL REFERENCES acts(id),
    venue_id INTEGER REFERENCES venues(id),
    year INTEGER NOT NULL,
    month INTEGER NOT NULL,
    day INTEGER NOT NULL,
    early_late TEXT,
    canceled INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS event_sets (
    id INTEGER PRIMARY KEY,
    event_id INTEGER NOT NULL REFERENCES events(id),
    seq_no INTEGER NOT NULL,
    name TEXT,
    encore INTEGER NOT NULL DEFAULT 0,
    soundcheck INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS event_songs (
    id INTEGER PRIMARY KEY,
    event_set_id INTEGER NOT NULL REFERENCES event_sets(id),
    song_id INTEGER NOT NULL REFERENCES songs(id),
    seq_no INTEGER NOT NULL,
    segue INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_events_date ON events(year, month, day);
CREATE INDEX IF NOT EXISTS idx_event_sets_event ON event_sets(event_id);
CREATE INDEX IF NOT EXISTS idx_event_songs_set ON event_songs(event_set_id);
`
