package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL UNIQUE,
    created_at           TEXT NOT NULL,
    students             INTEGER NOT NULL,
    mentors              INTEGER NOT NULL,
    lodging              TEXT,
    total_cost           REAL NOT NULL,
    revenue              REAL NOT NULL,
    gross_profit         REAL NOT NULL,
    net_profit           REAL NOT NULL,
    trip_json            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_lines (
    snapshot_id          TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
    position             INTEGER NOT NULL,
    category             TEXT NOT NULL,
    total                REAL NOT NULL,
    students_cost        REAL NOT NULL,
    mentors_cost         REAL NOT NULL,
    PRIMARY KEY (snapshot_id, category)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at);
`
