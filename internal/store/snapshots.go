// Package store keeps named budget snapshots in SQLite so scenarios can be
// compared later.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/theirongolddev/tripbudget/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when no snapshot matches.
var ErrNotFound = errors.New("snapshot not found")

// Store provides SQLite-backed snapshot storage.
type Store struct {
	db *sqlx.DB
}

// Snapshot is one saved scenario. Trip is the full input so the budget can
// be recomputed later under newer rules.
type Snapshot struct {
	ID          string    `db:"id" json:"id" yaml:"id"`
	Name        string    `db:"name" json:"name" yaml:"name"`
	CreatedAt   time.Time `db:"-" json:"created_at" yaml:"created_at"`
	Students    int       `db:"students" json:"students" yaml:"students"`
	Mentors     int       `db:"mentors" json:"mentors" yaml:"mentors"`
	Lodging     string    `db:"lodging" json:"lodging" yaml:"lodging"`
	TotalCost   float64   `db:"total_cost" json:"total_cost" yaml:"total_cost"`
	Revenue     float64   `db:"revenue" json:"revenue" yaml:"revenue"`
	GrossProfit float64   `db:"gross_profit" json:"gross_profit" yaml:"gross_profit"`
	NetProfit   float64   `db:"net_profit" json:"net_profit" yaml:"net_profit"`

	Lines []model.LineItem `db:"-" json:"lines,omitempty" yaml:"lines,omitempty"`
	Trip  model.TripConfig `db:"-" json:"trip" yaml:"-"`
}

type snapshotRow struct {
	Snapshot
	CreatedAtRaw string `db:"created_at"`
	TripJSON     string `db:"trip_json"`
}

type lineRow struct {
	Category     string  `db:"category"`
	Total        float64 `db:"total"`
	StudentsCost float64 `db:"students_cost"`
	MentorsCost  float64 `db:"mentors_cost"`
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores trip and its computed result under name, replacing any
// snapshot with the same name.
func (s *Store) Save(ctx context.Context, name string, trip model.TripConfig, res model.BudgetResult) (Snapshot, error) {
	tripJSON, err := json.Marshal(trip)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encoding trip: %w", err)
	}

	lodging, _ := trip.Lodging()
	snap := Snapshot{
		ID:          uuid.NewString(),
		Name:        name,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		Students:    trip.Group.Students,
		Mentors:     trip.Group.Mentors,
		Lodging:     lodging.Name,
		TotalCost:   res.TotalCost,
		Revenue:     res.Revenue.Total,
		GrossProfit: res.GrossProfit,
		NetProfit:   res.NetProfit,
		Lines:       res.Costs.Lines(),
		Trip:        trip,
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return Snapshot{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM snapshots WHERE name = ?", name); err != nil {
		return Snapshot{}, fmt.Errorf("replacing snapshot: %w", err)
	}

	_, err = tx.NamedExecContext(ctx, `INSERT INTO snapshots
		(id, name, created_at, students, mentors, lodging,
		 total_cost, revenue, gross_profit, net_profit, trip_json)
		VALUES (:id, :name, :created_at, :students, :mentors, :lodging,
		 :total_cost, :revenue, :gross_profit, :net_profit, :trip_json)`,
		snapshotRow{
			Snapshot:     snap,
			CreatedAtRaw: snap.CreatedAt.Format(time.RFC3339),
			TripJSON:     string(tripJSON),
		})
	if err != nil {
		return Snapshot{}, fmt.Errorf("inserting snapshot: %w", err)
	}

	for i, l := range snap.Lines {
		_, err = tx.ExecContext(ctx, `INSERT INTO snapshot_lines
			(snapshot_id, position, category, total, students_cost, mentors_cost)
			VALUES (?, ?, ?, ?, ?, ?)`,
			snap.ID, i, l.Category, l.Total, l.StudentsCost, l.MentorsCost)
		if err != nil {
			return Snapshot{}, fmt.Errorf("inserting line %s: %w", l.Category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// List returns every snapshot, newest first, without lines or trip data.
func (s *Store) List(ctx context.Context) ([]Snapshot, error) {
	var rows []snapshotRow
	err := s.db.SelectContext(ctx, &rows, `SELECT
		id, name, created_at, students, mentors, lodging,
		total_cost, revenue, gross_profit, net_profit, trip_json
		FROM snapshots ORDER BY created_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}

	out := make([]Snapshot, 0, len(rows))
	for _, r := range rows {
		snap := r.Snapshot
		snap.CreatedAt, _ = time.Parse(time.RFC3339, r.CreatedAtRaw)
		out = append(out, snap)
	}
	return out, nil
}

// Get loads a snapshot by name or id, including its lines and trip.
func (s *Store) Get(ctx context.Context, nameOrID string) (Snapshot, error) {
	var r snapshotRow
	err := s.db.GetContext(ctx, &r, `SELECT
		id, name, created_at, students, mentors, lodging,
		total_cost, revenue, gross_profit, net_profit, trip_json
		FROM snapshots WHERE name = ? OR id = ? LIMIT 1`, nameOrID, nameOrID)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, nameOrID)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading snapshot: %w", err)
	}

	snap := r.Snapshot
	snap.CreatedAt, _ = time.Parse(time.RFC3339, r.CreatedAtRaw)
	if err := json.Unmarshal([]byte(r.TripJSON), &snap.Trip); err != nil {
		return Snapshot{}, fmt.Errorf("decoding trip: %w", err)
	}

	var lines []lineRow
	err = s.db.SelectContext(ctx, &lines, `SELECT category, total, students_cost, mentors_cost
		FROM snapshot_lines WHERE snapshot_id = ? ORDER BY position`, snap.ID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading lines: %w", err)
	}
	for _, l := range lines {
		snap.Lines = append(snap.Lines, model.LineItem{
			Category:     l.Category,
			Total:        l.Total,
			StudentsCost: l.StudentsCost,
			MentorsCost:  l.MentorsCost,
		})
	}
	return snap, nil
}

// Delete removes a snapshot by name or id.
func (s *Store) Delete(ctx context.Context, nameOrID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE name = ? OR id = ?", nameOrID, nameOrID)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, nameOrID)
	}
	return nil
}

// Count returns the number of stored snapshots.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM snapshots")
	return n, err
}
