/*
Package sqlite provides a SQLite-backed attendance.RecordStore.

PURPOSE:
  Persists the records a day is evaluated from: calendar schedules, request
  records of every kind, the workflows gating them, and leave balances.
  The engine reads them back per (person, date).

KEY TABLES:
  schedules:        Scheduled / substituted work type per (person, date)
  requests:         One row per request record; kind + JSON payload
  workflows:        Current status and stage per workflow id
  holiday_balances: Granted / canceled days and hours per leave type

REQUEST PAYLOADS:
  Each request kind has its own fields. Rather than one wide table, the
  record is stored as JSON next to its kind and decoded with
  attendance.DecodeRequest. person_id, date and workflow_id are duplicated
  into columns so they can be indexed.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened in WAL mode so
  readers do not block each other.

USAGE:
  store, err := sqlite.New("./data/attendance.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - attendance/store.go: RecordStore contract
  - store/memory: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/generic"
)

// createdLayout is fixed width so created_at sorts as text.
const createdLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements attendance.RecordStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schedules (
		person_id TEXT NOT NULL,
		date TEXT NOT NULL,
		scheduled_work_type TEXT NOT NULL DEFAULT '',
		substituted_work_type TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL,
		PRIMARY KEY (person_id, date)
	);

	CREATE TABLE IF NOT EXISTS requests (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL,
		date TEXT NOT NULL,
		kind TEXT NOT NULL,
		workflow_id INTEGER NOT NULL,
		payload_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_requests_person_date
		ON requests(person_id, date);

	CREATE INDEX IF NOT EXISTS idx_requests_workflow
		ON requests(workflow_id);

	CREATE TABLE IF NOT EXISTS workflows (
		id INTEGER PRIMARY KEY,
		status TEXT NOT NULL,
		stage INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS holiday_balances (
		person_id TEXT NOT NULL,
		holiday_code TEXT NOT NULL,
		granted_days TEXT NOT NULL,
		granted_hours INTEGER NOT NULL,
		canceled_days TEXT NOT NULL,
		canceled_hours INTEGER NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (person_id, holiday_code)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// DAY RECORDS
// =============================================================================

// LoadDay returns the schedule and every request filed for person on date.
// A record whose payload cannot be decoded fails the load with a
// *generic.RecordError naming it.
func (s *Store) LoadDay(ctx context.Context, person generic.PersonID, date generic.Date) (attendance.DayRecords, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := attendance.DayRecords{PersonID: person, Date: date}

	err := s.db.QueryRowContext(ctx,
		"SELECT scheduled_work_type, substituted_work_type FROM schedules WHERE person_id = ? AND date = ?",
		person, date.String(),
	).Scan(&records.ScheduledWorkType, &records.SubstitutedWorkType)
	if err != nil && err != sql.ErrNoRows {
		return records, fmt.Errorf("failed to load schedule: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, kind, payload_json FROM requests WHERE person_id = ? AND date = ? ORDER BY created_at, id",
		person, date.String(),
	)
	if err != nil {
		return records, fmt.Errorf("failed to load requests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, kind, payload string
		if err := rows.Scan(&id, &kind, &payload); err != nil {
			return records, err
		}
		r, err := attendance.DecodeRequest(attendance.RequestKind(kind), []byte(payload))
		if err != nil {
			return records, &generic.RecordError{Kind: kind, RecordID: id, Err: err}
		}
		records.Requests = append(records.Requests, attendance.WithID(r, id))
	}
	return records, rows.Err()
}

// SaveSchedule inserts or replaces the schedule of a day.
func (s *Store) SaveSchedule(ctx context.Context, sched attendance.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO schedules (person_id, date, scheduled_work_type, substituted_work_type, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(person_id, date) DO UPDATE SET
			scheduled_work_type = excluded.scheduled_work_type,
			substituted_work_type = excluded.substituted_work_type,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		sched.PersonID, sched.Date.String(), sched.ScheduledWorkType, sched.SubstitutedWorkType,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// SaveRequest inserts a record, or replaces the one with the same id.
func (s *Store) SaveRequest(ctx context.Context, r attendance.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := r.Header()
	if h.ID == "" {
		h.ID = uuid.NewString()
		r = attendance.WithID(r, h.ID)
	}

	kind, payload, err := attendance.EncodeRequest(r)
	if err != nil {
		return "", err
	}

	query := `
		INSERT INTO requests (id, person_id, date, kind, workflow_id, payload_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			person_id = excluded.person_id,
			date = excluded.date,
			kind = excluded.kind,
			workflow_id = excluded.workflow_id,
			payload_json = excluded.payload_json
	`
	_, err = s.db.ExecContext(ctx, query,
		h.ID, h.PersonID, h.Date.String(), string(kind), int64(h.Workflow), string(payload),
		time.Now().UTC().Format(createdLayout),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save request: %w", err)
	}
	return h.ID, nil
}

// =============================================================================
// WORKFLOWS
// =============================================================================

// LoadWorkflows returns the known workflows among ids.
func (s *Store) LoadWorkflows(ctx context.Context, ids []generic.WorkflowID) (generic.WorkflowMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(generic.WorkflowMap, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = int64(id)
	}
	query := "SELECT id, status, stage FROM workflows WHERE id IN (?" + strings.Repeat(", ?", len(ids)-1) + ")"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var w generic.Workflow
		var status string
		if err := rows.Scan(&w.ID, &status, &w.Stage); err != nil {
			return nil, err
		}
		w.Status = generic.WorkflowStatus(status)
		out[w.ID] = w
	}
	return out, rows.Err()
}

// SaveWorkflow inserts or replaces a workflow.
func (s *Store) SaveWorkflow(ctx context.Context, w generic.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO workflows (id, status, stage, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			stage = excluded.stage,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		int64(w.ID), string(w.Status), w.Stage, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// =============================================================================
// BALANCES
// =============================================================================

func (s *Store) SaveBalance(ctx context.Context, person generic.PersonID, b generic.HolidayBalance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holiday_balances
		(person_id, holiday_code, granted_days, granted_hours, canceled_days, canceled_hours, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(person_id, holiday_code) DO UPDATE SET
			granted_days = excluded.granted_days,
			granted_hours = excluded.granted_hours,
			canceled_days = excluded.canceled_days,
			canceled_hours = excluded.canceled_hours,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		person, b.HolidayCode,
		b.GrantedDays.String(), b.GrantedHours,
		b.CanceledDays.String(), b.CanceledHours,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// LoadBalance returns generic.ErrRecordNotFound for an unknown code.
func (s *Store) LoadBalance(ctx context.Context, person generic.PersonID, code string) (generic.HolidayBalance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := generic.HolidayBalance{HolidayCode: code}
	var grantedDays, canceledDays string

	err := s.db.QueryRowContext(ctx,
		`SELECT granted_days, granted_hours, canceled_days, canceled_hours
		 FROM holiday_balances WHERE person_id = ? AND holiday_code = ?`,
		person, code,
	).Scan(&grantedDays, &b.GrantedHours, &canceledDays, &b.CanceledHours)

	if err == sql.ErrNoRows {
		return b, generic.ErrRecordNotFound
	}
	if err != nil {
		return b, err
	}

	if b.GrantedDays, err = decimal.NewFromString(grantedDays); err != nil {
		return b, &generic.RecordError{Kind: "holiday_balance", RecordID: code, Err: err}
	}
	if b.CanceledDays, err = decimal.NewFromString(canceledDays); err != nil {
		return b, &generic.RecordError{Kind: "holiday_balance", RecordID: code, Err: err}
	}
	return b, nil
}

var _ attendance.RecordStore = (*Store)(nil)
