/*
store.go - Persistence interface for day records

PURPOSE:
  The engine performs no I/O. A RecordStore is the collaborator that loads
  everything filed for one (person, date) and the workflows gating it, and
  accepts the writes that populate those records.

CONTRACT:
  - LoadDay never fails for a day with nothing filed: it returns empty
    DayRecords (scheduled work type "").
  - LoadWorkflows returns only the ids it knows. Missing ids read as "not
    applied" downstream and are not an error here.
  - LoadBalance returns generic.ErrRecordNotFound for an unknown code.

IMPLEMENTATIONS:
  - store/memory: Maps behind a sync.RWMutex, for tests and development
  - store/sqlite: SQLite with one JSON payload per request record
*/
package attendance

import (
	"context"

	"github.com/warp/attendance-engine/generic"
)

// RecordStore loads and saves the records a day is evaluated from.
type RecordStore interface {
	// LoadDay returns every record filed for person on date.
	LoadDay(ctx context.Context, person generic.PersonID, date generic.Date) (DayRecords, error)

	// LoadWorkflows resolves the given workflow ids.
	LoadWorkflows(ctx context.Context, ids []generic.WorkflowID) (generic.WorkflowMap, error)

	// SaveSchedule sets the scheduled and substituted work types of a day.
	SaveSchedule(ctx context.Context, schedule Schedule) error

	// SaveRequest stores a record, assigning an id when it has none.
	// Returns the stored id.
	SaveRequest(ctx context.Context, r Request) (string, error)

	// SaveWorkflow inserts or replaces a workflow.
	SaveWorkflow(ctx context.Context, w generic.Workflow) error

	SaveBalance(ctx context.Context, person generic.PersonID, b generic.HolidayBalance) error
	LoadBalance(ctx context.Context, person generic.PersonID, holidayCode string) (generic.HolidayBalance, error)
}

// Schedule is the calendar assignment of one day.
type Schedule struct {
	PersonID            generic.PersonID
	Date                generic.Date
	ScheduledWorkType   string
	SubstitutedWorkType string
}
