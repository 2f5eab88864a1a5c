// Package memory provides an in-memory attendance.RecordStore.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	schedules map[dayKey]attendance.Schedule
	requests  map[dayKey][]attendance.Request
	requestAt map[string]dayKey
	workflows map[generic.WorkflowID]generic.Workflow
	balances  map[balanceKey]generic.HolidayBalance
}

type dayKey struct {
	PersonID generic.PersonID
	Date     string
}

type balanceKey struct {
	PersonID    generic.PersonID
	HolidayCode string
}

func keyOf(person generic.PersonID, date generic.Date) dayKey {
	return dayKey{PersonID: person, Date: date.String()}
}

func New() *Memory {
	return &Memory{
		schedules: make(map[dayKey]attendance.Schedule),
		requests:  make(map[dayKey][]attendance.Request),
		requestAt: make(map[string]dayKey),
		workflows: make(map[generic.WorkflowID]generic.Workflow),
		balances:  make(map[balanceKey]generic.HolidayBalance),
	}
}

// LoadDay returns copies; callers cannot mutate the store through them.
func (m *Memory) LoadDay(_ context.Context, person generic.PersonID, date generic.Date) (attendance.DayRecords, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	k := keyOf(person, date)
	sched := m.schedules[k]
	return attendance.DayRecords{
		PersonID:            person,
		Date:                date,
		ScheduledWorkType:   sched.ScheduledWorkType,
		SubstitutedWorkType: sched.SubstitutedWorkType,
		Requests:            append([]attendance.Request(nil), m.requests[k]...),
	}, nil
}

func (m *Memory) LoadWorkflows(_ context.Context, ids []generic.WorkflowID) (generic.WorkflowMap, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(generic.WorkflowMap, len(ids))
	for _, id := range ids {
		if w, ok := m.workflows[id]; ok {
			out[id] = w
		}
	}
	return out, nil
}

func (m *Memory) SaveSchedule(_ context.Context, s attendance.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[keyOf(s.PersonID, s.Date)] = s
	return nil
}

// SaveRequest replaces a record with the same id, wherever it was filed, or
// appends.
func (m *Memory) SaveRequest(_ context.Context, r attendance.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := r.Header()
	if h.ID == "" {
		h.ID = uuid.NewString()
		r = attendance.WithID(r, h.ID)
	}

	k := keyOf(h.PersonID, h.Date)
	if prev, ok := m.requestAt[h.ID]; ok {
		list := m.requests[prev]
		for i, existing := range list {
			if existing.Header().ID != h.ID {
				continue
			}
			if prev == k {
				list[i] = r
				return h.ID, nil
			}
			m.requests[prev] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	m.requests[k] = append(m.requests[k], r)
	m.requestAt[h.ID] = k
	return h.ID, nil
}

func (m *Memory) SaveWorkflow(_ context.Context, w generic.Workflow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workflows[w.ID] = w
	return nil
}

func (m *Memory) SaveBalance(_ context.Context, person generic.PersonID, b generic.HolidayBalance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[balanceKey{PersonID: person, HolidayCode: b.HolidayCode}] = b
	return nil
}

func (m *Memory) LoadBalance(_ context.Context, person generic.PersonID, code string) (generic.HolidayBalance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.balances[balanceKey{PersonID: person, HolidayCode: code}]
	if !ok {
		return generic.HolidayBalance{}, generic.ErrRecordNotFound
	}
	return b, nil
}

var _ attendance.RecordStore = (*Memory)(nil)
