package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/generic"
	"github.com/warp/attendance-engine/store/memory"
)

var (
	person = generic.PersonID("bob")
	day    = generic.NewDate(2024, time.May, 7)
)

func TestMemory_SaveRequestAssignsID(t *testing.T) {
	ctx := context.Background()
	m := memory.New()

	id, err := m.SaveRequest(ctx, attendance.OvertimeRequest{
		RequestHeader:  attendance.RequestHeader{PersonID: person, Date: day, Workflow: 1},
		Type:           attendance.OvertimeAfterWork,
		RequestMinutes: 60,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	records, err := m.LoadDay(ctx, person, day)
	require.NoError(t, err)
	require.Len(t, records.Requests, 1)
	assert.Equal(t, id, records.Requests[0].Header().ID)
}

func TestMemory_SaveRequestReplacesSameID(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	h := attendance.RequestHeader{ID: "ot-1", PersonID: person, Date: day, Workflow: 1}

	_, err := m.SaveRequest(ctx, attendance.OvertimeRequest{RequestHeader: h, RequestMinutes: 30})
	require.NoError(t, err)
	_, err = m.SaveRequest(ctx, attendance.OvertimeRequest{RequestHeader: h, RequestMinutes: 45})
	require.NoError(t, err)

	records, err := m.LoadDay(ctx, person, day)
	require.NoError(t, err)
	require.Len(t, records.Requests, 1)
	assert.Equal(t, 45, records.Requests[0].(attendance.OvertimeRequest).RequestMinutes)
}

func TestMemory_SaveRequestMovesRedatedRecord(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	next := day.AddDays(1)

	// GIVEN: A record saved on one day
	h := attendance.RequestHeader{ID: "chg-1", PersonID: person, Date: day, Workflow: 1}
	_, err := m.SaveRequest(ctx, attendance.WorkTypeChangeRequest{RequestHeader: h, WorkTypeCode: "early"})
	require.NoError(t, err)
	_, err = m.SaveRequest(ctx, attendance.OvertimeRequest{
		RequestHeader: attendance.RequestHeader{ID: "ot-1", PersonID: person, Date: day, Workflow: 2},
	})
	require.NoError(t, err)

	// WHEN: The same id is saved again with another date
	h.Date = next
	_, err = m.SaveRequest(ctx, attendance.WorkTypeChangeRequest{RequestHeader: h, WorkTypeCode: "late"})
	require.NoError(t, err)

	// THEN: It leaves the old day and appears once on the new one
	old, err := m.LoadDay(ctx, person, day)
	require.NoError(t, err)
	require.Len(t, old.Requests, 1)
	assert.Equal(t, "ot-1", old.Requests[0].Header().ID)

	moved, err := m.LoadDay(ctx, person, next)
	require.NoError(t, err)
	require.Len(t, moved.Requests, 1)
	assert.Equal(t, "late", moved.Requests[0].(attendance.WorkTypeChangeRequest).WorkTypeCode)
}

func TestMemory_LoadDayIsolatesDays(t *testing.T) {
	ctx := context.Background()
	m := memory.New()

	require.NoError(t, m.SaveSchedule(ctx, attendance.Schedule{
		PersonID:            person,
		Date:                day,
		ScheduledWorkType:   attendance.WorkTypeLegalHoliday,
		SubstitutedWorkType: "normal",
	}))
	_, err := m.SaveRequest(ctx, attendance.DifferenceRequest{
		RequestHeader: attendance.RequestHeader{PersonID: person, Date: day.AddDays(1)},
	})
	require.NoError(t, err)

	records, err := m.LoadDay(ctx, person, day)
	require.NoError(t, err)
	assert.Equal(t, attendance.WorkTypeLegalHoliday, records.ScheduledWorkType)
	assert.Equal(t, "normal", records.SubstitutedWorkType)
	assert.Empty(t, records.Requests)

	// Unknown day loads empty
	other, err := m.LoadDay(ctx, "nobody", day)
	require.NoError(t, err)
	assert.Empty(t, other.ScheduledWorkType)
}

func TestMemory_LoadWorkflowsSkipsUnknown(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	require.NoError(t, m.SaveWorkflow(ctx, generic.Workflow{ID: 1, Status: generic.WorkflowCompleted}))

	got, err := m.LoadWorkflows(ctx, []generic.WorkflowID{1, 2})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	w, ok := got.Workflow(1)
	assert.True(t, ok)
	assert.Equal(t, generic.WorkflowCompleted, w.Status)
}

func TestMemory_Balances(t *testing.T) {
	ctx := context.Background()
	m := memory.New()

	_, err := m.LoadBalance(ctx, person, attendance.HolidayCodePaid)
	assert.ErrorIs(t, err, generic.ErrRecordNotFound)

	require.NoError(t, m.SaveBalance(ctx, person, generic.HolidayBalance{HolidayCode: attendance.HolidayCodePaid, GrantedHours: 4}))

	b, err := m.LoadBalance(ctx, person, attendance.HolidayCodePaid)
	require.NoError(t, err)
	assert.Equal(t, 4, b.GrantedHours)
}
