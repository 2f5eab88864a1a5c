/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Day evaluation through the router (records in, summary out)
- Error status mapping (400 / 404 / 409)
- Balance remainders and the pure calculators
*/
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/generic"
	"github.com/warp/attendance-engine/store/memory"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := attendance.NewService(memory.New(), zap.NewNop(), 8)
	return NewRouter(NewHandler(svc, zap.NewNop()))
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch v := body.(type) {
		case string:
			buf.WriteString(v)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(v))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

// =============================================================================
// DAYS
// =============================================================================

func TestDayFlow_AllDayLeave(t *testing.T) {
	h := newTestRouter(t)

	// GIVEN: A work day, a completed workflow and an all-day paid leave
	rec := do(t, h, http.MethodPut, "/api/persons/emp-1/days/2024-04-01/schedule",
		ScheduleRequest{ScheduledWorkType: "normal"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/workflows/1", WorkflowRequest{Status: generic.WorkflowCompleted})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/persons/emp-1/requests", `{
		"kind": "holiday",
		"date": "2024-04-01",
		"workflow_id": 1,
		"category": "holiday",
		"holiday_code": "paid",
		"range": "all",
		"request_start_date": "2024-04-01",
		"request_end_date": "2024-04-01",
		"use_days": "1"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	saved := decodeBody[SavedRequestDTO](t, rec)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, attendance.KindHoliday, saved.Kind)

	// WHEN: Evaluating the day
	rec = do(t, h, http.MethodGet, "/api/persons/emp-1/days/2024-04-01?completed=true", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// THEN: The day is a full holiday with one paid day
	var summary map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "emp-1", summary["person_id"])
	assert.Equal(t, true, summary["all_holiday"])
	assert.Equal(t, false, summary["work_day"])
	assert.Equal(t, []any{}, summary["hourly_holidays"])

	totals := summary["totals"].(map[string]any)
	assert.Equal(t, "1", totals["paid_holiday_days"])
	assert.Equal(t, "0", totals["work_days"])
}

func TestDayFlow_HourlyHolidays(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodPut, "/api/workflows/2", WorkflowRequest{Status: generic.WorkflowApplied})

	for _, window := range [][2]string{{"09:00", "10:00"}, {"10:00", "11:30"}} {
		rec := do(t, h, http.MethodPost, "/api/persons/emp-2/requests", `{
			"kind": "holiday",
			"date": "2024-04-01",
			"workflow_id": 2,
			"category": "holiday",
			"holiday_code": "paid",
			"range": "hourly",
			"start_time": "2024-04-01T`+window[0]+`:00Z",
			"end_time": "2024-04-01T`+window[1]+`:00Z",
			"request_start_date": "2024-04-01",
			"request_end_date": "2024-04-01",
			"use_days": "0",
			"use_hours": 1
		}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := do(t, h, http.MethodGet, "/api/persons/emp-2/days/2024-04-01/hourly-holidays", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []IntervalDTO{{Start: 540, End: 690}}, decodeBody[[]IntervalDTO](t, rec))

	// Completed only: the applied requests do not count yet
	rec = do(t, h, http.MethodGet, "/api/persons/emp-2/days/2024-04-01/hourly-holidays?completed=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]IntervalDTO](t, rec))
}

func TestDayFlow_DuplicateRecordConflicts(t *testing.T) {
	h := newTestRouter(t)

	body := `{"kind":"difference","date":"2024-04-01","workflow_id":3,"work_type_code":"early"}`
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/persons/emp-3/requests", body).Code)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/persons/emp-3/requests", body).Code)

	rec := do(t, h, http.MethodGet, "/api/persons/emp-3/days/2024-04-01", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decodeBody[ErrorResponse](t, rec).Details, "duplicate")
}

func TestDayHandlers_BadInput(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"bad date", http.MethodGet, "/api/persons/p/days/2024-13-40", nil, http.StatusBadRequest},
		{"bad completed flag", http.MethodGet, "/api/persons/p/days/2024-04-01?completed=maybe", nil, http.StatusBadRequest},
		{"unknown kind", http.MethodPost, "/api/persons/p/requests", `{"kind":"vacation","date":"2024-04-01"}`, http.StatusBadRequest},
		{"missing date", http.MethodPost, "/api/persons/p/requests", `{"kind":"overtime","request_minutes":10}`, http.StatusBadRequest},
		{"bad workflow id", http.MethodPut, "/api/workflows/abc", WorkflowRequest{Status: generic.WorkflowApplied}, http.StatusBadRequest},
		{"bad workflow status", http.MethodPut, "/api/workflows/1", `{"status":"approved_twice"}`, http.StatusBadRequest},
		{"bad schedule body", http.MethodPut, "/api/persons/p/days/2024-04-01/schedule", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decodeBody[ErrorResponse](t, rec).Error)
		})
	}
}

// =============================================================================
// BALANCES
// =============================================================================

func TestBalanceRemains(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPut, "/api/persons/emp-4/balances/paid", BalanceRequest{
		GrantedDays:  decimal.NewFromInt(2),
		GrantedHours: 3,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// GIVEN: 2 days 3 hours, WHEN: 5 hours are used, THEN: 1 day 6 hours
	rec = do(t, h, http.MethodGet, "/api/persons/emp-4/balances/paid/remains?use_hours=5", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decodeBody[RemainderDTO](t, rec)
	assert.True(t, decimal.NewFromInt(1).Equal(got.Days), "days = %s", got.Days)
	assert.Equal(t, 6, got.Hours)
	assert.True(t, got.HasRemaining)
}

func TestBalanceRemains_Errors(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/persons/emp-5/balances/paid/remains", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/persons/emp-5/balances/paid/remains?use_days=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/persons/emp-5/balances/paid/remains?use_hours=1.5", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// CALCULATORS
// =============================================================================

func TestIntervalOp(t *testing.T) {
	h := newTestRouter(t)
	minute := func(n int) *int { return &n }
	yes := true

	tests := []struct {
		op   string
		req  IntervalOpRequest
		want IntervalOpDTO
	}{
		{
			op:   "combine",
			req:  IntervalOpRequest{Intervals: []IntervalDTO{{60, 120}, {0, 60}, {300, 400}}},
			want: IntervalOpDTO{Intervals: []IntervalDTO{{0, 120}, {300, 400}}},
		},
		{
			op:   "merge",
			req:  IntervalOpRequest{Intervals: []IntervalDTO{{540, 720}}, Other: []IntervalDTO{{600, 780}}},
			want: IntervalOpDTO{Intervals: []IntervalDTO{{540, 780}}},
		},
		{
			op:   "gap",
			req:  IntervalOpRequest{Intervals: []IntervalDTO{{540, 720}, {780, 900}}},
			want: IntervalOpDTO{Intervals: []IntervalDTO{{720, 780}}},
		},
		{
			op:   "span",
			req:  IntervalOpRequest{Intervals: []IntervalDTO{{540, 720}, {780, 900}}},
			want: IntervalOpDTO{Interval: &IntervalDTO{540, 900}},
		},
		{
			op:   "overlap",
			req:  IntervalOpRequest{Intervals: []IntervalDTO{{720, 780}}, Interval: &IntervalDTO{540, 1080}},
			want: IntervalOpDTO{Intervals: []IntervalDTO{{720, 780}}},
		},
		{
			op:   "not-overlap",
			req:  IntervalOpRequest{Intervals: []IntervalDTO{{720, 780}}, Interval: &IntervalDTO{540, 1080}},
			want: IntervalOpDTO{Intervals: []IntervalDTO{{540, 720}, {780, 1080}}},
		},
		{
			op:   "remove",
			req:  IntervalOpRequest{Intervals: []IntervalDTO{{540, 600}, {660, 720}}, Minutes: 90},
			want: IntervalOpDTO{Intervals: []IntervalDTO{{690, 720}}},
		},
		{
			op:   "reach",
			req:  IntervalOpRequest{Intervals: []IntervalDTO{{570, 600}}, Start: 540, Minutes: 60},
			want: IntervalOpDTO{Minute: minute(630)},
		},
		{
			op:   "is-overlapping",
			req:  IntervalOpRequest{Intervals: []IntervalDTO{{0, 60}, {30, 90}}},
			want: IntervalOpDTO{Overlapping: &yes},
		},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/intervals/"+tt.op, tt.req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.want, decodeBody[IntervalOpDTO](t, rec))
		})
	}
}

func TestIntervalOp_Errors(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/intervals/combine", IntervalOpRequest{Intervals: []IntervalDTO{{600, 540}}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/intervals/overlap", IntervalOpRequest{Intervals: []IntervalDTO{{0, 60}}})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "interval is required")

	rec = do(t, h, http.MethodPost, "/api/intervals/rotate", IntervalOpRequest{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemains(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/entitlements/remains", RemainsRequest{
		CurrentDays:  decimal.NewFromInt(2),
		CurrentHours: 3,
		UseHours:     5,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeBody[RemainderDTO](t, rec)
	assert.True(t, decimal.NewFromInt(1).Equal(got.Days))
	assert.Equal(t, 6, got.Hours)

	zero := 0
	rec = do(t, h, http.MethodPost, "/api/entitlements/remains", RemainsRequest{
		CurrentDays:  decimal.NewFromInt(2),
		CurrentHours: 3,
		UseHours:     5,
		HoursPerDay:  &zero,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	got = decodeBody[RemainderDTO](t, rec)
	assert.Equal(t, -2, got.Hours)
	assert.False(t, got.HasRemaining)

	negative := -1
	rec = do(t, h, http.MethodPost, "/api/entitlements/remains", RemainsRequest{HoursPerDay: &negative})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRound(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/round", `{"value":"-2.345","scale":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeBody[RoundDTO](t, rec)
	assert.True(t, decimal.RequireFromString("-2.35").Equal(got.Value), "value = %s", got.Value)
	assert.Equal(t, generic.RoundHalfUp, got.Mode)

	rec = do(t, h, http.MethodPost, "/api/round", `{"value":"2.341","scale":2,"mode":"ceiling"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decimal.RequireFromString("2.35").Equal(decodeBody[RoundDTO](t, rec).Value))

	rec = do(t, h, http.MethodPost, "/api/round", `{"value":"1","mode":"bankers"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
