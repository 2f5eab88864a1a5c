/*
handlers.go - HTTP API handlers for the attendance engine

PURPOSE:
  Exposes day evaluation, record maintenance and the pure calculators via
  REST. Handles HTTP request/response, JSON serialization, and delegates
  to attendance.Service and package generic.

ENDPOINTS:
  Days:
    GET    /api/persons/{id}/days/{date}                  Day summary (?completed=true)
    GET    /api/persons/{id}/days/{date}/hourly-holidays  Hourly leave windows
    PUT    /api/persons/{id}/days/{date}/schedule         Set scheduled work type

  Records:
    POST   /api/persons/{id}/requests                     Save one request record
    PUT    /api/workflows/{id}                            Set workflow status
    PUT    /api/persons/{id}/balances/{code}              Set leave balance
    GET    /api/persons/{id}/balances/{code}/remains      Balance after usage

  Calculators:
    POST   /api/intervals/{op}                            Interval algebra
    POST   /api/entitlements/remains                      Day/hour carry-over
    POST   /api/round                                     Decimal rounding

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Record not found
  - 409: Conflicting records for a day
  - 500: Store failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/generic"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *attendance.Service
	Logger  *zap.Logger

	// Applied to day counts of balance responses.
	RoundingMode  generic.RoundingMode
	RoundingScale int32
}

// NewHandler creates a handler rounding half-up to two places.
func NewHandler(svc *attendance.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Service:       svc,
		Logger:        logger,
		RoundingMode:  generic.RoundHalfUp,
		RoundingScale: 2,
	}
}

func (h *Handler) roundRemainder(r generic.Remainder) generic.Remainder {
	r.Days = generic.Round(r.Days, h.RoundingScale, h.RoundingMode)
	return r
}

// =============================================================================
// DAY HANDLERS
// =============================================================================

func dayParams(r *http.Request) (generic.PersonID, generic.Date, error) {
	person := generic.PersonID(chi.URLParam(r, "id"))
	date, err := generic.ParseDate(chi.URLParam(r, "date"))
	return person, date, err
}

func completedOnly(r *http.Request) (bool, error) {
	v := r.URL.Query().Get("completed")
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

// GetDay evaluates one day.
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	person, date, err := dayParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	completed, err := completedOnly(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid completed flag", err)
		return
	}

	summary, err := h.Service.Summary(r.Context(), person, date, completed)
	if err != nil {
		h.fail(w, "Failed to evaluate day", err)
		return
	}

	writeJSON(w, http.StatusOK, DaySummaryDTO{
		DaySummary:     summary,
		HourlyHolidays: toIntervalDTOs(summary.HourlyHolidays),
	})
}

// GetHourlyHolidays returns the day's hourly leave windows.
func (h *Handler) GetHourlyHolidays(w http.ResponseWriter, r *http.Request) {
	person, date, err := dayParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	completed, err := completedOnly(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid completed flag", err)
		return
	}

	times, err := h.Service.HourlyHolidays(r.Context(), person, date, completed)
	if err != nil {
		h.fail(w, "Failed to evaluate day", err)
		return
	}
	writeJSON(w, http.StatusOK, toIntervalDTOs(times))
}

// PutSchedule sets the scheduled work type of a day.
func (h *Handler) PutSchedule(w http.ResponseWriter, r *http.Request) {
	person, date, err := dayParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sched := attendance.Schedule{
		PersonID:            person,
		Date:                date,
		ScheduledWorkType:   req.ScheduledWorkType,
		SubstitutedWorkType: req.SubstitutedWorkType,
	}
	if err := h.Service.SaveSchedule(r.Context(), sched); err != nil {
		h.fail(w, "Failed to save schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// CreateRequest stores one request record. The body carries a "kind" field
// plus the fields of that kind; the person comes from the URL.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req, err := attendance.DecodeTaggedRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request record", err)
		return
	}

	hdr := req.Header()
	hdr.PersonID = generic.PersonID(chi.URLParam(r, "id"))
	if hdr.Date.IsZero() {
		writeError(w, http.StatusBadRequest, "date is required", nil)
		return
	}
	req = attendance.WithHeader(req, hdr)

	id, err := h.Service.SaveRequest(r.Context(), req)
	if err != nil {
		h.fail(w, "Failed to save request", err)
		return
	}
	writeJSON(w, http.StatusCreated, SavedRequestDTO{ID: id, Kind: req.Kind()})
}

// PutWorkflow sets the current status of a workflow.
func (h *Handler) PutWorkflow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid workflow id", err)
		return
	}

	var req WorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown workflow status %q", req.Status), nil)
		return
	}

	wf := generic.Workflow{ID: generic.WorkflowID(id), Status: req.Status, Stage: req.Stage}
	if err := h.Service.SaveWorkflow(r.Context(), wf); err != nil {
		h.fail(w, "Failed to save workflow", err)
		return
	}
	writeJSON(w, http.StatusOK, WorkflowDTO{ID: wf.ID, Status: wf.Status, Stage: wf.Stage})
}

// PutBalance sets the granted and canceled amounts of one leave type.
func (h *Handler) PutBalance(w http.ResponseWriter, r *http.Request) {
	person := generic.PersonID(chi.URLParam(r, "id"))
	code := chi.URLParam(r, "code")

	var req BalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	b := generic.HolidayBalance{
		HolidayCode:   code,
		GrantedDays:   req.GrantedDays,
		GrantedHours:  req.GrantedHours,
		CanceledDays:  req.CanceledDays,
		CanceledHours: req.CanceledHours,
	}
	if err := h.Service.SaveBalance(r.Context(), person, b); err != nil {
		h.fail(w, "Failed to save balance", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// GetBalanceRemains applies ?use_days= and ?use_hours= to a stored balance.
func (h *Handler) GetBalanceRemains(w http.ResponseWriter, r *http.Request) {
	person := generic.PersonID(chi.URLParam(r, "id"))
	code := chi.URLParam(r, "code")

	useDays := decimal.Zero
	if v := r.URL.Query().Get("use_days"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid use_days", err)
			return
		}
		useDays = d
	}
	useHours := 0
	if v := r.URL.Query().Get("use_hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid use_hours", err)
			return
		}
		useHours = n
	}

	rem, err := h.Service.BalanceRemains(r.Context(), person, code, useDays, useHours)
	if err != nil {
		h.fail(w, "Failed to compute balance", err)
		return
	}
	writeJSON(w, http.StatusOK, toRemainderDTO(h.roundRemainder(rem)))
}

// =============================================================================
// CALCULATOR HANDLERS
// =============================================================================

// IntervalOp runs one interval algebra operation.
func (h *Handler) IntervalOp(w http.ResponseWriter, r *http.Request) {
	op := chi.URLParam(r, "op")

	var req IntervalOpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	c, err := parseIntervals(req.Intervals)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid intervals", err)
		return
	}
	other, err := parseIntervals(req.Other)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid other intervals", err)
		return
	}

	var resp IntervalOpDTO
	switch op {
	case "combine":
		resp.Intervals = toIntervalDTOs(generic.Combine(c))
	case "merge":
		resp.Intervals = toIntervalDTOs(generic.Merge(c, other))
	case "gap":
		resp.Intervals = toIntervalDTOs(generic.Gap(c))
	case "span":
		resp.Interval = toIntervalDTO(generic.Span(c))
	case "overlap", "not-overlap":
		if req.Interval == nil {
			writeError(w, http.StatusBadRequest, "interval is required", nil)
			return
		}
		d, err := generic.ParseInterval(req.Interval.Start, req.Interval.End)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid interval", err)
			return
		}
		if op == "overlap" {
			resp.Intervals = toIntervalDTOs(generic.Overlap(d, c))
		} else {
			resp.Intervals = toIntervalDTOs(generic.NotOverlap(d, c))
		}
	case "remove":
		resp.Intervals = toIntervalDTOs(generic.RemoveTime(c, req.Minutes))
	case "reach":
		minute := generic.ReachTime(req.Start, req.Minutes, c)
		resp.Minute = &minute
	case "is-overlapping":
		overlapping := generic.IsOverlapping(c)
		resp.Overlapping = &overlapping
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown interval operation %q", op), nil)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Remains runs the carry-over calculator. hours_per_day defaults to the
// configured unit.
func (h *Handler) Remains(w http.ResponseWriter, r *http.Request) {
	var req RemainsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	hoursPerDay := h.Service.HoursPerDay()
	if req.HoursPerDay != nil {
		hoursPerDay = *req.HoursPerDay
	}
	if hoursPerDay < 0 {
		writeError(w, http.StatusBadRequest, "hours_per_day must not be negative", nil)
		return
	}

	rem := generic.Remains(req.CurrentDays, req.CurrentHours, req.UseDays, req.UseHours, hoursPerDay)
	writeJSON(w, http.StatusOK, toRemainderDTO(rem))
}

// Round rounds a decimal. An empty mode rounds half-up.
func (h *Handler) Round(w http.ResponseWriter, r *http.Request) {
	var req RoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	mode, err := generic.ParseRoundingMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rounding mode", err)
		return
	}
	writeJSON(w, http.StatusOK, RoundDTO{Value: generic.Round(req.Value, req.Scale, mode), Mode: mode})
}

// =============================================================================
// HELPERS
// =============================================================================

// fail maps a service error to its status.
func (h *Handler) fail(w http.ResponseWriter, message string, err error) {
	switch {
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, generic.ErrDuplicateDayRecord):
		writeError(w, http.StatusConflict, message, err)
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		h.Logger.Error(message, zap.Error(err))
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
