package attendance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/attendance-engine/generic"
)

// Service loads a day from a RecordStore and evaluates it.
type Service struct {
	store       RecordStore
	logger      *zap.Logger
	hoursPerDay int
}

// NewService wires a store. hoursPerDay is the conversion unit used for
// balance remainders; 0 disables day/hour conversion.
func NewService(store RecordStore, logger *zap.Logger, hoursPerDay int) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, hoursPerDay: hoursPerDay}
}

// HoursPerDay is the configured conversion unit.
func (s *Service) HoursPerDay() int { return s.hoursPerDay }

// Entity loads every record of the day plus the workflows gating them.
func (s *Service) Entity(ctx context.Context, person generic.PersonID, date generic.Date) (*RequestEntity, error) {
	records, err := s.store.LoadDay(ctx, person, date)
	if err != nil {
		s.logger.Error("load day failed",
			zap.String("person", string(person)),
			zap.Stringer("date", date),
			zap.Error(err))
		return nil, fmt.Errorf("load day %s/%s: %w", person, date, err)
	}

	workflows, err := s.store.LoadWorkflows(ctx, records.WorkflowIDs())
	if err != nil {
		s.logger.Error("load workflows failed", zap.String("person", string(person)), zap.Error(err))
		return nil, fmt.Errorf("load workflows: %w", err)
	}

	entity, err := NewRequestEntity(records, workflows)
	if err != nil {
		s.logger.Warn("day records rejected",
			zap.String("person", string(person)),
			zap.Stringer("date", date),
			zap.Error(err))
		return nil, err
	}

	s.logger.Debug("day loaded",
		zap.String("person", string(person)),
		zap.Stringer("date", date),
		zap.Int("records", len(records.Requests)),
		zap.Int("workflows", len(workflows)))
	return entity, nil
}

// Summary evaluates one day.
func (s *Service) Summary(ctx context.Context, person generic.PersonID, date generic.Date, completedOnly bool) (DaySummary, error) {
	e, err := s.Entity(ctx, person, date)
	if err != nil {
		return DaySummary{}, err
	}
	return e.Summarize(completedOnly), nil
}

// HourlyHolidays returns the day's hourly leave windows.
func (s *Service) HourlyHolidays(ctx context.Context, person generic.PersonID, date generic.Date, completedOnly bool) (generic.Intervals, error) {
	e, err := s.Entity(ctx, person, date)
	if err != nil {
		return nil, err
	}
	return e.HourlyHolidayTimes(completedOnly), nil
}

// BalanceRemains applies usage to the stored balance of one leave type.
func (s *Service) BalanceRemains(ctx context.Context, person generic.PersonID, code string, useDays decimal.Decimal, useHours int) (generic.Remainder, error) {
	b, err := s.store.LoadBalance(ctx, person, code)
	if err != nil {
		return generic.Remainder{}, fmt.Errorf("load balance %s/%s: %w", person, code, err)
	}
	rem := b.Remains(useDays, useHours, s.hoursPerDay)
	if !rem.HasRemaining() {
		s.logger.Info("balance shortfall",
			zap.String("person", string(person)),
			zap.String("holiday_code", code),
			zap.Stringer("remain_days", rem.Days),
			zap.Int("remain_hours", rem.Hours))
	}
	return rem, nil
}

// =============================================================================
// WRITES
// =============================================================================

func (s *Service) SaveSchedule(ctx context.Context, schedule Schedule) error {
	if err := s.store.SaveSchedule(ctx, schedule); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

// SaveRequest stores one record and returns its id.
func (s *Service) SaveRequest(ctx context.Context, r Request) (string, error) {
	id, err := s.store.SaveRequest(ctx, r)
	if err != nil {
		return "", fmt.Errorf("save %s request: %w", r.Kind(), err)
	}
	s.logger.Info("request saved",
		zap.String("id", id),
		zap.String("kind", string(r.Kind())),
		zap.Int64("workflow", int64(r.WorkflowID())))
	return id, nil
}

func (s *Service) SaveWorkflow(ctx context.Context, w generic.Workflow) error {
	if err := s.store.SaveWorkflow(ctx, w); err != nil {
		return fmt.Errorf("save workflow %d: %w", w.ID, err)
	}
	return nil
}

func (s *Service) SaveBalance(ctx context.Context, person generic.PersonID, b generic.HolidayBalance) error {
	if err := s.store.SaveBalance(ctx, person, b); err != nil {
		return fmt.Errorf("save balance %s/%s: %w", person, b.HolidayCode, err)
	}
	return nil
}
