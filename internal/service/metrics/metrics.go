package metrics

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/cytrico/frontdesk/internal/domain/models"
)

// Store is the persistence surface the metrics service reads from.
type Store interface {
	ListShifts(ctx context.Context, limit int64) ([]models.ShiftRecord, error)
}

// Summary aggregates closed shifts over a period for the dashboard.
type Summary struct {
	Shifts              int                         `json:"shifts"`
	Income              float64                     `json:"income"`
	Lodging             float64                     `json:"lodging"`
	Laundry             float64                     `json:"laundry"`
	Other               float64                     `json:"other"`
	Invoices            float64                     `json:"invoices"`
	Expenses            float64                     `json:"expenses"`
	ExpensesByCategory  map[string]float64          `json:"expensesByCategory"`
	Checkins            int                         `json:"checkins"`
	Checkouts           int                         `json:"checkouts"`
	CompleteCheckins    int                         `json:"completeCheckins"`
	CheckinCompleteness int                         `json:"checkinCompleteness"`
	ShiftsByKey         map[models.ShiftKey]int     `json:"shiftsByKey"`
	IncomeByShift       map[models.ShiftKey]float64 `json:"incomeByShift"`
}

// Service computes read-only aggregates over persisted shift records.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new metrics service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Summarize aggregates the shifts closed within the last `days` days.
func (s *Service) Summarize(ctx context.Context, days int) (Summary, error) {
	if days <= 0 {
		days = 7
	}

	records, err := s.store.ListShifts(ctx, 0)
	if err != nil {
		return Summary{}, fmt.Errorf("loading shift history: %w", err)
	}

	cutoff := s.now().UTC().AddDate(0, 0, -days)
	var inPeriod []models.ShiftRecord
	for _, rec := range records {
		if rec.CreatedAt.Before(cutoff) {
			continue
		}
		inPeriod = append(inPeriod, rec)
	}

	return Aggregate(inPeriod), nil
}

// Aggregate folds a set of shift records into a Summary. Exposed separately
// so callers with records already in hand can reuse the computation.
func Aggregate(records []models.ShiftRecord) Summary {
	summary := Summary{
		ExpensesByCategory: map[string]float64{},
		ShiftsByKey:        map[models.ShiftKey]int{},
		IncomeByShift:      map[models.ShiftKey]float64{},
	}

	var totalCheckins int
	for _, rec := range records {
		summary.Shifts++
		summary.Income += rec.Totals.Income
		summary.Lodging += rec.Totals.Lodging
		summary.Laundry += rec.Totals.Laundry
		summary.Other += rec.Totals.Other
		summary.Invoices += rec.Totals.Invoices
		summary.Expenses += rec.Totals.Expenses
		summary.ShiftsByKey[rec.Shift]++
		summary.IncomeByShift[rec.Shift] += rec.Totals.Income

		for _, exp := range rec.Expenses {
			summary.ExpensesByCategory[string(exp.Category)] += exp.Amount
		}
		for _, ev := range rec.Checkins {
			if ev.Type == models.CheckIn {
				summary.Checkins++
				totalCheckins++
				if ev.Complete() {
					summary.CompleteCheckins++
				}
			} else {
				summary.Checkouts++
			}
		}
	}

	summary.CheckinCompleteness = CompletenessPercent(summary.CompleteCheckins, totalCheckins)
	return summary
}

// CompletenessPercent returns complete/total as a percentage rounded to the
// nearest integer; zero totals yield zero.
func CompletenessPercent(complete, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(complete) / float64(total) * 100))
}
