package metrics

import (
	"testing"

	"github.com/cytrico/frontdesk/internal/domain/models"
)

func TestCompletenessPercent(t *testing.T) {
	cases := []struct {
		complete, total, want int
	}{
		{0, 0, 0},
		{3, 3, 100},
		{1, 3, 33},
		{2, 3, 67},
		{0, 5, 0},
	}
	for _, tc := range cases {
		if got := CompletenessPercent(tc.complete, tc.total); got != tc.want {
			t.Errorf("CompletenessPercent(%d, %d) = %d, want %d", tc.complete, tc.total, got, tc.want)
		}
	}
}

func TestAggregate(t *testing.T) {
	records := []models.ShiftRecord{
		{
			Shift: models.ShiftMorning,
			Totals: models.ShiftTotals{
				Income: 125000, Lodging: 100000, Laundry: 20000, Other: 5000,
				Invoices: 45000, Expenses: 12000,
			},
			Expenses: []models.Expense{
				{Category: models.ExpenseCleaning, Amount: 12000},
			},
			Checkins: []models.CheckEvent{
				{Type: models.CheckIn, Checks: map[string]bool{"fotos": true, "registro": true, "llave": true, "pago": true}},
				{Type: models.CheckIn, Checks: map[string]bool{"fotos": true}},
				{Type: models.CheckOut},
			},
		},
		{
			Shift:  models.ShiftNight,
			Totals: models.ShiftTotals{Income: 30000, Lodging: 30000},
			Expenses: []models.Expense{
				{Category: models.ExpenseCleaning, Amount: 2000},
				{Category: models.ExpenseFood, Amount: 8000},
			},
		},
	}

	summary := Aggregate(records)

	if summary.Shifts != 2 {
		t.Errorf("Shifts = %d, want 2", summary.Shifts)
	}
	if summary.Income != 155000 {
		t.Errorf("Income = %v, want 155000", summary.Income)
	}
	if summary.Checkins != 2 || summary.Checkouts != 1 {
		t.Errorf("movements = %d/%d, want 2/1", summary.Checkins, summary.Checkouts)
	}
	if summary.CompleteCheckins != 1 {
		t.Errorf("CompleteCheckins = %d, want 1", summary.CompleteCheckins)
	}
	if summary.CheckinCompleteness != 50 {
		t.Errorf("CheckinCompleteness = %d, want 50", summary.CheckinCompleteness)
	}
	if got := summary.ExpensesByCategory["limpieza"]; got != 14000 {
		t.Errorf("limpieza expenses = %v, want 14000", got)
	}
	if got := summary.ShiftsByKey[models.ShiftMorning]; got != 1 {
		t.Errorf("morning shifts = %d, want 1", got)
	}
	if got := summary.IncomeByShift[models.ShiftNight]; got != 30000 {
		t.Errorf("night income = %v, want 30000", got)
	}
}

func TestAggregateEmpty(t *testing.T) {
	summary := Aggregate(nil)
	if summary.Shifts != 0 || summary.CheckinCompleteness != 0 {
		t.Errorf("empty aggregate = %+v, want zero values", summary)
	}
}
