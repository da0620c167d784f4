package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cytrico/frontdesk/internal/domain/models"
)

type fakeStore struct {
	alerts  []models.Alert
	updated []models.Alert

	createErr error
	dueErr    error
}

func (f *fakeStore) CreateAlert(ctx context.Context, alert models.Alert) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	alert.ID = "a1"
	f.alerts = append(f.alerts, alert)
	return alert.ID, nil
}

func (f *fakeStore) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	return f.alerts, nil
}

func (f *fakeStore) DueAlerts(ctx context.Context, now time.Time) ([]models.Alert, error) {
	if f.dueErr != nil {
		return nil, f.dueErr
	}
	var due []models.Alert
	for _, a := range f.alerts {
		if a.Active && !a.DueAt.After(now) {
			due = append(due, a)
		}
	}
	return due, nil
}

func (f *fakeStore) UpdateAlert(ctx context.Context, alert models.Alert) error {
	f.updated = append(f.updated, alert)
	for i := range f.alerts {
		if f.alerts[i].ID == alert.ID {
			f.alerts[i] = alert
		}
	}
	return nil
}

func (f *fakeStore) DeleteAlert(ctx context.Context, id string) error { return nil }

type fakeNotifier struct {
	fired []models.Alert
	err   error
}

func (f *fakeNotifier) AlertDue(ctx context.Context, alert models.Alert) error {
	f.fired = append(f.fired, alert)
	return f.err
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(&fakeStore{}, nil, nil)

	if _, err := svc.Create(context.Background(), AlertInput{DueAt: time.Now()}); !errors.Is(err, ErrInvalidAlert) {
		t.Fatalf("missing title err = %v, want ErrInvalidAlert", err)
	}
	if _, err := svc.Create(context.Background(), AlertInput{Title: "Revisar caldera"}); !errors.Is(err, ErrInvalidAlert) {
		t.Fatalf("missing due time err = %v, want ErrInvalidAlert", err)
	}
}

func TestCreateDefaults(t *testing.T) {
	svc := NewService(&fakeStore{}, nil, nil)

	alert, err := svc.Create(context.Background(), AlertInput{
		Title: "Revisar caldera",
		DueAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if alert.Type != models.AlertReminder {
		t.Errorf("Type = %q, want reminder default", alert.Type)
	}
	if alert.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, want medium default", alert.Priority)
	}
	if alert.Target != models.TargetAll {
		t.Errorf("Target = %q, want all default", alert.Target)
	}
	if alert.Recurrence != models.RecurNone {
		t.Errorf("Recurrence = %q, want none default", alert.Recurrence)
	}
	if !alert.Active {
		t.Error("new alert must be active")
	}
}

func TestUpdatePreservesFiringState(t *testing.T) {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	fired := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := &fakeStore{alerts: []models.Alert{{
		ID:          "a1",
		Title:       "Fumigación",
		Active:      false,
		DueAt:       fired,
		Recurrence:  models.RecurNone,
		CreatedBy:   "ana",
		CreatedAt:   created,
		LastFiredAt: &fired,
	}}}
	svc := NewService(store, nil, nil)

	updated, err := svc.Update(context.Background(), "a1", AlertInput{
		Title: "Fumigación trimestral",
		DueAt: fired.AddDate(0, 0, 30),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Title != "Fumigación trimestral" {
		t.Errorf("Title = %q, want the edited title", updated.Title)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want original %v", updated.CreatedAt, created)
	}
	if updated.CreatedBy != "ana" {
		t.Errorf("CreatedBy = %q, want ana", updated.CreatedBy)
	}
	if updated.LastFiredAt == nil || !updated.LastFiredAt.Equal(fired) {
		t.Errorf("LastFiredAt = %v, want %v", updated.LastFiredAt, fired)
	}
	if updated.Active {
		t.Error("editing a fired one-shot alert must not re-arm it")
	}
}

func TestRecurrenceNextAfter(t *testing.T) {
	base := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		rec     models.Recurrence
		want    time.Time
		repeats bool
	}{
		{models.RecurDaily, base.AddDate(0, 0, 1), true},
		{models.RecurWeekly, base.AddDate(0, 0, 7), true},
		{models.RecurMonthly, base.AddDate(0, 1, 0), true},
		{models.RecurNone, time.Time{}, false},
	}
	for _, tc := range cases {
		got, repeats := tc.rec.NextAfter(base)
		if repeats != tc.repeats {
			t.Errorf("NextAfter(%q) repeats = %v, want %v", tc.rec, repeats, tc.repeats)
		}
		if repeats && !got.Equal(tc.want) {
			t.Errorf("NextAfter(%q) = %v, want %v", tc.rec, got, tc.want)
		}
	}
}

func TestSweep(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("recurring alert advances", func(t *testing.T) {
		store := &fakeStore{alerts: []models.Alert{{
			ID:         "a1",
			Title:      "Cambio de sábanas",
			Active:     true,
			DueAt:      now.Add(-time.Hour),
			Recurrence: models.RecurDaily,
		}}}
		notifier := &fakeNotifier{}
		svc := NewService(store, notifier, nil)
		svc.now = func() time.Time { return now }

		if err := svc.Sweep(context.Background()); err != nil {
			t.Fatalf("Sweep: %v", err)
		}
		if len(notifier.fired) != 1 {
			t.Fatalf("notified %d alerts, want 1", len(notifier.fired))
		}
		if len(store.updated) != 1 {
			t.Fatalf("updated %d alerts, want 1", len(store.updated))
		}
		got := store.updated[0]
		if !got.Active {
			t.Error("recurring alert deactivated")
		}
		want := now.Add(-time.Hour).AddDate(0, 0, 1)
		if !got.DueAt.Equal(want) {
			t.Errorf("DueAt = %v, want %v", got.DueAt, want)
		}
		if got.LastFiredAt == nil || !got.LastFiredAt.Equal(now) {
			t.Errorf("LastFiredAt = %v, want %v", got.LastFiredAt, now)
		}
	})

	t.Run("one-shot alert deactivates", func(t *testing.T) {
		store := &fakeStore{alerts: []models.Alert{{
			ID:         "a2",
			Title:      "Llega grupo de 12",
			Active:     true,
			DueAt:      now.Add(-time.Minute),
			Recurrence: models.RecurNone,
		}}}
		svc := NewService(store, nil, nil)
		svc.now = func() time.Time { return now }

		if err := svc.Sweep(context.Background()); err != nil {
			t.Fatalf("Sweep: %v", err)
		}
		if len(store.updated) != 1 {
			t.Fatalf("updated %d alerts, want 1", len(store.updated))
		}
		if store.updated[0].Active {
			t.Error("one-shot alert still active after firing")
		}
	})

	t.Run("notifier failure does not block the advance", func(t *testing.T) {
		store := &fakeStore{alerts: []models.Alert{{
			ID:     "a3",
			Title:  "Fumigación",
			Active: true,
			DueAt:  now.Add(-time.Minute),
		}}}
		svc := NewService(store, &fakeNotifier{err: errors.New("webhook down")}, nil)
		svc.now = func() time.Time { return now }

		if err := svc.Sweep(context.Background()); err != nil {
			t.Fatalf("Sweep: %v", err)
		}
		if len(store.updated) != 1 {
			t.Fatal("fired alert not updated after notifier failure")
		}
	})

	t.Run("nothing due is a no-op", func(t *testing.T) {
		store := &fakeStore{alerts: []models.Alert{{
			ID: "a4", Title: "Futuro", Active: true, DueAt: now.Add(time.Hour),
		}}}
		svc := NewService(store, nil, nil)
		svc.now = func() time.Time { return now }

		if err := svc.Sweep(context.Background()); err != nil {
			t.Fatalf("Sweep: %v", err)
		}
		if len(store.updated) != 0 {
			t.Errorf("updated %d alerts, want 0", len(store.updated))
		}
	})
}
