package alerts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cytrico/frontdesk/internal/domain/models"
)

// ErrInvalidAlert marks malformed alert payloads.
var ErrInvalidAlert = errors.New("invalid alert")

// Store is the persistence surface the alert service depends on.
type Store interface {
	CreateAlert(ctx context.Context, alert models.Alert) (string, error)
	ListAlerts(ctx context.Context) ([]models.Alert, error)
	DueAlerts(ctx context.Context, now time.Time) ([]models.Alert, error)
	UpdateAlert(ctx context.Context, alert models.Alert) error
	DeleteAlert(ctx context.Context, id string) error
}

// Notifier receives due-alert notifications. Best-effort.
type Notifier interface {
	AlertDue(ctx context.Context, alert models.Alert) error
}

// Service manages operational alerts and the due-alert sweep.
type Service struct {
	store    Store
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new alert service; notifier may be nil.
func NewService(store Store, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, notifier: notifier, logger: logger, now: time.Now}
}

// AlertInput is the payload for creating or updating an alert.
type AlertInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Priority    string    `json:"priority"`
	Target      string    `json:"target"`
	DueAt       time.Time `json:"dueAt"`
	Recurrence  string    `json:"recurrence"`
	CreatedBy   string    `json:"createdBy"`
}

func (in AlertInput) toAlert(now time.Time) (models.Alert, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Alert{}, fmt.Errorf("%w: title is required", ErrInvalidAlert)
	}
	if in.DueAt.IsZero() {
		return models.Alert{}, fmt.Errorf("%w: due time is required", ErrInvalidAlert)
	}

	alert := models.Alert{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Type:        models.AlertType(in.Type),
		Priority:    models.AlertPriority(in.Priority),
		Target:      models.AlertTarget(in.Target),
		DueAt:       in.DueAt.UTC(),
		Recurrence:  models.Recurrence(in.Recurrence),
		Active:      true,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
	}
	if alert.Type == "" {
		alert.Type = models.AlertReminder
	}
	if alert.Priority == "" {
		alert.Priority = models.PriorityMedium
	}
	if alert.Target == "" {
		alert.Target = models.TargetAll
	}
	if alert.Recurrence == "" {
		alert.Recurrence = models.RecurNone
	}
	return alert, nil
}

// Create validates and persists a new alert.
func (s *Service) Create(ctx context.Context, in AlertInput) (*models.Alert, error) {
	alert, err := in.toAlert(s.now().UTC())
	if err != nil {
		return nil, err
	}

	id, err := s.store.CreateAlert(ctx, alert)
	if err != nil {
		return nil, fmt.Errorf("creating alert: %w", err)
	}
	alert.ID = id

	s.logger.Info("alert created",
		zap.String("id", id),
		zap.String("type", string(alert.Type)),
		zap.Time("due_at", alert.DueAt))
	return &alert, nil
}

// List returns all alerts ordered by due time.
func (s *Service) List(ctx context.Context) ([]models.Alert, error) {
	alerts, err := s.store.ListAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	return alerts, nil
}

// Update replaces an alert's editable fields, keeping its id, creation
// metadata, and firing state. A fired one-shot alert stays fired; editing
// it does not re-arm it.
func (s *Service) Update(ctx context.Context, id string, in AlertInput) (*models.Alert, error) {
	alert, err := in.toAlert(s.now().UTC())
	if err != nil {
		return nil, err
	}
	alert.ID = id

	existing, err := s.store.ListAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading alerts: %w", err)
	}
	for i := range existing {
		if existing[i].ID != id {
			continue
		}
		alert.CreatedAt = existing[i].CreatedAt
		alert.LastFiredAt = existing[i].LastFiredAt
		alert.Active = existing[i].Active
		if alert.CreatedBy == "" {
			alert.CreatedBy = existing[i].CreatedBy
		}
		break
	}

	if err := s.store.UpdateAlert(ctx, alert); err != nil {
		return nil, fmt.Errorf("updating alert: %w", err)
	}
	return &alert, nil
}

// Delete removes an alert.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteAlert(ctx, id); err != nil {
		return fmt.Errorf("deleting alert: %w", err)
	}
	return nil
}

// Sweep fires every due alert: notifies the configured channel, then either
// advances the due time per the alert's recurrence or deactivates one-shot
// alerts. Invoked periodically by the scheduler.
func (s *Service) Sweep(ctx context.Context) error {
	now := s.now().UTC()
	due, err := s.store.DueAlerts(ctx, now)
	if err != nil {
		return fmt.Errorf("querying due alerts: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	for _, alert := range due {
		s.logger.Info("alert due",
			zap.String("id", alert.ID),
			zap.String("title", alert.Title),
			zap.String("priority", string(alert.Priority)))

		if s.notifier != nil {
			if err := s.notifier.AlertDue(ctx, alert); err != nil {
				s.logger.Warn("alert notification failed", zap.String("id", alert.ID), zap.Error(err))
			}
		}

		fired := now
		alert.LastFiredAt = &fired
		if next, repeats := alert.Recurrence.NextAfter(alert.DueAt); repeats {
			alert.DueAt = next
		} else {
			alert.Active = false
		}

		if err := s.store.UpdateAlert(ctx, alert); err != nil {
			s.logger.Error("failed to advance fired alert", zap.String("id", alert.ID), zap.Error(err))
		}
	}
	return nil
}
