package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/cytrico/frontdesk/internal/config"
	"github.com/cytrico/frontdesk/internal/domain/models"
)

// Client posts front-desk events to a configured webhook endpoint. It is a
// best-effort notification channel; callers log failures and move on.
type Client struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client from configuration.
func NewClient(cfg config.WebhookConfig) *Client {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)
	if cfg.Token != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Token))
	}

	return &Client{httpClient: restyClient, url: cfg.URL}
}

type shiftClosedEvent struct {
	Event        string             `json:"event"`
	Shift        models.ShiftKey    `json:"shift"`
	ShiftLabel   string             `json:"shiftLabel"`
	Receptionist string             `json:"receptionist"`
	Date         string             `json:"date"`
	RecordID     string             `json:"recordId"`
	Totals       models.ShiftTotals `json:"totals"`
}

type alertDueEvent struct {
	Event    string               `json:"event"`
	AlertID  string               `json:"alertId"`
	Title    string               `json:"title"`
	Type     models.AlertType     `json:"type"`
	Priority models.AlertPriority `json:"priority"`
	Target   models.AlertTarget   `json:"target"`
	DueAt    time.Time            `json:"dueAt"`
}

// ShiftClosed announces a closed shift with its reconciled totals.
func (c *Client) ShiftClosed(ctx context.Context, record models.ShiftRecord) error {
	return c.post(ctx, shiftClosedEvent{
		Event:        "shift.closed",
		Shift:        record.Shift,
		ShiftLabel:   record.ShiftLabel,
		Receptionist: record.Receptionist,
		Date:         record.Date,
		RecordID:     record.ID,
		Totals:       record.Totals,
	})
}

// AlertDue announces an alert whose due time has passed.
func (c *Client) AlertDue(ctx context.Context, alert models.Alert) error {
	return c.post(ctx, alertDueEvent{
		Event:    "alert.due",
		AlertID:  alert.ID,
		Title:    alert.Title,
		Type:     alert.Type,
		Priority: alert.Priority,
		Target:   alert.Target,
		DueAt:    alert.DueAt,
	})
}

func (c *Client) post(ctx context.Context, payload any) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post webhook event: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode())
	}
	return nil
}
