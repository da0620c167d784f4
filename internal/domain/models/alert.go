package models

import "time"

// AlertType classifies operational alerts.
type AlertType string

const (
	AlertMaintenance AlertType = "maintenance"
	AlertCleaning    AlertType = "cleaning"
	AlertReservation AlertType = "reservation"
	AlertEvent       AlertType = "event"
	AlertReminder    AlertType = "reminder"
	AlertTask        AlertType = "task"
	AlertUrgent      AlertType = "urgent"
)

// AlertPriority orders alerts for display and notification.
type AlertPriority string

const (
	PriorityLow    AlertPriority = "low"
	PriorityMedium AlertPriority = "medium"
	PriorityHigh   AlertPriority = "high"
	PriorityUrgent AlertPriority = "urgent"
)

// AlertTarget names the audience an alert is addressed to.
type AlertTarget string

const (
	TargetAll          AlertTarget = "all"
	TargetAdmin        AlertTarget = "admin"
	TargetManager      AlertTarget = "manager"
	TargetReception    AlertTarget = "reception"
	TargetHousekeeping AlertTarget = "housekeeping"
	TargetMaintenance  AlertTarget = "maintenance"
)

// Recurrence describes how an alert repeats after firing.
type Recurrence string

const (
	RecurNone    Recurrence = "none"
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
)

// NextAfter returns the next due time following t, and whether the alert
// repeats at all.
func (r Recurrence) NextAfter(t time.Time) (time.Time, bool) {
	switch r {
	case RecurDaily:
		return t.AddDate(0, 0, 1), true
	case RecurWeekly:
		return t.AddDate(0, 0, 7), true
	case RecurMonthly:
		return t.AddDate(0, 1, 0), true
	default:
		return time.Time{}, false
	}
}

// Alert is a scheduled operational notice for hotel staff.
type Alert struct {
	ID          string        `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Type        AlertType     `bson:"type" json:"type"`
	Priority    AlertPriority `bson:"priority" json:"priority"`
	Target      AlertTarget   `bson:"target" json:"target"`
	DueAt       time.Time     `bson:"dueAt" json:"dueAt"`
	Recurrence  Recurrence    `bson:"recurrence" json:"recurrence"`
	Active      bool          `bson:"active" json:"active"`
	CreatedBy   string        `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	LastFiredAt *time.Time    `bson:"lastFiredAt,omitempty" json:"lastFiredAt,omitempty"`
}
