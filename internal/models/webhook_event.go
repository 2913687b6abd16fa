package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Outcomes recorded for processed webhook deliveries.
const (
	WebhookOutcomeApplied       = "applied"
	WebhookOutcomeNoop          = "noop"
	WebhookOutcomeIgnoredColumn = "ignored_column"
	WebhookOutcomeMissingPulse  = "missing_pulse_id"
	WebhookOutcomeNotFound      = "not_found"
	WebhookOutcomeError         = "error"
)

// WebhookEvent is the audit record for one board webhook delivery. One row is
// written per processed event regardless of outcome; challenge handshakes are
// not recorded.
type WebhookEvent struct {
	gorm.Model

	DeliveryID string `gorm:"not null;index"`
	PulseID    string `gorm:"index"`
	ColumnID   string
	Payload    datatypes.JSON
	Outcome    string `gorm:"not null;index"`
	ProjectID  *uint
	Error      string
}
