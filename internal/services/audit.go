package services

import (
	"log"

	"github.com/quickcut-dev/quickcut/db"
	"github.com/quickcut-dev/quickcut/internal/models"
)

// RecordWebhookEvent persists the audit row for one processed delivery.
// Best-effort: a failed insert is logged and never affects the webhook
// response.
func RecordWebhookEvent(event *models.WebhookEvent) {
	if db.DB == nil {
		return
	}

	if err := db.DB.Create(event).Error; err != nil {
		log.Printf("Failed to record webhook event %s: %v", event.DeliveryID, err)
	}
}
