package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quickcut-dev/quickcut/db"
	"github.com/quickcut-dev/quickcut/internal/metrics"
	"github.com/quickcut-dev/quickcut/internal/models"
	"github.com/quickcut-dev/quickcut/internal/reconcile"
	"github.com/quickcut-dev/quickcut/internal/services"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MondayWebhook receives column-change events from the board and reconciles
// them into the project store. The board retries nothing and neither do we:
// every delivery is answered exactly once, with the outcome in the response.
//
// Ordering is load-bearing: the challenge handshake is answered before any
// method or payload validation, because the board sends it when the
// subscription is created and expects the echo no matter what.
func MondayWebhook(ctx *gin.Context) {
	ctx.Header("Access-Control-Allow-Origin", "*")
	ctx.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
	ctx.Header("Access-Control-Allow-Methods", "POST, OPTIONS")

	if ctx.Request.Method == http.MethodOptions {
		ctx.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	body, err := io.ReadAll(ctx.Request.Body)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	payload := decodeWebhookBody(body)

	if challenge, ok := payload["challenge"]; ok && challenge != nil {
		ctx.JSON(http.StatusOK, gin.H{"challenge": challenge})
		return
	}

	if ctx.Request.Method != http.MethodPost {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		return
	}

	received := time.Now()
	event := eventObject(payload)
	audit := models.WebhookEvent{
		DeliveryID: uuid.NewString(),
		PulseID:    eventString(event, "pulseId"),
		ColumnID:   eventString(event, "columnId"),
		Payload:    datatypes.JSON(body),
	}

	defer func() {
		metrics.ObserveWebhook(audit.Outcome, time.Since(received))
		services.RecordWebhookEvent(&audit)
	}()

	pulseID := audit.PulseID

	if pulseID == "" {
		audit.Outcome = models.WebhookOutcomeMissingPulse
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing pulseId in webhook event"})
		return
	}

	project, err := reconcile.FindProject(db.DB, pulseID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			audit.Outcome = models.WebhookOutcomeNotFound
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found", "pulseId": pulseID})
			return
		}

		audit.Outcome = models.WebhookOutcomeError
		audit.Error = err.Error()
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	audit.ProjectID = &project.ID
	projectID := strconv.FormatUint(uint64(project.ID), 10)

	res := reconcile.Resolve(audit.ColumnID, event["value"])

	if !res.Known && audit.ColumnID != "" {
		log.Printf("Ignoring untracked column %s for project %s", audit.ColumnID, projectID)
	}

	// Feedback rides the same webhook but belongs to the portal's own
	// feedback flow; the reconciler only acknowledges it.
	if res.Feedback != "" {
		log.Printf("Feedback note for project %s via board: %s", projectID, res.Feedback)
	}

	if len(res.Updates) == 0 {
		if res.Known {
			audit.Outcome = models.WebhookOutcomeNoop
		} else {
			audit.Outcome = models.WebhookOutcomeIgnoredColumn
		}

		ctx.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "No changes to apply",
			"projectId": projectID,
			"updates":   gin.H{},
		})
		return
	}

	if err := db.DB.Model(project).Updates(res.Updates).Error; err != nil {
		audit.Outcome = models.WebhookOutcomeError
		audit.Error = err.Error()
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	fields := make([]string, 0, len(res.Updates))
	for field := range res.Updates {
		fields = append(fields, field)
	}

	BroadcastProjectRefresh(project.UserID, project.ID, fields)

	audit.Outcome = models.WebhookOutcomeApplied
	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Project updated",
		"projectId": projectID,
		"updates":   res.Updates,
	})
}

// decodeWebhookBody tolerates the two shapes the board delivers: a JSON
// object, or that same object serialized into a JSON string. Anything else
// decodes to nil and is handled as an event without a pulse id.
func decodeWebhookBody(body []byte) map[string]interface{} {
	var doc interface{}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	if err := dec.Decode(&doc); err != nil {
		return nil
	}

	if s, ok := doc.(string); ok {
		inner := json.NewDecoder(strings.NewReader(s))
		inner.UseNumber()

		if err := inner.Decode(&doc); err != nil {
			return nil
		}
	}

	payload, _ := doc.(map[string]interface{})
	return payload
}

// eventObject returns the event payload, tolerating the string-encoded form
// some delivery paths produce.
func eventObject(payload map[string]interface{}) map[string]interface{} {
	switch v := payload["event"].(type) {
	case map[string]interface{}:
		return v
	case string:
		dec := json.NewDecoder(strings.NewReader(v))
		dec.UseNumber()

		var event map[string]interface{}

		if err := dec.Decode(&event); err == nil {
			return event
		}
	}

	return nil
}

// eventString reads an event field that the board may send as either a JSON
// string or a bare number. Numeric ids keep their exact digits.
func eventString(event map[string]interface{}, key string) string {
	if event == nil {
		return ""
	}

	switch v := event[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
