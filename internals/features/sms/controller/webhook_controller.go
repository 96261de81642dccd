// file: internals/features/sms/controller/webhook_controller.go
package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	smsLogModel "zupsms_backend/internals/features/sms/logs/model"
)

type WebhookController struct {
	DB *gorm.DB
}

func NewWebhookController(db *gorm.DB) *WebhookController {
	return &WebhookController{DB: db}
}

type deliveryNotification struct {
	MessageID   string `json:"messageId"`
	Status      string `json:"status"`
	Phone       string `json:"phone"`
	Error       string `json:"error"`
	DeliveredAt string `json:"deliveredAt"`
	FailedAt    string `json:"failedAt"`
}

// HandleDeliveryStatus: POST /api/sms/webhook. notification de livraison
// Sweego. Best-effort: un échec de mise à jour du journal ne fait pas
// échouer le webhook.
func (ctl *WebhookController) HandleDeliveryStatus(c *fiber.Ctx) error {
	var body deliveryNotification
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid webhook"})
	}

	// TODO: vérifier x-sweego-signature quand Sweego documentera le HMAC
	// en l'état n'importe quel appelant peut modifier un statut
	if sig := c.Get("x-sweego-signature"); sig != "" {
		log.Println("[WEBHOOK] signature reçue mais non vérifiée")
	}

	log.Printf("📨 Sweego webhook: messageId=%s status=%s phone=%s", body.MessageID, body.Status, body.Phone)

	if body.MessageID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "messageId is required"})
	}

	logID, err := uuid.Parse(body.MessageID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "messageId must be a valid id"})
	}

	status := body.Status
	if status == "" {
		status = "delivered"
	}
	ts := time.Now()
	if t := parseWebhookTime(body.DeliveredAt); t != nil {
		ts = *t
	} else if t := parseWebhookTime(body.FailedAt); t != nil {
		ts = *t
	}

	if err := ctl.DB.Model(&smsLogModel.SmsLogModel{}).
		Where("sms_log_id = ?", logID).
		Updates(map[string]interface{}{
			"sms_log_status":  status,
			"sms_log_sent_at": ts,
		}).Error; err != nil {
		log.Println("[ERROR] webhook log update:", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Webhook processed successfully",
	})
}

// WebhookInfo: GET /api/sms/webhook. sanity check de configuration
func (ctl *WebhookController) WebhookInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":    "Sweego webhook endpoint is active",
		"webhookUrl": "/api/sms/webhook",
		"note":       "Configure this URL in your Sweego dashboard for delivery status updates",
	})
}

func parseWebhookTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}
