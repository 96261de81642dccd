// file: internals/features/sms/controller/sms_tools_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	smsService "zupsms_backend/internals/features/sms/service"
)

// SmsToolsController: endpoints utilitaires de l'écran "Réglages SMS"
// (test d'envoi, statut du compte Sweego).
type SmsToolsController struct {
	Gateway *smsService.SweegoService
}

func NewSmsToolsController(gw *smsService.SweegoService) *SmsToolsController {
	return &SmsToolsController{Gateway: gw}
}

type testSendRequest struct {
	Phone    string `json:"phone"`
	Template string `json:"template"`
}

// TestSend: POST /api/sms/test. envoi de contrôle avec les variables du
// template de production ({{jour}}/{{heure}})
func (ctl *SmsToolsController) TestSend(c *fiber.Ctx) error {
	var body testSendRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}
	if body.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Phone number is required"})
	}

	variables := map[string]string{
		"jour":  "lundi",
		"heure": "14:00",
	}

	result := ctl.Gateway.SendTemplate(body.Phone, body.Template, variables)
	if !result.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   result.Error,
			"phone":   body.Phone,
		})
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"messageId":         result.MessageID,
		"status":            result.Status,
		"message":           "SMS sent successfully",
		"phone":             body.Phone,
		"templateVariables": variables,
	})
}

// TestConfig: GET /api/sms/test-config. état de la configuration
func (ctl *SmsToolsController) TestConfig(c *fiber.Ctx) error {
	configured := ctl.Gateway.Configured()
	msg := "Sweego SMS is configured and ready to use"
	if !configured {
		msg = "Sweego SMS is not configured. Please set SWEEGO_API_KEY in your environment variables."
	}
	return c.JSON(fiber.Map{
		"configured": configured,
		"templateId": ctl.Gateway.DefaultTemplateID(),
		"message":    msg,
	})
}

// Account: GET /api/sms/account. crédits restants côté Sweego
func (ctl *SmsToolsController) Account(c *fiber.Ctx) error {
	return c.JSON(ctl.Gateway.Account())
}
