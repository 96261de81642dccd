// file: internals/features/sms/settings/controller/setting_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "zupsms_backend/internals/features/sms/settings/dto"
	model "zupsms_backend/internals/features/sms/settings/model"
	helper "zupsms_backend/internals/helpers"
)

type SettingController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewSettingController(db *gorm.DB, v *validator.Validate) *SettingController {
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	return &SettingController{DB: db, Validate: v}
}

// Get: GET /api/settings. la ligne unique (null si pas encore seedée)
func (ctl *SettingController) Get(c *fiber.Ctx) error {
	var setting model.SettingModel
	if err := ctl.DB.Take(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonOK(c, "OK", nil)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch settings")
	}
	return helper.JsonOK(c, "OK", dto.FromModel(setting))
}

// Upsert: PUT /api/settings. update-or-insert, jamais de delete
func (ctl *SettingController) Upsert(c *fiber.Ctx) error {
	var req dto.UpsertSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var setting model.SettingModel
	err := ctl.DB.Take(&setting).Error
	switch {
	case err == nil:
		setting.SettingSmsOffsetMinutes = req.SmsOffsetMinutes
		setting.SettingSmsTemplate = req.SmsTemplate
		if err := ctl.DB.Save(&setting).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update settings")
		}
		return helper.JsonUpdated(c, "Settings updated", dto.FromModel(setting))

	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = model.SettingModel{
			SettingSmsOffsetMinutes: req.SmsOffsetMinutes,
			SettingSmsTemplate:      req.SmsTemplate,
		}
		if err := ctl.DB.Create(&setting).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create settings")
		}
		return helper.JsonCreated(c, "Settings created", dto.FromModel(setting))

	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch settings")
	}
}
