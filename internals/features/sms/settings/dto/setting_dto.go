package dto

import (
	"time"

	"github.com/google/uuid"

	"zupsms_backend/internals/features/sms/settings/model"
)

// Borne métier: un rappel part entre 5 et 120 minutes avant la session.
type UpsertSettingRequest struct {
	SmsOffsetMinutes int    `json:"smsOffsetMinutes" validate:"required,min=5,max=120"`
	SmsTemplate      string `json:"smsTemplate" validate:"required"`
}

type SettingResponse struct {
	ID               uuid.UUID `json:"id"`
	SmsOffsetMinutes int       `json:"smsOffsetMinutes"`
	SmsTemplate      string    `json:"smsTemplate"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func FromModel(m model.SettingModel) SettingResponse {
	return SettingResponse{
		ID:               m.SettingID,
		SmsOffsetMinutes: m.SettingSmsOffsetMinutes,
		SmsTemplate:      m.SettingSmsTemplate,
		UpdatedAt:        m.SettingUpdatedAt,
	}
}
