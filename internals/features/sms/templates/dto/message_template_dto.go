package dto

import (
	"time"

	"github.com/google/uuid"

	"zupsms_backend/internals/features/sms/templates/model"
)

type CreateMessageTemplateRequest struct {
	Name      string `json:"name" validate:"required,max=160"`
	Content   string `json:"content" validate:"required"`
	IsDefault bool   `json:"isDefault"`
}

type UpdateMessageTemplateRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=160"`
	Content   *string `json:"content" validate:"omitempty"`
	IsDefault *bool   `json:"isDefault"`
}

type MessageTemplateResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Variables []string  `json:"variables"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromModel(m model.MessageTemplateModel) MessageTemplateResponse {
	return MessageTemplateResponse{
		ID:        m.MessageTemplateID,
		Name:      m.MessageTemplateName,
		Content:   m.MessageTemplateContent,
		Variables: m.MessageTemplateVariables,
		IsDefault: m.MessageTemplateIsDefault,
		CreatedAt: m.MessageTemplateCreatedAt,
		UpdatedAt: m.MessageTemplateUpdatedAt,
	}
}

func FromModels(ms []model.MessageTemplateModel) []MessageTemplateResponse {
	out := make([]MessageTemplateResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}
