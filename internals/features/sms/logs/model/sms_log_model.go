package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Statuts d'un envoi. "skipped" = déjà notifié aujourd'hui, "error" =
// exception pendant le traitement de l'élève (≠ refus passerelle "failed").
// Le webhook Sweego peut ensuite écraser le statut (delivered, etc.).
const (
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// SmsLogModel: journal append-only, une ligne par tentative d'envoi.
// Seul le webhook de livraison retouche status/timestamp.
type SmsLogModel struct {
	SmsLogID        uuid.UUID         `gorm:"column:sms_log_id;type:uuid;primaryKey" json:"sms_log_id"`
	SmsLogStudentID *uuid.UUID        `gorm:"column:sms_log_student_id;type:uuid;index" json:"sms_log_student_id,omitempty"`
	SmsLogPhone     string            `gorm:"column:sms_log_phone;type:varchar(32);not null" json:"sms_log_phone"`
	SmsLogMessage   string            `gorm:"column:sms_log_message;type:text;not null" json:"sms_log_message"`
	SmsLogVariables datatypes.JSONMap `gorm:"column:sms_log_variables" json:"sms_log_variables,omitempty"`
	SmsLogStatus    string            `gorm:"column:sms_log_status;type:varchar(20);not null;index" json:"sms_log_status"`
	SmsLogSentAt    time.Time         `gorm:"column:sms_log_sent_at;autoCreateTime;index" json:"sms_log_sent_at"`
}

func (SmsLogModel) TableName() string { return "sms_logs" }

func (l *SmsLogModel) BeforeCreate(tx *gorm.DB) error {
	if l.SmsLogID == uuid.Nil {
		l.SmsLogID = uuid.New()
	}
	return nil
}
