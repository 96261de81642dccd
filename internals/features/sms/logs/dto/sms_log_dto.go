package dto

import (
	"time"

	"github.com/google/uuid"
)

// Ligne de l'écran "Activité": journal + nom de l'élève (left join)
type SmsLogRow struct {
	ID          uuid.UUID  `gorm:"column:sms_log_id" json:"id"`
	Phone       string     `gorm:"column:sms_log_phone" json:"phone"`
	Message     string     `gorm:"column:sms_log_message" json:"message"`
	Status      string     `gorm:"column:sms_log_status" json:"status"`
	SentAt      time.Time  `gorm:"column:sms_log_sent_at" json:"sentAt"`
	StudentID   *uuid.UUID `gorm:"column:sms_log_student_id" json:"studentId,omitempty"`
	StudentName *string    `gorm:"column:student_full_name" json:"studentName,omitempty"`
}
