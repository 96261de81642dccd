package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettingModel: ligne unique (singleton). setting_sms_template référence un
// template hébergé côté Sweego, pas la table message_templates locale.
type SettingModel struct {
	SettingID               uuid.UUID `gorm:"column:setting_id;type:uuid;primaryKey" json:"setting_id"`
	SettingSmsOffsetMinutes int       `gorm:"column:setting_sms_offset_minutes;not null;default:15" json:"setting_sms_offset_minutes"`
	SettingSmsTemplate      string    `gorm:"column:setting_sms_template;type:text;not null" json:"setting_sms_template"`
	SettingUpdatedAt        time.Time `gorm:"column:setting_updated_at;autoUpdateTime" json:"setting_updated_at"`
}

func (SettingModel) TableName() string { return "settings" }

func (s *SettingModel) BeforeCreate(tx *gorm.DB) error {
	if s.SettingID == uuid.Nil {
		s.SettingID = uuid.New()
	}
	return nil
}
