package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxActiveStudents: capacité d'un tuteur. Vérifié à l'écriture côté élèves
// (create/update), pas de contrainte dure en base.
const MaxActiveStudents = 5

type TutorModel struct {
	TutorID        uuid.UUID `gorm:"column:tutor_id;type:uuid;primaryKey" json:"tutor_id"`
	TutorName      string    `gorm:"column:tutor_name;type:varchar(160);not null" json:"tutor_name"`
	TutorEmail     string    `gorm:"column:tutor_email;type:varchar(255);not null;uniqueIndex" json:"tutor_email"`
	TutorAvatarURL string    `gorm:"column:tutor_avatar_url;type:text;not null" json:"tutor_avatar_url"`
	TutorCreatedAt time.Time `gorm:"column:tutor_created_at;autoCreateTime" json:"tutor_created_at"`
}

func (TutorModel) TableName() string { return "tutors" }

func (t *TutorModel) BeforeCreate(tx *gorm.DB) error {
	if t.TutorID == uuid.Nil {
		t.TutorID = uuid.New()
	}
	return nil
}
