package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zupsms_backend/internals/constants"
	"zupsms_backend/internals/helpers/dbtime"
	tutorModel "zupsms_backend/internals/features/tutoring/tutors/model"
)

// StudentModel: l'unité sur laquelle travaille le dispatcher de rappels.
// La référence tuteur est faible: supprimer un tuteur met le champ à NULL.
type StudentModel struct {
	StudentID        uuid.UUID           `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`
	StudentFullName  string              `gorm:"column:student_full_name;type:varchar(160);not null" json:"student_full_name"`
	StudentPhone     string              `gorm:"column:student_phone;type:varchar(32);not null" json:"student_phone"`
	StudentEmail     *string             `gorm:"column:student_email;type:varchar(255)" json:"student_email,omitempty"`
	StudentDayOfWeek constants.DayOfWeek `gorm:"column:student_day_of_week;type:varchar(16);not null;index" json:"student_day_of_week"`
	StudentStartTime dbtime.Tod          `gorm:"column:student_start_time;type:time;not null" json:"student_start_time"`
	StudentTutorID   *uuid.UUID          `gorm:"column:student_tutor_id;type:uuid;index" json:"student_tutor_id,omitempty"`
	// pas de default côté DB: le DTO force true quand le champ est omis,
	// sinon GORM avalerait un false explicite à l'insert
	StudentIsActive bool `gorm:"column:student_is_active;not null" json:"student_is_active"`
	StudentCreatedAt time.Time           `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`

	Tutor *tutorModel.TutorModel `gorm:"foreignKey:StudentTutorID;references:TutorID" json:"tutor,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

func (s *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if s.StudentID == uuid.Nil {
		s.StudentID = uuid.New()
	}
	return nil
}
