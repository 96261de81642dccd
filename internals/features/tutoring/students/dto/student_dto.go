// file: internals/features/tutoring/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"zupsms_backend/internals/constants"
	"zupsms_backend/internals/features/tutoring/students/model"
	tutorModel "zupsms_backend/internals/features/tutoring/tutors/model"
	"zupsms_backend/internals/helpers/dbtime"
)

type CreateStudentRequest struct {
	FullName  string     `json:"fullName" validate:"required,max=160"`
	Phone     string     `json:"phone" validate:"required,max=32"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	DayOfWeek string     `json:"dayOfWeek" validate:"required"`
	StartTime string     `json:"startTime" validate:"required"`
	TutorID   *uuid.UUID `json:"tutorId"`
	IsActive  *bool      `json:"isActive"`
}

// ToModel valide jour/heure et applique le défaut isActive=true.
func (r CreateStudentRequest) ToModel() (model.StudentModel, error) {
	day, err := constants.ParseDayOfWeek(r.DayOfWeek)
	if err != nil {
		return model.StudentModel{}, err
	}
	start, err := dbtime.Parse(r.StartTime)
	if err != nil {
		return model.StudentModel{}, err
	}

	m := model.StudentModel{
		StudentFullName:  r.FullName,
		StudentPhone:     r.Phone,
		StudentEmail:     r.Email,
		StudentDayOfWeek: day,
		StudentStartTime: start,
		StudentTutorID:   r.TutorID,
		StudentIsActive:  true,
	}
	if r.IsActive != nil {
		m.StudentIsActive = *r.IsActive
	}
	return m, nil
}

type UpdateStudentRequest struct {
	FullName  *string    `json:"fullName" validate:"omitempty,max=160"`
	Phone     *string    `json:"phone" validate:"omitempty,max=32"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	DayOfWeek *string    `json:"dayOfWeek"`
	StartTime *string    `json:"startTime"`
	TutorID   *uuid.UUID `json:"tutorId"`
	ClearTutor bool      `json:"clearTutor"`
	IsActive  *bool      `json:"isActive"`
}

type BulkToggleRequest struct {
	StudentIDs []uuid.UUID `json:"studentIds" validate:"required,min=1"`
	IsActive   *bool       `json:"isActive" validate:"required"`
}

type TutorSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl"`
}

type StudentResponse struct {
	ID        uuid.UUID     `json:"id"`
	FullName  string        `json:"fullName"`
	Phone     string        `json:"phone"`
	Email     *string       `json:"email,omitempty"`
	DayOfWeek string        `json:"dayOfWeek"`
	StartTime string        `json:"startTime"`
	TutorID   *uuid.UUID    `json:"tutorId,omitempty"`
	IsActive  bool          `json:"isActive"`
	CreatedAt time.Time     `json:"createdAt"`
	Tutor     *TutorSummary `json:"tutor,omitempty"`
}

func FromModel(m model.StudentModel) StudentResponse {
	resp := StudentResponse{
		ID:        m.StudentID,
		FullName:  m.StudentFullName,
		Phone:     m.StudentPhone,
		Email:     m.StudentEmail,
		DayOfWeek: m.StudentDayOfWeek.String(),
		StartTime: m.StudentStartTime.HHMM(),
		TutorID:   m.StudentTutorID,
		IsActive:  m.StudentIsActive,
		CreatedAt: m.StudentCreatedAt,
	}
	if m.Tutor != nil {
		resp.Tutor = tutorSummary(m.Tutor)
	}
	return resp
}

func FromModels(ms []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}

func tutorSummary(t *tutorModel.TutorModel) *TutorSummary {
	return &TutorSummary{
		ID:        t.TutorID,
		Name:      t.TutorName,
		Email:     t.TutorEmail,
		AvatarURL: t.TutorAvatarURL,
	}
}
