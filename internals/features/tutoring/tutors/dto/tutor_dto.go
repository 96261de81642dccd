// file: internals/features/tutoring/tutors/dto/tutor_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"zupsms_backend/internals/features/tutoring/tutors/model"
)

type CreateTutorRequest struct {
	Name      string `json:"name" validate:"required,max=160"`
	Email     string `json:"email" validate:"required,email"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

type UpdateTutorRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=160"`
	Email     *string `json:"email" validate:"omitempty,email"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
}

type TutorResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatarUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	ActiveStudents int64   `json:"activeStudents"`
	Capacity     int       `json:"capacity"`
}

func FromModel(m model.TutorModel, activeStudents int64) TutorResponse {
	return TutorResponse{
		ID:             m.TutorID,
		Name:           m.TutorName,
		Email:          m.TutorEmail,
		AvatarURL:      m.TutorAvatarURL,
		CreatedAt:      m.TutorCreatedAt,
		ActiveStudents: activeStudents,
		Capacity:       model.MaxActiveStudents,
	}
}
