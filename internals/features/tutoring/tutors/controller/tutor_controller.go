// file: internals/features/tutoring/tutors/controller/tutor_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	dto "zupsms_backend/internals/features/tutoring/tutors/dto"
	model "zupsms_backend/internals/features/tutoring/tutors/model"
	studentModel "zupsms_backend/internals/features/tutoring/students/model"
	"zupsms_backend/internals/helpers"
	"zupsms_backend/internals/helpers/avatar"
)

type TutorController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewTutorController(db *gorm.DB, v *validator.Validate) *TutorController {
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	return &TutorController{DB: db, Validate: v}
}

// List: GET /api/tutors. chaque tuteur avec son nombre d'élèves actifs
func (ctl *TutorController) List(c *fiber.Ctx) error {
	var tutors []model.TutorModel
	if err := ctl.DB.Order("tutor_name ASC").Find(&tutors).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tutors")
	}

	counts, err := ctl.activeStudentCounts()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count students")
	}

	out := make([]dto.TutorResponse, 0, len(tutors))
	for _, t := range tutors {
		out = append(out, dto.FromModel(t, counts[t.TutorID]))
	}
	return helper.JsonOK(c, "OK", out)
}

// GetByID: GET /api/tutors/:id
func (ctl *TutorController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid tutor id")
	}

	var tutor model.TutorModel
	if err := ctl.DB.First(&tutor, "tutor_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tutor not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tutor")
	}

	var count int64
	if err := ctl.DB.Model(&studentModel.StudentModel{}).
		Where("student_tutor_id = ? AND student_is_active = ?", id, true).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count students")
	}
	return helper.JsonOK(c, "OK", dto.FromModel(tutor, count))
}

// Create: POST /api/tutors. email dupliqué = 400, pas 500
func (ctl *TutorController) Create(c *fiber.Ctx) error {
	var req dto.CreateTutorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	tutor := model.TutorModel{
		TutorName:      req.Name,
		TutorEmail:     strings.ToLower(strings.TrimSpace(req.Email)),
		TutorAvatarURL: req.AvatarURL,
	}
	if err := ctl.DB.Create(&tutor).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "A tutor with this email already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create tutor")
	}
	return helper.JsonCreated(c, "Tutor created", dto.FromModel(tutor, 0))
}

// Update: PATCH /api/tutors/:id
func (ctl *TutorController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid tutor id")
	}

	var req dto.UpdateTutorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var tutor model.TutorModel
	if err := ctl.DB.First(&tutor, "tutor_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tutor not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tutor")
	}

	if req.Name != nil {
		tutor.TutorName = *req.Name
	}
	if req.Email != nil {
		tutor.TutorEmail = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.AvatarURL != nil {
		tutor.TutorAvatarURL = *req.AvatarURL
	}

	if err := ctl.DB.Save(&tutor).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "A tutor with this email already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update tutor")
	}

	var count int64
	ctl.DB.Model(&studentModel.StudentModel{}).
		Where("student_tutor_id = ? AND student_is_active = ?", id, true).
		Count(&count)
	return helper.JsonUpdated(c, "Tutor updated", dto.FromModel(tutor, count))
}

// Delete: DELETE /api/tutors/:id. les élèves restent, la référence passe à NULL
func (ctl *TutorController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid tutor id")
	}

	var tutor model.TutorModel
	if err := ctl.DB.First(&tutor, "tutor_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tutor not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tutor")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&studentModel.StudentModel{}).
			Where("student_tutor_id = ?", id).
			Update("student_tutor_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.TutorModel{}, "tutor_id = ?", id).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete tutor")
	}

	// le fichier avatar part avec le tuteur; l'échec n'annule pas la suppression
	_ = avatar.Remove(tutor.TutorAvatarURL)

	return helper.JsonDeleted(c, "Tutor deleted", fiber.Map{"id": id})
}

// UploadAvatar: POST /api/tutors/:id/avatar. multipart "avatar", recompressé webp
func (ctl *TutorController) UploadAvatar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid tutor id")
	}

	var tutor model.TutorModel
	if err := ctl.DB.First(&tutor, "tutor_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tutor not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tutor")
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing avatar file")
	}

	url, err := avatar.SaveFromMultipart(fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	old := tutor.TutorAvatarURL
	tutor.TutorAvatarURL = url
	if err := ctl.DB.Model(&tutor).Update("tutor_avatar_url", url).Error; err != nil {
		_ = avatar.Remove(url)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update tutor")
	}
	_ = avatar.Remove(old)

	return helper.JsonUpdated(c, "Avatar updated", fiber.Map{"avatarUrl": url})
}

func (ctl *TutorController) activeStudentCounts() (map[uuid.UUID]int64, error) {
	type row struct {
		TutorID uuid.UUID `gorm:"column:student_tutor_id"`
		Count   int64     `gorm:"column:count"`
	}
	var rows []row
	err := ctl.DB.Model(&studentModel.StudentModel{}).
		Select("student_tutor_id, COUNT(*) AS count").
		Where("student_tutor_id IS NOT NULL AND student_is_active = ?", true).
		Group("student_tutor_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.TutorID] = r.Count
	}
	return counts, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
