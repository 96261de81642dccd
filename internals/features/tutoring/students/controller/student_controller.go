// file: internals/features/tutoring/students/controller/student_controller.go
package controller

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"zupsms_backend/internals/constants"
	dto "zupsms_backend/internals/features/tutoring/students/dto"
	model "zupsms_backend/internals/features/tutoring/students/model"
	tutorModel "zupsms_backend/internals/features/tutoring/tutors/model"
	"zupsms_backend/internals/helpers/dbtime"
	helper "zupsms_backend/internals/helpers"
	smsLogModel "zupsms_backend/internals/features/sms/logs/model"
)

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB, v *validator.Validate) *StudentController {
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	return &StudentController{DB: db, Validate: v}
}

// List: GET /api/students. tuteur préchargé, tri jour puis heure de séance
func (ctl *StudentController) List(c *fiber.Ctx) error {
	q := ctl.DB.Model(&model.StudentModel{}).Preload("Tutor")

	if day := c.Query("day"); day != "" {
		d, err := constants.ParseDayOfWeek(day)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid dayOfWeek filter")
		}
		q = q.Where("student_day_of_week = ?", d)
	}
	switch c.Query("status") {
	case "active":
		q = q.Where("student_is_active = ?", true)
	case "inactive":
		q = q.Where("student_is_active = ?", false)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("student_full_name LIKE ? OR student_phone LIKE ?", like, like)
	}

	var students []model.StudentModel
	if err := q.
		Order("student_day_of_week ASC, student_start_time ASC, student_full_name ASC").
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch students")
	}
	return helper.JsonOK(c, "OK", dto.FromModels(students))
}

// GetByID: GET /api/students/:id
func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var student model.StudentModel
	if err := ctl.DB.Preload("Tutor").First(&student, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}
	return helper.JsonOK(c, "OK", dto.FromModel(student))
}

// Create: POST /api/students. capacité tuteur vérifiée avant insertion
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	student, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if student.StudentTutorID != nil && student.StudentIsActive {
		if err := ctl.checkTutorCapacity(*student.StudentTutorID, uuid.Nil); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	if err := ctl.DB.Create(&student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create student")
	}
	return helper.JsonCreated(c, "Student created", dto.FromModel(student))
}

// Update: PATCH /api/students/:id: patch partiel, capacité revérifiée si
// l'affectation tuteur ou le statut actif change
func (ctl *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var student model.StudentModel
	if err := ctl.DB.First(&student, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	if req.FullName != nil {
		student.StudentFullName = *req.FullName
	}
	if req.Phone != nil {
		student.StudentPhone = *req.Phone
	}
	if req.Email != nil {
		student.StudentEmail = req.Email
	}
	if req.DayOfWeek != nil {
		day, err := constants.ParseDayOfWeek(*req.DayOfWeek)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		student.StudentDayOfWeek = day
	}
	if req.StartTime != nil {
		start, err := dbtime.Parse(*req.StartTime)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		student.StudentStartTime = start
	}
	if req.ClearTutor {
		student.StudentTutorID = nil
	} else if req.TutorID != nil {
		student.StudentTutorID = req.TutorID
	}
	if req.IsActive != nil {
		student.StudentIsActive = *req.IsActive
	}

	if student.StudentTutorID != nil && student.StudentIsActive {
		if err := ctl.checkTutorCapacity(*student.StudentTutorID, student.StudentID); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	if err := ctl.DB.Save(&student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update student")
	}
	return helper.JsonUpdated(c, "Student updated", dto.FromModel(student))
}

// Delete: DELETE /api/students/:id. l'historique SMS part avec l'élève,
// dans la même transaction
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("sms_log_student_id = ?", id).
			Delete(&smsLogModel.SmsLogModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.StudentModel{}, "student_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete student")
	}
	return helper.JsonDeleted(c, "Student deleted", fiber.Map{"id": id})
}

// Toggle: PATCH /api/students/:id/toggle: inverse le statut actif
func (ctl *StudentController) Toggle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var student model.StudentModel
	if err := ctl.DB.First(&student, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	student.StudentIsActive = !student.StudentIsActive
	if student.StudentTutorID != nil && student.StudentIsActive {
		if err := ctl.checkTutorCapacity(*student.StudentTutorID, student.StudentID); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	if err := ctl.DB.Model(&student).
		Update("student_is_active", student.StudentIsActive).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to toggle student")
	}
	return helper.JsonUpdated(c, "Student toggled", dto.FromModel(student))
}

// BulkToggle: PATCH /api/students/bulk-toggle: un seul UPDATE pour tout le lot
func (ctl *StudentController) BulkToggle(c *fiber.Ctx) error {
	var req dto.BulkToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res := ctl.DB.Model(&model.StudentModel{}).
		Where("student_id IN ?", req.StudentIDs).
		Update("student_is_active", *req.IsActive)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update students")
	}
	return helper.JsonUpdated(c, "Students updated", fiber.Map{
		"updated":  res.RowsAffected,
		"isActive": *req.IsActive,
	})
}

// checkTutorCapacity: au plus MaxActiveStudents élèves actifs par tuteur.
// excludeID permet de ne pas compter l'élève en cours de modification.
func (ctl *StudentController) checkTutorCapacity(tutorID, excludeID uuid.UUID) error {
	q := ctl.DB.Model(&model.StudentModel{}).
		Where("student_tutor_id = ? AND student_is_active = ?", tutorID, true)
	if excludeID != uuid.Nil {
		q = q.Where("student_id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("capacity check failed")
	}
	if count >= tutorModel.MaxActiveStudents {
		return fmt.Errorf("tutor already has %d active students (max %d)",
			count, tutorModel.MaxActiveStudents)
	}
	return nil
}
