// file: internals/features/sms/logs/controller/sms_log_controller.go
package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "zupsms_backend/internals/features/sms/logs/dto"
	model "zupsms_backend/internals/features/sms/logs/model"
	helper "zupsms_backend/internals/helpers"
)

type SmsLogController struct {
	DB *gorm.DB
}

func NewSmsLogController(db *gorm.DB) *SmsLogController {
	return &SmsLogController{DB: db}
}

// List: GET /api/sms-logs?status=&search=&days=&page=&per_page=
// Filtres de l'écran Activité; jointure sur le nom de l'élève.
func (ctl *SmsLogController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 500)

	q := ctl.DB.Model(&model.SmsLogModel{}).
		Select("sms_logs.*, students.student_full_name").
		Joins("LEFT JOIN students ON students.student_id = sms_logs.sms_log_student_id")

	if status := strings.TrimSpace(c.Query("status")); status != "" && status != "all" {
		q = q.Where("sms_logs.sms_log_status = ?", status)
	}

	if daysStr := strings.TrimSpace(c.Query("days")); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil && days > 0 {
			since := time.Now().AddDate(0, 0, -days)
			q = q.Where("sms_logs.sms_log_sent_at >= ?", since)
		}
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("sms_logs.sms_log_phone LIKE ? OR sms_logs.sms_log_message LIKE ?", like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch SMS logs")
	}

	var rows []dto.SmsLogRow
	if err := q.
		Order("sms_logs.sms_log_sent_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch SMS logs")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"logs":       rows,
		"pagination": helper.BuildPagination(paging, total, len(rows)),
	})
}
