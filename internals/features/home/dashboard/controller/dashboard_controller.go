// file: internals/features/home/dashboard/controller/dashboard_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"zupsms_backend/internals/constants"
	dto "zupsms_backend/internals/features/home/dashboard/dto"
	smsLogModel "zupsms_backend/internals/features/sms/logs/model"
	studentModel "zupsms_backend/internals/features/tutoring/students/model"
	tutorModel "zupsms_backend/internals/features/tutoring/tutors/model"
	helper "zupsms_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// Overview: GET /api/dashboard. stats, séances à venir aujourd'hui, derniers SMS
func (ctl *DashboardController) Overview(c *fiber.Ctx) error {
	now := constants.NowParis()

	stats, err := ctl.buildStats(now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard stats")
	}

	upcoming, err := ctl.upcomingSessions(now, 5)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch upcoming sessions")
	}

	recent, err := ctl.recentSms(5)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch recent sms")
	}

	return helper.JsonOK(c, "OK", dto.DashboardResponse{
		Stats:            stats,
		UpcomingSessions: upcoming,
		RecentSms:        recent,
	})
}

func (ctl *DashboardController) buildStats(now time.Time) (dto.DashboardStats, error) {
	var s dto.DashboardStats

	students := func() *gorm.DB { return ctl.DB.Model(&studentModel.StudentModel{}) }

	if err := students().Count(&s.TotalStudents).Error; err != nil {
		return s, err
	}
	if err := students().Where("student_is_active = ?", true).Count(&s.ActiveStudents).Error; err != nil {
		return s, err
	}
	s.InactiveStudents = s.TotalStudents - s.ActiveStudents

	if err := ctl.DB.Model(&tutorModel.TutorModel{}).Count(&s.TotalTutors).Error; err != nil {
		return s, err
	}
	if err := students().
		Where("student_tutor_id IS NOT NULL AND student_is_active = ?", true).
		Count(&s.AssignedStudents).Error; err != nil {
		return s, err
	}

	if s.TotalTutors > 0 {
		capacity := float64(s.TotalTutors * tutorModel.MaxActiveStudents)
		s.UtilizationRate = float64(s.AssignedStudents) / capacity * 100
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// semaine lundi → dimanche
	offset := (int(now.Weekday()) + 6) % 7
	weekStart := dayStart.AddDate(0, 0, -offset)

	logs := func() *gorm.DB {
		return ctl.DB.Model(&smsLogModel.SmsLogModel{}).
			Where("sms_log_status = ?", smsLogModel.StatusSent)
	}
	if err := logs().Where("sms_log_sent_at >= ?", dayStart).Count(&s.SmsSentToday).Error; err != nil {
		return s, err
	}
	if err := logs().Where("sms_log_sent_at >= ?", weekStart).Count(&s.SmsSentThisWeek).Error; err != nil {
		return s, err
	}

	return s, nil
}

func (ctl *DashboardController) upcomingSessions(now time.Time, limit int) ([]dto.UpcomingSession, error) {
	today := constants.DayFromWeekday(now.Weekday())

	var students []studentModel.StudentModel
	err := ctl.DB.Preload("Tutor").
		Where("student_day_of_week = ? AND student_is_active = ?", today, true).
		Order("student_start_time ASC").
		Find(&students).Error
	if err != nil {
		return nil, err
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	out := make([]dto.UpcomingSession, 0, limit)
	for _, st := range students {
		if st.StudentStartTime.MinutesOfDay() <= nowMinutes {
			continue
		}
		sess := dto.UpcomingSession{
			StudentID: st.StudentID,
			FullName:  st.StudentFullName,
			Phone:     st.StudentPhone,
			StartTime: st.StudentStartTime.HHMM(),
		}
		if st.Tutor != nil {
			sess.TutorName = st.Tutor.TutorName
		}
		out = append(out, sess)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (ctl *DashboardController) recentSms(limit int) ([]dto.RecentSms, error) {
	type row struct {
		SmsLogID        uuid.UUID `gorm:"column:sms_log_id"`
		SmsLogPhone     string    `gorm:"column:sms_log_phone"`
		SmsLogStatus    string    `gorm:"column:sms_log_status"`
		SmsLogSentAt    time.Time `gorm:"column:sms_log_sent_at"`
		StudentFullName string    `gorm:"column:student_full_name"`
	}
	var rows []row
	err := ctl.DB.Model(&smsLogModel.SmsLogModel{}).
		Select("sms_logs.sms_log_id, sms_logs.sms_log_phone, sms_logs.sms_log_status, sms_logs.sms_log_sent_at, students.student_full_name").
		Joins("LEFT JOIN students ON students.student_id = sms_logs.sms_log_student_id").
		Order("sms_logs.sms_log_sent_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.RecentSms, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RecentSms{
			ID:          r.SmsLogID,
			Phone:       r.SmsLogPhone,
			Status:      r.SmsLogStatus,
			SentAt:      r.SmsLogSentAt,
			StudentName: r.StudentFullName,
		})
	}
	return out, nil
}
