// file: internals/features/sms/reminder/service/reminder_service.go
package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"zupsms_backend/internals/constants"
	smsLogModel "zupsms_backend/internals/features/sms/logs/model"
	"zupsms_backend/internals/features/sms/service"
	settingModel "zupsms_backend/internals/features/sms/settings/model"
	studentModel "zupsms_backend/internals/features/tutoring/students/model"
)

// matchWindowMinutes absorbe le jitter du cron externe (tick toutes les
// 5–15 min): correspondance à ±5 min, pas d'égalité stricte.
const matchWindowMinutes = 5

// ErrSettingsNotFound: pas de ligne settings → erreur de configuration,
// aucun envoi.
var ErrSettingsNotFound = errors.New("settings not found")

// SmsGateway: ce que le dispatcher attend de la passerelle. SweegoService
// l'implémente; les tests passent un fake.
type SmsGateway interface {
	SendTemplate(phone, templateID string, variables map[string]string) service.SendResult
}

type StudentResult struct {
	StudentID uuid.UUID `json:"studentId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"` // sent | failed | skipped | error
	Error     string    `json:"error,omitempty"`
}

type Summary struct {
	Success          bool            `json:"success"`
	Timestamp        time.Time       `json:"timestamp"`
	CurrentDay       string          `json:"currentDay"`
	TargetTime       string          `json:"targetTime"`
	StudentsNotified int             `json:"studentsNotified"`
	Results          []StudentResult `json:"results"`
}

type ReminderService struct {
	DB      *gorm.DB
	Gateway SmsGateway
}

func NewReminderService(db *gorm.DB, gw SmsGateway) *ReminderService {
	return &ReminderService{DB: db, Gateway: gw}
}

// Run exécute une invocation du dispatcher: filtre temporel, envoi un par
// un, journalisation. Pas de retry, pas de backoff: un échec est terminal
// pour cette invocation. L'échec d'un élève n'interrompt jamais les
// suivants.
func (s *ReminderService) Run(now time.Time) (*Summary, error) {
	// 1) settings singleton
	var setting settingModel.SettingModel
	if err := s.DB.Take(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}

	// 2) heure de référence: Europe/Paris, quel que soit le TZ du serveur
	now = now.In(constants.ParisLocation())
	currentDay := constants.DayFromWeekday(now.Weekday())

	// 3) cible = maintenant + offset
	target := now.Add(time.Duration(setting.SettingSmsOffsetMinutes) * time.Minute)
	targetMinutes := target.Hour()*60 + target.Minute()
	targetTime := fmt.Sprintf("%02d:%02d", target.Hour(), target.Minute())

	log.Printf("🕐 [REMINDER] day=%s target=%s offset=%dmin", currentDay, targetTime, setting.SettingSmsOffsetMinutes)

	// 4) candidats: élèves actifs du jour
	var candidates []studentModel.StudentModel
	if err := s.DB.
		Where("student_day_of_week = ? AND student_is_active = ?", currentDay, true).
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	// 5) fenêtre ±5 min
	var matched []studentModel.StudentModel
	for _, st := range candidates {
		diff := st.StudentStartTime.MinutesOfDay() - targetMinutes
		if diff < 0 {
			diff = -diff
		}
		if diff <= matchWindowMinutes {
			matched = append(matched, st)
		}
	}

	summary := &Summary{
		Success:          true,
		Timestamp:        now,
		CurrentDay:       currentDay.String(),
		TargetTime:       targetTime,
		StudentsNotified: len(matched),
		Results:          make([]StudentResult, 0, len(matched)),
	}

	for _, st := range matched {
		res := s.processStudent(now, setting.SettingSmsTemplate, currentDay, st)
		summary.Results = append(summary.Results, res)
		log.Printf("[REMINDER] %s (%s): %s %s", st.StudentFullName, st.StudentPhone, res.Status, res.Error)
	}

	return summary, nil
}

// processStudent traite un seul élève; toute erreur est convertie en
// résultat "error" pour ne pas interrompre le batch.
func (s *ReminderService) processStudent(now time.Time, templateID string, day constants.DayOfWeek, st studentModel.StudentModel) StudentResult {
	res := StudentResult{
		StudentID: st.StudentID,
		Name:      st.StudentFullName,
		Phone:     st.StudentPhone,
	}

	// 6) déjà notifié aujourd'hui (date civile de Paris) → skip, pas de
	// renvoi. Best-effort: la contrainte unique en base tranche la course
	// entre deux invocations concurrentes.
	alreadySent, err := s.sentToday(st.StudentID, now)
	if err != nil {
		res.Status = smsLogModel.StatusError
		res.Error = err.Error()
		return res
	}

	heure := st.StudentStartTime.HHMM()
	variables := map[string]string{
		"jour":  day.String(),
		"heure": heure,
	}
	// le texte réel vit dans le template côté Sweego: on journalise un
	// descriptif template+variables
	message := fmt.Sprintf("[template %s] jour=%s heure=%s", templateID, day, heure)

	if alreadySent {
		res.Status = smsLogModel.StatusSkipped
		if err := s.writeLog(now, st, message, variables, smsLogModel.StatusSkipped); err != nil {
			res.Error = err.Error()
		}
		return res
	}

	// 7) envoi + journal. Un échec passerelle est "failed", on continue.
	sendRes := s.Gateway.SendTemplate(st.StudentPhone, templateID, variables)

	status := smsLogModel.StatusSent
	if !sendRes.Success {
		status = smsLogModel.StatusFailed
		res.Error = sendRes.Error
	}

	if err := s.writeLog(now, st, message, variables, status); err != nil {
		if isUniqueViolation(err) {
			// une invocation concurrente a gagné la course
			res.Status = smsLogModel.StatusSkipped
			return res
		}
		res.Status = smsLogModel.StatusError
		res.Error = err.Error()
		return res
	}

	res.Status = status
	return res
}

func (s *ReminderService) sentToday(studentID uuid.UUID, now time.Time) (bool, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int64
	err := s.DB.Model(&smsLogModel.SmsLogModel{}).
		Where("sms_log_student_id = ? AND sms_log_status = ? AND sms_log_sent_at >= ? AND sms_log_sent_at < ?",
			studentID, smsLogModel.StatusSent, dayStart, dayEnd).
		Count(&count).Error
	return count > 0, err
}

// writeLog journalise à l'heure de référence du dispatcher, pas à l'heure
// d'insertion: sentToday compare contre la même horloge.
func (s *ReminderService) writeLog(now time.Time, st studentModel.StudentModel, message string, variables map[string]string, status string) error {
	vars := datatypes.JSONMap{}
	for k, v := range variables {
		vars[k] = v
	}
	entry := smsLogModel.SmsLogModel{
		SmsLogStudentID: &st.StudentID,
		SmsLogPhone:     st.StudentPhone,
		SmsLogMessage:   message,
		SmsLogVariables: vars,
		SmsLogStatus:    status,
		SmsLogSentAt:    now,
	}
	return s.DB.Create(&entry).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
