package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"zupsms_backend/internals/constants"
	smsLogModel "zupsms_backend/internals/features/sms/logs/model"
	smsService "zupsms_backend/internals/features/sms/service"
	settingModel "zupsms_backend/internals/features/sms/settings/model"
	studentModel "zupsms_backend/internals/features/tutoring/students/model"
	tutorModel "zupsms_backend/internals/features/tutoring/tutors/model"
	"zupsms_backend/internals/helpers/dbtime"
)

var dbSeq int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:reminder_test_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&tutorModel.TutorModel{},
		&studentModel.StudentModel{},
		&settingModel.SettingModel{},
		&smsLogModel.SmsLogModel{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fakeGateway struct {
	calls []gatewayCall
	fail  map[string]string // phone -> error message
}

type gatewayCall struct {
	Phone      string
	TemplateID string
	Variables  map[string]string
}

func (f *fakeGateway) SendTemplate(phone, templateID string, variables map[string]string) smsService.SendResult {
	f.calls = append(f.calls, gatewayCall{Phone: phone, TemplateID: templateID, Variables: variables})
	if msg, ok := f.fail[phone]; ok {
		return smsService.SendResult{Success: false, Error: msg}
	}
	return smsService.SendResult{Success: true, MessageID: "fake-id", Status: "sent"}
}

func seedSettings(t *testing.T, db *gorm.DB, offset int) {
	t.Helper()
	s := settingModel.SettingModel{
		SettingSmsOffsetMinutes: offset,
		SettingSmsTemplate:      "tmpl-prod",
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("seed settings: %v", err)
	}
}

func seedStudent(t *testing.T, db *gorm.DB, name, phone string, day constants.DayOfWeek, start string, active bool) studentModel.StudentModel {
	t.Helper()
	tod, err := dbtime.Parse(start)
	if err != nil {
		t.Fatalf("parse %q: %v", start, err)
	}
	st := studentModel.StudentModel{
		StudentFullName:  name,
		StudentPhone:     phone,
		StudentDayOfWeek: day,
		StudentStartTime: tod,
		StudentIsActive:  active,
	}
	if err := db.Create(&st).Error; err != nil {
		t.Fatalf("seed student %s: %v", name, err)
	}
	return st
}

// lundi 6 janvier 2025, 13:46 à Paris; offset 15 → cible 14:01
func mondayAfternoon() time.Time {
	return time.Date(2025, time.January, 6, 13, 46, 0, 0, constants.ParisLocation())
}

func TestRunMatchesWindowAndSends(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 15)

	inWindow := seedStudent(t, db, "Ahmed Benali", "+33612345678", constants.Lundi, "14:00", true)
	seedStudent(t, db, "Trop tôt", "+33600000001", constants.Lundi, "13:50", true)
	seedStudent(t, db, "Trop tard", "+33600000002", constants.Lundi, "14:10", true)
	seedStudent(t, db, "Mauvais jour", "+33600000003", constants.Mardi, "14:00", true)
	seedStudent(t, db, "Inactif", "+33600000004", constants.Lundi, "14:00", false)

	gw := &fakeGateway{}
	svc := NewReminderService(db, gw)

	summary, err := svc.Run(mondayAfternoon())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.CurrentDay != "lundi" {
		t.Fatalf("expected currentDay lundi, got %s", summary.CurrentDay)
	}
	if summary.TargetTime != "14:01" {
		t.Fatalf("expected target 14:01, got %s", summary.TargetTime)
	}
	if summary.StudentsNotified != 1 {
		t.Fatalf("expected 1 student notified, got %d", summary.StudentsNotified)
	}
	if len(summary.Results) != 1 || summary.Results[0].Status != smsLogModel.StatusSent {
		t.Fatalf("unexpected results: %+v", summary.Results)
	}

	if len(gw.calls) != 1 {
		t.Fatalf("expected 1 gateway call, got %d", len(gw.calls))
	}
	call := gw.calls[0]
	if call.Phone != "+33612345678" || call.TemplateID != "tmpl-prod" {
		t.Fatalf("unexpected call: %+v", call)
	}
	if call.Variables["jour"] != "lundi" || call.Variables["heure"] != "14:00" {
		t.Fatalf("unexpected variables: %v", call.Variables)
	}

	var logs []smsLogModel.SmsLogModel
	if err := db.Find(&logs).Error; err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log row, got %d", len(logs))
	}
	if logs[0].SmsLogStatus != smsLogModel.StatusSent || *logs[0].SmsLogStudentID != inWindow.StudentID {
		t.Fatalf("unexpected log: %+v", logs[0])
	}
}

func TestRunWindowBoundaries(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 15)

	// cible 14:01: 13:56 et 14:06 sont à pile ±5 min, 13:55 sort de la fenêtre
	seedStudent(t, db, "Borne basse", "+33600000010", constants.Lundi, "13:56", true)
	seedStudent(t, db, "Borne haute", "+33600000011", constants.Lundi, "14:06", true)
	seedStudent(t, db, "Dehors", "+33600000012", constants.Lundi, "13:55", true)

	gw := &fakeGateway{}
	summary, err := NewReminderService(db, gw).Run(mondayAfternoon())
	if err != nil {
		t.Fatal(err)
	}
	if summary.StudentsNotified != 2 {
		t.Fatalf("expected 2 matched, got %d", summary.StudentsNotified)
	}
}

func TestRunSkipsAlreadyNotifiedToday(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 15)
	st := seedStudent(t, db, "Ahmed", "+33612345678", constants.Lundi, "14:00", true)

	gw := &fakeGateway{}
	svc := NewReminderService(db, gw)

	if _, err := svc.Run(mondayAfternoon()); err != nil {
		t.Fatal(err)
	}
	if len(gw.calls) != 1 {
		t.Fatalf("expected 1 call after first run, got %d", len(gw.calls))
	}

	// deuxième tick du cron 5 min plus tard: personne ne doit être renotifié
	summary, err := svc.Run(mondayAfternoon().Add(5 * time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if len(gw.calls) != 1 {
		t.Fatalf("expected no new gateway call, got %d", len(gw.calls))
	}
	if len(summary.Results) != 1 || summary.Results[0].Status != smsLogModel.StatusSkipped {
		t.Fatalf("expected skipped result, got %+v", summary.Results)
	}

	var count int64
	db.Model(&smsLogModel.SmsLogModel{}).
		Where("sms_log_student_id = ? AND sms_log_status = ?", st.StudentID, smsLogModel.StatusSkipped).
		Count(&count)
	if count != 1 {
		t.Fatalf("expected a skipped log row, got %d", count)
	}
}

func TestRunGatewayFailureDoesNotStopBatch(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 15)
	seedStudent(t, db, "En échec", "+33600000020", constants.Lundi, "14:00", true)
	seedStudent(t, db, "OK", "+33600000021", constants.Lundi, "14:02", true)

	gw := &fakeGateway{fail: map[string]string{"+33600000020": "provider refused"}}
	summary, err := NewReminderService(db, gw).Run(mondayAfternoon())
	if err != nil {
		t.Fatal(err)
	}

	if summary.StudentsNotified != 2 || len(summary.Results) != 2 {
		t.Fatalf("expected 2 results, got %+v", summary)
	}
	byPhone := map[string]StudentResult{}
	for _, r := range summary.Results {
		byPhone[r.Phone] = r
	}
	if byPhone["+33600000020"].Status != smsLogModel.StatusFailed {
		t.Fatalf("expected failed, got %+v", byPhone["+33600000020"])
	}
	if byPhone["+33600000020"].Error != "provider refused" {
		t.Fatalf("expected gateway error surfaced, got %q", byPhone["+33600000020"].Error)
	}
	if byPhone["+33600000021"].Status != smsLogModel.StatusSent {
		t.Fatalf("expected second student sent, got %+v", byPhone["+33600000021"])
	}

	var failedCount int64
	db.Model(&smsLogModel.SmsLogModel{}).
		Where("sms_log_status = ?", smsLogModel.StatusFailed).Count(&failedCount)
	if failedCount != 1 {
		t.Fatalf("expected 1 failed log, got %d", failedCount)
	}
}

func TestRunFailedSendCanRetryNextTick(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 15)
	seedStudent(t, db, "Ahmed", "+33612345678", constants.Lundi, "14:00", true)

	gw := &fakeGateway{fail: map[string]string{"+33612345678": "timeout"}}
	svc := NewReminderService(db, gw)
	if _, err := svc.Run(mondayAfternoon()); err != nil {
		t.Fatal(err)
	}

	// seul un statut "sent" bloque le renvoi: après un failed on retente
	gw.fail = nil
	summary, err := svc.Run(mondayAfternoon().Add(2 * time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if summary.Results[0].Status != smsLogModel.StatusSent {
		t.Fatalf("expected retry to send, got %+v", summary.Results[0])
	}
	if len(gw.calls) != 2 {
		t.Fatalf("expected 2 gateway calls, got %d", len(gw.calls))
	}
}

func TestRunWithoutSettings(t *testing.T) {
	db := openTestDB(t)
	_, err := NewReminderService(db, &fakeGateway{}).Run(mondayAfternoon())
	if !errors.Is(err, ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}
}

func TestRunNormalizesTimezone(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 15)
	seedStudent(t, db, "Ahmed", "+33612345678", constants.Lundi, "14:00", true)

	// même instant mais exprimé en UTC: 12:46 UTC = 13:46 Paris (hiver)
	utc := mondayAfternoon().UTC()
	gw := &fakeGateway{}
	summary, err := NewReminderService(db, gw).Run(utc)
	if err != nil {
		t.Fatal(err)
	}
	if summary.CurrentDay != "lundi" || summary.TargetTime != "14:01" {
		t.Fatalf("expected Paris-relative day/target, got %s %s", summary.CurrentDay, summary.TargetTime)
	}
	if len(gw.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(gw.calls))
	}
}
