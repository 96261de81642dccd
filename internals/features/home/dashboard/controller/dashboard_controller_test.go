package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"zupsms_backend/internals/constants"
	smsLogModel "zupsms_backend/internals/features/sms/logs/model"
	studentModel "zupsms_backend/internals/features/tutoring/students/model"
	tutorModel "zupsms_backend/internals/features/tutoring/tutors/model"
	"zupsms_backend/internals/helpers/dbtime"
)

var dbSeq int

func newDashApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:dash_ctl_test_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&tutorModel.TutorModel{},
		&studentModel.StudentModel{},
		&smsLogModel.SmsLogModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New()
	ctl := NewDashboardController(db)
	app.Get("/api/dashboard", ctl.Overview)
	return app, db
}

func seedDashStudent(t *testing.T, db *gorm.DB, name string, day constants.DayOfWeek, start string, tutorID *tutorModel.TutorModel, active bool) {
	t.Helper()
	tod, err := dbtime.Parse(start)
	if err != nil {
		t.Fatal(err)
	}
	st := studentModel.StudentModel{
		StudentFullName:  name,
		StudentPhone:     "+33600000000",
		StudentDayOfWeek: day,
		StudentStartTime: tod,
		StudentIsActive:  active,
	}
	if tutorID != nil {
		st.StudentTutorID = &tutorID.TutorID
	}
	if err := db.Create(&st).Error; err != nil {
		t.Fatal(err)
	}
}

func TestDashboardOverview(t *testing.T) {
	app, db := newDashApp(t)

	tutor := tutorModel.TutorModel{TutorName: "Tuteur", TutorEmail: "t@zupsms.com"}
	if err := db.Create(&tutor).Error; err != nil {
		t.Fatal(err)
	}

	today := constants.DayFromWeekday(constants.NowParis().Weekday())
	seedDashStudent(t, db, "Affecté", today, "23:59", &tutor, true)
	seedDashStudent(t, db, "Sans tuteur", today, "00:01", nil, true)
	seedDashStudent(t, db, "Inactif", today, "23:58", nil, false)

	sent := smsLogModel.SmsLogModel{
		SmsLogPhone:   "+33600000000",
		SmsLogMessage: "m",
		SmsLogStatus:  smsLogModel.StatusSent,
	}
	failed := smsLogModel.SmsLogModel{
		SmsLogPhone:   "+33600000001",
		SmsLogMessage: "m",
		SmsLogStatus:  smsLogModel.StatusFailed,
	}
	if err := db.Create(&sent).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&failed).Error; err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	data, _ := body["data"].(map[string]any)
	stats, _ := data["stats"].(map[string]any)

	if stats["totalStudents"] != float64(3) ||
		stats["activeStudents"] != float64(2) ||
		stats["inactiveStudents"] != float64(1) {
		t.Fatalf("unexpected student stats: %v", stats)
	}
	if stats["totalTutors"] != float64(1) || stats["assignedStudents"] != float64(1) {
		t.Fatalf("unexpected tutor stats: %v", stats)
	}
	// 1 affecté / (1 tuteur x 5 places) = 20%
	if stats["utilizationRate"] != float64(20) {
		t.Fatalf("expected 20%% utilization, got %v", stats["utilizationRate"])
	}
	// seuls les "sent" comptent
	if stats["smsSentToday"] != float64(1) || stats["smsSentThisWeek"] != float64(1) {
		t.Fatalf("unexpected sms stats: %v", stats)
	}

	// sessions à venir: actives, aujourd'hui, heure future uniquement
	upcoming, _ := data["upcomingSessions"].([]any)
	for _, u := range upcoming {
		m, _ := u.(map[string]any)
		if m["fullName"] == "Inactif" {
			t.Fatal("inactive student must not appear in upcoming sessions")
		}
	}

	recent, _ := data["recentSms"].([]any)
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent sms, got %d", len(recent))
	}
}
