package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"zupsms_backend/internals/configs"
	smsLogModel "zupsms_backend/internals/features/sms/logs/model"
	settingModel "zupsms_backend/internals/features/sms/settings/model"
	templateModel "zupsms_backend/internals/features/sms/templates/model"
	studentModel "zupsms_backend/internals/features/tutoring/students/model"
	tutorModel "zupsms_backend/internals/features/tutoring/tutors/model"
	userModel "zupsms_backend/internals/features/users/auth/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connexion à PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=zupsms&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // compatible PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Connexion DB échouée: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")

	migrate()
}

func migrate() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&tutorModel.TutorModel{},
		&studentModel.StudentModel{},
		&settingModel.SettingModel{},
		&smsLogModel.SmsLogModel{},
		&templateModel.MessageTemplateModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate: %v", err)
	}

	// Un seul "sent" par élève et par jour: l'insert perd la course,
	// pas le read-then-write.
	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_sms_logs_sent_per_day
		ON sms_logs (sms_log_student_id, date(sms_log_sent_at))
		WHERE sms_log_status = 'sent' AND sms_log_student_id IS NOT NULL
	`).Error; err != nil {
		log.Printf("[WARN] index uq_sms_logs_sent_per_day: %v", err)
	}
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
