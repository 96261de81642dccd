package configs

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret      string
	CronSecret     string
	GoogleClientID string

	// Sweego: chargé une fois au démarrage, immuable ensuite
	SweegoAPIKey     string
	SweegoSenderID   string
	SweegoAPIURL     string
	SweegoTemplateID string
)

const defaultSweegoAPIURL = "https://api.sweego.io"

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Pas de fichier .env, utilisation des ENV système")
		} else {
			log.Println("✅ Fichier .env chargé")
		}
	} else {
		log.Println("🚀 Running in Railway, ENV système")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	CronSecret = GetEnv("CRON_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")

	SweegoAPIKey = GetEnv("SWEEGO_API_KEY")
	SweegoSenderID = GetEnv("SWEEGO_SENDER_ID", "ZUPdeCO")
	SweegoAPIURL = GetEnv("SWEEGO_API_URL", defaultSweegoAPIURL)
	SweegoTemplateID = GetEnv("SWEEGO_TEMPLATE_ID")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET non défini !")
	}
	if CronSecret == "" {
		log.Println("❌ CRON_SECRET non défini: le dispatcher refusera tout appel !")
	}
	if SweegoAPIKey == "" {
		log.Println("⚠️ SWEEGO_API_KEY non défini, l'envoi de SMS échouera")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
