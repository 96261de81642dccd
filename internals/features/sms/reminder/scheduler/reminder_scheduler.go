package scheduler

import (
	"log"
	"os"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"zupsms_backend/internals/constants"
	reminderService "zupsms_backend/internals/features/sms/reminder/service"
)

// StartReminderScheduler lance un cron interne si REMINDER_CRON est défini
// (ex: "*/5 * * * *"). En prod le trigger normal reste l'endpoint HTTP
// appelé par le cron externe; ceci sert pour l'auto-hébergement.
func StartReminderScheduler(db *gorm.DB, gw reminderService.SmsGateway) {
	spec := os.Getenv("REMINDER_CRON")
	if spec == "" {
		return
	}

	svc := reminderService.NewReminderService(db, gw)

	c := cron.New(cron.WithLocation(constants.ParisLocation()))
	if _, err := c.AddFunc(spec, func() {
		summary, err := svc.Run(constants.NowParis())
		if err != nil {
			log.Printf("[REMINDER CRON] erreur: %v", err)
			return
		}
		log.Printf("[REMINDER CRON] day=%s target=%s notified=%d", summary.CurrentDay, summary.TargetTime, summary.StudentsNotified)
	}); err != nil {
		log.Printf("[REMINDER CRON] expression invalide %q: %v", spec, err)
		return
	}

	c.Start()
	log.Printf("⏱ Reminder scheduler interne démarré (%s)", spec)
}
