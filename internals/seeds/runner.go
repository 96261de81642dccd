// file: internals/seeds/runner.go
//
// Jeu de données de démarrage: un compte coordinateur, quelques élèves,
// les réglages SMS et un template par défaut. Idempotent: on ne réinsère
// pas si la table est déjà peuplée.
package seeds

import (
	"log"

	"gorm.io/gorm"

	"zupsms_backend/internals/constants"
	settingModel "zupsms_backend/internals/features/sms/settings/model"
	templateModel "zupsms_backend/internals/features/sms/templates/model"
	studentModel "zupsms_backend/internals/features/tutoring/students/model"
	authHelper "zupsms_backend/internals/features/users/auth/helper"
	userModel "zupsms_backend/internals/features/users/auth/model"
	"zupsms_backend/internals/helpers/dbtime"
)

func RunAllSeeds(db *gorm.DB) {
	log.Println("🌱 Seeding database...")
	seedCoordinator(db)
	seedStudents(db)
	seedSettings(db)
	seedDefaultTemplate(db)
	log.Println("🎉 Seeding complete")
}

func seedCoordinator(db *gorm.DB) {
	var count int64
	db.Model(&userModel.UserModel{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := authHelper.HashPassword("coordinator123")
	if err != nil {
		log.Printf("❌ seed coordinator: %v", err)
		return
	}
	user := userModel.UserModel{
		UserEmail:        "coordinator@zupsms.com",
		UserPasswordHash: hash,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("❌ seed coordinator: %v", err)
		return
	}
	log.Println("✅ Coordinator: coordinator@zupsms.com / coordinator123")
}

func seedStudents(db *gorm.DB) {
	var count int64
	db.Model(&studentModel.StudentModel{}).Count(&count)
	if count > 0 {
		return
	}

	type row struct {
		name   string
		phone  string
		email  string
		day    constants.DayOfWeek
		start  string
		active bool
	}
	rows := []row{
		{"Ahmed Benali", "+33612345678", "ahmed.benali@example.com", constants.Lundi, "14:00", true},
		{"Fatima El Amrani", "+33623456789", "fatima.elamrani@example.com", constants.Lundi, "16:00", true},
		{"Omar Chakir", "+33634567890", "omar.chakir@example.com", constants.Mardi, "10:00", true},
		{"Salma Idrissi", "+33645678901", "salma.idrissi@example.com", constants.Mercredi, "15:30", false},
		{"Youssef Alaoui", "+33656789012", "youssef.alaoui@example.com", constants.Jeudi, "11:00", true},
		{"Nadia Berrada", "+33667890123", "nadia.berrada@example.com", constants.Vendredi, "13:00", true},
		{"Karim Tazi", "+33678901234", "karim.tazi@example.com", constants.Samedi, "09:00", true},
	}

	students := make([]studentModel.StudentModel, 0, len(rows))
	for _, r := range rows {
		start, err := dbtime.Parse(r.start)
		if err != nil {
			log.Printf("❌ seed students: %v", err)
			return
		}
		email := r.email
		students = append(students, studentModel.StudentModel{
			StudentFullName:  r.name,
			StudentPhone:     r.phone,
			StudentEmail:     &email,
			StudentDayOfWeek: r.day,
			StudentStartTime: start,
			StudentIsActive:  r.active,
		})
	}
	if err := db.Create(&students).Error; err != nil {
		log.Printf("❌ seed students: %v", err)
		return
	}
	log.Printf("✅ %d sample students", len(students))
}

func seedSettings(db *gorm.DB) {
	var count int64
	db.Model(&settingModel.SettingModel{}).Count(&count)
	if count > 0 {
		return
	}

	setting := settingModel.SettingModel{
		SettingSmsOffsetMinutes: 15,
		SettingSmsTemplate:      "97775950-fe78-4b1b-98cd-13646067b704",
	}
	if err := db.Create(&setting).Error; err != nil {
		log.Printf("❌ seed settings: %v", err)
		return
	}
	log.Println("✅ Default settings (offset 15 min)")
}

func seedDefaultTemplate(db *gorm.DB) {
	var count int64
	db.Model(&templateModel.MessageTemplateModel{}).Count(&count)
	if count > 0 {
		return
	}

	content := "Bonjour {{prenom}}, rappel: ta séance de tutorat a lieu {{jour}} à {{heure}}. À tout de suite ! - ZUPdeCO"
	tmpl := templateModel.MessageTemplateModel{
		MessageTemplateName:      "Rappel de séance",
		MessageTemplateContent:   content,
		MessageTemplateVariables: templateModel.ExtractVariables(content),
		MessageTemplateIsDefault: true,
	}
	if err := db.Create(&tmpl).Error; err != nil {
		log.Printf("❌ seed template: %v", err)
		return
	}
	log.Println("✅ Default message template")
}
