package dto

import (
	"time"

	"github.com/google/uuid"
)

type DashboardStats struct {
	TotalStudents    int64   `json:"totalStudents"`
	ActiveStudents   int64   `json:"activeStudents"`
	InactiveStudents int64   `json:"inactiveStudents"`
	TotalTutors      int64   `json:"totalTutors"`
	AssignedStudents int64   `json:"assignedStudents"`
	// élèves actifs affectés / capacité totale (tuteurs x 5), en %
	UtilizationRate float64 `json:"utilizationRate"`
	SmsSentToday    int64   `json:"smsSentToday"`
	SmsSentThisWeek int64   `json:"smsSentThisWeek"`
}

type UpcomingSession struct {
	StudentID uuid.UUID `json:"studentId"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	StartTime string    `json:"startTime"`
	TutorName string    `json:"tutorName,omitempty"`
}

type RecentSms struct {
	ID          uuid.UUID `json:"id"`
	StudentName string    `json:"studentName,omitempty"`
	Phone       string    `json:"phone"`
	Status      string    `json:"status"`
	SentAt      time.Time `json:"sentAt"`
}

type DashboardResponse struct {
	Stats            DashboardStats    `json:"stats"`
	UpcomingSessions []UpcomingSession `json:"upcomingSessions"`
	RecentSms        []RecentSms       `json:"recentSms"`
}
