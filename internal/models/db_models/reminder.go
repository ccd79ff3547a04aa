package db_models

import "github.com/google/uuid"

const (
	ReminderTypeAppointment = "appointment"
	ReminderTypeMedication  = "medication"
)

type Reminder struct {
	BaseModel
	PatientID uuid.UUID `gorm:"type:uuid;index" json:"patientId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Completed bool      `gorm:"default:false" json:"completed"`
}
