package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Patient is a family member record owned by exactly one user. The embedded
// collections travel with the patient through the backup envelope.
type Patient struct {
	BaseModel
	UserID          uuid.UUID      `gorm:"type:uuid;index" json:"userId"`
	Name            string         `json:"name"`
	DateOfBirth     string         `json:"dateOfBirth"`
	Gender          string         `json:"gender"`
	BloodType       string         `json:"bloodType"`
	Allergies       pq.StringArray `gorm:"type:text[]" json:"allergies"`
	Notes           string         `json:"notes"`
	PrimaryDoctorID *uuid.UUID     `gorm:"type:uuid;index" json:"primaryDoctorId"`
	IsActive        bool           `gorm:"default:true;index" json:"isActive"`

	MedicalImages ImageList `gorm:"type:jsonb" json:"medicalImages"`

	Records     []MedicalRecord `gorm:"foreignKey:PatientID" json:"records"`
	Medications []Medication    `gorm:"foreignKey:PatientID" json:"medications"`
	Reminders   []Reminder      `gorm:"foreignKey:PatientID" json:"reminders"`
}
