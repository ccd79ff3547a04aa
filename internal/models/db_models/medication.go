package db_models

import "github.com/google/uuid"

type Medication struct {
	BaseModel
	PatientID uuid.UUID `gorm:"type:uuid;index" json:"patientId"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Frequency string    `json:"frequency"`
	Timing    string    `json:"timing"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
}
