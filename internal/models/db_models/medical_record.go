package db_models

import "github.com/google/uuid"

// MedicalRecord is one visit/diagnosis entry. Date is a YYYY-MM-DD string;
// the backup merge uses it to pick the newer of two versions of a record.
type MedicalRecord struct {
	BaseModel
	PatientID    uuid.UUID  `gorm:"type:uuid;index" json:"patientId"`
	DoctorID     *uuid.UUID `gorm:"type:uuid;index" json:"doctorId"`
	Date         string     `json:"date"`
	Complaint    string     `json:"complaint"`
	Diagnosis    string     `json:"diagnosis"`
	Prescription string     `json:"prescription"`
	Notes        string     `json:"notes"`

	Documents []Document `gorm:"foreignKey:RecordID" json:"documents"`
}
