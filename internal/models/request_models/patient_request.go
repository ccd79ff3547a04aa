package request_models

type PatientRequest struct {
	Name            string   `json:"name" binding:"required,min=1,max=100"`
	DateOfBirth     string   `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
	Gender          string   `json:"gender"`
	BloodType       string   `json:"bloodType"`
	Allergies       []string `json:"allergies"`
	Notes           string   `json:"notes"`
	PrimaryDoctorID *string  `json:"primaryDoctorId" binding:"omitempty,uuid"`
}

type MedicalRecordRequest struct {
	DoctorID     *string `json:"doctorId" binding:"omitempty,uuid"`
	Date         string  `json:"date" binding:"required,datetime=2006-01-02"`
	Complaint    string  `json:"complaint"`
	Diagnosis    string  `json:"diagnosis"`
	Prescription string  `json:"prescription"`
	Notes        string  `json:"notes"`
}

type MedicationRequest struct {
	Name      string `json:"name" binding:"required"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Timing    string `json:"timing"`
	StartDate string `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

type ReminderRequest struct {
	Type      string `json:"type" binding:"required,oneof=appointment medication"`
	Title     string `json:"title" binding:"required"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string `json:"time" binding:"required"`
	Completed bool   `json:"completed"`
}

type DocumentRequest struct {
	Name     string `json:"name" binding:"required"`
	MimeType string `json:"mimeType"`
	URL      string `json:"url" binding:"required"`
}
