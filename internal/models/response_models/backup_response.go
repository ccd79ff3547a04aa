package response_models

type RestoreResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message,omitempty"`
	PatientsAdded   int      `json:"patientsAdded"`
	PatientsUpdated int      `json:"patientsUpdated"`
	DoctorsAdded    int      `json:"doctorsAdded"`
	DoctorsUpdated  int      `json:"doctorsUpdated"`
	Errors          []string `json:"errors,omitempty"`
}

type RecordSearchHit struct {
	RecordID  string  `json:"recordId"`
	PatientID string  `json:"patientId"`
	Summary   string  `json:"summary"`
	Distance  float64 `json:"distance"`
}
