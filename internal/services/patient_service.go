package services

import (
	"context"

	"github.com/google/uuid"

	"healthkeeper/internal/models/db_models"
	"healthkeeper/internal/models/request_models"
	"healthkeeper/internal/repositories"
	"healthkeeper/pkg/utils"
)

type PatientServiceInterface interface {
	List(ctx context.Context, userID string) ([]db_models.Patient, error)
	Get(ctx context.Context, userID, patientID string) (*db_models.Patient, error)
	Create(ctx context.Context, userID string, req request_models.PatientRequest) (*db_models.Patient, error)
	Update(ctx context.Context, userID, patientID string, req request_models.PatientRequest) (*db_models.Patient, error)
	Delete(ctx context.Context, userID, patientID string) error

	AddRecord(ctx context.Context, userID, patientID string, req request_models.MedicalRecordRequest) (*db_models.MedicalRecord, error)
	UpdateRecord(ctx context.Context, userID, patientID, recordID string, req request_models.MedicalRecordRequest) (*db_models.MedicalRecord, error)
	DeleteRecord(ctx context.Context, userID, patientID, recordID string) error

	AddMedication(ctx context.Context, userID, patientID string, req request_models.MedicationRequest) (*db_models.Medication, error)
	DeleteMedication(ctx context.Context, userID, patientID, medicationID string) error
	AddReminder(ctx context.Context, userID, patientID string, req request_models.ReminderRequest) (*db_models.Reminder, error)
	CompleteReminder(ctx context.Context, userID, patientID, reminderID string) error
	DeleteReminder(ctx context.Context, userID, patientID, reminderID string) error
	AddDocument(ctx context.Context, userID, patientID, recordID string, req request_models.DocumentRequest) (*db_models.Document, error)
	DeleteDocument(ctx context.Context, userID, patientID, recordID, documentID string) error
}

type PatientService struct {
	patients repositories.PatientRepository
	doctors  repositories.DoctorRepository
	indexer  RecordIndexer
}

// RecordIndexer lets the search side keep embeddings current without the
// patient service depending on the insight stack directly.
type RecordIndexer interface {
	IndexRecord(ctx context.Context, userID string, record *db_models.MedicalRecord)
	RemoveRecord(ctx context.Context, recordID string)
}

func NewPatientService(patients repositories.PatientRepository, doctors repositories.DoctorRepository, indexer RecordIndexer) PatientServiceInterface {
	return &PatientService{patients: patients, doctors: doctors, indexer: indexer}
}

func (s *PatientService) List(ctx context.Context, userID string) ([]db_models.Patient, error) {
	patients, err := s.patients.ListActive(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return patients, nil
}

func (s *PatientService) Get(ctx context.Context, userID, patientID string) (*db_models.Patient, error) {
	patient, err := s.patients.FindByID(ctx, userID, patientID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if patient == nil || !patient.IsActive {
		return nil, utils.ErrPatientNotFound
	}
	return patient, nil
}

func (s *PatientService) Create(ctx context.Context, userID string, req request_models.PatientRequest) (*db_models.Patient, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrAccountNotFound
	}

	patient := &db_models.Patient{
		UserID:      uid,
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		BloodType:   req.BloodType,
		Allergies:   req.Allergies,
		Notes:       req.Notes,
		IsActive:    true,
	}

	if req.PrimaryDoctorID != nil {
		doctorID, err := s.resolveDoctor(ctx, *req.PrimaryDoctorID)
		if err != nil {
			return nil, err
		}
		patient.PrimaryDoctorID = doctorID
	}

	if err := s.patients.Insert(ctx, patient); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return patient, nil
}

func (s *PatientService) Update(ctx context.Context, userID, patientID string, req request_models.PatientRequest) (*db_models.Patient, error) {
	patient, err := s.Get(ctx, userID, patientID)
	if err != nil {
		return nil, err
	}

	patient.Name = req.Name
	patient.DateOfBirth = req.DateOfBirth
	patient.Gender = req.Gender
	patient.BloodType = req.BloodType
	patient.Allergies = req.Allergies
	patient.Notes = req.Notes

	patient.PrimaryDoctorID = nil
	if req.PrimaryDoctorID != nil {
		doctorID, err := s.resolveDoctor(ctx, *req.PrimaryDoctorID)
		if err != nil {
			return nil, err
		}
		patient.PrimaryDoctorID = doctorID
	}

	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return patient, nil
}

func (s *PatientService) Delete(ctx context.Context, userID, patientID string) error {
	if _, err := s.Get(ctx, userID, patientID); err != nil {
		return err
	}
	if err := s.patients.SoftDelete(ctx, userID, patientID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *PatientService) AddRecord(ctx context.Context, userID, patientID string, req request_models.MedicalRecordRequest) (*db_models.MedicalRecord, error) {
	patient, err := s.Get(ctx, userID, patientID)
	if err != nil {
		return nil, err
	}

	record := &db_models.MedicalRecord{
		PatientID:    patient.ID,
		Date:         req.Date,
		Complaint:    req.Complaint,
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
		Notes:        req.Notes,
	}
	if req.DoctorID != nil {
		doctorID, err := s.resolveDoctor(ctx, *req.DoctorID)
		if err != nil {
			return nil, err
		}
		record.DoctorID = doctorID
	}

	if err := s.patients.InsertRecord(ctx, record); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if s.indexer != nil {
		s.indexer.IndexRecord(ctx, userID, record)
	}
	return record, nil
}

func (s *PatientService) UpdateRecord(ctx context.Context, userID, patientID, recordID string, req request_models.MedicalRecordRequest) (*db_models.MedicalRecord, error) {
	record, err := s.ownedRecord(ctx, userID, patientID, recordID)
	if err != nil {
		return nil, err
	}

	record.Date = req.Date
	record.Complaint = req.Complaint
	record.Diagnosis = req.Diagnosis
	record.Prescription = req.Prescription
	record.Notes = req.Notes
	record.DoctorID = nil
	if req.DoctorID != nil {
		doctorID, err := s.resolveDoctor(ctx, *req.DoctorID)
		if err != nil {
			return nil, err
		}
		record.DoctorID = doctorID
	}

	if err := s.patients.UpdateRecord(ctx, record); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if s.indexer != nil {
		s.indexer.IndexRecord(ctx, userID, record)
	}
	return record, nil
}

func (s *PatientService) DeleteRecord(ctx context.Context, userID, patientID, recordID string) error {
	if _, err := s.ownedRecord(ctx, userID, patientID, recordID); err != nil {
		return err
	}
	if err := s.patients.DeleteRecord(ctx, recordID); err != nil {
		return utils.ErrDatabaseError
	}
	if s.indexer != nil {
		s.indexer.RemoveRecord(ctx, recordID)
	}
	return nil
}

func (s *PatientService) AddMedication(ctx context.Context, userID, patientID string, req request_models.MedicationRequest) (*db_models.Medication, error) {
	patient, err := s.Get(ctx, userID, patientID)
	if err != nil {
		return nil, err
	}

	medication := &db_models.Medication{
		PatientID: patient.ID,
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		Timing:    req.Timing,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := s.patients.InsertMedication(ctx, medication); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return medication, nil
}

func (s *PatientService) DeleteMedication(ctx context.Context, userID, patientID, medicationID string) error {
	if _, err := s.Get(ctx, userID, patientID); err != nil {
		return err
	}
	if err := s.patients.DeleteMedication(ctx, medicationID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *PatientService) AddReminder(ctx context.Context, userID, patientID string, req request_models.ReminderRequest) (*db_models.Reminder, error) {
	patient, err := s.Get(ctx, userID, patientID)
	if err != nil {
		return nil, err
	}

	reminder := &db_models.Reminder{
		PatientID: patient.ID,
		Type:      req.Type,
		Title:     req.Title,
		Date:      req.Date,
		Time:      req.Time,
		Completed: req.Completed,
	}
	if err := s.patients.InsertReminder(ctx, reminder); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return reminder, nil
}

func (s *PatientService) CompleteReminder(ctx context.Context, userID, patientID, reminderID string) error {
	patient, err := s.Get(ctx, userID, patientID)
	if err != nil {
		return err
	}
	for i := range patient.Reminders {
		if patient.Reminders[i].ID.String() == reminderID {
			patient.Reminders[i].Completed = true
			if err := s.patients.UpdateReminder(ctx, &patient.Reminders[i]); err != nil {
				return utils.ErrDatabaseError
			}
			return nil
		}
	}
	return utils.ErrRecordNotFound
}

func (s *PatientService) DeleteReminder(ctx context.Context, userID, patientID, reminderID string) error {
	if _, err := s.Get(ctx, userID, patientID); err != nil {
		return err
	}
	if err := s.patients.DeleteReminder(ctx, reminderID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *PatientService) AddDocument(ctx context.Context, userID, patientID, recordID string, req request_models.DocumentRequest) (*db_models.Document, error) {
	record, err := s.ownedRecord(ctx, userID, patientID, recordID)
	if err != nil {
		return nil, err
	}

	doc := &db_models.Document{
		RecordID: record.ID,
		Name:     req.Name,
		MimeType: req.MimeType,
		URL:      req.URL,
	}
	if err := s.patients.InsertDocument(ctx, doc); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return doc, nil
}

func (s *PatientService) DeleteDocument(ctx context.Context, userID, patientID, recordID, documentID string) error {
	if _, err := s.ownedRecord(ctx, userID, patientID, recordID); err != nil {
		return err
	}
	if err := s.patients.DeleteDocument(ctx, documentID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// ownedRecord loads a record and verifies the patient chain up to the
// calling user.
func (s *PatientService) ownedRecord(ctx context.Context, userID, patientID, recordID string) (*db_models.MedicalRecord, error) {
	patient, err := s.Get(ctx, userID, patientID)
	if err != nil {
		return nil, err
	}
	record, err := s.patients.FindRecord(ctx, recordID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if record == nil || record.PatientID != patient.ID {
		return nil, utils.ErrRecordNotFound
	}
	return record, nil
}

func (s *PatientService) resolveDoctor(ctx context.Context, id string) (*uuid.UUID, error) {
	doctor, err := s.doctors.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if doctor == nil {
		return nil, utils.ErrDoctorNotFound
	}
	return &doctor.ID, nil
}
