package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"healthkeeper/internal/models/db_models"
)

type PatientRepository interface {
	Insert(ctx context.Context, patient *db_models.Patient) error
	// FindByID loads a patient with all embedded collections, scoped to the
	// owning user.
	FindByID(ctx context.Context, userID, id string) (*db_models.Patient, error)
	ListActive(ctx context.Context, userID string) ([]db_models.Patient, error)
	// ListAll includes deactivated patients; backup restore feeds it to the
	// merge so a deactivated patient survives a non-replace restore.
	ListAll(ctx context.Context, userID string) ([]db_models.Patient, error)
	Update(ctx context.Context, patient *db_models.Patient) error
	SoftDelete(ctx context.Context, userID, id string) error
	// ReplaceAll swaps the user's whole patient collection inside one
	// transaction; used by backup restore.
	ReplaceAll(ctx context.Context, userID string, patients []db_models.Patient) error
	CountByDoctor(ctx context.Context, doctorID string) (int64, error)

	InsertRecord(ctx context.Context, record *db_models.MedicalRecord) error
	UpdateRecord(ctx context.Context, record *db_models.MedicalRecord) error
	DeleteRecord(ctx context.Context, id string) error
	FindRecord(ctx context.Context, id string) (*db_models.MedicalRecord, error)
	CountRecordsByDoctor(ctx context.Context, doctorID string) (int64, error)

	InsertMedication(ctx context.Context, m *db_models.Medication) error
	DeleteMedication(ctx context.Context, id string) error
	InsertReminder(ctx context.Context, rem *db_models.Reminder) error
	UpdateReminder(ctx context.Context, rem *db_models.Reminder) error
	DeleteReminder(ctx context.Context, id string) error
	DueReminders(ctx context.Context, userID, date string) ([]db_models.Reminder, error)
	InsertDocument(ctx context.Context, d *db_models.Document) error
	DeleteDocument(ctx context.Context, id string) error
}

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Insert(ctx context.Context, patient *db_models.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, userID, id string) (*db_models.Patient, error) {
	var patient db_models.Patient
	err := r.db.WithContext(ctx).
		Preload("Records.Documents").
		Preload("Records").
		Preload("Medications").
		Preload("Reminders").
		Where("user_id = ?", userID).
		First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) ListActive(ctx context.Context, userID string) ([]db_models.Patient, error) {
	var patients []db_models.Patient
	err := r.db.WithContext(ctx).
		Preload("Records.Documents").
		Preload("Records").
		Preload("Medications").
		Preload("Reminders").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at").
		Find(&patients).Error
	return patients, err
}

func (r *patientRepository) ListAll(ctx context.Context, userID string) ([]db_models.Patient, error) {
	var patients []db_models.Patient
	err := r.db.WithContext(ctx).
		Preload("Records.Documents").
		Preload("Records").
		Preload("Medications").
		Preload("Reminders").
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&patients).Error
	return patients, err
}

func (r *patientRepository) Update(ctx context.Context, patient *db_models.Patient) error {
	return r.db.WithContext(ctx).Save(patient).Error
}

func (r *patientRepository) SoftDelete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Patient{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("is_active", false).Error
}

func (r *patientRepository) ReplaceAll(ctx context.Context, userID string, patients []db_models.Patient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The purge must be unscoped: the incoming collection reuses local
		// ids, and a soft-deleted row would still collide on the primary key.
		var patientIDs []string
		if err := tx.Unscoped().Model(&db_models.Patient{}).
			Where("user_id = ?", userID).
			Pluck("id", &patientIDs).Error; err != nil {
			return err
		}
		if len(patientIDs) > 0 {
			var recordIDs []string
			if err := tx.Unscoped().Model(&db_models.MedicalRecord{}).
				Where("patient_id IN ?", patientIDs).
				Pluck("id", &recordIDs).Error; err != nil {
				return err
			}
			if len(recordIDs) > 0 {
				if err := tx.Unscoped().Where("record_id IN ?", recordIDs).
					Delete(&db_models.Document{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Unscoped().Where("patient_id IN ?", patientIDs).
				Delete(&db_models.MedicalRecord{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("patient_id IN ?", patientIDs).
				Delete(&db_models.Medication{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("patient_id IN ?", patientIDs).
				Delete(&db_models.Reminder{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", patientIDs).
				Delete(&db_models.Patient{}).Error; err != nil {
				return err
			}
		}
		for i := range patients {
			patients[i].UserID = uuidMustParse(userID)
			if err := tx.Create(&patients[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *patientRepository) CountByDoctor(ctx context.Context, doctorID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Patient{}).
		Where("primary_doctor_id = ? AND is_active = ?", doctorID, true).
		Count(&count).Error
	return count, err
}

func (r *patientRepository) InsertRecord(ctx context.Context, record *db_models.MedicalRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *patientRepository) UpdateRecord(ctx context.Context, record *db_models.MedicalRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *patientRepository) DeleteRecord(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&db_models.MedicalRecord{}, "id = ?", id).Error
}

func (r *patientRepository) FindRecord(ctx context.Context, id string) (*db_models.MedicalRecord, error) {
	var record db_models.MedicalRecord
	err := r.db.WithContext(ctx).
		Preload("Documents").
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *patientRepository) CountRecordsByDoctor(ctx context.Context, doctorID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.MedicalRecord{}).
		Where("doctor_id = ?", doctorID).
		Count(&count).Error
	return count, err
}

func (r *patientRepository) InsertMedication(ctx context.Context, m *db_models.Medication) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *patientRepository) DeleteMedication(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&db_models.Medication{}, "id = ?", id).Error
}

func (r *patientRepository) InsertReminder(ctx context.Context, rem *db_models.Reminder) error {
	return r.db.WithContext(ctx).Create(rem).Error
}

func (r *patientRepository) UpdateReminder(ctx context.Context, rem *db_models.Reminder) error {
	return r.db.WithContext(ctx).Save(rem).Error
}

func (r *patientRepository) DeleteReminder(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&db_models.Reminder{}, "id = ?", id).Error
}

func (r *patientRepository) DueReminders(ctx context.Context, userID, date string) ([]db_models.Reminder, error) {
	var reminders []db_models.Reminder
	err := r.db.WithContext(ctx).
		Joins("JOIN patients ON patients.id = reminders.patient_id").
		Where("patients.user_id = ? AND reminders.date <= ? AND reminders.completed = ?",
			userID, date, false).
		Find(&reminders).Error
	return reminders, err
}

func (r *patientRepository) InsertDocument(ctx context.Context, d *db_models.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *patientRepository) DeleteDocument(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&db_models.Document{}, "id = ?", id).Error
}
