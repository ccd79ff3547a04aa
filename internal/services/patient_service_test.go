package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthkeeper/internal/models/db_models"
	"healthkeeper/internal/models/request_models"
	"healthkeeper/pkg/utils"
)

type fakeIndexer struct {
	indexed []string
	removed []string
}

func (f *fakeIndexer) IndexRecord(ctx context.Context, userID string, record *db_models.MedicalRecord) {
	f.indexed = append(f.indexed, record.ID.String())
}

func (f *fakeIndexer) RemoveRecord(ctx context.Context, recordID string) {
	f.removed = append(f.removed, recordID)
}

type patientFixture struct {
	patients *fakePatientRepo
	doctors  *fakeDoctorRepo
	indexer  *fakeIndexer
	userID   string
	svc      PatientServiceInterface
}

func newPatientFixture() *patientFixture {
	f := &patientFixture{
		patients: &fakePatientRepo{},
		doctors:  &fakeDoctorRepo{},
		indexer:  &fakeIndexer{},
		userID:   uuid.NewString(),
	}
	f.svc = NewPatientService(f.patients, f.doctors, f.indexer)
	return f
}

func (f *patientFixture) seedPatient(t *testing.T) *db_models.Patient {
	t.Helper()
	p, err := f.svc.Create(context.Background(), f.userID, request_models.PatientRequest{
		Name:        "Alice",
		DateOfBirth: "2015-06-01",
	})
	require.NoError(t, err)
	return p
}

func TestPatientCreate(t *testing.T) {
	f := newPatientFixture()

	p := f.seedPatient(t)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, f.userID, p.UserID.String())
	assert.True(t, p.IsActive)
	assert.NotEqual(t, uuid.Nil, p.ID)
}

func TestPatientCreate_UnknownDoctor(t *testing.T) {
	f := newPatientFixture()
	missing := uuid.NewString()

	_, err := f.svc.Create(context.Background(), f.userID, request_models.PatientRequest{
		Name:            "Alice",
		PrimaryDoctorID: &missing,
	})
	assert.ErrorIs(t, err, utils.ErrDoctorNotFound)
}

func TestPatientCreate_ResolvesDoctor(t *testing.T) {
	f := newPatientFixture()
	doctor := &db_models.Doctor{Name: "Dr. A"}
	require.NoError(t, f.doctors.Insert(context.Background(), doctor))
	id := doctor.ID.String()

	p, err := f.svc.Create(context.Background(), f.userID, request_models.PatientRequest{
		Name:            "Alice",
		PrimaryDoctorID: &id,
	})
	require.NoError(t, err)
	require.NotNil(t, p.PrimaryDoctorID)
	assert.Equal(t, doctor.ID, *p.PrimaryDoctorID)
}

func TestPatientGet_NotFound(t *testing.T) {
	f := newPatientFixture()

	_, err := f.svc.Get(context.Background(), f.userID, uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrPatientNotFound)
}

func TestPatientRecords_OwnershipChain(t *testing.T) {
	f := newPatientFixture()
	patient := f.seedPatient(t)

	record, err := f.svc.AddRecord(context.Background(), f.userID, patient.ID.String(), request_models.MedicalRecordRequest{
		Date:      "2024-04-01",
		Diagnosis: "flu",
	})
	require.NoError(t, err)
	assert.Equal(t, patient.ID, record.PatientID)
	assert.Contains(t, f.indexer.indexed, record.ID.String())

	// a record reached through the wrong patient is invisible
	other := f.seedPatient(t)
	_, err = f.svc.UpdateRecord(context.Background(), f.userID, other.ID.String(), record.ID.String(),
		request_models.MedicalRecordRequest{Date: "2024-04-02"})
	assert.ErrorIs(t, err, utils.ErrRecordNotFound)

	updated, err := f.svc.UpdateRecord(context.Background(), f.userID, patient.ID.String(), record.ID.String(),
		request_models.MedicalRecordRequest{Date: "2024-04-02", Diagnosis: "cold"})
	require.NoError(t, err)
	assert.Equal(t, "cold", updated.Diagnosis)

	require.NoError(t, f.svc.DeleteRecord(context.Background(), f.userID, patient.ID.String(), record.ID.String()))
	assert.Contains(t, f.indexer.removed, record.ID.String())
	assert.Empty(t, f.patients.records)
}

func TestCompleteReminder(t *testing.T) {
	f := newPatientFixture()
	patient := f.seedPatient(t)

	reminder := db_models.Reminder{PatientID: patient.ID, Title: "checkup"}
	reminder.ID = uuid.New()
	f.patients.patients[0].Reminders = []db_models.Reminder{reminder}

	require.NoError(t, f.svc.CompleteReminder(context.Background(), f.userID, patient.ID.String(), reminder.ID.String()))

	err := f.svc.CompleteReminder(context.Background(), f.userID, patient.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrRecordNotFound)
}
