// Package backup holds the pure backup/restore core: envelope construction,
// merge strategies, schedules and the snapshot window. Nothing in here talks
// to the database or to HTTP; the service layer wires it to storage.
package backup

import (
	"fmt"
	"time"

	"healthkeeper/internal/models/db_models"
)

const EnvelopeVersion = "2.0"

// Envelope is a point-in-time snapshot of a user's collections, portable as
// a single JSON document.
type Envelope struct {
	Version   string              `json:"version"`
	Timestamp string              `json:"timestamp"`
	Patients  []db_models.Patient `json:"patients"`
	Doctors   []db_models.Doctor  `json:"doctors"`
	Metadata  Metadata            `json:"metadata"`
}

// Metadata carries display-only counts; nothing validates against it.
type Metadata struct {
	PatientCount    int `json:"patientCount"`
	DoctorCount     int `json:"doctorCount"`
	RecordCount     int `json:"recordCount"`
	MedicationCount int `json:"medicationCount"`
	ReminderCount   int `json:"reminderCount"`
	DocumentCount   int `json:"documentCount"`
}

// Options controls envelope construction.
type Options struct {
	// IncludeImages false clears each patient's medicalImages collection to
	// shrink the payload.
	IncludeImages bool
}

// Create builds an envelope from the given collections. The inputs are
// copied, never mutated.
func Create(patients []db_models.Patient, doctors []db_models.Doctor, opts Options) Envelope {
	ps := clonePatients(patients)
	if !opts.IncludeImages {
		for i := range ps {
			ps[i].MedicalImages = nil
		}
	}

	env := Envelope{
		Version:   EnvelopeVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Patients:  ps,
		Doctors:   cloneDoctors(doctors),
	}
	env.Metadata = computeMetadata(ps, env.Doctors)
	return env
}

func computeMetadata(patients []db_models.Patient, doctors []db_models.Doctor) Metadata {
	md := Metadata{
		PatientCount: len(patients),
		DoctorCount:  len(doctors),
	}
	for _, p := range patients {
		md.RecordCount += len(p.Records)
		md.MedicationCount += len(p.Medications)
		md.ReminderCount += len(p.Reminders)
		for _, r := range p.Records {
			md.DocumentCount += len(r.Documents)
		}
	}
	return md
}

// Validate checks the envelope shape and returns every problem found. An
// empty slice means the envelope is restorable.
func Validate(env *Envelope) []string {
	var errs []string
	if env.Version == "" {
		errs = append(errs, "missing version")
	}
	if env.Timestamp == "" {
		errs = append(errs, "missing timestamp")
	} else if _, err := time.Parse(time.RFC3339, env.Timestamp); err != nil {
		errs = append(errs, fmt.Sprintf("invalid timestamp: %v", err))
	}
	if env.Patients == nil {
		errs = append(errs, "patients collection missing")
	}
	if env.Doctors == nil {
		errs = append(errs, "doctors collection missing")
	}
	return errs
}
