package backup

import (
	"fmt"

	"healthkeeper/internal/models/db_models"
)

// Strategy is the closed set of restore merge behaviours.
type Strategy int

const (
	// StrategyReplace discards the local collections entirely.
	StrategyReplace Strategy = iota
	// StrategyMerge adds new entities and overwrites existing ones, keeping
	// the newer of two versions of each medical record.
	StrategyMerge
	// StrategyMergePreserve adds new entities but never touches existing ones.
	StrategyMergePreserve
)

func (s Strategy) String() string {
	switch s {
	case StrategyReplace:
		return "replace"
	case StrategyMerge:
		return "merge"
	case StrategyMergePreserve:
		return "merge-preserve"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "replace":
		return StrategyReplace, nil
	case "merge":
		return StrategyMerge, nil
	case "merge-preserve":
		return StrategyMergePreserve, nil
	}
	return 0, fmt.Errorf("unknown merge strategy %q", s)
}

// Counts reports what a merge did.
type Counts struct {
	PatientsAdded   int
	PatientsUpdated int
	DoctorsAdded    int
	DoctorsUpdated  int
}

// Merge combines the local and remote collections under the given strategy
// and returns the merged collections plus counts. It never mutates its
// inputs; callers persist the result themselves.
func Merge(strategy Strategy, localPatients []db_models.Patient, localDoctors []db_models.Doctor,
	remotePatients []db_models.Patient, remoteDoctors []db_models.Doctor) ([]db_models.Patient, []db_models.Doctor, Counts) {

	var counts Counts

	if strategy == StrategyReplace {
		counts.PatientsAdded = len(remotePatients)
		counts.DoctorsAdded = len(remoteDoctors)
		return clonePatients(remotePatients), cloneDoctors(remoteDoctors), counts
	}

	patients := clonePatients(localPatients)
	patientIdx := make(map[string]int, len(patients))
	for i, p := range patients {
		patientIdx[p.ID.String()] = i
	}

	for _, rp := range remotePatients {
		i, ok := patientIdx[rp.ID.String()]
		if !ok {
			patients = append(patients, rp)
			patientIdx[rp.ID.String()] = len(patients) - 1
			counts.PatientsAdded++
			continue
		}
		if strategy == StrategyMergePreserve {
			continue
		}
		merged := rp
		merged.Records = mergeRecords(patients[i].Records, rp.Records)
		patients[i] = merged
		counts.PatientsUpdated++
	}

	doctors := cloneDoctors(localDoctors)
	doctorIdx := make(map[string]int, len(doctors))
	for i, d := range doctors {
		doctorIdx[d.ID.String()] = i
	}

	for _, rd := range remoteDoctors {
		i, ok := doctorIdx[rd.ID.String()]
		if !ok {
			doctors = append(doctors, rd)
			doctorIdx[rd.ID.String()] = len(doctors) - 1
			counts.DoctorsAdded++
			continue
		}
		if strategy == StrategyMergePreserve {
			continue
		}
		doctors[i] = rd
		counts.DoctorsUpdated++
	}

	return patients, doctors, counts
}

// mergeRecords unions two record lists by id. When both sides hold the same
// record, the one with the later Date wins; the local version wins a tie.
// Local-only records are kept, so an overwrite never drops history the
// backup predates.
func mergeRecords(local, remote []db_models.MedicalRecord) []db_models.MedicalRecord {
	out := make([]db_models.MedicalRecord, len(local))
	copy(out, local)

	idx := make(map[string]int, len(out))
	for i, r := range out {
		idx[r.ID.String()] = i
	}

	for _, rr := range remote {
		i, ok := idx[rr.ID.String()]
		if !ok {
			out = append(out, rr)
			idx[rr.ID.String()] = len(out) - 1
			continue
		}
		// YYYY-MM-DD dates compare correctly as strings.
		if rr.Date > out[i].Date {
			out[i] = rr
		}
	}

	return out
}

func clonePatients(in []db_models.Patient) []db_models.Patient {
	out := make([]db_models.Patient, len(in))
	copy(out, in)
	return out
}

func cloneDoctors(in []db_models.Doctor) []db_models.Doctor {
	out := make([]db_models.Doctor, len(in))
	copy(out, in)
	return out
}
