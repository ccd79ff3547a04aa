package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"healthkeeper/internal/backup"
	"healthkeeper/internal/models/request_models"
	"healthkeeper/internal/models/response_models"
	"healthkeeper/internal/repositories"
	"healthkeeper/pkg/utils"
)

type BackupServiceInterface interface {
	// Export serializes the caller's collections into a downloadable backup
	// file (pretty JSON, optionally gzipped and/or encrypted).
	Export(ctx context.Context, userID string, req request_models.ExportBackupRequest) ([]byte, error)
	Restore(ctx context.Context, userID string, req request_models.RestoreBackupRequest) (*response_models.RestoreResponse, error)
	Snapshots(userID string) []backup.Snapshot
	GetSchedule(userID string) (*backup.Schedule, error)
	SetSchedule(userID string, req request_models.ScheduleRequest) (*backup.Schedule, error)
	// CheckDue fires every due schedule and returns how many fired. It runs
	// only when invoked; the lifecycle ticker and the /backups/check
	// endpoint are the two callers.
	CheckDue(ctx context.Context, now time.Time) int
}

type BackupService struct {
	patients  repositories.PatientRepository
	doctors   repositories.DoctorRepository
	snapshots backup.SnapshotStore

	mu        sync.RWMutex
	schedules map[string]*backup.Schedule
}

func NewBackupService(patients repositories.PatientRepository, doctors repositories.DoctorRepository,
	snapshots backup.SnapshotStore) BackupServiceInterface {
	return &BackupService{
		patients:  patients,
		doctors:   doctors,
		snapshots: snapshots,
		schedules: make(map[string]*backup.Schedule),
	}
}

func (s *BackupService) Export(ctx context.Context, userID string, req request_models.ExportBackupRequest) ([]byte, error) {
	env, err := s.buildEnvelope(ctx, userID, backup.Options{IncludeImages: req.IncludeImages})
	if err != nil {
		return nil, err
	}

	data, err := backup.Encode(*env, backup.EncodeOptions{
		Compress:   req.Compress,
		Passphrase: req.Passphrase,
	})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return data, nil
}

func (s *BackupService) Restore(ctx context.Context, userID string, req request_models.RestoreBackupRequest) (*response_models.RestoreResponse, error) {
	strategy, err := backup.ParseStrategy(req.MergeStrategy)
	if err != nil {
		return &response_models.RestoreResponse{
			Success: false,
			Message: err.Error(),
		}, nil
	}

	if req.ValidateData {
		if errs := backup.Validate(&req.Backup); len(errs) > 0 {
			return &response_models.RestoreResponse{
				Success: false,
				Message: "backup envelope failed validation",
				Errors:  errs,
			}, nil
		}
	}

	// Deactivated patients join the local set so a non-replace merge leaves
	// them in place instead of dropping them on the rewrite.
	localPatients, err := s.patients.ListAll(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	localDoctors, err := s.doctors.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if req.BackupBeforeRestore {
		s.snapshots.Push(userID, backup.Snapshot{
			TakenAt:  time.Now(),
			Reason:   "pre-restore",
			Envelope: backup.Create(localPatients, localDoctors, backup.Options{IncludeImages: true}),
		})
	}

	mergedPatients, mergedDoctors, counts := backup.Merge(
		strategy, localPatients, localDoctors, req.Backup.Patients, req.Backup.Doctors)

	// Persistence is not transactional across the two collections; the
	// pre-restore snapshot is the only recovery path for a mid-restore
	// failure.
	if err := s.patients.ReplaceAll(ctx, userID, mergedPatients); err != nil {
		return &response_models.RestoreResponse{
			Success: false,
			Message: "restore failed while writing patients; collections may be partially updated",
		}, nil
	}
	for i := range mergedDoctors {
		if err := s.doctors.Upsert(ctx, &mergedDoctors[i]); err != nil {
			return &response_models.RestoreResponse{
				Success: false,
				Message: "restore failed while writing doctors; collections may be partially updated",
			}, nil
		}
	}

	return &response_models.RestoreResponse{
		Success:         true,
		PatientsAdded:   counts.PatientsAdded,
		PatientsUpdated: counts.PatientsUpdated,
		DoctorsAdded:    counts.DoctorsAdded,
		DoctorsUpdated:  counts.DoctorsUpdated,
	}, nil
}

func (s *BackupService) Snapshots(userID string) []backup.Snapshot {
	return s.snapshots.List(userID)
}

func (s *BackupService) GetSchedule(userID string) (*backup.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedule, ok := s.schedules[userID]
	if !ok {
		return nil, utils.ErrScheduleNotFound
	}
	out := *schedule
	return &out, nil
}

func (s *BackupService) SetSchedule(userID string, req request_models.ScheduleRequest) (*backup.Schedule, error) {
	schedule := &backup.Schedule{
		Frequency: req.Frequency,
		Time:      req.Time,
		Enabled:   req.Enabled,
	}
	next, err := schedule.ComputeNextRun(time.Now())
	if err != nil {
		return nil, err
	}
	schedule.NextRun = next

	s.mu.Lock()
	s.schedules[userID] = schedule
	s.mu.Unlock()

	out := *schedule
	return &out, nil
}

func (s *BackupService) CheckDue(ctx context.Context, now time.Time) int {
	// The lock only guards the map; the per-user reads below must not block
	// schedule writers for the length of the sweep.
	s.mu.RLock()
	due := make(map[string]*backup.Schedule, len(s.schedules))
	for userID, schedule := range s.schedules {
		if schedule.Due(now) {
			due[userID] = schedule
		}
	}
	s.mu.RUnlock()

	fired := 0
	for userID, schedule := range due {
		env, err := s.buildEnvelope(ctx, userID, backup.Options{IncludeImages: true})
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("scheduled backup failed")
			continue
		}
		s.snapshots.Push(userID, backup.Snapshot{
			TakenAt:  now,
			Reason:   "scheduled",
			Envelope: *env,
		})

		s.mu.Lock()
		// A schedule replaced mid-sweep keeps its own next run; only the
		// entry that actually fired is advanced.
		if s.schedules[userID] == schedule {
			if err := schedule.MarkFired(now); err != nil {
				s.mu.Unlock()
				log.Error().Err(err).Str("user_id", userID).Msg("could not advance backup schedule")
				continue
			}
		}
		s.mu.Unlock()
		fired++
	}
	return fired
}

func (s *BackupService) buildEnvelope(ctx context.Context, userID string, opts backup.Options) (*backup.Envelope, error) {
	patients, err := s.patients.ListActive(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	doctors, err := s.doctors.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	env := backup.Create(patients, doctors, opts)
	return &env, nil
}
