package backup_fx

import (
	"go.uber.org/fx"

	"healthkeeper/internal/backup"
	"healthkeeper/internal/repositories"
	"healthkeeper/internal/services"
)

var Module = fx.Provide(
	provideSnapshotStore, provideBackupService)

func provideSnapshotStore() backup.SnapshotStore {
	return backup.NewSnapshotStore()
}

func provideBackupService(patients repositories.PatientRepository, doctors repositories.DoctorRepository,
	snapshots backup.SnapshotStore) services.BackupServiceInterface {
	return services.NewBackupService(patients, doctors, snapshots)
}
