package patient_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"healthkeeper/internal/repositories"
	"healthkeeper/internal/services"
)

var Module = fx.Provide(
	providePatientRepo, providePatientService)

func providePatientRepo(db *gorm.DB) repositories.PatientRepository {
	return repositories.NewPatientRepository(db)
}

func providePatientService(patients repositories.PatientRepository, doctors repositories.DoctorRepository,
	indexer services.RecordIndexer) services.PatientServiceInterface {
	return services.NewPatientService(patients, doctors, indexer)
}
