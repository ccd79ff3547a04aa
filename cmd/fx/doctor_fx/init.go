package doctor_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"healthkeeper/internal/cache"
	"healthkeeper/internal/repositories"
	"healthkeeper/internal/services"
)

var Module = fx.Provide(
	provideDoctorRepo, provideDoctorService)

func provideDoctorRepo(db *gorm.DB) repositories.DoctorRepository {
	return repositories.NewDoctorRepository(db)
}

func provideDoctorService(doctors repositories.DoctorRepository, patients repositories.PatientRepository,
	c cache.Cache) services.DoctorServiceInterface {
	return services.NewDoctorService(doctors, patients, c)
}
