package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"healthkeeper/internal/cache"
	"healthkeeper/internal/models/db_models"
	"healthkeeper/internal/models/request_models"
	"healthkeeper/internal/repositories"
	"healthkeeper/pkg/utils"
)

const (
	doctorListCacheKey = "doctors:all"
	doctorListCacheTTL = 5 * time.Minute
)

type DoctorServiceInterface interface {
	List(ctx context.Context) ([]db_models.Doctor, error)
	Get(ctx context.Context, id string) (*db_models.Doctor, error)
	Create(ctx context.Context, req request_models.DoctorRequest) (*db_models.Doctor, error)
	Update(ctx context.Context, id string, req request_models.DoctorRequest) (*db_models.Doctor, error)
	// Delete refuses while any active patient or record references the
	// doctor. Enforced here, not by a database constraint.
	Delete(ctx context.Context, id string) error
}

type DoctorService struct {
	doctors  repositories.DoctorRepository
	patients repositories.PatientRepository
	cache    cache.Cache
}

func NewDoctorService(doctors repositories.DoctorRepository, patients repositories.PatientRepository, c cache.Cache) DoctorServiceInterface {
	return &DoctorService{doctors: doctors, patients: patients, cache: c}
}

func (s *DoctorService) List(ctx context.Context) ([]db_models.Doctor, error) {
	if cached, err := s.cache.Get(ctx, doctorListCacheKey); err == nil {
		var doctors []db_models.Doctor
		if err := json.Unmarshal(cached, &doctors); err == nil {
			return doctors, nil
		}
	}

	doctors, err := s.doctors.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if payload, err := json.Marshal(doctors); err == nil {
		if err := s.cache.Set(ctx, doctorListCacheKey, payload, doctorListCacheTTL); err != nil {
			log.Debug().Err(err).Msg("doctor list cache write failed")
		}
	}
	return doctors, nil
}

func (s *DoctorService) Get(ctx context.Context, id string) (*db_models.Doctor, error) {
	doctor, err := s.doctors.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if doctor == nil {
		return nil, utils.ErrDoctorNotFound
	}
	return doctor, nil
}

func (s *DoctorService) Create(ctx context.Context, req request_models.DoctorRequest) (*db_models.Doctor, error) {
	doctor := &db_models.Doctor{
		Name:      req.Name,
		Specialty: req.Specialty,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
	}
	if err := s.doctors.Insert(ctx, doctor); err != nil {
		return nil, utils.ErrDatabaseError
	}
	s.invalidate(ctx)
	return doctor, nil
}

func (s *DoctorService) Update(ctx context.Context, id string, req request_models.DoctorRequest) (*db_models.Doctor, error) {
	doctor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	doctor.Name = req.Name
	doctor.Specialty = req.Specialty
	doctor.Phone = req.Phone
	doctor.Email = req.Email
	doctor.Address = req.Address

	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, utils.ErrDatabaseError
	}
	s.invalidate(ctx)
	return doctor, nil
}

func (s *DoctorService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	patientRefs, err := s.patients.CountByDoctor(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	recordRefs, err := s.patients.CountRecordsByDoctor(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if patientRefs > 0 || recordRefs > 0 {
		return utils.ErrDoctorInUse
	}

	if err := s.doctors.Delete(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	s.invalidate(ctx)
	return nil
}

func (s *DoctorService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, doctorListCacheKey); err != nil {
		log.Debug().Err(err).Msg("doctor list cache invalidation failed")
	}
}
