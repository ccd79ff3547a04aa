package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"healthkeeper/internal/models/db_models"
)

type DoctorRepository interface {
	Insert(ctx context.Context, doctor *db_models.Doctor) error
	FindByID(ctx context.Context, id string) (*db_models.Doctor, error)
	ListAll(ctx context.Context) ([]db_models.Doctor, error)
	Update(ctx context.Context, doctor *db_models.Doctor) error
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, doctor *db_models.Doctor) error
}

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Insert(ctx context.Context, doctor *db_models.Doctor) error {
	return r.db.WithContext(ctx).Create(doctor).Error
}

func (r *doctorRepository) FindByID(ctx context.Context, id string) (*db_models.Doctor, error) {
	var doctor db_models.Doctor
	err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) ListAll(ctx context.Context) ([]db_models.Doctor, error) {
	var doctors []db_models.Doctor
	err := r.db.WithContext(ctx).Order("name").Find(&doctors).Error
	return doctors, err
}

func (r *doctorRepository) Update(ctx context.Context, doctor *db_models.Doctor) error {
	return r.db.WithContext(ctx).Save(doctor).Error
}

func (r *doctorRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&db_models.Doctor{}, "id = ?", id).Error
}

// Upsert writes a doctor with its incoming id, used when a restore carries
// doctors this installation has never seen.
func (r *doctorRepository) Upsert(ctx context.Context, doctor *db_models.Doctor) error {
	return r.db.WithContext(ctx).Save(doctor).Error
}
