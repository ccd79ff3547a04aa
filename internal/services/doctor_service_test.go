package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthkeeper/internal/cache"
	"healthkeeper/internal/models/db_models"
	"healthkeeper/internal/models/request_models"
	"healthkeeper/pkg/utils"
)

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return nil, cache.ErrCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

type doctorFixture struct {
	doctors  *fakeDoctorRepo
	patients *fakePatientRepo
	cache    *fakeCache
	svc      DoctorServiceInterface
}

func newDoctorFixture() *doctorFixture {
	f := &doctorFixture{
		doctors:  &fakeDoctorRepo{},
		patients: &fakePatientRepo{},
		cache:    newFakeCache(),
	}
	f.svc = NewDoctorService(f.doctors, f.patients, f.cache)
	return f
}

func (f *doctorFixture) seedDoctor(t *testing.T, name string) *db_models.Doctor {
	t.Helper()
	d := &db_models.Doctor{Name: name}
	require.NoError(t, f.doctors.Insert(context.Background(), d))
	return d
}

func TestDoctorList_Cached(t *testing.T) {
	f := newDoctorFixture()
	f.seedDoctor(t, "Dr. A")

	first, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)

	assert.Equal(t, 1, f.doctors.listHits, "the second list is served from cache")
}

func TestDoctorCreate_InvalidatesCache(t *testing.T) {
	f := newDoctorFixture()
	f.seedDoctor(t, "Dr. A")

	_, err := f.svc.List(context.Background())
	require.NoError(t, err)

	created, err := f.svc.Create(context.Background(), request_models.DoctorRequest{
		Name:      "Dr. B",
		Specialty: "pediatrics",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. B", created.Name)

	list, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2, "the stale cached list is not served after a write")
}

func TestDoctorGet_NotFound(t *testing.T) {
	f := newDoctorFixture()

	_, err := f.svc.Get(context.Background(), "00000000-0000-0000-0000-000000000001")
	assert.ErrorIs(t, err, utils.ErrDoctorNotFound)
}

func TestDoctorDelete_RefusedWhileReferenced(t *testing.T) {
	tests := []struct {
		name        string
		patientRefs int64
		recordRefs  int64
		wantErr     error
	}{
		{name: "referenced by patient", patientRefs: 1, wantErr: utils.ErrDoctorInUse},
		{name: "referenced by record", recordRefs: 3, wantErr: utils.ErrDoctorInUse},
		{name: "unreferenced", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDoctorFixture()
			doctor := f.seedDoctor(t, "Dr. A")
			f.patients.patientRefs = tt.patientRefs
			f.patients.recordRefs = tt.recordRefs

			err := f.svc.Delete(context.Background(), doctor.ID.String())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.doctors.deleted)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{doctor.ID.String()}, f.doctors.deleted)
		})
	}
}
