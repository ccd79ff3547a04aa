package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"healthkeeper/internal/models/db_models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// one shared in-memory database per test, visible to every pooled conn
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&db_models.Patient{},
		&db_models.MedicalRecord{},
		&db_models.Document{},
		&db_models.Medication{},
		&db_models.Reminder{},
	))
	return db
}

// A merge restore hands ReplaceAll a collection that reuses the local ids, so
// the rewrite must clear the old rows outright rather than soft-delete them.
func TestReplaceAll_KeepsLocalIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewPatientRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	local := db_models.Patient{
		UserID:   userID,
		Name:     "Alice",
		IsActive: true,
		Records: []db_models.MedicalRecord{{
			Date:      "2026-01-10",
			Diagnosis: "flu",
			Documents: []db_models.Document{{Name: "scan.pdf"}},
		}},
		Medications: []db_models.Medication{{Name: "ibuprofen"}},
		Reminders:   []db_models.Reminder{{Title: "checkup", Date: "2026-02-01"}},
	}
	require.NoError(t, repo.Insert(ctx, &local))

	before, err := repo.FindByID(ctx, userID.String(), local.ID.String())
	require.NoError(t, err)
	require.NotNil(t, before)

	merged := *before
	merged.Name = "Alice (restored)"
	require.NoError(t, repo.ReplaceAll(ctx, userID.String(), []db_models.Patient{merged}))

	after, err := repo.FindByID(ctx, userID.String(), local.ID.String())
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, "Alice (restored)", after.Name)
	require.Len(t, after.Records, 1)
	assert.Equal(t, before.Records[0].ID, after.Records[0].ID)
	require.Len(t, after.Records[0].Documents, 1)
	require.Len(t, after.Medications, 1)
	require.Len(t, after.Reminders, 1)

	// no soft-deleted leftovers behind the rewritten rows
	var count int64
	require.NoError(t, db.Unscoped().Model(&db_models.Patient{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, db.Unscoped().Model(&db_models.MedicalRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReplaceAll_ReusesSoftDeletedRecordID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPatientRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	local := db_models.Patient{
		UserID:   userID,
		Name:     "Bob",
		IsActive: true,
		Records:  []db_models.MedicalRecord{{Date: "2026-01-01", Diagnosis: "sprain"}},
	}
	require.NoError(t, repo.Insert(ctx, &local))
	recID := local.Records[0].ID
	require.NoError(t, repo.DeleteRecord(ctx, recID.String()))

	// a backup taken before the deletion still carries the record
	restored := db_models.Patient{UserID: userID, Name: "Bob", IsActive: true}
	restored.ID = local.ID
	rec := db_models.MedicalRecord{PatientID: local.ID, Date: "2026-01-01", Diagnosis: "sprain"}
	rec.ID = recID
	restored.Records = []db_models.MedicalRecord{rec}

	require.NoError(t, repo.ReplaceAll(ctx, userID.String(), []db_models.Patient{restored}))

	got, err := repo.FindRecord(ctx, recID.String())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "sprain", got.Diagnosis)
}

func TestListAll_IncludesDeactivated(t *testing.T) {
	db := newTestDB(t)
	repo := NewPatientRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	current := db_models.Patient{UserID: userID, Name: "Current", IsActive: true}
	retired := db_models.Patient{UserID: userID, Name: "Retired", IsActive: true}
	require.NoError(t, repo.Insert(ctx, &current))
	require.NoError(t, repo.Insert(ctx, &retired))
	require.NoError(t, repo.SoftDelete(ctx, userID.String(), retired.ID.String()))

	active, err := repo.ListActive(ctx, userID.String())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Current", active[0].Name)

	all, err := repo.ListAll(ctx, userID.String())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
