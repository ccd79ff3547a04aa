package infra

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rs/zerolog/log"

	"healthkeeper/internal/models/db_models"
)

func InitPostgresql(cfg *Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := db.AutoMigrate(
		&db_models.User{},
		&db_models.Session{},
		&db_models.Doctor{},
		&db_models.Patient{},
		&db_models.MedicalRecord{},
		&db_models.Medication{},
		&db_models.Reminder{},
		&db_models.Document{},
		&db_models.RecordEmbedding{},
		&db_models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	return db
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error().Err(err).Msg("error getting database instance")
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("error closing database connection")
	}
}
