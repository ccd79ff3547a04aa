package request_models

import "healthkeeper/internal/backup"

type ExportBackupRequest struct {
	IncludeImages bool   `json:"includeImages"`
	Compress      bool   `json:"compress"`
	Passphrase    string `json:"passphrase"`
}

type RestoreBackupRequest struct {
	Backup              backup.Envelope `json:"backup" binding:"required"`
	MergeStrategy       string          `json:"mergeStrategy" binding:"required"`
	ValidateData        bool            `json:"validateData"`
	BackupBeforeRestore bool            `json:"backupBeforeRestore"`
}

type ScheduleRequest struct {
	Frequency string `json:"frequency" binding:"required,oneof=daily weekly monthly"`
	Time      string `json:"time" binding:"required,datetime=15:04"`
	Enabled   bool   `json:"enabled"`
}
