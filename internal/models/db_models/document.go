package db_models

import "github.com/google/uuid"

type Document struct {
	BaseModel
	RecordID uuid.UUID `gorm:"type:uuid;index" json:"recordId"`
	Name     string    `json:"name"`
	MimeType string    `json:"mimeType"`
	URL      string    `json:"url"`
}
