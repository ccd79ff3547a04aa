package db_models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// MedicalImage is an inline image blob (base64 data URL) attached directly
// to a patient, as opposed to a Document which hangs off a medical record.
type MedicalImage struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// ImageList is stored as a single jsonb column.
type ImageList []MedicalImage

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *ImageList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for ImageList")
	}
}
