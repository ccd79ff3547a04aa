package db_models

import (
	"time"

	"github.com/google/uuid"
)

// Session binds one issued access token to a user. A session authorizes a
// request only while IsActive is true, ExpiresAt is in the future and the
// presented token matches Token exactly. Sessions are deactivated rather
// than deleted so the audit trail survives logout.
type Session struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;index" json:"userId"`
	Token        string    `gorm:"index" json:"-"`
	RefreshToken string    `gorm:"index" json:"-"`
	UserAgent    string    `json:"userAgent"`
	IPAddress    string    `json:"ipAddress"`
	ExpiresAt    time.Time `json:"expiresAt"`
	IsActive     bool      `gorm:"default:true;index" json:"isActive"`
}

func (s *Session) Valid(token string, now time.Time) bool {
	return s.IsActive && now.Before(s.ExpiresAt) && s.Token == token
}
