package db_models

import "github.com/google/uuid"

const (
	AuditLoginSuccess   = "login_success"
	AuditLoginFailed    = "login_failed"
	AuditLogout         = "logout"
	AuditPasswordChange = "password_change"
	AuditTokenRefresh   = "token_refresh"
	AuditRegister       = "register"
)

type AuditLog struct {
	BaseModel
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"userId"`
	Action    string     `gorm:"index" json:"action"`
	Detail    string     `json:"detail"`
	IPAddress string     `json:"ipAddress"`
}
