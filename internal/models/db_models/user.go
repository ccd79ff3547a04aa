package db_models

import "time"

const (
	RoleAdmin  = "admin"
	RoleUser   = "user"
	RoleDoctor = "doctor"
)

// User accounts are never hard-deleted, only deactivated.
type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex" json:"email"`
	Username     string     `gorm:"uniqueIndex" json:"username"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	AvatarURL    string     `json:"avatarUrl"`
	Role         string     `gorm:"default:user" json:"role"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	IsVerified   bool       `gorm:"default:false" json:"isVerified"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`

	Patients []Patient `json:"-"`
	Sessions []Session `json:"-"`
}
