package utils

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account inactive")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")

	ErrTokenRequired  = errors.New("access token required")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrSessionExpired = errors.New("session expired or invalid")
	ErrForbidden      = errors.New("insufficient permissions")

	ErrPatientNotFound = errors.New("patient not found")
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrRecordNotFound  = errors.New("medical record not found")
	ErrDoctorInUse     = errors.New("doctor is still referenced")

	ErrBackupInvalid       = errors.New("backup envelope failed validation")
	ErrScheduleNotFound    = errors.New("backup schedule not configured")
	ErrInsightsUnavailable = errors.New("insights provider not configured")

	ErrDatabaseError = errors.New("database error")
)
