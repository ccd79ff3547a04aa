package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps the service-layer sentinel errors onto HTTP
// responses. Anything unmapped is logged and hidden behind a 500.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrTokenRequired):
		RespondError(c, http.StatusUnauthorized, "Access token required")
	case errors.Is(err, ErrTokenExpired):
		RespondError(c, http.StatusUnauthorized, "Token expired")
	case errors.Is(err, ErrTokenInvalid):
		RespondError(c, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, ErrSessionExpired):
		RespondError(c, http.StatusUnauthorized, "Session expired or invalid")
	case errors.Is(err, ErrAccountInactive):
		RespondError(c, http.StatusUnauthorized, "User not found or inactive")
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrPatientNotFound):
		RespondError(c, http.StatusNotFound, "Patient not found")
	case errors.Is(err, ErrDoctorNotFound):
		RespondError(c, http.StatusNotFound, "Doctor not found")
	case errors.Is(err, ErrRecordNotFound):
		RespondError(c, http.StatusNotFound, "Medical record not found")
	case errors.Is(err, ErrScheduleNotFound):
		RespondError(c, http.StatusNotFound, "Backup schedule not configured")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrUsernameTaken):
		RespondError(c, http.StatusConflict, "Username already taken")
	case errors.Is(err, ErrDoctorInUse):
		RespondError(c, http.StatusConflict, "Doctor is still referenced by patients or records")
	case errors.Is(err, ErrPasswordMismatch):
		RespondError(c, http.StatusBadRequest, "Password confirmation does not match")
	case errors.Is(err, ErrBackupInvalid):
		RespondError(c, http.StatusBadRequest, "Backup envelope failed validation")
	case errors.Is(err, ErrInsightsUnavailable):
		RespondError(c, http.StatusServiceUnavailable, "Insights provider not configured")
	case errors.Is(err, ErrDatabaseError):
		log.Error().Err(err).Msg("database error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Error().Err(err).Msg("unhandled service error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
