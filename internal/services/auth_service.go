package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"healthkeeper/internal/models/db_models"
	"healthkeeper/internal/models/request_models"
	"healthkeeper/internal/models/response_models"
	"healthkeeper/internal/repositories"
	"healthkeeper/pkg/utils"
)

// ClientInfo carries the request metadata stored on the session row.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthServiceInterface interface {
	Register(ctx context.Context, req request_models.RegisterRequest, client ClientInfo) (*response_models.AuthResponse, error)
	Login(ctx context.Context, req request_models.LoginRequest, client ClientInfo) (*response_models.AuthResponse, error)
	Logout(ctx context.Context, userID, token string, client ClientInfo) error
	Profile(ctx context.Context, userID string) (*response_models.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req request_models.UpdateProfileRequest) (*response_models.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req request_models.ChangePasswordRequest, client ClientInfo) error
	Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*response_models.AuthResponse, error)
}

type AuthService struct {
	users    repositories.UserRepository
	sessions repositories.SessionRepository
	audit    repositories.AuditRepository
	tokens   *utils.TokenManager
}

func NewAuthService(users repositories.UserRepository, sessions repositories.SessionRepository,
	audit repositories.AuditRepository, tokens *utils.TokenManager) AuthServiceInterface {
	return &AuthService{
		users:    users,
		sessions: sessions,
		audit:    audit,
		tokens:   tokens,
	}
}

func (a *AuthService) Register(ctx context.Context, req request_models.RegisterRequest, client ClientInfo) (*response_models.AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, utils.ErrPasswordMismatch
	}

	if existing, err := a.users.FindByEmail(ctx, req.Email); err != nil {
		return nil, utils.ErrDatabaseError
	} else if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}
	if existing, err := a.users.FindByUsername(ctx, req.Username); err != nil {
		return nil, utils.ErrDatabaseError
	} else if existing != nil {
		return nil, utils.ErrUsernameTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	role := req.Role
	if role == "" {
		role = db_models.RoleUser
	}

	user := &db_models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		IsActive:     true,
	}
	if err := a.users.Insert(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	a.auditEvent(ctx, &user.ID, db_models.AuditRegister, user.Email, client)

	return a.issueSession(ctx, user, false, client)
}

func (a *AuthService) Login(ctx context.Context, req request_models.LoginRequest, client ClientInfo) (*response_models.AuthResponse, error) {
	user, err := a.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil || !user.IsActive {
		a.auditEvent(ctx, nil, db_models.AuditLoginFailed, req.Email, client)
		log.Warn().Str("email", req.Email).Str("ip", client.IPAddress).
			Msg("Failed login attempt")
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, req.Password); err != nil {
		a.auditEvent(ctx, &user.ID, db_models.AuditLoginFailed, user.Email, client)
		log.Warn().Str("email", req.Email).Str("ip", client.IPAddress).
			Msg("Failed login attempt")
		return nil, utils.ErrInvalidCredentials
	}

	// A new login supersedes the user's previous sessions.
	if err := a.sessions.DeactivateAllForUser(ctx, user.ID.String()); err != nil {
		return nil, utils.ErrDatabaseError
	}

	now := time.Now()
	if err := a.users.TouchLastLogin(ctx, user.ID.String(), now); err != nil {
		log.Error().Err(err).Msg("could not update last login timestamp")
	}
	user.LastLoginAt = &now

	a.auditEvent(ctx, &user.ID, db_models.AuditLoginSuccess, user.Email, client)

	return a.issueSession(ctx, user, req.RememberMe, client)
}

func (a *AuthService) Logout(ctx context.Context, userID, token string, client ClientInfo) error {
	if err := a.sessions.DeactivateByToken(ctx, userID, token); err != nil {
		return utils.ErrDatabaseError
	}
	if id, err := parseUUID(userID); err == nil {
		a.auditEvent(ctx, &id, db_models.AuditLogout, "", client)
	}
	return nil
}

func (a *AuthService) Profile(ctx context.Context, userID string) (*response_models.UserResponse, error) {
	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return response_models.NewUserResponse(user), nil
}

func (a *AuthService) UpdateProfile(ctx context.Context, userID string, req request_models.UpdateProfileRequest) (*response_models.UserResponse, error) {
	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := a.users.Update(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return response_models.NewUserResponse(user), nil
}

func (a *AuthService) ChangePassword(ctx context.Context, userID string, req request_models.ChangePasswordRequest, client ClientInfo) error {
	if req.NewPassword != req.ConfirmPassword {
		return utils.ErrPasswordMismatch
	}

	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(user.PasswordHash, req.CurrentPassword); err != nil {
		return utils.ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	user.PasswordHash = hash
	if err := a.users.Update(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}

	// Every outstanding session dies with the old password.
	if err := a.sessions.DeactivateAllForUser(ctx, userID); err != nil {
		return utils.ErrDatabaseError
	}

	a.auditEvent(ctx, &user.ID, db_models.AuditPasswordChange, "", client)
	return nil
}

// Refresh rotates the presented refresh token's session: the old session row
// is deactivated and a successor row with a fresh access token is written.
// Refresh tokens are therefore NOT exempt from session revocation.
func (a *AuthService) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*response_models.AuthResponse, error) {
	claims, err := a.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	session, err := a.sessions.FindActiveByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if session == nil || session.UserID.String() != claims.UserID {
		return nil, utils.ErrSessionExpired
	}

	user, err := a.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil || !user.IsActive {
		return nil, utils.ErrAccountInactive
	}

	if err := a.sessions.Deactivate(ctx, session.ID.String()); err != nil {
		return nil, utils.ErrDatabaseError
	}

	accessToken, expiresAt, err := a.tokens.CreateAccessToken(user.ID, user.Email, user.Role, false)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	next := &db_models.Session{
		UserID:       user.ID,
		Token:        accessToken,
		RefreshToken: refreshToken,
		UserAgent:    client.UserAgent,
		IPAddress:    client.IPAddress,
		ExpiresAt:    expiresAt,
		IsActive:     true,
	}
	if err := a.sessions.Insert(ctx, next); err != nil {
		return nil, utils.ErrDatabaseError
	}

	a.auditEvent(ctx, &user.ID, db_models.AuditTokenRefresh, "", client)

	return &response_models.AuthResponse{
		User:         response_models.NewUserResponse(user),
		Token:        accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (a *AuthService) issueSession(ctx context.Context, user *db_models.User, rememberMe bool, client ClientInfo) (*response_models.AuthResponse, error) {
	accessToken, expiresAt, err := a.tokens.CreateAccessToken(user.ID, user.Email, user.Role, rememberMe)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	refreshToken, _, err := a.tokens.CreateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	session := &db_models.Session{
		UserID:       user.ID,
		Token:        accessToken,
		RefreshToken: refreshToken,
		UserAgent:    client.UserAgent,
		IPAddress:    client.IPAddress,
		ExpiresAt:    expiresAt,
		IsActive:     true,
	}
	if err := a.sessions.Insert(ctx, session); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.AuthResponse{
		User:         response_models.NewUserResponse(user),
		Token:        accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// auditEvent persists and logs one auth event; failures are logged, never
// propagated, so auditing cannot break the auth path.
func (a *AuthService) auditEvent(ctx context.Context, userID *uuid.UUID, action, detail string, client ClientInfo) {
	if err := a.audit.Record(ctx, userID, action, detail, client.IPAddress); err != nil {
		log.Error().Err(err).Str("action", action).Msg("could not write audit log")
	}
}

func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
