package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthkeeper/internal/models/db_models"
	"healthkeeper/internal/models/request_models"
	"healthkeeper/pkg/utils"
)

type fakeUserRepo struct {
	users []*db_models.User
}

func (f *fakeUserRepo) Insert(ctx context.Context, user *db_models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*db_models.User, error) {
	for _, u := range f.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*db_models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *db_models.User) error { return nil }

func (f *fakeUserRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return nil
}

func (f *fakeUserRepo) ListActive(ctx context.Context) ([]db_models.User, error) {
	var out []db_models.User
	for _, u := range f.users {
		if u.IsActive {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeSessionRepo struct {
	sessions           []*db_models.Session
	deactivateAllCalls int
}

func (f *fakeSessionRepo) Insert(ctx context.Context, session *db_models.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeSessionRepo) FindActive(ctx context.Context, userID, token string) (*db_models.Session, error) {
	for _, s := range f.sessions {
		if s.IsActive && s.UserID.String() == userID && s.Token == token {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) FindActiveByRefreshToken(ctx context.Context, refreshToken string) (*db_models.Session, error) {
	for _, s := range f.sessions {
		if s.IsActive && s.RefreshToken == refreshToken {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) Deactivate(ctx context.Context, id string) error {
	for _, s := range f.sessions {
		if s.ID.String() == id {
			s.IsActive = false
		}
	}
	return nil
}

func (f *fakeSessionRepo) DeactivateByToken(ctx context.Context, userID, token string) error {
	for _, s := range f.sessions {
		if s.UserID.String() == userID && s.Token == token {
			s.IsActive = false
		}
	}
	return nil
}

func (f *fakeSessionRepo) DeactivateAllForUser(ctx context.Context, userID string) error {
	f.deactivateAllCalls++
	for _, s := range f.sessions {
		if s.UserID.String() == userID {
			s.IsActive = false
		}
	}
	return nil
}

func (f *fakeSessionRepo) active() []*db_models.Session {
	var out []*db_models.Session
	for _, s := range f.sessions {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out
}

type auditEntry struct {
	action string
	detail string
}

type fakeAuditRepo struct {
	entries []auditEntry
}

func (f *fakeAuditRepo) Record(ctx context.Context, userID *uuid.UUID, action, detail, ip string) error {
	f.entries = append(f.entries, auditEntry{action: action, detail: detail})
	return nil
}

func (f *fakeAuditRepo) ListForUser(ctx context.Context, userID string, limit int) ([]db_models.AuditLog, error) {
	return nil, nil
}

func (f *fakeAuditRepo) actions() []string {
	out := make([]string, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.action
	}
	return out
}

type authFixture struct {
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	audit    *fakeAuditRepo
	tokens   *utils.TokenManager
	svc      AuthServiceInterface
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	tokens, err := utils.NewTokenManager("test-secret", 24*time.Hour, 168*time.Hour, 168*time.Hour)
	require.NoError(t, err)

	f := &authFixture{
		users:    &fakeUserRepo{},
		sessions: &fakeSessionRepo{},
		audit:    &fakeAuditRepo{},
		tokens:   tokens,
	}
	f.svc = NewAuthService(f.users, f.sessions, f.audit, tokens)
	return f
}

func (f *authFixture) seedUser(t *testing.T, email, password string) *db_models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := &db_models.User{
		Email:        email,
		Username:     "seeded",
		PasswordHash: hash,
		Role:         db_models.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, f.users.Insert(context.Background(), user))
	return user
}

func TestRegister(t *testing.T) {
	f := newAuthFixture(t)

	req := request_models.RegisterRequest{
		Email:           "new@example.com",
		Username:        "newuser",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FirstName:       "New",
		LastName:        "User",
	}
	resp, err := f.svc.Register(context.Background(), req, ClientInfo{})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.Equal(t, db_models.RoleUser, resp.User.Role, "role defaults to user")
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := f.tokens.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	require.Len(t, f.sessions.active(), 1)
	assert.Equal(t, resp.Token, f.sessions.active()[0].Token)
	assert.Contains(t, f.audit.actions(), db_models.AuditRegister)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(context.Background(), request_models.RegisterRequest{
		Email:           "x@example.com",
		Username:        "x",
		Password:        "secret123",
		ConfirmPassword: "different",
	}, ClientInfo{})
	assert.ErrorIs(t, err, utils.ErrPasswordMismatch)
}

func TestRegister_Duplicates(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "taken@example.com", "secret123")

	_, err := f.svc.Register(context.Background(), request_models.RegisterRequest{
		Email:           "taken@example.com",
		Username:        "fresh",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}, ClientInfo{})
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)

	_, err = f.svc.Register(context.Background(), request_models.RegisterRequest{
		Email:           "fresh@example.com",
		Username:        "seeded",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}, ClientInfo{})
	assert.ErrorIs(t, err, utils.ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "u@example.com", "secret123")

	resp, err := f.svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "u@example.com",
		Password: "secret123",
	}, ClientInfo{UserAgent: "test", IPAddress: "127.0.0.1"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.NotZero(t, resp.User.LastLoginAt)
	require.Len(t, f.sessions.active(), 1)
	assert.Equal(t, "127.0.0.1", f.sessions.active()[0].IPAddress)
	assert.Contains(t, f.audit.actions(), db_models.AuditLoginSuccess)
}

func TestLogin_SupersedesPreviousSessions(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "u@example.com", "secret123")

	first, err := f.svc.Login(context.Background(), request_models.LoginRequest{
		Email: "u@example.com", Password: "secret123",
	}, ClientInfo{})
	require.NoError(t, err)

	second, err := f.svc.Login(context.Background(), request_models.LoginRequest{
		Email: "u@example.com", Password: "secret123",
	}, ClientInfo{})
	require.NoError(t, err)

	active := f.sessions.active()
	require.Len(t, active, 1)
	assert.Equal(t, second.Token, active[0].Token)
	assert.NotEqual(t, first.Token, active[0].Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "u@example.com", "secret123")

	_, err := f.svc.Login(context.Background(), request_models.LoginRequest{
		Email: "u@example.com", Password: "wrong-pass",
	}, ClientInfo{})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	assert.Contains(t, f.audit.actions(), db_models.AuditLoginFailed)
	assert.Empty(t, f.sessions.sessions)
}

func TestLogin_UnknownOrInactive(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "gone@example.com", "secret123")
	user.IsActive = false

	_, err := f.svc.Login(context.Background(), request_models.LoginRequest{
		Email: "nobody@example.com", Password: "secret123",
	}, ClientInfo{})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), request_models.LoginRequest{
		Email: "gone@example.com", Password: "secret123",
	}, ClientInfo{})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials, "inactive accounts look like bad credentials")
}

func TestLogout(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "u@example.com", "secret123")

	resp, err := f.svc.Login(context.Background(), request_models.LoginRequest{
		Email: "u@example.com", Password: "secret123",
	}, ClientInfo{})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), user.ID.String(), resp.Token, ClientInfo{}))
	assert.Empty(t, f.sessions.active())
	assert.Contains(t, f.audit.actions(), db_models.AuditLogout)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "u@example.com", "secret123")

	_, err := f.svc.Login(context.Background(), request_models.LoginRequest{
		Email: "u@example.com", Password: "secret123",
	}, ClientInfo{})
	require.NoError(t, err)

	err = f.svc.ChangePassword(context.Background(), user.ID.String(), request_models.ChangePasswordRequest{
		CurrentPassword: "wrong-pass",
		NewPassword:     "newpass456",
		ConfirmPassword: "newpass456",
	}, ClientInfo{})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	err = f.svc.ChangePassword(context.Background(), user.ID.String(), request_models.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newpass456",
		ConfirmPassword: "newpass456",
	}, ClientInfo{})
	require.NoError(t, err)

	assert.NoError(t, utils.ComparePasswords(user.PasswordHash, "newpass456"))
	assert.Empty(t, f.sessions.active(), "all sessions die with the old password")
	assert.Contains(t, f.audit.actions(), db_models.AuditPasswordChange)
}

func TestRefresh_RotatesSession(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "u@example.com", "secret123")

	login, err := f.svc.Login(context.Background(), request_models.LoginRequest{
		Email: "u@example.com", Password: "secret123",
	}, ClientInfo{})
	require.NoError(t, err)

	resp, err := f.svc.Refresh(context.Background(), login.RefreshToken, ClientInfo{})
	require.NoError(t, err)

	assert.NotEqual(t, login.Token, resp.Token, "a fresh access token is minted")
	assert.Equal(t, login.RefreshToken, resp.RefreshToken, "the refresh token survives rotation")

	active := f.sessions.active()
	require.Len(t, active, 1, "the old session is deactivated")
	assert.Equal(t, resp.Token, active[0].Token)
	assert.Contains(t, f.audit.actions(), db_models.AuditTokenRefresh)
}

func TestRefresh_Rejections(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "u@example.com", "secret123")

	// an access token presented as a refresh token
	access, _, err := f.tokens.CreateAccessToken(user.ID, user.Email, user.Role, false)
	require.NoError(t, err)
	_, err = f.svc.Refresh(context.Background(), access, ClientInfo{})
	assert.ErrorIs(t, err, utils.ErrTokenInvalid)

	// a well-formed refresh token with no session behind it
	orphan, _, err := f.tokens.CreateRefreshToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	_, err = f.svc.Refresh(context.Background(), orphan, ClientInfo{})
	assert.ErrorIs(t, err, utils.ErrSessionExpired)

	// a revoked session cannot be refreshed
	login, err := f.svc.Login(context.Background(), request_models.LoginRequest{
		Email: "u@example.com", Password: "secret123",
	}, ClientInfo{})
	require.NoError(t, err)
	require.NoError(t, f.sessions.DeactivateAllForUser(context.Background(), user.ID.String()))
	_, err = f.svc.Refresh(context.Background(), login.RefreshToken, ClientInfo{})
	assert.ErrorIs(t, err, utils.ErrSessionExpired)
}

func TestRefresh_InactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "u@example.com", "secret123")

	login, err := f.svc.Login(context.Background(), request_models.LoginRequest{
		Email: "u@example.com", Password: "secret123",
	}, ClientInfo{})
	require.NoError(t, err)

	user.IsActive = false
	_, err = f.svc.Refresh(context.Background(), login.RefreshToken, ClientInfo{})
	assert.ErrorIs(t, err, utils.ErrAccountInactive)
}

func TestProfileAndUpdate(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "u@example.com", "secret123")

	profile, err := f.svc.Profile(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "u@example.com", profile.Email)

	_, err = f.svc.Profile(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)

	first := "Anna"
	updated, err := f.svc.UpdateProfile(context.Background(), user.ID.String(), request_models.UpdateProfileRequest{
		FirstName: &first,
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.FirstName)
	assert.Equal(t, user.LastName, updated.LastName, "unset fields are untouched")
}
