package response_models

import "healthkeeper/internal/models/db_models"

// UserResponse is the sanitized view of a user; the password hash never
// leaves the service layer.
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Role        string `json:"role"`
	IsActive    bool   `json:"isActive"`
	IsVerified  bool   `json:"isVerified"`
	LastLoginAt int64  `json:"lastLoginAt,omitempty"`
}

func NewUserResponse(u *db_models.User) *UserResponse {
	resp := &UserResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		AvatarURL:  u.AvatarURL,
		Role:       u.Role,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
	}
	if u.LastLoginAt != nil {
		resp.LastLoginAt = u.LastLoginAt.Unix()
	}
	return resp
}

type AuthResponse struct {
	User         *UserResponse `json:"user"`
	Token        string        `json:"token"`
	RefreshToken string        `json:"refreshToken"`
}
