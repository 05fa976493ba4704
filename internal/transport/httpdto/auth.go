package httpdto

import "ripple-chat/internal/identity"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username" binding:"required"`
}

type UpdateProfileRequest struct {
	identity.ProfilePatch
}

type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// SessionState is the polled auth-state view: loading flag and the last
// remote error, surfaced as a string rather than a thrown failure.
type SessionState struct {
	Authenticated bool   `json:"authenticated"`
	Loading       bool   `json:"loading"`
	Error         string `json:"error,omitempty"`
}
