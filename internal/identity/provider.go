package identity

import (
	"context"

	"github.com/google/uuid"

	"ripple-chat/internal/domain/user"
)

// Account is what the identity provider hands back after sign-in/sign-up:
// the authenticated user id and its profile record.
type Account struct {
	UserID  uuid.UUID
	Profile user.User
}

// ProfilePatch is a partial profile update. Nil fields are left untouched;
// the session merges the applied fields into its cached user on success.
type ProfilePatch struct {
	Username *string        `json:"username,omitempty"`
	Avatar   *string        `json:"avatar,omitempty"`
	Bio      *string        `json:"bio,omitempty"`
	Website  *string        `json:"website,omitempty"`
	Location *string        `json:"location,omitempty"`
	DarkMode *bool          `json:"dark_mode,omitempty"`
	Status   *user.Presence `json:"status,omitempty"`
	Settings *user.Settings `json:"settings,omitempty"`
}

// Apply merges the patch into u.
func (p ProfilePatch) Apply(u *user.User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Website != nil {
		u.Website = *p.Website
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.DarkMode != nil {
		u.DarkMode = *p.DarkMode
	}
	if p.Status != nil && p.Status.Valid() {
		u.Status = *p.Status
	}
	if p.Settings != nil {
		u.Settings = *p.Settings
	}
}

// Provider is the external identity and profile-storage service. The core
// consumes it and owns none of its state; every call can fail or hang on
// the network and must be treated as a remote operation.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Account, error)
	SignUp(ctx context.Context, email, password, username string) (Account, error)
	SignOut(ctx context.Context) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) error
	ResetPasswordRequest(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, newPassword string) error
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}
