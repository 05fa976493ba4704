package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ripple-chat/internal/domain/user"
	ripple_errors "ripple-chat/pkg/errors"
)

// Profile is the provider-side profile record. Credentials live on the same
// row; settings are stored as a JSON column.
type Profile struct {
	ID           uuid.UUID `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex"`
	Email        string    `gorm:"uniqueIndex"`
	PasswordHash string
	Avatar       string
	Bio          string
	Website      string
	Location     string
	DarkMode     bool
	Status       string
	LastSeen     *time.Time
	IsVerified   bool
	Followers    int
	Following    int
	Settings     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Profile) TableName() string {
	return "profiles"
}

// PostgresProvider is a self-hosted identity service backed by a profiles
// table. It stands in for the hosted auth/database service the client
// delegates to.
type PostgresProvider struct {
	db *gorm.DB
}

func NewPostgresProvider(db *gorm.DB) *PostgresProvider {
	return &PostgresProvider{db: db}
}

func (p *PostgresProvider) SignIn(ctx context.Context, email, password string) (Account, error) {
	if email == "" || password == "" {
		return Account{}, ripple_errors.ErrInvalidInput
	}

	var record Profile
	err := p.db.WithContext(ctx).Where("email = ?", email).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same failure as a bad password: existence stays undisclosed
			return Account{}, ripple_errors.ErrUnauthorized
		}
		return Account{}, fmt.Errorf("%w: %s", ripple_errors.ErrRemoteService, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)) != nil {
		return Account{}, ripple_errors.ErrUnauthorized
	}

	now := time.Now()
	record.Status = string(user.PresenceOnline)
	record.LastSeen = &now
	if err := p.db.WithContext(ctx).Save(&record).Error; err != nil {
		return Account{}, fmt.Errorf("%w: %s", ripple_errors.ErrRemoteService, err)
	}

	return Account{UserID: record.ID, Profile: toUser(record)}, nil
}

func (p *PostgresProvider) SignUp(ctx context.Context, email, password, username string) (Account, error) {
	if email == "" || username == "" {
		return Account{}, ripple_errors.ErrInvalidInput
	}
	if len(password) < 8 {
		return Account{}, ripple_errors.ErrInvalidInput
	}

	var count int64
	err := p.db.WithContext(ctx).Model(&Profile{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	if err != nil {
		return Account{}, fmt.Errorf("%w: %s", ripple_errors.ErrRemoteService, err)
	}
	if count > 0 {
		return Account{}, ripple_errors.ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	settings, err := json.Marshal(user.DefaultSettings())
	if err != nil {
		return Account{}, err
	}

	now := time.Now()
	record := Profile{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       DefaultAvatar(username),
		Status:       string(user.PresenceOnline),
		LastSeen:     &now,
		Settings:     string(settings),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := p.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Account{}, ripple_errors.ErrAlreadyExists
		}
		return Account{}, fmt.Errorf("%w: %s", ripple_errors.ErrRemoteService, err)
	}

	return Account{UserID: record.ID, Profile: toUser(record)}, nil
}

func (p *PostgresProvider) SignOut(ctx context.Context) error {
	return nil
}

func (p *PostgresProvider) UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) error {
	var record Profile
	err := p.db.WithContext(ctx).Where("id = ?", userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ripple_errors.ErrNotFound
		}
		return fmt.Errorf("%w: %s", ripple_errors.ErrRemoteService, err)
	}

	u := toUser(record)
	patch.Apply(&u)

	settings, err := json.Marshal(u.Settings)
	if err != nil {
		return err
	}

	record.Username = u.Username
	record.Avatar = u.Avatar
	record.Bio = u.Bio
	record.Website = u.Website
	record.Location = u.Location
	record.DarkMode = u.DarkMode
	record.Status = string(u.Status)
	record.Settings = string(settings)
	record.UpdatedAt = time.Now()

	if err := p.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("%w: %s", ripple_errors.ErrRemoteService, err)
	}
	return nil
}

func (p *PostgresProvider) ResetPasswordRequest(ctx context.Context, email string) error {
	if email == "" {
		return ripple_errors.ErrInvalidInput
	}
	var count int64
	err := p.db.WithContext(ctx).Model(&Profile{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return fmt.Errorf("%w: %s", ripple_errors.ErrRemoteService, err)
	}
	// Existence is not disclosed to the caller.
	return nil
}

func (p *PostgresProvider) UpdatePassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	if len(newPassword) < 8 {
		return ripple_errors.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	res := p.db.WithContext(ctx).Model(&Profile{}).
		Where("id = ?", userID).
		Updates(map[string]any{"password_hash": string(hash), "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("%w: %s", ripple_errors.ErrRemoteService, res.Error)
	}
	if res.RowsAffected == 0 {
		return ripple_errors.ErrNotFound
	}
	return nil
}

func (p *PostgresProvider) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	res := p.db.WithContext(ctx).Delete(&Profile{}, "id = ?", userID)
	if res.Error != nil {
		return fmt.Errorf("%w: %s", ripple_errors.ErrRemoteService, res.Error)
	}
	if res.RowsAffected == 0 {
		return ripple_errors.ErrNotFound
	}
	return nil
}

// DefaultAvatar builds the deterministic avatar URL assigned at sign-up,
// seeded by the username.
func DefaultAvatar(username string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/avatars/svg?seed=%s", username)
}

func toUser(record Profile) user.User {
	u := user.User{
		ID:         record.ID,
		Username:   record.Username,
		Email:      record.Email,
		Avatar:     record.Avatar,
		Bio:        record.Bio,
		Website:    record.Website,
		Location:   record.Location,
		DarkMode:   record.DarkMode,
		Status:     user.Presence(record.Status),
		LastSeen:   record.LastSeen,
		CreatedAt:  record.CreatedAt,
		IsVerified: record.IsVerified,
		Followers:  record.Followers,
		Following:  record.Following,
		Settings:   user.DefaultSettings(),
	}
	if record.Settings != "" {
		var settings user.Settings
		if err := json.Unmarshal([]byte(record.Settings), &settings); err == nil {
			u.Settings = settings
		}
	}
	return u
}
