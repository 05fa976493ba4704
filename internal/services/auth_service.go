package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ripple-chat/config"
	"ripple-chat/internal/domain/user"
	"ripple-chat/internal/identity"
	"ripple-chat/internal/redis"
	"ripple-chat/internal/session"
	ripple_errors "ripple-chat/pkg/errors"
)

// AuthService fronts the identity boundary: it drives the session through
// sign-in/sign-up/sign-out and mints the HS256 tokens the HTTP surface
// authenticates with. Presence publication rides along on login/logout.
type AuthService struct {
	session   *session.Session
	presence  *redis.PresenceStore
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(sess *session.Session, presence *redis.PresenceStore, cfg *config.Config) *AuthService {
	return &AuthService{
		session:   sess,
		presence:  presence,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}
}

type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	User        user.User `json:"user"`
}

type AccessClaims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	if err := s.session.SignIn(ctx, email, password); err != nil {
		return AuthResponse{}, err
	}
	return s.issue(ctx)
}

func (s *AuthService) Register(ctx context.Context, email, password, username string) (AuthResponse, error) {
	if err := s.session.SignUp(ctx, email, password, username); err != nil {
		return AuthResponse{}, err
	}
	return s.issue(ctx)
}

func (s *AuthService) Logout(ctx context.Context) error {
	userID := s.session.CurrentUserID()
	if err := s.session.SignOut(ctx); err != nil {
		return err
	}
	if s.presence != nil && userID != uuid.Nil {
		_ = s.presence.Set(ctx, userID, user.PresenceOffline)
	}
	return nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, patch identity.ProfilePatch) (user.User, error) {
	if err := s.session.UpdateProfile(ctx, patch); err != nil {
		return user.User{}, err
	}
	updated, _ := s.session.CurrentUser()
	return updated, nil
}

func (s *AuthService) ResetPasswordRequest(ctx context.Context, email string) error {
	return s.session.ResetPasswordRequest(ctx, email)
}

func (s *AuthService) UpdatePassword(ctx context.Context, newPassword string) error {
	return s.session.UpdatePassword(ctx, newPassword)
}

func (s *AuthService) DeleteAccount(ctx context.Context) error {
	userID := s.session.CurrentUserID()
	if err := s.session.DeleteAccount(ctx); err != nil {
		return err
	}
	if s.presence != nil && userID != uuid.Nil {
		_ = s.presence.Set(ctx, userID, user.PresenceOffline)
	}
	return nil
}

// Session exposes the observed auth state (loading flag, error string).
func (s *AuthService) Session() *session.Session {
	return s.session
}

func (s *AuthService) issue(ctx context.Context) (AuthResponse, error) {
	current, ok := s.session.CurrentUser()
	if !ok {
		return AuthResponse{}, ripple_errors.ErrUnauthenticated
	}

	if s.presence != nil {
		_ = s.presence.Set(ctx, current.ID, user.PresenceOnline)
	}

	now := time.Now()
	claims := AccessClaims{
		UserID: current.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   current.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
		User:        current,
	}, nil
}

// ParseAccessToken validates a bearer token and returns the user id it
// authenticates.
func (s *AuthService) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, ripple_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ripple_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return uuid.Nil, ripple_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, ripple_errors.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ripple_errors.ErrUnauthorized
	}
	return userID, nil
}

// HTTPStatus maps domain errors onto response codes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ripple_errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ripple_errors.ErrUnauthenticated), errors.Is(err, ripple_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ripple_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ripple_errors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ripple_errors.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ripple_errors.ErrRemoteService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type ctxKey string

var userIDKey ctxKey = "user_id"

func WithUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
