package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"ripple-chat/internal/domain/user"
	"ripple-chat/internal/identity"
	ripple_errors "ripple-chat/pkg/errors"
)

// Session is the client's local authentication state. Remote identity calls
// set a loading flag and commit user state only after the call resolves;
// failures are recorded as an observable error string and are never thrown
// past this boundary as a panic. Overlapping calls are not guarded against
// each other: whichever resolves last wins.
type Session struct {
	mu       sync.Mutex
	provider identity.Provider

	user    *user.User
	loading bool
	lastErr string
}

func New(provider identity.Provider) *Session {
	return &Session{provider: provider}
}

// SignIn authenticates against the provider and commits the returned
// profile as the current user.
func (s *Session) SignIn(ctx context.Context, email, password string) error {
	s.begin()
	account, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(account.Profile)
	return nil
}

// SignUp registers a new account. The provider creates the profile record
// with a seeded default avatar and the default settings block; the returned
// profile is committed as the current user.
func (s *Session) SignUp(ctx context.Context, email, password, username string) error {
	s.begin()
	account, err := s.provider.SignUp(ctx, email, password, username)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(account.Profile)
	return nil
}

// SignOut clears the current user after the provider acknowledges.
func (s *Session) SignOut(ctx context.Context) error {
	s.begin()
	if err := s.provider.SignOut(ctx); err != nil {
		s.fail(err)
		return err
	}
	s.clear()
	return nil
}

// UpdateProfile pushes a partial update and, on success, merges the applied
// fields into the cached user.
func (s *Session) UpdateProfile(ctx context.Context, patch identity.ProfilePatch) error {
	userID := s.CurrentUserID()
	if userID == uuid.Nil {
		return ripple_errors.ErrUnauthenticated
	}

	s.begin()
	if err := s.provider.UpdateProfile(ctx, userID, patch); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	if s.user != nil {
		merged := *s.user
		patch.Apply(&merged)
		s.user = &merged
	}
	s.loading = false
	s.mu.Unlock()
	return nil
}

// ResetPasswordRequest is a pass-through; no local state is derived.
func (s *Session) ResetPasswordRequest(ctx context.Context, email string) error {
	s.begin()
	if err := s.provider.ResetPasswordRequest(ctx, email); err != nil {
		s.fail(err)
		return err
	}
	s.settle()
	return nil
}

// UpdatePassword is a pass-through for the authenticated user.
func (s *Session) UpdatePassword(ctx context.Context, newPassword string) error {
	userID := s.CurrentUserID()
	if userID == uuid.Nil {
		return ripple_errors.ErrUnauthenticated
	}

	s.begin()
	if err := s.provider.UpdatePassword(ctx, userID, newPassword); err != nil {
		s.fail(err)
		return err
	}
	s.settle()
	return nil
}

// DeleteAccount removes the remote profile and account, then clears local
// state.
func (s *Session) DeleteAccount(ctx context.Context) error {
	userID := s.CurrentUserID()
	if userID == uuid.Nil {
		return ripple_errors.ErrUnauthenticated
	}

	s.begin()
	if err := s.provider.DeleteAccount(ctx, userID); err != nil {
		s.fail(err)
		return err
	}
	s.clear()
	return nil
}

// CurrentUser returns the cached profile of the signed-in user.
func (s *Session) CurrentUser() (user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return user.User{}, false
	}
	return *s.user, true
}

// CurrentUserID returns the acting user id, or uuid.Nil when no user is
// signed in. Ledger mutations are gated on a non-nil actor.
func (s *Session) CurrentUserID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return uuid.Nil
	}
	return s.user.ID
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	return s.CurrentUserID() != uuid.Nil
}

// Loading reports whether a remote identity call is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last remote failure as a user-visible string, empty when
// the most recent operation succeeded.
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = err.Error()
	s.mu.Unlock()
}

func (s *Session) commit(profile user.User) {
	s.mu.Lock()
	s.user = &profile
	s.loading = false
	s.mu.Unlock()
}

func (s *Session) settle() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Session) clear() {
	s.mu.Lock()
	s.user = nil
	s.loading = false
	s.mu.Unlock()
}
