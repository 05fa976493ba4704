package session

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ripple-chat/internal/domain/user"
	"ripple-chat/internal/identity"
	ripple_errors "ripple-chat/pkg/errors"
)

type fakeProvider struct {
	account identity.Account
	err     error

	signOutCalls int
	lastPatch    identity.ProfilePatch
	deletedID    uuid.UUID
}

func (f *fakeProvider) SignIn(ctx context.Context, email, password string) (identity.Account, error) {
	return f.account, f.err
}

func (f *fakeProvider) SignUp(ctx context.Context, email, password, username string) (identity.Account, error) {
	return f.account, f.err
}

func (f *fakeProvider) SignOut(ctx context.Context) error {
	f.signOutCalls++
	return f.err
}

func (f *fakeProvider) UpdateProfile(ctx context.Context, userID uuid.UUID, patch identity.ProfilePatch) error {
	f.lastPatch = patch
	return f.err
}

func (f *fakeProvider) ResetPasswordRequest(ctx context.Context, email string) error {
	return f.err
}

func (f *fakeProvider) UpdatePassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	return f.err
}

func (f *fakeProvider) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	f.deletedID = userID
	return f.err
}

func fakeAccount(username string) identity.Account {
	id := uuid.New()
	return identity.Account{
		UserID: id,
		Profile: user.User{
			ID:       id,
			Username: username,
			Settings: user.DefaultSettings(),
		},
	}
}

func TestSession_SignInCommitsAfterResolve(t *testing.T) {
	provider := &fakeProvider{account: fakeAccount("ana")}
	s := New(provider)

	assert.False(t, s.Authenticated())
	require.NoError(t, s.SignIn(context.Background(), "ana@example.com", "hunter22"))

	current, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "ana", current.Username)
	assert.Equal(t, provider.account.UserID, s.CurrentUserID())
	assert.False(t, s.Loading())
	assert.Empty(t, s.Err())
}

func TestSession_SignInFailureSurfacesErrorString(t *testing.T) {
	provider := &fakeProvider{err: errors.New("invalid credentials")}
	s := New(provider)

	err := s.SignIn(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)

	assert.False(t, s.Authenticated())
	assert.False(t, s.Loading())
	assert.Equal(t, "invalid credentials", s.Err())
}

func TestSession_ErrClearsOnNextAttempt(t *testing.T) {
	provider := &fakeProvider{err: errors.New("boom")}
	s := New(provider)

	_ = s.SignIn(context.Background(), "ana@example.com", "wrong")
	require.NotEmpty(t, s.Err())

	provider.err = nil
	provider.account = fakeAccount("ana")
	require.NoError(t, s.SignIn(context.Background(), "ana@example.com", "right"))
	assert.Empty(t, s.Err())
}

func TestSession_SignOutClearsUser(t *testing.T) {
	provider := &fakeProvider{account: fakeAccount("ana")}
	s := New(provider)
	require.NoError(t, s.SignUp(context.Background(), "ana@example.com", "hunter22", "ana"))
	require.True(t, s.Authenticated())

	require.NoError(t, s.SignOut(context.Background()))
	assert.Equal(t, 1, provider.signOutCalls)
	assert.False(t, s.Authenticated())
	assert.Equal(t, uuid.Nil, s.CurrentUserID())
}

func TestSession_SignOutFailureKeepsUser(t *testing.T) {
	provider := &fakeProvider{account: fakeAccount("ana")}
	s := New(provider)
	require.NoError(t, s.SignIn(context.Background(), "ana@example.com", "hunter22"))

	provider.err = errors.New("network down")
	require.Error(t, s.SignOut(context.Background()))
	assert.True(t, s.Authenticated())
	assert.Equal(t, "network down", s.Err())
}

func TestSession_UpdateProfileMergesPatch(t *testing.T) {
	provider := &fakeProvider{account: fakeAccount("ana")}
	s := New(provider)
	require.NoError(t, s.SignIn(context.Background(), "ana@example.com", "hunter22"))

	bio := "gopher"
	dark := true
	require.NoError(t, s.UpdateProfile(context.Background(), identity.ProfilePatch{
		Bio:      &bio,
		DarkMode: &dark,
	}))

	current, _ := s.CurrentUser()
	assert.Equal(t, "gopher", current.Bio)
	assert.True(t, current.DarkMode)
	assert.Equal(t, "ana", current.Username)
	require.NotNil(t, provider.lastPatch.Bio)
}

func TestSession_MutationsRequireAuth(t *testing.T) {
	s := New(&fakeProvider{})

	err := s.UpdateProfile(context.Background(), identity.ProfilePatch{})
	assert.ErrorIs(t, err, ripple_errors.ErrUnauthenticated)

	assert.ErrorIs(t, s.UpdatePassword(context.Background(), "newpassword"), ripple_errors.ErrUnauthenticated)
	assert.ErrorIs(t, s.DeleteAccount(context.Background()), ripple_errors.ErrUnauthenticated)
}

func TestSession_DeleteAccountClearsState(t *testing.T) {
	provider := &fakeProvider{account: fakeAccount("ana")}
	s := New(provider)
	require.NoError(t, s.SignIn(context.Background(), "ana@example.com", "hunter22"))
	id := s.CurrentUserID()

	require.NoError(t, s.DeleteAccount(context.Background()))
	assert.Equal(t, id, provider.deletedID)
	assert.False(t, s.Authenticated())
}
