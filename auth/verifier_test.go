package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"platerental/models"
)

type fakeUsers struct {
	users map[string]*models.AppUser
	err   error
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (*models.AppUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func newFakeUsers(t *testing.T) *fakeUsers {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeUsers{users: map[string]*models.AppUser{
		"ramesh": {ID: 1, Name: "Ramesh", Username: "ramesh", Role: "admin", Password: string(hash)},
	}}
}

func TestBcryptVerifier_Verify(t *testing.T) {
	v := NewBcryptVerifier(newFakeUsers(t))
	ctx := context.Background()

	user, err := v.Verify(ctx, "ramesh", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Empty(t, user.Password)

	_, err = v.Verify(ctx, "ramesh", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = v.Verify(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = v.Verify(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestBcryptVerifier_StoreError(t *testing.T) {
	boom := errors.New("connection refused")
	v := NewBcryptVerifier(&fakeUsers{err: boom})

	_, err := v.Verify(context.Background(), "ramesh", "s3cret")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
