package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"platerental/models"
)

// CredentialVerifier checks a username/password pair. Handlers only see
// this interface so the credential store can be swapped.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*models.AppUser, error)
}

// ErrInvalidCredentials is returned for an unknown user or a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

type UserLookup interface {
	GetUserByUsername(ctx context.Context, username string) (*models.AppUser, error)
}

// BcryptVerifier compares against bcrypt hashes held by the user store.
type BcryptVerifier struct {
	Users UserLookup
}

func NewBcryptVerifier(users UserLookup) *BcryptVerifier {
	return &BcryptVerifier{Users: users}
}

// Verify returns the user with its password hash cleared.
func (v *BcryptVerifier) Verify(ctx context.Context, username, password string) (*models.AppUser, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := v.Users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	user.Password = ""
	return user, nil
}
