// Package auth checks the configured credential pair and drives the
// three-step password reset against the gateway.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordNotSet     = errors.New("no password configured")
)

// Identity is who a successful login resolved to.
type Identity struct {
	Username    string
	DisplayName string
}

// Authenticator holds a single credential pair. Only the bcrypt hash of the
// password is kept in memory.
type Authenticator struct {
	identity Identity
	hash     []byte
}

func NewAuthenticator(username, displayName, password string) (*Authenticator, error) {
	return newAuthenticator(username, displayName, password, bcrypt.DefaultCost)
}

func newAuthenticator(username, displayName, password string, cost int) (*Authenticator, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("auth: empty username")
	}
	if password == "" {
		return nil, ErrPasswordNotSet
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if displayName == "" {
		displayName = username
	}
	return &Authenticator{
		identity: Identity{Username: username, DisplayName: displayName},
		hash:     hash,
	}, nil
}

// Authenticate returns the identity when both username and password match.
func (a *Authenticator) Authenticate(username, password string) (Identity, error) {
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(a.identity.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword(a.hash, []byte(password))
	if !userOK || passErr != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return a.identity, nil
}
