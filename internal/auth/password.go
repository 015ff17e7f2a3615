package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordModeBcrypt = "bcrypt"
	PasswordModePlain  = "plain"
)

// PasswordHasher turns a password into its stored form and checks it back.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) bool
	Mode() string
}

// NewPasswordHasher returns the hasher for a config password mode.
func NewPasswordHasher(mode string) (PasswordHasher, error) {
	switch mode {
	case "", PasswordModeBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	case PasswordModePlain:
		return PlainHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password mode %q", mode)
	}
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

func (h BcryptHasher) Compare(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

func (h BcryptHasher) Mode() string { return PasswordModeBcrypt }

// PlainHasher stores passwords as given. Only for data created by the
// legacy app, which kept plain text.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) { return password, nil }

func (PlainHasher) Compare(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func (PlainHasher) Mode() string { return PasswordModePlain }
