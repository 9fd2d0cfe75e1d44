package session

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Authenticator compares a presented secret with the stored one.
type Authenticator interface {
	Verify(storedSecret string, presentedSecret string) bool
}

// PlaintextAuthenticator compares secrets stored in clear text, in constant time.
type PlaintextAuthenticator struct{}

// Verify reports whether both secrets are equal.
func (PlaintextAuthenticator) Verify(storedSecret string, presentedSecret string) bool {
	return subtle.ConstantTimeCompare([]byte(storedSecret), []byte(presentedSecret)) == 1
}

// BcryptAuthenticator compares a presented secret with a stored bcrypt hash.
type BcryptAuthenticator struct{}

// Verify reports whether presentedSecret matches the bcrypt hash storedSecret.
// A stored secret that is not a bcrypt hash never matches.
func (BcryptAuthenticator) Verify(storedSecret string, presentedSecret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedSecret), []byte(presentedSecret)) == nil
}

// HashSecret creates the bcrypt hash of a secret, to be stored in the users file.
func HashSecret(secret string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
