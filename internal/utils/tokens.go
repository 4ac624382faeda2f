package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const shortCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewChallengeToken returns the opaque, unguessable token embedded in
// verification/reset links. Random UUIDs are drawn from crypto/rand.
func NewChallengeToken() string {
	return uuid.NewString()
}

// NewOpaqueToken returns a hex token of nBytes of entropy, used for refresh
// tokens stored server side.
func NewOpaqueToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateCode returns the 6-character uppercase-alphanumeric code mailed to
// the user alongside a challenge token.
func GenerateCode() (string, error) {
	return randomString(codeAlphabet, 6)
}

// GenerateShortCode returns a 7-character short-url code. Always random:
// never derive it from the row id, that makes codes enumerable.
func GenerateShortCode() (string, error) {
	return randomString(shortCodeAlphabet, 7)
}

func randomString(alphabet string, length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("random string: %w", err)
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b), nil
}
