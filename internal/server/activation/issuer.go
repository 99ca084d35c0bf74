// Package activation issues the keys that confirm a freshly registered account.
package activation

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

// KeyValidity is how long an activation key stays usable after issuance.
const KeyValidity = 3 * 24 * time.Hour

// saltSize is the number of random bytes mixed into every key.
const saltSize = 32

// Token is an issued activation key and the moment it stops being valid.
type Token struct {
	Key       string
	ExpiresAt time.Time
}

// Issuer derives activation keys. The zero value is ready to use and reads
// randomness from crypto/rand.
type Issuer struct {
	// Random overrides the entropy source; nil means crypto/rand.
	Random io.Reader
}

// Issue returns a 64 character hex key, the SHA-256 of username followed by
// fresh random bytes, expiring exactly KeyValidity after now.
func (i *Issuer) Issue(username string, now time.Time) (Token, error) {
	r := i.Random
	if r == nil {
		r = rand.Reader
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(r, salt); err != nil {
		return Token{}, fmt.Errorf("error reading random salt: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(username))
	h.Write(salt)

	return Token{
		Key:       hex.EncodeToString(h.Sum(nil)),
		ExpiresAt: now.Add(KeyValidity),
	}, nil
}
