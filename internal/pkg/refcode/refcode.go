// Package refcode generates referral codes for salespeople.
package refcode

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

const (
	prefix       = "SPR-"
	randomLength = 8
)

// Generate returns a new referral code in the form SPR-XXXXXXXX, where the
// suffix is 8 uppercase base32 characters drawn from crypto/rand. Uniqueness
// is enforced by the storage layer; callers retry on collision.
func Generate() (string, error) {
	randomBytes := make([]byte, 5)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}

	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	encoded = strings.ToUpper(encoded)
	if len(encoded) > randomLength {
		encoded = encoded[:randomLength]
	}
	for len(encoded) < randomLength {
		encoded += "0"
	}

	return prefix + encoded, nil
}

// Normalize canonicalizes buyer-supplied referral input: surrounding
// whitespace is dropped and the code is upper-cased, so lookups are
// case-insensitive.
func Normalize(token string) string {
	return strings.ToUpper(strings.TrimSpace(token))
}
