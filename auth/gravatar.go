// Package auth, avatar derivation.
package auth

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL derives a deterministic avatar URL from an email address using
// the gravatar scheme: an md5 hex digest of the trimmed, lowercased address.
// s=200 requests a 200px image, r=pg restricts the rating, and d=mm falls back
// to the "mystery man" placeholder for addresses with no gravatar.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", hash)
}
