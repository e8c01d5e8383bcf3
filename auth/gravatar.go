package auth

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL derives the avatar for an email address. Gravatar addresses
// images by the md5 of the trimmed, lowercased email; size 200, pg rated,
// "mystery man" default.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", hash)
}
