package helpers

import (
	"crypto/md5"
	"fmt"
	"io"
	"strings"
)

// GravatarURL is the avatar endpoint, the md5 of the email is appended
const GravatarURL string = "https://s.gravatar.com/avatar/"

func Md5sum(s string) string {
	m := md5.New()
	io.WriteString(m, s)
	return fmt.Sprintf("%x", m.Sum(nil))
}

// Gravatar returns the avatar URL for an email address. Gravatar hashes the
// trimmed, lowercased address.
func Gravatar(email string) string {
	return GravatarURL + Md5sum(strings.ToLower(strings.TrimSpace(email))) +
		"?size=100&default=retro"
}
