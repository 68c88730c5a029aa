package helpers

import (
	"strconv"

	"github.com/twmb/murmur3"
)

// SessionIDSeed is the murmur3 seed for session ids. Changing it invalidates
// every cached session.
const SessionIDSeed uint32 = 55

// SessionID derives the cache key for a user's session. It depends only on the
// username, so a user has at most one cached session at a time.
func SessionID(username string) string {
	return strconv.FormatUint(
		uint64(murmur3.SeedSum32(SessionIDSeed, []byte(username))),
		16,
	)
}
