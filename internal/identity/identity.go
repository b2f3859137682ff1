// Package identity pseudonymizes Telegram user identifiers.
//
// Raw user IDs are never written to the database; every table joins on
// the digest produced here instead. The digest must therefore be
// deterministic: no salt, no process state.
package identity

import (
	"crypto/sha512"
	"encoding/hex"
	"strconv"
)

// Hash returns the hex-encoded SHA-512 digest of the decimal string
// form of rawID. Same input always yields the same output.
func Hash(rawID int64) string {
	sum := sha512.Sum512([]byte(strconv.FormatInt(rawID, 10)))
	return hex.EncodeToString(sum[:])
}
