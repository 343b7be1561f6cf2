// Package avatar derives a deterministic gravatar URL from an email address.
package avatar

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

// URL returns the gravatar URL for email: 200px, PG-rated, "mystery man"
// fallback. Same email always yields the same URL.
func URL(email string) string {
	norm := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(norm))

	q := url.Values{}
	q.Set("s", "200")
	q.Set("r", "pg")
	q.Set("d", "mm")
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?" + q.Encode()
}
