package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID string for match record keys. ULIDs sort by
// creation time, which keeps per-member match listings in play order
// without a separate sort key.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
