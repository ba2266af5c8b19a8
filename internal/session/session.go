// Package session generates conversation identifiers shared with the backend.
package session

import (
	"math/rand"
	"strconv"
)

// tokenSpace is the size of the id space. Large enough that two tokens drawn
// in one process lifetime collide with negligible probability.
const tokenSpace = int64(1) << 53

// New returns a fresh opaque session token: a random decimal string.
// The backend treats it as an opaque key, so nothing beyond uniqueness
// is promised about its shape.
func New() string {
	return strconv.FormatInt(rand.Int63n(tokenSpace), 10)
}
