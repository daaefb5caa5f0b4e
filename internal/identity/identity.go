// Package identity reconciles the three identifier fields a record can
// carry: the domain-specific external id (studentId, teacherId, ...), the
// storage-internal handle, and the generic id the UI treats as canonical.
// It is the single place where the mismatch between the backend variants is
// resolved; nothing past this boundary sees the ambiguity.
package identity

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind selects the external id prefix for an entity collection.
type Kind string

const (
	KindStudent Kind = "student"
	KindTeacher Kind = "teacher"
	KindSubject Kind = "subject"
	KindUser    Kind = "user"
)

var prefixes = map[Kind]string{
	KindStudent: "SU",
	KindTeacher: "TE",
	KindSubject: "SUB",
	KindUser:    "US",
}

// Sentinel defaults applied to optional fields absent at creation, so
// downstream required-field checks keep passing.
const (
	NotAvailable    = "N/A"
	NotSpecified    = "Not specified"
	GeneralCategory = "General"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const suffixLen = 6

// New generates a fresh external id: <prefix>-<base36 timestamp><random>.
// Six random chars on top of the millisecond fragment keep same-burst
// collisions negligible for bulk imports; the ids stay human-typeable, not
// cryptographically unique.
func New(kind Kind) string {
	prefix, ok := prefixes[kind]
	if !ok {
		prefix = "ID"
	}

	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}

	return fmt.Sprintf("%s-%s%s", prefix, ts, randomSuffix(suffixLen))
}

// Canonical computes the id shown to callers: the domain id when present,
// else the storage handle, else whatever generic id already exists. The
// result is non-empty whenever any of the three is.
func Canonical(domainID, handle, existing string) string {
	if domainID != "" {
		return domainID
	}
	if handle != "" {
		return handle
	}
	return existing
}

// Ensure decides the domain id at creation time: keep a caller-supplied one,
// fall back to the storage handle, else mint a new id for the kind.
func Ensure(kind Kind, domainID, handle string) string {
	if strings.TrimSpace(domainID) != "" {
		return domainID
	}
	if strings.TrimSpace(handle) != "" {
		return handle
	}
	return New(kind)
}

// OrDefault substitutes a sentinel when the value is blank.
func OrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return clockSuffix(n)
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(out)
}

// clockSuffix spreads the nanosecond reading over exactly n base-36 chars so
// the id shape stays uniform when the entropy source is unavailable.
func clockSuffix(n int) string {
	out := make([]byte, n)
	v := time.Now().UnixNano()
	for i := n - 1; i >= 0; i-- {
		out[i] = alphabet[int(v%36)]
		v /= 36
	}
	return string(out)
}
