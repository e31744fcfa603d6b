package platform

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const upperAlnumAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewID returns a UUID string used as the primary key for all rows.
func NewID() string {
	return uuid.New().String()
}

// randUpperAlnum returns n characters drawn from [A-Z0-9] using crypto/rand.
func randUpperAlnum(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	for i := range b {
		b[i] = upperAlnumAlphabet[b[i]%byte(len(upperAlnumAlphabet))]
	}
	return string(b)
}

// NewApplicationID returns the externally shareable application identifier,
// e.g. CERT-847291-X4K9ZQ. The epoch suffix keeps IDs roughly sortable by
// submission time; the random tail makes collisions negligible.
func NewApplicationID(now time.Time) string {
	epoch := fmt.Sprintf("%d", now.UnixMilli())
	if len(epoch) > 6 {
		epoch = epoch[len(epoch)-6:]
	}
	return fmt.Sprintf("CERT-%s-%s", epoch, randUpperAlnum(6))
}

// NewCertificateID returns the public certificate identifier in the form
// {TYPE}/{YEAR}/{RANDOM}, e.g. CASTE/2026/7GQH2M9KXT.
func NewCertificateID(certificateType string, now time.Time) string {
	return fmt.Sprintf("%s/%d/%s", certificateType, now.Year(), randUpperAlnum(10))
}

// NewSessionToken returns an opaque, URL-safe session identifier with
// 192 bits of entropy.
func NewSessionToken() string {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
