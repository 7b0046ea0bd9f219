package pkguid

import "github.com/google/uuid"

// UUID generates random (version 4) RFC 4122 UUID strings.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID in canonical 8-4-4-4-12 form.
func (u *UUID) Generate() string {
	return uuid.NewString()
}
