package pkguid

import "github.com/google/uuid"

// UUID generates time-ordered (version 7) UUID strings, used for run IDs.
type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUIDv7. If the clock source fails it falls back to a
// random version 4 UUID rather than panicking.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
