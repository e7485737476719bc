package kernel

import (
	"fmt"

	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID,
// one that bypassed the constructor functions.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object for every aggregate in the model:
// orders, customers, hubs, agents and vehicles. It wraps github.com/google/uuid
// so the domain never handles raw identifier types directly.
//
// The zero value is invalid. Construct through NewUUID, UUIDFromString or
// UUIDFromBytes; Validate rejects anything else.
//
// UUID is immutable and comparable, so it can be used directly as a map key
// or with ==.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random identifier (UUID version 4).
// This is how every aggregate gets its identity at creation time.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the standard textual representation, e.g.
// "550e8400-e29b-41d4-a716-446655440000". This is the entry point for
// identifiers arriving over the HTTP surface and from configuration.
//
// Returns an error wrapping the parse failure for anything that is not a
// well-formed UUID.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes reconstructs an identifier from its 16-byte binary form.
// The persistence DTOs store identifiers as native uuid columns and use this
// when rehydrating aggregates.
//
// A nil UUID read back from storage is a corrupt row, not a valid identity,
// so the result is validated before it is returned.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
// The zero value renders as the nil UUID string.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the underlying uuid.UUID for the persistence layer.
// Callers needing a byte slice take id[:] on the result.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers carry the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
// Constructors call this so a nil identity never enters the domain; callers
// accepting a UUID from outside should do the same.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
