package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// RegistrationDedup provides a fast-path idempotency check for attendee
// registrations, in front of the document-level attendee scan. The key
// hashes the same four identity fields the document guard matches on.
// Key format: reg:<happening_id>:<sha256(email|name|surname|date_of_birth)>
type RegistrationDedup struct {
	client *redis.Client
}

// NewRegistrationDedup creates a RegistrationDedup wrapping the given client.
func NewRegistrationDedup(client *redis.Client) *RegistrationDedup {
	return &RegistrationDedup{client: client}
}

// IsDuplicate reports whether this attendee has already registered for the
// happening within the dedup window.
func (d *RegistrationDedup) IsDuplicate(ctx context.Context, happeningID, email, name, surname, dateOfBirth string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(happeningID, email, name, surname, dateOfBirth)).Result()
	if err != nil {
		return false, fmt.Errorf("registration dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records a completed registration (expires after dedupTTL).
func (d *RegistrationDedup) Mark(ctx context.Context, happeningID, email, name, surname, dateOfBirth string) error {
	return d.client.Set(ctx, d.key(happeningID, email, name, surname, dateOfBirth), "1", dedupTTL).Err()
}

func (d *RegistrationDedup) key(happeningID, email, name, surname, dateOfBirth string) string {
	sum := sha256.Sum256([]byte(email + "|" + name + "|" + surname + "|" + dateOfBirth))
	return fmt.Sprintf("reg:%s:%s", happeningID, hex.EncodeToString(sum[:8]))
}
