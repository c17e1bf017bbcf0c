package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Store error taxonomy. Callers classify failures with errors.Is; the
// repositories never retry internally.
var (
	// ErrJobNotFound means the referenced job_id has no row in job_descriptions.
	ErrJobNotFound = errors.New("job not found")
	// ErrIntegrityViolation means the database rejected a write on a
	// constraint (duplicate key race, missing foreign key).
	ErrIntegrityViolation = errors.New("integrity violation")
	// ErrStoreUnavailable covers every other failure to reach or write the
	// database. Callers may retry with backoff.
	ErrStoreUnavailable = errors.New("result store unavailable")
	// ErrNoResults means no history row matched the query.
	ErrNoResults = errors.New("no results")
)

// mapStoreError translates gorm errors onto the taxonomy above. Relies on
// TranslateError being enabled on the gorm session so driver-specific
// constraint errors arrive as gorm sentinels.
func mapStoreError(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w: %v", op, ErrIntegrityViolation, err)
	default:
		return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
	}
}
