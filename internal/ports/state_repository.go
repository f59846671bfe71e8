package ports

import (
	"context"

	"github.com/bft-labs/bananascale/internal/domain"
)

// StateRepository handles persistence of the last posted percent.
type StateRepository interface {
	// Load retrieves the last saved state.
	// Returns an empty state and nil error if no state exists or the stored
	// content cannot be parsed.
	// Returns an error only for actual read failures.
	Load(ctx context.Context) (domain.State, error)

	// Save persists the state atomically, overwriting any previous value.
	Save(ctx context.Context, state domain.State) error
}
