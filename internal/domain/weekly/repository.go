package weekly

import (
	"context"

	"github.com/puckpicks/puckpicks/internal/domain/week"
)

// Repository persists the per-week aggregate. Update runs fn inside a
// read-modify-write critical section for the given week so validations and
// writes stay atomic per week; fn receives a state initialized for the week
// when none exists yet. Returning an error from fn discards the write.
type Repository interface {
	Get(ctx context.Context, key week.Key) (State, bool, error)
	Update(ctx context.Context, key week.Key, fn func(state *State) error) error
}
