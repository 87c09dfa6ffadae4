package team

import "context"

// Repository exposes read access to the team catalog. List order is the
// league registration order and drives head-to-head pairing.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
}
