package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/puckpicks/puckpicks/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	items  map[string]team.Team
	orders []string
}

// NewTeamRepository validates the seed league; the team list is fixed for
// the season, so a bad entry must fail at wiring time.
func NewTeamRepository(teams []team.Team) (*TeamRepository, error) {
	items := make(map[string]team.Team, len(teams))
	orders := make([]string, 0, len(teams))
	for _, t := range teams {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("seed team %q: %w", t.ID, err)
		}
		if _, ok := items[t.ID]; ok {
			return nil, fmt.Errorf("seed team %q: duplicate id", t.ID)
		}
		items[t.ID] = t
		orders = append(orders, t.ID)
	}

	return &TeamRepository{
		items:  items,
		orders: orders,
	}, nil
}

// List preserves registration order; head-to-head pairing depends on it.
func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[teamID]
	if !ok {
		return team.Team{}, false, nil
	}

	return t, true, nil
}
