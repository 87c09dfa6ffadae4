package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/puckpicks/puckpicks/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	items  map[string]player.Player
	orders []string
}

// NewPlayerRepository validates the seed pool; reference data is immutable
// afterwards, so a bad entry must fail at wiring time.
func NewPlayerRepository(players []player.Player) (*PlayerRepository, error) {
	items := make(map[string]player.Player, len(players))
	orders := make([]string, 0, len(players))
	for _, p := range players {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("seed player %q: %w", p.ID, err)
		}
		if _, ok := items[p.ID]; ok {
			return nil, fmt.Errorf("seed player %q: duplicate id", p.ID)
		}
		items[p.ID] = p
		orders = append(orders, p.ID)
	}

	return &PlayerRepository{
		items:  items,
		orders: orders,
	}, nil
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	if !ok {
		return player.Player{}, false, nil
	}

	return p, true, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := r.items[id]; ok {
			out = append(out, p)
		}
	}

	return out, nil
}
