package game

import (
	"context"

	"github.com/puckpicks/puckpicks/internal/domain/week"
)

// ScheduleRepository persists the full game list per week. Games must never
// be regenerated once stored; winner resolution mutates in place through
// Update.
type ScheduleRepository interface {
	GetWeek(ctx context.Context, key week.Key) ([]Game, bool, error)
	SaveWeek(ctx context.Context, key week.Key, games []Game) error
	Update(ctx context.Context, key week.Key, fn func(games []Game) ([]Game, error)) error
}
