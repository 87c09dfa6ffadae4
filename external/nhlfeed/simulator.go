package nhlfeed

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/puckpicks/puckpicks/internal/domain/game"
	"github.com/puckpicks/puckpicks/internal/domain/roster"
	"github.com/puckpicks/puckpicks/internal/domain/stats"
	"github.com/puckpicks/puckpicks/internal/domain/week"
	"github.com/puckpicks/puckpicks/internal/usecase"
)

const saturdayOffset = 5

// Simulator is a drop-in stand-in for the real feed, used when no provider
// is configured. Winners are coin flips; starters play the Saturday slate
// about half the time, falling back to their alternate day when one is set.
type Simulator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulator(seed uint64) *Simulator {
	return &Simulator{
		rnd: rand.New(rand.NewPCG(seed, seed)),
	}
}

func (s *Simulator) Winners(_ context.Context, _ week.Key, games []game.Game) (map[string]game.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]game.Outcome, len(games))
	for _, g := range games {
		if s.rnd.Float64() < 0.5 {
			out[g.ID] = game.OutcomeHome
		} else {
			out[g.ID] = game.OutcomeAway
		}
	}
	return out, nil
}

func (s *Simulator) PlayerStats(_ context.Context, key week.Key, slots []usecase.PlayerSlot) ([]stats.StatLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saturday, err := key.DateAt(saturdayOffset)
	if err != nil {
		return nil, err
	}

	out := make([]stats.StatLine, 0, len(slots))
	for _, slot := range slots {
		date := saturday
		if s.rnd.Float64() >= 0.5 {
			offset, ok := roster.AltDays[slot.AltDay]
			if !ok {
				continue
			}
			date, err = key.DateAt(offset)
			if err != nil {
				return nil, err
			}
		}

		line := stats.StatLine{PlayerID: slot.PlayerID, Date: date}
		if s.rnd.Float64() < 0.35 {
			line.Goals = 1 + s.rnd.IntN(2)
		}
		if s.rnd.Float64() < 0.45 {
			line.Assists = 1 + s.rnd.IntN(2)
		}
		out = append(out, line)
	}

	return out, nil
}
