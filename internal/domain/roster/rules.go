package roster

import (
	"errors"
	"fmt"
	"time"

	"github.com/puckpicks/puckpicks/internal/domain/player"
)

var (
	ErrWrongPositionCount = errors.New("wrong position counts for roster")
	ErrDuplicatePlayer    = errors.New("duplicate player in roster")
	ErrStarterQuotaFull   = errors.New("starter quota for position is full")
	ErrInvalidAltDay      = errors.New("invalid alternate day label")
)

// Rules stores the league's roster composition parameters.
type Rules struct {
	RosterSize map[player.Position]int
	Starters   map[player.Position]int
}

func DefaultRules() Rules {
	return Rules{
		RosterSize: map[player.Position]int{
			player.PositionForward: 6,
			player.PositionDefense: 4,
		},
		Starters: map[player.Position]int{
			player.PositionForward: 3,
			player.PositionDefense: 2,
		},
	}
}

func (r Rules) TotalSize() int {
	total := 0
	for _, n := range r.RosterSize {
		total += n
	}
	return total
}

func (r Rules) StarterQuota(pos player.Position) int {
	return r.Starters[pos]
}

// Build validates a drafted player set against the rules and assembles the
// default weekly roster: the first Starters[pos] players of each position in
// supplied order start, the rest sit on the bench, no alternate days.
func Build(teamID string, picks []player.Player, rules Rules, now time.Time) (WeeklyRoster, error) {
	if len(picks) != rules.TotalSize() {
		return WeeklyRoster{}, fmt.Errorf("%w: expected %d players, got %d", ErrWrongPositionCount, rules.TotalSize(), len(picks))
	}

	seen := make(map[string]struct{}, len(picks))
	countByPos := make(map[player.Position]int, len(rules.RosterSize))
	for _, p := range picks {
		if _, ok := seen[p.ID]; ok {
			return WeeklyRoster{}, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = struct{}{}

		if _, ok := player.AllPositions[p.Position]; !ok {
			return WeeklyRoster{}, fmt.Errorf("unknown position %q for player %s", p.Position, p.ID)
		}
		countByPos[p.Position]++
	}

	for pos, want := range rules.RosterSize {
		if countByPos[pos] != want {
			return WeeklyRoster{}, fmt.Errorf("%w: position %s needs %d, got %d", ErrWrongPositionCount, pos, want, countByPos[pos])
		}
	}

	out := WeeklyRoster{
		TeamID:    teamID,
		AltDay:    make(map[string]Weekday),
		UpdatedAt: now,
	}
	starterSet := make(map[string]struct{})
	for _, p := range picks {
		quota := rules.StarterQuota(p.Position)
		switch p.Position {
		case player.PositionForward:
			if len(out.Starters.Forwards) < quota {
				out.Starters.Forwards = append(out.Starters.Forwards, p.ID)
				starterSet[p.ID] = struct{}{}
			}
		case player.PositionDefense:
			if len(out.Starters.Defense) < quota {
				out.Starters.Defense = append(out.Starters.Defense, p.ID)
				starterSet[p.ID] = struct{}{}
			}
		}
	}
	for _, p := range picks {
		if _, ok := starterSet[p.ID]; !ok {
			out.Bench = append(out.Bench, p.ID)
		}
	}

	return out, nil
}

// Promote moves a bench player into the starter slot for their position,
// enforcing the quota. Already-starting players are a no-op.
func Promote(r *WeeklyRoster, p player.Player, rules Rules) error {
	if r.IsStarter(p.ID) {
		return nil
	}

	switch p.Position {
	case player.PositionForward:
		if len(r.Starters.Forwards) >= rules.StarterQuota(p.Position) {
			return fmt.Errorf("%w: position %s allows %d starters", ErrStarterQuotaFull, p.Position, rules.StarterQuota(p.Position))
		}
		r.Starters.Forwards = append(r.Starters.Forwards, p.ID)
	case player.PositionDefense:
		if len(r.Starters.Defense) >= rules.StarterQuota(p.Position) {
			return fmt.Errorf("%w: position %s allows %d starters", ErrStarterQuotaFull, p.Position, rules.StarterQuota(p.Position))
		}
		r.Starters.Defense = append(r.Starters.Defense, p.ID)
	default:
		return fmt.Errorf("unknown position %q for player %s", p.Position, p.ID)
	}

	r.Bench = removeID(r.Bench, p.ID)
	return nil
}

// Demote moves a starter back to the bench. The player's alternate-day entry
// stays behind; ActiveAltDay filters it until a re-promotion.
func Demote(r *WeeklyRoster, p player.Player) {
	if !r.IsStarter(p.ID) {
		return
	}

	r.Starters.Forwards = removeID(r.Starters.Forwards, p.ID)
	r.Starters.Defense = removeID(r.Starters.Defense, p.ID)
	r.Bench = append(r.Bench, p.ID)
}

func ParseAltDay(label string) (Weekday, error) {
	day := Weekday(label)
	if _, ok := AltDays[day]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidAltDay, label)
	}
	return day, nil
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
