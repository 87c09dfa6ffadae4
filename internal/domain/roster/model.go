package roster

import "time"

// Weekday is an alternate-day label. Only Monday through Friday are
// selectable; Saturday is the default scoring day.
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
)

// AltDays maps each selectable label to its day offset from Monday.
var AltDays = map[Weekday]int{
	Monday:    0,
	Tuesday:   1,
	Wednesday: 2,
	Thursday:  3,
	Friday:    4,
}

// Starters holds the active lineup split by position group.
type Starters struct {
	Forwards []string
	Defense  []string
}

// WeeklyRoster is one team's lineup for one week. Starters, bench and the
// drafted set partition exactly; AltDay keys should be current starters,
// though stale entries from demotions are tolerated and filtered at read
// time.
type WeeklyRoster struct {
	TeamID    string
	Starters  Starters
	Bench     []string
	AltDay    map[string]Weekday
	UpdatedAt time.Time
}

func (r WeeklyRoster) StarterIDs() []string {
	out := make([]string, 0, len(r.Starters.Forwards)+len(r.Starters.Defense))
	out = append(out, r.Starters.Forwards...)
	out = append(out, r.Starters.Defense...)
	return out
}

func (r WeeklyRoster) IsStarter(playerID string) bool {
	for _, id := range r.Starters.Forwards {
		if id == playerID {
			return true
		}
	}
	for _, id := range r.Starters.Defense {
		if id == playerID {
			return true
		}
	}
	return false
}

func (r WeeklyRoster) PlayerIDs() []string {
	out := r.StarterIDs()
	out = append(out, r.Bench...)
	return out
}

// ActiveAltDay returns the alternate day for a player, filtering out stale
// entries left behind by demotions.
func (r WeeklyRoster) ActiveAltDay(playerID string) (Weekday, bool) {
	day, ok := r.AltDay[playerID]
	if !ok || !r.IsStarter(playerID) {
		return "", false
	}
	return day, true
}

func (r WeeklyRoster) Clone() WeeklyRoster {
	copied := r
	copied.Starters.Forwards = append([]string(nil), r.Starters.Forwards...)
	copied.Starters.Defense = append([]string(nil), r.Starters.Defense...)
	copied.Bench = append([]string(nil), r.Bench...)
	copied.AltDay = make(map[string]Weekday, len(r.AltDay))
	for id, day := range r.AltDay {
		copied.AltDay[id] = day
	}
	return copied
}
