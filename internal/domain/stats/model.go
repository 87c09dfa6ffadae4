package stats

// StatLine is one player's recorded production for a single date, as
// delivered by the result feed.
type StatLine struct {
	PlayerID string
	Date     string
	Goals    int
	Assists  int
}

// PlayerWeekStat accumulates one player's production over a week. Append-only
// within the week; there is no mid-week reset.
type PlayerWeekStat struct {
	Goals       int
	Assists     int
	PlayedDates map[string]bool
}

func (s *PlayerWeekStat) Accumulate(line StatLine) {
	s.Goals += line.Goals
	s.Assists += line.Assists
	if line.Date != "" {
		if s.PlayedDates == nil {
			s.PlayedDates = make(map[string]bool)
		}
		s.PlayedDates[line.Date] = true
	}
}

func (s PlayerWeekStat) Clone() PlayerWeekStat {
	copied := s
	copied.PlayedDates = make(map[string]bool, len(s.PlayedDates))
	for date, played := range s.PlayedDates {
		copied.PlayedDates[date] = played
	}
	return copied
}
