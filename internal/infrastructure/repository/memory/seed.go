package memory

import (
	"github.com/puckpicks/puckpicks/internal/domain/player"
	"github.com/puckpicks/puckpicks/internal/domain/team"
)

// Demo pool: the ten drafted skaters every bootstrap team starts from.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "p1", Name: "Connor Demo", Position: player.PositionForward, NHLTeam: "EDM"},
		{ID: "p2", Name: "Auston Sample", Position: player.PositionForward, NHLTeam: "TOR"},
		{ID: "p3", Name: "Nathan Mock", Position: player.PositionForward, NHLTeam: "COL"},
		{ID: "p4", Name: "Sid Crosbyish", Position: player.PositionForward, NHLTeam: "PIT"},
		{ID: "p5", Name: "David Test", Position: player.PositionForward, NHLTeam: "BOS"},
		{ID: "p6", Name: "Jack Placeholder", Position: player.PositionForward, NHLTeam: "BUF"},
		{ID: "p7", Name: "Cale Example", Position: player.PositionDefense, NHLTeam: "COL"},
		{ID: "p8", Name: "Adam Sampleton", Position: player.PositionDefense, NHLTeam: "NJ"},
		{ID: "p9", Name: "Miro TryMan", Position: player.PositionDefense, NHLTeam: "DAL"},
		{ID: "p10", Name: "Roman Prototype", Position: player.PositionDefense, NHLTeam: "NSH"},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "t1", Name: "Team Alpha", OwnerID: "u1"},
		{ID: "t2", Name: "Team Beta", OwnerID: "u2"},
		{ID: "t3", Name: "Team Gamma", OwnerID: "u3"},
		{ID: "t4", Name: "Team Delta", OwnerID: "u4"},
	}
}
