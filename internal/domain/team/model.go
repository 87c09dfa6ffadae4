package team

import "fmt"

// Team is one manager's fantasy team. One team per owner, stable across weeks.
type Team struct {
	ID      string
	Name    string
	OwnerID string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.OwnerID == "" {
		return fmt.Errorf("team owner id is required")
	}

	return nil
}
