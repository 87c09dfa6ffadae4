package matchup

import (
	"fmt"
	"testing"
)

func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("m%d", n), nil
	}
}

func TestPairEvenCount(t *testing.T) {
	out, err := Pair([]string{"t1", "t2", "t3", "t4"}, sequentialIDs())
	if err != nil {
		t.Fatalf("pair failed: %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("expected 2 matchups, got %d", len(out))
	}
	if out[0].HomeTeamID != "t1" || out[0].AwayTeamID != "t2" {
		t.Fatalf("unexpected first pairing: %+v", out[0])
	}
	if out[1].HomeTeamID != "t3" || out[1].AwayTeamID != "t4" {
		t.Fatalf("unexpected second pairing: %+v", out[1])
	}
	for _, m := range out {
		if m.Bye() {
			t.Fatalf("unexpected bye with even team count: %+v", m)
		}
	}
}

func TestPairOddCountYieldsTrailingBye(t *testing.T) {
	out, err := Pair([]string{"t1", "t2", "t3", "t4", "t5"}, sequentialIDs())
	if err != nil {
		t.Fatalf("pair failed: %v", err)
	}

	if len(out) != 3 {
		t.Fatalf("expected 3 matchups, got %d", len(out))
	}

	byes := 0
	for _, m := range out {
		if m.Bye() {
			byes++
		}
	}
	if byes != 1 {
		t.Fatalf("expected exactly 1 bye, got %d", byes)
	}

	last := out[len(out)-1]
	if !last.Bye() || last.HomeTeamID != "t5" {
		t.Fatalf("expected last unpaired team t5 to take the bye, got %+v", last)
	}
}

func TestPairEmpty(t *testing.T) {
	out, err := Pair(nil, sequentialIDs())
	if err != nil {
		t.Fatalf("pair failed: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no matchups, got %d", len(out))
	}
}
