package scorecard

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"cricket-engine/models"
	"cricket-engine/simulation"
)

func newTestTeam(name string) *models.Team {
	team := &models.Team{Name: name, Captain: 0, Keeper: 1, Bowler1: 2, Bowler2: 3}
	for i := range team.Players {
		team.Players[i] = models.Player{
			FullName: name + string(rune('A'+i)),
			Initials: string(rune('A' + i)),
			BatHand:  models.RightHand,
			BowlArm:  models.Right,
			BowlType: models.Medium,
			Career: models.CareerStats{
				Innings: 20, BatAvg: 30, BatStrikeRate: 50,
				BallsBowled: 400, BowlAvg: 28, BowlStrikeRate: 55, BowlEcon: 3,
			},
		}
	}
	return team
}

func queueOutcomes(symbols []string) func() (string, error) {
	i := 0
	return func() (string, error) {
		if i >= len(symbols) {
			return "0", nil
		}
		s := symbols[i]
		i++
		return s, nil
	}
}

func newClosedInnings(t *testing.T) *simulation.Innings {
	t.Helper()
	rng := rand.New(rand.NewSource(3))
	sampler := simulation.NewSampler(rng)
	cfg := models.DefaultConfig()
	cfg.MaxInningsOvers = 2 // force a quick time-exhausted close once the queue runs dry
	inn, err := simulation.NewInnings(1, newTestTeam("Home"), newTestTeam("Away"), models.DefaultPitchFactors(), cfg, sampler, rng, 0)
	if err != nil {
		t.Fatalf("NewInnings: %v", err)
	}
	symbols := []string{"4", "1", "2b", "0", "W", "1", "4", "0", "6", "W"}
	inn.OutcomeFn = queueOutcomes(symbols)
	if _, err := inn.Simulate(); err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	return inn
}

func TestWriteInningsIncludesHeaderExtrasAndTotal(t *testing.T) {
	inn := newClosedInnings(t)
	out := WriteInnings(inn)

	if !strings.Contains(out, "Home innings") {
		t.Errorf("missing innings header, got:\n%s", out)
	}
	if !strings.Contains(out, "Extras (") {
		t.Errorf("missing extras line, got:\n%s", out)
	}
	if !strings.Contains(out, "Total (") {
		t.Errorf("missing total line, got:\n%s", out)
	}
	if !strings.Contains(out, "Fall of Wickets:") {
		t.Errorf("expected a fall-of-wickets line after two wickets, got:\n%s", out)
	}
}

func TestWriteInningsMarksCaptainAndKeeper(t *testing.T) {
	inn := newClosedInnings(t)
	out := WriteInnings(inn)
	if !strings.Contains(out, "(c)") {
		t.Errorf("expected captain marker, got:\n%s", out)
	}
	if !strings.Contains(out, "(wk)") {
		t.Errorf("expected keeper marker, got:\n%s", out)
	}
}

func TestWriteInningsDidNotBatListsUnusedBatters(t *testing.T) {
	inn := newClosedInnings(t)
	out := WriteInnings(inn)
	if !strings.Contains(out, "Did not bat:") {
		t.Errorf("expected a did-not-bat line with 11 players and only 2 wickets down, got:\n%s", out)
	}
}

func TestWriteInningsDeclaredSuffix(t *testing.T) {
	inn := newClosedInnings(t)
	inn.Declared = true
	out := WriteInnings(inn)
	if !strings.Contains(out, "d\n") {
		t.Errorf("expected total line to carry the declared suffix, got:\n%s", out)
	}
}

func TestWriteMatchAppendsResultLine(t *testing.T) {
	inn := newClosedInnings(t)
	match := &simulation.Match{
		Innings: []*simulation.Innings{inn},
		Result:  &models.MatchResult{Kind: models.WinInnings, Margin: 57, Winner: inn.BattingTeam},
	}
	out := WriteMatch(match)
	if !strings.Contains(out, "won by an innings and 57 runs") {
		t.Errorf("expected result line in output, got:\n%s", out)
	}
}

func TestWriteInningsIsReadOnlyAndIdempotent(t *testing.T) {
	inn := newClosedInnings(t)
	first := WriteInnings(inn)
	second := WriteInnings(inn)
	if first != second {
		t.Errorf("two consecutive renderings differ:\n%s\n---\n%s", first, second)
	}
}

func TestWriteInningsBowlerLinesCarryEconomy(t *testing.T) {
	inn := newClosedInnings(t)
	out := WriteInnings(inn)
	bowled := 0
	for _, card := range inn.Bowling.Cards {
		if card.Stats.LegalBalls > 0 {
			bowled++
			if !strings.Contains(out, card.Player.FullInitials()) {
				t.Errorf("missing bowling line for %s", card.Player.FullName)
			}
			if want := fmt.Sprintf("%s %.2f\n", card.PrintCard(), card.Economy()); !strings.Contains(out, want) {
				t.Errorf("missing bowling line with economy %q, got:\n%s", want, out)
			}
		}
	}
	if bowled == 0 {
		t.Fatal("expected at least one bowler to have delivered a ball")
	}
}

func TestRunRateZeroOnNoOvers(t *testing.T) {
	if rr := runRate(0, 0, 0); rr != 0 {
		t.Errorf("runRate(0,0,0) = %f, want 0", rr)
	}
}
