package models

import "testing"

func newTestPlayer(name string) *Player {
	return &Player{FullName: name, Initials: name[:1], BatHand: RightHand, BowlArm: Right, BowlType: Medium}
}

func TestBatterCardUpdateScoreNoBallForFour(t *testing.T) {
	// Scenario 4: "4nb" credits the batter 3 runs, no boundary flag.
	card := NewBatterCard(newTestPlayer("A"))
	o, err := ParseOutcome("4nb")
	if err != nil {
		t.Fatalf("ParseOutcome: %v", err)
	}
	card.UpdateScore(o)

	if card.Stats.Runs != 3 {
		t.Errorf("runs = %d, want 3", card.Stats.Runs)
	}
	if card.Stats.Balls != 1 {
		t.Errorf("balls = %d, want 1", card.Stats.Balls)
	}
	if card.Stats.Fours != 0 || card.Stats.Sixes != 0 {
		t.Errorf("fours=%d sixes=%d, want 0,0", card.Stats.Fours, card.Stats.Sixes)
	}
}

func TestBatterCardFiveCountsAsFour(t *testing.T) {
	card := NewBatterCard(newTestPlayer("A"))
	o, _ := ParseOutcome("5")
	card.UpdateScore(o)

	if card.Stats.Runs != 5 {
		t.Errorf("runs = %d, want 5", card.Stats.Runs)
	}
	if card.Stats.Fours != 1 {
		t.Errorf("fours = %d, want 1", card.Stats.Fours)
	}
	if card.Stats.Sixes != 0 {
		t.Errorf("sixes = %d, want 0", card.Stats.Sixes)
	}
}

func TestBatterCardWideHasNoEffect(t *testing.T) {
	card := NewBatterCard(newTestPlayer("A"))
	o, _ := ParseOutcome("2w")
	card.UpdateScore(o)

	if card.Stats.Balls != 0 || card.Stats.Runs != 0 {
		t.Errorf("wide should not affect batter stats, got %+v", card.Stats)
	}
}

func TestBatterCardByeAddsOnlyBall(t *testing.T) {
	card := NewBatterCard(newTestPlayer("A"))
	o, _ := ParseOutcome("3b")
	card.UpdateScore(o)

	if card.Stats.Balls != 1 {
		t.Errorf("balls = %d, want 1", card.Stats.Balls)
	}
	if card.Stats.Runs != 0 {
		t.Errorf("runs = %d, want 0", card.Stats.Runs)
	}
}

func TestBatterCardActivateOnce(t *testing.T) {
	card := NewBatterCard(newTestPlayer("A"))
	if err := card.Activate(); err != nil {
		t.Fatalf("first Activate: unexpected error %v", err)
	}
	if err := card.Activate(); err == nil {
		t.Fatal("second Activate: expected StateViolation, got nil")
	}
}

func TestBatterCardDismissOnce(t *testing.T) {
	card := NewBatterCard(newTestPlayer("A"))
	bowler := newTestPlayer("B")
	if err := card.Dismiss(Bowled, bowler, nil); err != nil {
		t.Fatalf("first Dismiss: unexpected error %v", err)
	}
	if !card.Out {
		t.Error("expected Out=true after Dismiss")
	}
	if err := card.Dismiss(LBW, bowler, nil); err == nil {
		t.Fatal("second Dismiss: expected StateViolation, got nil")
	}
}

func TestBatterCardPrintCardNotOut(t *testing.T) {
	card := NewBatterCard(newTestPlayer("A"))
	o, _ := ParseOutcome("4")
	card.UpdateScore(o)
	got := card.PrintCard()
	want := "A A not out 4 (1b 1x4 0x6) SR: 400.00"
	if got != want {
		t.Errorf("PrintCard() = %q, want %q", got, want)
	}
}

func TestBatterCardStrikeRateZeroBalls(t *testing.T) {
	card := NewBatterCard(newTestPlayer("A"))
	if _, ok := card.StrikeRate(); ok {
		t.Error("expected ok=false with zero balls faced")
	}
}

func TestBatterCardInvariants(t *testing.T) {
	card := NewBatterCard(newTestPlayer("A"))
	for _, sym := range []string{"4", "6", "1", "0", "2nb", "1w", "1b"} {
		o, err := ParseOutcome(sym)
		if err != nil {
			t.Fatalf("ParseOutcome(%q): %v", sym, err)
		}
		card.UpdateScore(o)
	}
	if card.Stats.Balls < card.Stats.Fours+card.Stats.Sixes {
		t.Errorf("invariant violated: balls=%d < fours+sixes=%d", card.Stats.Balls, card.Stats.Fours+card.Stats.Sixes)
	}
	if card.Stats.Runs < 4*card.Stats.Fours+6*card.Stats.Sixes {
		t.Errorf("invariant violated: runs=%d < 4*fours+6*sixes=%d", card.Stats.Runs, 4*card.Stats.Fours+6*card.Stats.Sixes)
	}
}
