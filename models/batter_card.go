package models

import "fmt"

// BatStats are the in-innings counters a BatterCard accumulates.
// Minutes is time spent at the crease, advanced by the innings clock
// for both batters on every delivery, not just the striker.
type BatStats struct {
	Runs    int
	Balls   int
	Fours   int
	Sixes   int
	Minutes float64
}

// BatterCard tracks one batter's innings. Career averages are copied in
// at construction for the outcome model's use; they are never mutated.
type BatterCard struct {
	Player    *Player
	CareerAvg float64
	CareerSR  float64
	Hand      BatHand
	Stats     BatStats
	Active    bool
	Out       bool
	Dismissal *Dismissal
}

// NewBatterCard constructs a card for a player arriving at, or waiting
// to arrive at, the crease.
func NewBatterCard(p *Player) *BatterCard {
	return &BatterCard{
		Player:    p,
		CareerAvg: p.Career.BatAvg,
		CareerSR:  p.Career.BatStrikeRate,
		Hand:      p.BatHand,
	}
}

// Activate marks the batter as having arrived at the crease. May only be
// called once.
func (c *BatterCard) Activate() error {
	if c.Active {
		return NewError(StateViolation, "batter %s already active", c.Player.FullName)
	}
	c.Active = true
	return nil
}

// UpdateScore applies the batter-side effect table for a single
// delivery.
func (c *BatterCard) UpdateScore(o Outcome) {
	switch o.Kind {
	case KindWicket:
		c.Stats.Balls++
	case KindRuns:
		c.Stats.Balls++
		c.Stats.Runs += o.Runs
		switch o.Runs {
		case 4, 5:
			c.Stats.Fours++
		case 6:
			c.Stats.Sixes++
		}
	case KindNoBall:
		c.Stats.Balls++
		runs := o.Runs - 1
		c.Stats.Runs += runs
		switch runs {
		case 4:
			c.Stats.Fours++
		case 6:
			c.Stats.Sixes++
		}
	case KindWide:
		// No batter-side effect.
	case KindBye, KindLegBye:
		c.Stats.Balls++
	}
}

// Dismiss records the batter's dismissal. May only be called once, and
// only while the batter is not already out.
func (c *BatterCard) Dismiss(mode DismissalMode, bowler, fielder *Player) error {
	if c.Out {
		return NewError(StateViolation, "batter %s already dismissed", c.Player.FullName)
	}
	d, err := NewDismissal(mode, bowler, fielder)
	if err != nil {
		return err
	}
	c.Dismissal = d
	c.Out = true
	return nil
}

// StrikeRate is 100*runs/balls; ok is false (rendered as "-") when no
// balls have been faced yet.
func (c *BatterCard) StrikeRate() (float64, bool) {
	if c.Stats.Balls == 0 {
		return 0, false
	}
	return 100 * float64(c.Stats.Runs) / float64(c.Stats.Balls), true
}

// PrintCard renders the scorecard row.
func (c *BatterCard) PrintCard() string {
	status := "not out"
	if c.Out {
		status = c.Dismissal.Describe()
	}
	sr := "-"
	if v, ok := c.StrikeRate(); ok {
		sr = fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%s %s %d (%db %dx4 %dx6) SR: %s",
		c.Player.FullInitials(), status, c.Stats.Runs, c.Stats.Balls, c.Stats.Fours, c.Stats.Sixes, sr)
}
