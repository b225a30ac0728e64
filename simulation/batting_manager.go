package simulation

import "cricket-engine/models"

// BattingManager chooses the next batter to come to the crease. It
// tracks which of the 11 lineup slots have already batted and defaults
// to strict batting order, with two policy hooks a caller can wire up
// for situational overrides.
type BattingManager struct {
	Cards     [11]*models.BatterCard
	hasBatted [11]bool
}

// NewBattingManager builds a card for every player in the team, in
// lineup order.
func NewBattingManager(team *models.Team) *BattingManager {
	bm := &BattingManager{}
	for i := range team.Players {
		bm.Cards[i] = models.NewBatterCard(&team.Players[i])
	}
	return bm
}

// Nightwatch may return the lineup index of a nightwatchman to send in
// ahead of the strict batting order (e.g. a late-day wicket). Returning
// -1 falls through to the default order. The default implementation
// never overrides.
func (bm *BattingManager) Nightwatch(inningsBalls, legalDelivsInDay int) int {
	return -1
}

// PromoteHitter may return the lineup index of a hitter promoted ahead
// of order (e.g. a very high required rate with wickets in hand).
// Returning -1 falls through to the default order. The default
// implementation never overrides.
func (bm *BattingManager) PromoteHitter(requiredRate float64, wicketsInHand int) int {
	return -1
}

// NextIn returns the next card to come in: the lowest-index un-batted
// lineup slot, unless a policy hook names a different one. Fails with
// StateViolation once all 11 have already batted.
func (bm *BattingManager) NextIn() (*models.BatterCard, error) {
	remaining := 0
	for _, b := range bm.hasBatted {
		if !b {
			remaining++
		}
	}
	if remaining == 0 {
		return nil, models.NewError(models.StateViolation, "next_in invoked after all batters used")
	}

	if idx := bm.Nightwatch(0, 0); idx >= 0 && !bm.hasBatted[idx] {
		bm.hasBatted[idx] = true
		return bm.Cards[idx], nil
	}
	if idx := bm.PromoteHitter(0, 0); idx >= 0 && !bm.hasBatted[idx] {
		bm.hasBatted[idx] = true
		return bm.Cards[idx], nil
	}

	for i, batted := range bm.hasBatted {
		if !batted {
			bm.hasBatted[i] = true
			return bm.Cards[i], nil
		}
	}
	// Unreachable given the remaining count check above.
	return nil, models.NewError(models.StateViolation, "next_in found no available batter")
}
