package simulation

import (
	"math"
	"math/rand"
	"sort"

	"cricket-engine/models"
)

const restHoursPerOver = 1.0 / 15.0 // ~4 minutes between overs

// BowlingManager holds the 11 BowlerCards for the bowling side and
// decides, at the close of every over, who bowls next from the end
// opposite the over just completed.
type BowlingManager struct {
	Cards [11]*models.BowlerCard
	cfg   models.Config
}

// NewBowlingManager builds a card for every player in the fielding
// team, sharing the match's RNG so fatigue sampling stays deterministic.
func NewBowlingManager(team *models.Team, cfg models.Config, rng *rand.Rand) *BowlingManager {
	bm := &BowlingManager{cfg: cfg}
	for i := range team.Players {
		bm.Cards[i] = models.NewBowlerCard(&team.Players[i], cfg.Fatigue, rng)
	}
	return bm
}

// takeOffProbability implements a logistic curve, inflated
// for anyone who isn't a full-time bowler.
func takeOffProbability(fatigue float64, fullTime bool) float64 {
	p := 1.0 / (1.0 + math.Exp(-0.2*(fatigue-180)))
	if !fullTime {
		p *= 5
	}
	if p > 1 {
		p = 1
	}
	return p
}

// shouldTakeOff applies the configured take-off policy: the corrected
// default r < p_off, or — if Config.LegacyTakeOffRule is set — the
// historical r < 1/p_off, which almost always triggers regardless of
// fatigue (see DESIGN.md open question 1).
func shouldTakeOff(cfg models.Config, p, r float64) bool {
	if cfg.LegacyTakeOffRule {
		if p <= 0 {
			return true
		}
		return r < 1/p
	}
	return r < p
}

// eligible returns every card other than those passed in exclude
// (callers pass the two bowlers currently at the ends).
func (bm *BowlingManager) eligible(exclude ...*models.BowlerCard) []*models.BowlerCard {
	var out []*models.BowlerCard
	for _, c := range bm.Cards {
		excluded := false
		for _, e := range exclude {
			if c == e {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, c)
		}
	}
	return out
}

// NewPacer restricts to non-slow full-time bowlers.
func (bm *BowlingManager) NewPacer(exclude ...*models.BowlerCard) []*models.BowlerCard {
	return filterBowlers(bm.eligible(exclude...), func(c *models.BowlerCard) bool {
		return c.Competency == models.FullTime && !c.BowlType.IsSlow()
	})
}

// NewSpinner restricts to slow full-time bowlers.
func (bm *BowlingManager) NewSpinner(exclude ...*models.BowlerCard) []*models.BowlerCard {
	return filterBowlers(bm.eligible(exclude...), func(c *models.BowlerCard) bool {
		return c.Competency == models.FullTime && c.BowlType.IsSlow()
	})
}

// PartTimer restricts to part-time bowlers.
func (bm *BowlingManager) PartTimer(exclude ...*models.BowlerCard) []*models.BowlerCard {
	return filterBowlers(bm.eligible(exclude...), func(c *models.BowlerCard) bool {
		return c.Competency == models.PartTime
	})
}

// ChangeItUp restricts to emergency bowlers.
func (bm *BowlingManager) ChangeItUp(exclude ...*models.BowlerCard) []*models.BowlerCard {
	return filterBowlers(bm.eligible(exclude...), func(c *models.BowlerCard) bool {
		return c.Competency == models.Emergency
	})
}

// AnyFullTime restricts to any full-time bowler.
func (bm *BowlingManager) AnyFullTime(exclude ...*models.BowlerCard) []*models.BowlerCard {
	return filterBowlers(bm.eligible(exclude...), func(c *models.BowlerCard) bool {
		return c.Competency == models.FullTime
	})
}

func filterBowlers(cards []*models.BowlerCard, pred func(*models.BowlerCard) bool) []*models.BowlerCard {
	var out []*models.BowlerCard
	for _, c := range cards {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}

// leastFatigued ranks candidates by ascending fatigue and returns the
// freshest, or nil if none are eligible.
func leastFatigued(candidates []*models.BowlerCard) *models.BowlerCard {
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Fatigue.Value() < candidates[j].Fatigue.Value()
	})
	return candidates[0]
}

// pickReplacement tries each selector in order of preference
// order and returns the first non-empty pool's freshest bowler.
func (bm *BowlingManager) pickReplacement(exclude ...*models.BowlerCard) *models.BowlerCard {
	pools := [][]*models.BowlerCard{
		bm.NewPacer(exclude...),
		bm.NewSpinner(exclude...),
		bm.PartTimer(exclude...),
		bm.ChangeItUp(exclude...),
		bm.AnyFullTime(exclude...),
	}
	for _, pool := range pools {
		if b := leastFatigued(pool); b != nil {
			return b
		}
	}
	return leastFatigued(bm.eligible(exclude...))
}

// EndOver decides the bowler for the next over, from the end opposite
// the over just completed. justBowled is the card that bowled the over
// that just closed; otherEnd is the card that would ordinarily continue
// from the opposite end. completedOvers is the innings' completed-over
// count after the increment in Innings.endOver.
func (bm *BowlingManager) EndOver(sampler *Sampler, justBowled, otherEnd *models.BowlerCard, completedOvers int) *models.BowlerCard {
	for _, c := range bm.Cards {
		if c != justBowled {
			c.OverRest(restHoursPerOver)
		}
	}

	if completedOvers == 80 || completedOvers == 81 {
		if replacement := leastFatigued(bm.NewPacer(justBowled, otherEnd)); replacement != nil && replacement != otherEnd {
			replacement.StartNewSpell()
			return replacement
		}
	}

	p := takeOffProbability(otherEnd.Fatigue.Value(), otherEnd.Competency == models.FullTime)
	r := sampler.Float64()
	if shouldTakeOff(bm.cfg, p, r) {
		if replacement := bm.pickReplacement(justBowled, otherEnd); replacement != nil {
			replacement.StartNewSpell()
			return replacement
		}
	}

	otherEnd.StartNewSpell()
	return otherEnd
}
