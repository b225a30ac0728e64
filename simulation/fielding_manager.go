package simulation

import (
	"strconv"

	"cricket-engine/models"
)

// FieldingManager holds the 11 fielders (by Player reference) for the
// side currently bowling, and picks the fielder credited with a
// dismissal.
type FieldingManager struct {
	Players   [11]*models.Player
	KeeperIdx int
	cfg       models.Config
}

// NewFieldingManager wraps a fielding team's XI.
func NewFieldingManager(team *models.Team, cfg models.Config) *FieldingManager {
	fm := &FieldingManager{KeeperIdx: team.Keeper, cfg: cfg}
	for i := range team.Players {
		fm.Players[i] = &team.Players[i]
	}
	return fm
}

func (fm *FieldingManager) bowlerIdx(bowler *models.Player) int {
	for i, p := range fm.Players {
		if p == bowler {
			return i
		}
	}
	return -1
}

// SelectCatcher returns the fielder to credit for the dismissal, or nil
// when the mode has none (bowled, lbw, caught_and_bowled).
func (fm *FieldingManager) SelectCatcher(sampler *Sampler, bowler *models.Player, mode models.DismissalMode) (*models.Player, error) {
	switch mode {
	case models.Bowled, models.LBW, models.CaughtAndBowled:
		return nil, nil
	case models.Stumped:
		return fm.Players[fm.KeeperIdx], nil
	case models.Caught:
		return fm.sampleFielder(sampler, fm.bowlerIdx(bowler), false)
	case models.RunOut:
		return fm.sampleFielder(sampler, -1, true)
	default:
		return nil, models.NewError(models.InvalidInput, "unknown dismissal mode %q", mode)
	}
}

// sampleFielder draws a fielder weighted toward the wicketkeeper by
// Config.WicketkeeperProb, excluding the bowler (caught) or no one
// (run_out, bowler eligible). Falls back to a uniform draw over eligible
// fielders if the weighted distribution is ever empty (error propagation
// policy for EmptyDistribution in fielder selection).
func (fm *FieldingManager) sampleFielder(sampler *Sampler, excludeIdx int, includeBowler bool) (*models.Player, error) {
	weights := make(map[string]float64, 11)
	var eligible []string
	for i := range fm.Players {
		if i == excludeIdx && !includeBowler {
			continue
		}
		eligible = append(eligible, strconv.Itoa(i))
	}

	others := len(eligible) - 1
	if others < 0 {
		others = 0
	}
	for _, key := range eligible {
		idx, _ := strconv.Atoi(key)
		if idx == fm.KeeperIdx {
			weights[key] = fm.cfg.WicketkeeperProb
		} else if others > 0 {
			weights[key] = (1 - fm.cfg.WicketkeeperProb) / float64(others)
		}
	}

	choice, err := sampler.Draw(weights)
	if err != nil {
		choice, err = sampler.DrawUniform(eligible)
		if err != nil {
			return nil, err
		}
	}
	idx, _ := strconv.Atoi(choice)
	return fm.Players[idx], nil
}
