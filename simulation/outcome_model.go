package simulation

import "cricket-engine/models"

// outcomeModel produces a probability map over the outcome alphabet for
// the delivery about to be bowled, conditioned on the striker's and
// bowler's career rates, the bowler's current fatigue, and the pitch.
// The in-innings batting and bowling counters are not read. Weights
// need not be normalized; Sampler.Draw normalizes them.
//
// The model is deliberately simple relative to real-world ball-tracking
// simulators: it blends each side's career rates with a pitch
// adjustment, the same shape of "baseline times multiplicative factors"
// used by the park-factor model this is grounded on.
type outcomeModel struct {
	cfg models.Config
}

func newOutcomeModel(cfg models.Config) *outcomeModel {
	return &outcomeModel{cfg: cfg}
}

// weights returns the symbol -> weight map for one delivery. oversElapsed
// is the number of completed overs in the innings so far, used only to
// let spin grow more dangerous as the pitch wears (a monotone bump, not
// a full wear model, which is out of scope).
func (m *outcomeModel) weights(striker *models.BatterCard, bowler *models.BowlerCard, pitch models.PitchFactors, oversElapsed int) map[string]float64 {
	sr := striker.CareerSR
	if sr <= 0 {
		sr = 45
	}
	batAvg := striker.CareerAvg
	if batAvg <= 0 {
		batAvg = 25
	}
	bowlSR := bowler.CareerBowlSR
	if bowlSR <= 0 {
		bowlSR = 60
	}
	bowlEcon := bowler.CareerEcon
	if bowlEcon <= 0 {
		bowlEcon = 3.2
	}

	// Pitch assistance for the bowler's own style: seam helps pace,
	// spin helps slow bowlers, and spin assistance grows mildly as
	// overs accumulate (pitch wear).
	var assist float64
	if bowler.BowlType.IsSlow() {
		assist = pitch.Spin + float64(oversElapsed)/400.0
	} else {
		assist = pitch.Seam
	}
	if assist > 1.5 {
		assist = 1.5
	}

	// Wicket probability: inversely related to bowling strike rate,
	// boosted by pitch assistance and suppressed by fatigue (a tired
	// bowler is easier to score off, not more threatening).
	wicketBase := 100.0 / bowlSR
	fatigueDrag := 1.0 / (1.0 + bowler.Fatigue.Value()/200.0)
	wicketWeight := wicketBase * (0.6 + 0.4*assist) * fatigueDrag

	// Scoring weight: strike rate up, economy and pitch assistance down.
	scoringPressure := (sr / 100.0) / (bowlEcon / 3.0) / (0.7 + 0.3*assist)

	weights := map[string]float64{
		"0": 36.0 / scoringPressure,
		"1": 28.0 * scoringPressure,
		"2": 8.0 * scoringPressure,
		"3": 1.5 * scoringPressure,
		"4": 9.0 * scoringPressure,
		"6": 2.5 * scoringPressure,
		"W": wicketWeight,

		"1nb": 1.2,
		"2nb": 0.3,
		"1w":  1.5,
		"1b":  0.8,
		"1lb": 0.8,
	}
	_ = batAvg // reserved for a future dismissal-mode-conditioned weighting

	for k, v := range weights {
		if v < 0 {
			weights[k] = 0.001
		}
	}
	return weights
}

// dismissalWeights returns the dismissal-mode distribution conditioned
// on the bowler's type: quicker bowlers take more
// bowled/lbw, both types share the same caught weight, and spinners take
// relatively more stumpings and
// caught-and-bowled off slower, looping deliveries.
func dismissalWeights(bowlType models.BowlingType) map[string]float64 {
	if bowlType.IsSlow() {
		return map[string]float64{
			string(models.Bowled):          15,
			string(models.LBW):             15,
			string(models.Caught):          45,
			string(models.CaughtAndBowled): 10,
			string(models.Stumped):         10,
			string(models.RunOut):          5,
		}
	}
	return map[string]float64{
		string(models.Bowled):          25,
		string(models.LBW):             20,
		string(models.Caught):          45,
		string(models.CaughtAndBowled): 3,
		string(models.Stumped):         1,
		string(models.RunOut):          6,
	}
}
