package simulation

import (
	"math/rand"
	"testing"

	"cricket-engine/models"
)

func newModelFixtures(t *testing.T) (*models.BatterCard, *models.BowlerCard) {
	t.Helper()
	team := newTestTeam("Home")
	striker := models.NewBatterCard(&team.Players[0])
	rng := rand.New(rand.NewSource(1))
	bowler := models.NewBowlerCard(&team.Players[2], models.DefaultFatigueConfig(), rng)
	return striker, bowler
}

func TestOutcomeModelEmitsOnlyGrammarSymbols(t *testing.T) {
	striker, bowler := newModelFixtures(t)
	m := newOutcomeModel(models.DefaultConfig())

	weights := m.weights(striker, bowler, models.DefaultPitchFactors(), 10)
	for symbol, w := range weights {
		if _, err := models.ParseOutcome(symbol); err != nil {
			t.Errorf("model emitted unparseable symbol %q", symbol)
		}
		if w < 0 {
			t.Errorf("symbol %q has negative weight %f", symbol, w)
		}
	}
}

func TestOutcomeModelNeverEmitsWicketOnNoBall(t *testing.T) {
	striker, bowler := newModelFixtures(t)
	m := newOutcomeModel(models.DefaultConfig())

	weights := m.weights(striker, bowler, models.DefaultPitchFactors(), 10)
	for symbol := range weights {
		o, err := models.ParseOutcome(symbol)
		if err != nil {
			continue
		}
		if o.Kind == models.KindWicket && !o.Legal() {
			t.Errorf("model emitted a wicket on an illegal delivery: %q", symbol)
		}
	}
}

func TestOutcomeModelWeightsAreSampleable(t *testing.T) {
	striker, bowler := newModelFixtures(t)
	m := newOutcomeModel(models.DefaultConfig())
	sampler := NewSampler(rand.New(rand.NewSource(17)))

	weights := m.weights(striker, bowler, models.DefaultPitchFactors(), 0)
	if _, err := sampler.Draw(weights); err != nil {
		t.Fatalf("model weights are not sampleable: %v", err)
	}
}

func TestOutcomeModelDefaultsForZeroCareerStats(t *testing.T) {
	team := newTestTeam("Home")
	player := team.Players[0]
	player.Career = models.CareerStats{}
	striker := models.NewBatterCard(&player)
	rng := rand.New(rand.NewSource(1))
	bowler := models.NewBowlerCard(&player, models.DefaultFatigueConfig(), rng)

	m := newOutcomeModel(models.DefaultConfig())
	weights := m.weights(striker, bowler, models.DefaultPitchFactors(), 0)
	for symbol, w := range weights {
		if w <= 0 {
			t.Errorf("zero career stats produced non-positive weight for %q: %f", symbol, w)
		}
	}
}

func TestDismissalWeightsCoverValidModesOnly(t *testing.T) {
	for _, bt := range []models.BowlingType{models.Fast, models.Offbreak} {
		for label := range dismissalWeights(bt) {
			switch models.DismissalMode(label) {
			case models.Bowled, models.LBW, models.Caught, models.CaughtAndBowled, models.RunOut, models.Stumped:
			default:
				t.Errorf("dismissalWeights(%s) emitted unknown mode %q", bt, label)
			}
		}
	}
}

func TestDismissalWeightsSpinnersFavourStumpings(t *testing.T) {
	spin := dismissalWeights(models.Legbreak)
	pace := dismissalWeights(models.Fast)
	if spin[string(models.Stumped)] <= pace[string(models.Stumped)] {
		t.Error("spinners should carry more stumping weight than pace bowlers")
	}
}
