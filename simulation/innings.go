package simulation

import (
	"fmt"
	"math/rand"

	"cricket-engine/models"
)

// Innings close reasons.
const (
	CloseAllout   = "allout"
	CloseWin      = "win"
	CloseDraw     = "draw"
	CloseDeclared = "declared"
)

// minutesPerBall advances both crease occupants' time-at-crease on
// every delivery, legal or not.
const minutesPerBall = 0.75

// Innings orchestrates one team's batting innings: delivery sampling,
// card updates, partnership/fall-of-wicket bookkeeping, over and
// innings lifecycle.
type Innings struct {
	Number      int
	BattingTeam *models.Team
	BowlingTeam *models.Team
	Pitch       models.PitchFactors
	cfg         models.Config
	sampler     *Sampler
	model       *outcomeModel

	Overs       int
	Balls       int
	LegalDelivs int
	TeamScore   int
	Lead        int
	Wkts        int

	Batting  *BattingManager
	Bowling  *BowlingManager
	Fielding *FieldingManager

	Striker, NonStriker *models.BatterCard
	Bowl1, Bowl2        *models.BowlerCard

	OversList    []*models.Over
	Partnerships []*models.Partnership
	FOW          []*models.FallOfWicket
	Extras       models.Extras

	IsOpen      bool
	Declared    bool
	CloseReason string

	// OutcomeFn draws the next delivery's symbol. Set by NewInnings to
	// the model-driven default; tests may replace it to force exact
	// outcome sequences.
	OutcomeFn func() (string, error)
}

// NewInnings constructs an innings: cards, openers, ends, first over and
// partnership. initialLead carries the running,
// signed lead (w.r.t. the team about to bat) inherited from the innings
// that came before; it is 0 for the match's first innings.
func NewInnings(number int, battingTeam, bowlingTeam *models.Team, pitch models.PitchFactors, cfg models.Config, sampler *Sampler, rng *rand.Rand, initialLead int) (*Innings, error) {
	if err := battingTeam.Validate(); err != nil {
		return nil, err
	}
	if err := bowlingTeam.Validate(); err != nil {
		return nil, err
	}

	inn := &Innings{
		Number:      number,
		BattingTeam: battingTeam,
		BowlingTeam: bowlingTeam,
		Pitch:       pitch,
		cfg:         cfg,
		sampler:     sampler,
		model:       newOutcomeModel(cfg),
		Batting:     NewBattingManager(battingTeam),
		Bowling:     NewBowlingManager(bowlingTeam, cfg, rng),
		Fielding:    NewFieldingManager(bowlingTeam, cfg),
		IsOpen:      true,
		Lead:        initialLead,
	}

	opener1, err := inn.Batting.NextIn()
	if err != nil {
		return nil, err
	}
	opener2, err := inn.Batting.NextIn()
	if err != nil {
		return nil, err
	}
	if err := opener1.Activate(); err != nil {
		return nil, err
	}
	if err := opener2.Activate(); err != nil {
		return nil, err
	}

	if sampler.Float64() < 0.5 {
		inn.Striker, inn.NonStriker = opener1, opener2
	} else {
		inn.Striker, inn.NonStriker = opener2, opener1
	}

	inn.Bowl1 = inn.Bowling.Cards[bowlingTeam.Bowler1]
	inn.Bowl2 = inn.Bowling.Cards[bowlingTeam.Bowler2]
	inn.Bowl1.StartNewSpell()

	inn.OversList = append(inn.OversList, models.NewOver(1))
	inn.Partnerships = append(inn.Partnerships, models.NewPartnership(opener1, opener2))

	inn.OutcomeFn = func() (string, error) {
		w := inn.model.weights(inn.Striker, inn.Bowl1, inn.Pitch, inn.Overs)
		return inn.sampler.Draw(w)
	}

	return inn, nil
}

func (inn *Innings) currentOver() *models.Over {
	return inn.OversList[len(inn.OversList)-1]
}

func (inn *Innings) currentPartnership() *models.Partnership {
	return inn.Partnerships[len(inn.Partnerships)-1]
}

// Simulate drives the innings to a terminal close reason.
func (inn *Innings) Simulate() (string, error) {
	for inn.IsOpen {
		if err := inn.simulateDelivery(); err != nil {
			return "", err
		}
		inn.checkState()
		if inn.IsOpen && inn.currentOver().Closed() {
			if err := inn.endOver(); err != nil {
				return "", err
			}
			// Re-check so an over-limit draw closes at the over
			// boundary instead of one ball into the next over.
			inn.checkState()
		}
	}
	return inn.CloseReason, nil
}

func (inn *Innings) close(reason string) {
	inn.IsOpen = false
	inn.CloseReason = reason
	if reason == CloseDeclared {
		inn.Declared = true
	}
}

func (inn *Innings) checkState() {
	switch {
	case inn.Number == 4 && inn.Lead > 0:
		inn.close(CloseWin)
	case inn.Wkts == 10:
		inn.close(CloseAllout)
	case inn.declarationTriggered():
		inn.close(CloseDeclared)
	case inn.Overs >= inn.cfg.MaxOversPerInnings():
		inn.close(CloseDraw)
	}
}

// declarationTriggered applies a simple captain's-discretion policy: a
// side batting first in its half of the match (innings 1 or 3) may
// declare once it has both batted deep enough and built a commanding
// enough lead. The threshold-plus-Bernoulli shape is this
// implementation's documented choice (see DESIGN.md).
func (inn *Innings) declarationTriggered() bool {
	if inn.Number != 1 && inn.Number != 3 {
		return false
	}
	if inn.Overs < inn.cfg.DeclarationMinOvers() || inn.Lead < inn.cfg.DeclarationLeadThreshold() {
		return false
	}
	margin := float64(inn.Lead-inn.cfg.DeclarationLeadThreshold()) / float64(inn.cfg.DeclarationLeadThreshold())
	prob := 0.05 + 0.1*margin
	if prob > 0.6 {
		prob = 0.6
	}
	return inn.sampler.Float64() < prob
}

func (inn *Innings) simulateDelivery() error {
	symbol, err := inn.OutcomeFn()
	if err != nil {
		return wrapAt(err, inn.Number, inn.Balls+1)
	}
	outcome, err := models.ParseOutcome(symbol)
	if err != nil {
		return wrapAt(err, inn.Number, inn.Balls+1)
	}

	inn.Balls++
	ball := models.Ball{Bowler: inn.Bowl1.Player, Batter: inn.Striker.Player, Outcome: outcome, Legal: outcome.Legal()}
	inn.currentOver().AddBall(ball)
	inn.Striker.Stats.Minutes += minutesPerBall
	inn.NonStriker.Stats.Minutes += minutesPerBall

	inn.Striker.UpdateScore(outcome)
	inn.Bowl1.UpdateScore(outcome)
	inn.Extras.Apply(outcome)

	if outcome.Kind == models.KindWicket {
		if err := inn.applyWicket(); err != nil {
			return wrapAt(err, inn.Number, inn.Balls)
		}
		return nil
	}
	inn.applyRuns(outcome)
	return nil
}

func (inn *Innings) applyWicket() error {
	inn.Wkts++
	inn.LegalDelivs++

	modeLabel, err := inn.sampler.Draw(dismissalWeights(inn.Bowl1.BowlType))
	if err != nil {
		return err
	}
	mode := models.DismissalMode(modeLabel)

	fielder, err := inn.Fielding.SelectCatcher(inn.sampler, inn.Bowl1.Player, mode)
	if err != nil {
		return err
	}

	if err := inn.Striker.Dismiss(mode, inn.Bowl1.Player, fielder); err != nil {
		return err
	}

	inn.FOW = append(inn.FOW, &models.FallOfWicket{
		Batter:       inn.Striker,
		WicketNumber: inn.Wkts,
		TeamScore:    inn.TeamScore,
		Overs:        inn.Overs,
		BallsInOver:  inn.currentOver().LegalDeliveries,
	})
	inn.currentPartnership().Close()

	if inn.Wkts < 10 {
		next, err := inn.Batting.NextIn()
		if err != nil {
			return err
		}
		if err := next.Activate(); err != nil {
			return err
		}
		inn.Partnerships = append(inn.Partnerships, models.NewPartnership(inn.NonStriker, next))
		inn.Striker = next
	}
	return nil
}

func (inn *Innings) applyRuns(outcome models.Outcome) {
	n := outcome.Runs
	inn.TeamScore += n
	inn.Lead += n

	partnership := inn.currentPartnership()
	strikerIsBat2 := partnership.Bat2 == inn.Striker

	switch outcome.Kind {
	case models.KindBye, models.KindLegBye:
		partnership.AddBallOnly(strikerIsBat2)
	case models.KindWide:
		// No batter faced a legal ball and no one's bat scored; the
		// partnership gets nothing at all.
	case models.KindNoBall:
		partnership.AddRuns(n-1, strikerIsBat2)
	default: // KindRuns
		partnership.AddRuns(n, strikerIsBat2)
	}

	if outcome.Legal() {
		inn.LegalDelivs++
	}

	rotateRuns := n
	if outcome.Kind == models.KindNoBall || outcome.Kind == models.KindWide {
		rotateRuns = n - 1
	}
	if rotateRuns%2 == 1 {
		inn.Striker, inn.NonStriker = inn.NonStriker, inn.Striker
	}
}

func (inn *Innings) endOver() error {
	inn.Overs++
	inn.Striker, inn.NonStriker = inn.NonStriker, inn.Striker

	justBowled := inn.Bowl1
	inn.Bowl1, inn.Bowl2 = inn.Bowl2, inn.Bowl1

	inn.OversList = append(inn.OversList, models.NewOver(len(inn.OversList)+1))
	inn.Bowl1 = inn.Bowling.EndOver(inn.sampler, justBowled, inn.Bowl1, inn.Overs)
	return nil
}

func wrapAt(err error, innings, ball int) error {
	if me, ok := err.(*models.Error); ok {
		return me.At(innings, ball)
	}
	return fmt.Errorf("innings %d ball %d: %w", innings, ball, err)
}
