package models

// DismissalMode is how a batter got out.
type DismissalMode string

const (
	Bowled          DismissalMode = "bowled"
	LBW             DismissalMode = "lbw"
	Caught          DismissalMode = "caught"
	CaughtAndBowled DismissalMode = "caught_and_bowled"
	RunOut          DismissalMode = "run_out"
	Stumped         DismissalMode = "stumped"
)

// Dismissal records how, by whom, and with whose help a batter was
// dismissed. Bowler is nil only for RunOut; Fielder is non-nil only for
// Caught, Stumped and RunOut.
type Dismissal struct {
	Mode    DismissalMode
	Bowler  *Player
	Fielder *Player
}

// NewDismissal validates and constructs a Dismissal.
func NewDismissal(mode DismissalMode, bowler, fielder *Player) (*Dismissal, error) {
	switch mode {
	case Bowled, LBW, Caught, CaughtAndBowled, RunOut, Stumped:
	default:
		return nil, NewError(InvalidInput, "invalid dismissal mode %q", mode)
	}

	d := &Dismissal{Mode: mode}
	if mode != RunOut {
		d.Bowler = bowler
	}
	switch mode {
	case Caught, RunOut, Stumped:
		d.Fielder = fielder
	}
	return d, nil
}

// Describe renders the dismissal the way a scorecard row shows it, e.g.
// "c Smith b Jones", "lbw Jones", "run out (Smith)".
func (d *Dismissal) Describe() string {
	bowlName, fieldName := "", ""
	if d.Bowler != nil {
		bowlName = d.Bowler.FullName
	}
	if d.Fielder != nil {
		fieldName = d.Fielder.FullName
	}

	switch d.Mode {
	case Bowled:
		return "b " + bowlName
	case LBW:
		return "lbw " + bowlName
	case CaughtAndBowled:
		return "c&b " + bowlName
	case Caught:
		return "c " + fieldName + " b " + bowlName
	case Stumped:
		return "st " + fieldName + " b " + bowlName
	default: // RunOut
		return "run out (" + fieldName + ")"
	}
}
