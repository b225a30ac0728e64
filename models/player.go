package models

import "fmt"

// Arm is the bowling arm.
type Arm string

const (
	Left  Arm = "left"
	Right Arm = "right"
)

// BowlingType is the delivery style bowled. Slow bowlers (spinners) are
// Offbreak and Legbreak; everything else is categorized as pace.
type BowlingType string

const (
	Medium     BowlingType = "medium"
	MediumFast BowlingType = "medium_fast"
	FastMedium BowlingType = "fast_medium"
	Fast       BowlingType = "fast"
	Offbreak   BowlingType = "offbreak"
	Legbreak   BowlingType = "legbreak"
)

// IsSlow reports whether a bowling type is spin, as opposed to pace.
func (bt BowlingType) IsSlow() bool {
	return bt == Offbreak || bt == Legbreak
}

// BatHand is the batting hand.
type BatHand string

const (
	RightHand BatHand = "right"
	LeftHand  BatHand = "left"
)

// CareerStats are the career aggregates a Player carries into a match;
// they seed BatterCard/BowlerCard averages and the BowlingManager's
// competency classification. They are read-only once a match starts.
type CareerStats struct {
	Innings        int     `json:"innings"`
	BatAvg         float64 `json:"bat_avg"`
	BatStrikeRate  float64 `json:"bat_strike_rate"`
	BallsBowled    int     `json:"balls_bowled"`
	BowlAvg        float64 `json:"bowl_avg"`
	BowlStrikeRate float64 `json:"bowl_strike_rate"`
	BowlEcon       float64 `json:"bowl_econ"`
}

// Player is immutable for the duration of a match.
type Player struct {
	FullName string      `json:"full_name"`
	Initials string      `json:"initials"`
	BatHand  BatHand     `json:"bat_hand"`
	BowlArm  Arm         `json:"bowl_arm"`
	BowlType BowlingType `json:"bowl_type"`
	Career   CareerStats `json:"career"`
}

// FullInitials renders "<Initials> <LastName-ish full name>" the way the
// scorecard prints a batter/bowler line; since the engine only has a
// single full-name field, it is appended after the initials unchanged.
func (p *Player) FullInitials() string {
	return fmt.Sprintf("%s %s", p.Initials, p.FullName)
}

// Team is an ordered XI plus the role indices the engine needs.
type Team struct {
	Name    string     `json:"name"`
	Players [11]Player `json:"players"`
	Captain int        `json:"captain"`
	Keeper  int        `json:"keeper"`
	Bowler1 int        `json:"bowler1"`
	Bowler2 int        `json:"bowler2"`
}

// Validate checks the role-index invariants: distinct, in-range
// indices for captain/keeper/opener1/opener2.
func (t *Team) Validate() error {
	idx := []int{t.Captain, t.Keeper, t.Bowler1, t.Bowler2}
	seen := make(map[int]bool, len(idx))
	for _, i := range idx {
		if i < 0 || i > 10 {
			return NewError(InvalidInput, "team %q: role index %d out of range [0,10]", t.Name, i)
		}
	}
	for _, i := range idx {
		if seen[i] {
			// Keeper may coincide with neither opener in practice, but the
			// spec only requires captain/keeper/opener1/opener2 be
			// pairwise distinct as positions, so duplicates are rejected.
			return NewError(InvalidInput, "team %q: duplicate role index %d", t.Name, i)
		}
		seen[i] = true
	}
	return nil
}
