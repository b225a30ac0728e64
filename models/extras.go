package models

import (
	"fmt"
	"strings"
)

// Extras tracks the four extra-run categories.
type Extras struct {
	Byes    int
	LegByes int
	NoBalls int
	Wides   int
}

// Total is the sum of all extras categories.
func (e *Extras) Total() int {
	return e.Byes + e.LegByes + e.NoBalls + e.Wides
}

// Apply credits a delivery outcome to the relevant extras counter, and
// returns whether the delivery was legal (consumes a ball of the over).
// A no-ball's extras credit is the full conceded count n, not
// just the one-run penalty — this double-books with the batter's (n-1)
// runs for every no-ball with n > 1, a documented exception to the team-score
// accounting identity.
func (e *Extras) Apply(o Outcome) (legal bool) {
	switch o.Kind {
	case KindNoBall:
		e.NoBalls += o.Runs
	case KindWide:
		e.Wides += o.Runs
	case KindBye:
		e.Byes += o.Runs
	case KindLegBye:
		e.LegByes += o.Runs
	}
	return o.Legal()
}

// Print renders the scorecard "(b X, lb X, nb X, w X)" line, omitting
// zero categories.
func (e *Extras) Print() string {
	var parts []string
	if e.Byes > 0 {
		parts = append(parts, fmt.Sprintf("b %d", e.Byes))
	}
	if e.LegByes > 0 {
		parts = append(parts, fmt.Sprintf("lb %d", e.LegByes))
	}
	if e.NoBalls > 0 {
		parts = append(parts, fmt.Sprintf("nb %d", e.NoBalls))
	}
	if e.Wides > 0 {
		parts = append(parts, fmt.Sprintf("w %d", e.Wides))
	}
	return strings.Join(parts, ", ")
}
