package models

import "strconv"

// Result kinds a Match can terminate with.
const (
	WinInnings = "win_innings"
	WinBowling = "win_bowling"
	WinChasing = "win_chasing"
	Tie        = "tie"
	Draw       = "draw"
)

// MatchResult is the outcome populated once Match.Simulate's loop exits.
// Margin is runs for WinInnings/WinBowling, wickets for WinChasing, and
// unused for Tie/Draw. Winner is nil for Tie/Draw.
type MatchResult struct {
	Kind   string
	Margin int
	Winner *Team
}

// Describe renders the scorecard's textual result line.
func (r *MatchResult) Describe() string {
	switch r.Kind {
	case WinInnings:
		return r.Winner.Name + " won by an innings and " + strconv.Itoa(r.Margin) + " runs"
	case WinBowling:
		return r.Winner.Name + " won by " + strconv.Itoa(r.Margin) + " runs"
	case WinChasing:
		return r.Winner.Name + " won by " + strconv.Itoa(r.Margin) + " wickets"
	case Tie:
		return "Match tied"
	default:
		return "Match drawn"
	}
}
