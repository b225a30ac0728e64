package models

import "fmt"

// FallOfWicket records the position at which a wicket fell. WicketNumber
// is the count of wickets down at the moment of recording (post-
// increment), not wkts+1.
type FallOfWicket struct {
	Batter       *BatterCard
	WicketNumber int
	TeamScore    int
	Overs        int
	BallsInOver  int
}

// Print renders the conventional "score-wkt (batter, ov.ball ov)" form.
func (f *FallOfWicket) Print() string {
	return fmt.Sprintf("%d-%d (%s, %d.%d ov)", f.TeamScore, f.WicketNumber, f.Batter.Player.FullName, f.Overs, f.BallsInOver)
}
