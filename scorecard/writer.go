// Package scorecard renders a closed Match to the conventional textual
// scorecard format. Rendering is strictly read-only over Innings/Match state.
package scorecard

import (
	"fmt"
	"strings"

	"cricket-engine/simulation"
)

// WriteMatch renders every innings plus the final result line.
func WriteMatch(m *simulation.Match) string {
	var sb strings.Builder
	for _, inn := range m.Innings {
		sb.WriteString(WriteInnings(inn))
		sb.WriteString("\n")
	}
	if m.Result != nil {
		sb.WriteString(m.Result.Describe())
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteInnings renders one innings' block: header, batter rows, extras,
// total, did-not-bat, fall of wickets, and bowling figures.
func WriteInnings(inn *simulation.Innings) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s innings\n", inn.BattingTeam.Name)

	didNotBat := writeBatters(&sb, inn)

	sb.WriteString(fmt.Sprintf("Extras (%s) %d\n", inn.Extras.Print(), inn.Extras.Total()))

	// An innings that closes on the last ball of an over never rolls
	// the over counter, so normalize N.6 to (N+1).0 for display.
	overs := inn.Overs
	ballsInOver := inn.OversList[len(inn.OversList)-1].LegalDeliveries
	if ballsInOver == 6 {
		overs++
		ballsInOver = 0
	}
	oversStr := fmt.Sprintf("%d.%d", overs, ballsInOver)
	rr := runRate(inn.TeamScore, overs, ballsInOver)
	totalLine := fmt.Sprintf("Total (%s Ov, RR %.2f) %d/%d", oversStr, rr, inn.TeamScore, inn.Wkts)
	if inn.Declared {
		totalLine += "d"
	}
	sb.WriteString(totalLine + "\n")

	if len(didNotBat) > 0 {
		sb.WriteString("Did not bat: " + strings.Join(didNotBat, ", ") + "\n")
	}

	if len(inn.FOW) > 0 {
		fows := make([]string, len(inn.FOW))
		for i, f := range inn.FOW {
			fows[i] = f.Print()
		}
		sb.WriteString("Fall of Wickets: " + strings.Join(fows, ", ") + "\n")
	}

	writeBowlers(&sb, inn)

	return sb.String()
}

// writeBatters renders one row per batter who came to the crease, in
// batting-order position, marking the captain "(c)" and keeper "(wk)",
// and returns the full names of anyone who never batted.
func writeBatters(sb *strings.Builder, inn *simulation.Innings) []string {
	var didNotBat []string
	for i, card := range inn.Batting.Cards {
		if !card.Active {
			didNotBat = append(didNotBat, card.Player.FullName)
			continue
		}
		suffix := ""
		if i == inn.BattingTeam.Captain {
			suffix = " (c)"
		}
		if i == inn.BattingTeam.Keeper {
			suffix += " (wk)"
		}
		fmt.Fprintf(sb, "%s%s\n", card.PrintCard(), suffix)
	}
	return didNotBat
}

// writeBowlers renders a figures line for every bowler who delivered at
// least one ball.
func writeBowlers(sb *strings.Builder, inn *simulation.Innings) {
	for _, card := range inn.Bowling.Cards {
		// Wides and no-balls always concede at least one run, so a bowler
		// with neither legal balls nor runs conceded has not bowled.
		if card.Stats.LegalBalls == 0 && card.Stats.RunsConceded == 0 {
			continue
		}
		fmt.Fprintf(sb, "%s %.2f\n", card.PrintCard(), card.Economy())
	}
}

func runRate(score, overs, ballsInOver int) float64 {
	completed := float64(overs) + float64(ballsInOver)/6.0
	if completed == 0 {
		return 0
	}
	return float64(score) / completed
}
