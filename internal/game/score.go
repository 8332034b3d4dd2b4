// internal/game/score.go
package game

import (
	"sort"

	"github.com/LeonLav77/photoroullete-backend/internal/models"
)

// scoreAnswer awards points for one answer. Only an exact, case-sensitive
// match of the owning player's id scores; a correct answer earns its
// remaining milliseconds, floored at 100 no matter how late it came.
// timeRemaining is client-reported and trusted as-is.
func scoreAnswer(a *models.Answer, r *models.Round) int {
	if a.PlayersAnswer != r.CorrectAnswer {
		return 0
	}
	maxPoints := r.Duration * 1000
	timeTaken := maxPoints - a.TimeRemaining
	points := maxPoints - timeTaken
	if points < 100 {
		points = 100
	}
	return points
}

// leaderboard sums each player's score across every round played so far and
// sorts descending. Players appear in first-answer encounter order, which the
// stable sort preserves for ties; a player with no recorded answers in any
// round is omitted. Recomputed in full on every broadcast — a handful of
// rounds times four players is nothing.
func leaderboard(rounds []*models.Round) []models.LeaderboardEntry {
	totals := make(map[string]int)
	var order []string
	for _, r := range rounds {
		for _, a := range r.Answers {
			if a.Player == "" {
				continue
			}
			if _, seen := totals[a.Player]; !seen {
				order = append(order, a.Player)
			}
			totals[a.Player] += a.Score
		}
	}

	entries := make([]models.LeaderboardEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, models.LeaderboardEntry{PlayerID: id, Score: totals[id]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}
