package models

// NoAnswerText is recorded for players who let the round time out.
const NoAnswerText = "No answer"

// Round is one timed guess-the-owner challenge. Once appended to a session it
// is immutable except for Answers, which only grows until the round closes.
type Round struct {
	Number        int       `json:"number"`
	Image         string    `json:"image"`
	Duration      int       `json:"duration"` // seconds
	CorrectAnswer string    `json:"correctAnswer"`
	Answers       []*Answer `json:"answers"`
}

// Answer is one player's recorded response to a round. Score is zero until
// the round closes and scoring runs.
type Answer struct {
	Player        string `json:"player"`
	PlayersAnswer string `json:"playersAnswer"`
	TimeRemaining int    `json:"timeRemaining"` // ms, client-reported
	Score         int    `json:"score"`
}

// AnswerFor returns the recorded answer for a player, or nil.
func (r *Round) AnswerFor(connectionID string) *Answer {
	for _, a := range r.Answers {
		if a.Player == connectionID {
			return a
		}
	}
	return nil
}

// ImageAssignment binds one pool image to the player who owns it. A session's
// pool is an ordered list of these; entry N-1 seeds round N and the order is
// fixed at session creation time, never reshuffled.
type ImageAssignment struct {
	Image   string `json:"image"`
	OwnerID string `json:"ownerId"`
}

// LeaderboardEntry is one row of the descending aggregate score table.
type LeaderboardEntry struct {
	PlayerID string `json:"player"`
	Score    int    `json:"score"`
}
