package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LeonLav77/photoroullete-backend/internal/models"
)

func TestScoreAnswer(t *testing.T) {
	round := &models.Round{Number: 1, Duration: 5, CorrectAnswer: "owner-1"}

	tests := []struct {
		name   string
		answer models.Answer
		want   int
	}{
		{
			name:   "fast correct answer earns remaining milliseconds",
			answer: models.Answer{Player: "p1", PlayersAnswer: "owner-1", TimeRemaining: 4000},
			want:   4000,
		},
		{
			name:   "late correct answer is floored at 100",
			answer: models.Answer{Player: "p1", PlayersAnswer: "owner-1", TimeRemaining: 50},
			want:   100,
		},
		{
			name:   "full time remaining earns the maximum",
			answer: models.Answer{Player: "p1", PlayersAnswer: "owner-1", TimeRemaining: 5000},
			want:   5000,
		},
		{
			name:   "wrong answer scores zero",
			answer: models.Answer{Player: "p1", PlayersAnswer: "owner-2", TimeRemaining: 5000},
			want:   0,
		},
		{
			name:   "default no-answer scores zero",
			answer: models.Answer{Player: "p1", PlayersAnswer: models.NoAnswerText},
			want:   0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, scoreAnswer(&tc.answer, round))
		})
	}
}

func TestLeaderboardSumsAcrossRoundsDescending(t *testing.T) {
	rounds := []*models.Round{
		{
			Number: 1,
			Answers: []*models.Answer{
				{Player: "p1", Score: 1000},
				{Player: "p2", Score: 4500},
			},
		},
		{
			Number: 2,
			Answers: []*models.Answer{
				{Player: "p1", Score: 4000},
				{Player: "p2", Score: 0},
				{Player: "p3", Score: 300},
			},
		},
	}

	board := leaderboard(rounds)

	assert.Equal(t, []models.LeaderboardEntry{
		{PlayerID: "p1", Score: 5000},
		{PlayerID: "p2", Score: 4500},
		{PlayerID: "p3", Score: 300},
	}, board)
}

func TestLeaderboardPreservesEncounterOrderOnTies(t *testing.T) {
	rounds := []*models.Round{
		{
			Number: 1,
			Answers: []*models.Answer{
				{Player: "p2", Score: 100},
				{Player: "p1", Score: 100},
			},
		},
	}

	board := leaderboard(rounds)

	assert.Equal(t, "p2", board[0].PlayerID)
	assert.Equal(t, "p1", board[1].PlayerID)
}

func TestLeaderboardEmptyRounds(t *testing.T) {
	assert.Empty(t, leaderboard(nil))
	assert.Empty(t, leaderboard([]*models.Round{{Number: 1}}))
}
