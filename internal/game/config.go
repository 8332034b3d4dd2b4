// internal/game/config.go
package game

import (
	"os"
	"strconv"
	"time"
)

// Config carries the session-engine knobs. Rounds is both the image-pool size
// and the terminal-round check; the original kept two disagreeing constants
// for these, which cannot both be right when the pool seeds the rounds.
type Config struct {
	// Rounds is the number of rounds per game, and therefore the number of
	// images collected into the pool.
	Rounds int
	// RoundSeconds is the answer-window length of each round.
	RoundSeconds int
	// RevealDelay is the pause after broadcasting the correct owner, giving
	// clients time to render the reveal.
	RevealDelay time.Duration
	// AdvanceDelay is the pause after the leaderboard broadcast before the
	// next round starts.
	AdvanceDelay time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Rounds:       3,
		RoundSeconds: 5,
		RevealDelay:  500 * time.Millisecond,
		AdvanceDelay: 2200 * time.Millisecond,
	}
}

// ConfigFromEnv reads GAME_ROUNDS and ROUND_SECONDS, falling back to the
// defaults for unset or unparseable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Rounds = envInt("GAME_ROUNDS", cfg.Rounds)
	cfg.RoundSeconds = envInt("ROUND_SECONDS", cfg.RoundSeconds)
	return cfg
}

func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
