// internal/database/archive.go
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LeonLav77/photoroullete-backend/internal/models"
)

// Archive persists finished games. It satisfies the game package's Archiver
// interface.
type Archive struct {
	pool *pgxpool.Pool
}

// NewArchive wraps an already-connected pool.
func NewArchive(pool *pgxpool.Pool) *Archive {
	return &Archive{pool: pool}
}

// SaveFinishedGame writes the whole playthrough (game row, roster, rounds,
// answers) in one transaction. Upserts keep a retried hand-off idempotent.
func (a *Archive) SaveFinishedGame(ctx context.Context, rec *models.GameRecord) error {
	err := pgx.BeginTxFunc(ctx, a.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		upsertGame := `
			INSERT INTO games (id, code, created_at, finished_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET finished_at = $4
		`
		if _, e := tx.Exec(ctx, upsertGame, rec.ID, rec.Code, rec.CreatedAt, rec.FinishedAt); e != nil {
			return e
		}

		for _, p := range rec.Players {
			q := `
				INSERT INTO game_players (game_id, connection_id, name)
				VALUES ($1, $2, $3)
				ON CONFLICT (game_id, connection_id) DO UPDATE SET name = $3
			`
			if _, e := tx.Exec(ctx, q, rec.ID, p.ConnectionID, p.Name); e != nil {
				return e
			}
		}

		for _, r := range rec.Rounds {
			q := `
				INSERT INTO game_rounds (game_id, number, image, duration_sec, correct_answer)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (game_id, number) DO UPDATE SET image = $3, correct_answer = $5
			`
			if _, e := tx.Exec(ctx, q, rec.ID, r.Number, r.Image, r.Duration, r.CorrectAnswer); e != nil {
				return e
			}
			for _, ans := range r.Answers {
				aq := `
					INSERT INTO game_answers (game_id, round_number, player_id, answer, time_remaining_ms, score)
					VALUES ($1, $2, $3, $4, $5, $6)
					ON CONFLICT (game_id, round_number, player_id)
					DO UPDATE SET answer = $4, time_remaining_ms = $5, score = $6
				`
				if _, e := tx.Exec(ctx, aq, rec.ID, r.Number, ans.Player, ans.PlayersAnswer, ans.TimeRemaining, ans.Score); e != nil {
					return e
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tx save finished game %s: %w", rec.ID, err)
	}
	return nil
}
