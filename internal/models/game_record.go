package models

import (
	"time"

	"github.com/google/uuid"
)

// GameRecord is the snapshot of a finished session handed to the persistence
// collaborator. It carries everything needed to reconstruct the playthrough.
type GameRecord struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Players    []*Player `json:"players"`
	Rounds     []*Round  `json:"rounds"`
	CreatedAt  time.Time `json:"createdAt"`
	FinishedAt time.Time `json:"finishedAt"`
}
