package models

// Player is one seat in a lobby and, after game start, in a session roster.
// ConnectionID is the stable identity used for scoring; it is never reassigned.
type Player struct {
	ConnectionID string   `json:"connectionId"`
	Name         string   `json:"name"`
	Images       []string `json:"images"`
	IsReady      bool     `json:"isReady"`
}

// NewPlayer copies the registered name and image set into a fresh seat.
// The image slice is copied so later registry mutations cannot leak in.
func NewPlayer(connectionID, name string, images []string) *Player {
	imgs := make([]string, len(images))
	copy(imgs, images)
	return &Player{
		ConnectionID: connectionID,
		Name:         name,
		Images:       imgs,
	}
}
