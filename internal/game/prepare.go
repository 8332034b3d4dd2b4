// internal/game/prepare.go
package game

import (
	"math/rand"

	"github.com/LeonLav77/photoroullete-backend/internal/messaging"
	"github.com/LeonLav77/photoroullete-backend/internal/models"
)

// PrepareGame begins the image-request phase for a lobby: it draws one
// (owner, image) pair per configured round, rejecting duplicate images, and
// asks each owner to turn over the images drawn from them — one RequestImages
// message per owner, listing all of that owner's drawn images.
func (m *Manager) PrepareGame(code string) {
	l, ok := m.lobbies.Get(code)
	if !ok {
		m.log.Warnf("[%s] prepare requested for unknown lobby", code)
		return
	}

	l.Mu.Lock()
	players := make([]*models.Player, len(l.Players))
	copy(players, l.Players)
	l.Mu.Unlock()

	if len(players) == 0 {
		m.log.Warnf("[%s] prepare requested for empty lobby", code)
		return
	}
	if distinctImageCount(players) < m.cfg.Rounds {
		// Members must collectively offer at least one image per round,
		// otherwise the rejection loop below cannot terminate.
		m.log.Errorf("[%s] lobby offers fewer than %d distinct images, cannot prepare game", code, m.cfg.Rounds)
		return
	}

	grouped := drawAssignments(players, m.cfg.Rounds)
	for ownerID, images := range grouped {
		m.messenger.ToConnection(ownerID, messaging.EventRequestImages, images)
		m.log.Infof("[%s] sent image request to %s: %d images", code, ownerID, len(images))
	}
	m.log.Infof("[%s] image requests sent to players", code)
}

// drawAssignments picks one owner uniformly at random per round, then one of
// that owner's images uniformly at random, redrawing whenever the image was
// already taken. The result is grouped per owner.
func drawAssignments(players []*models.Player, rounds int) map[string][]string {
	taken := make(map[string]bool, rounds)
	grouped := make(map[string][]string)
	for drawn := 0; drawn < rounds; {
		owner := players[rand.Intn(len(players))]
		if len(owner.Images) == 0 {
			continue
		}
		image := owner.Images[rand.Intn(len(owner.Images))]
		if taken[image] {
			continue
		}
		taken[image] = true
		grouped[owner.ConnectionID] = append(grouped[owner.ConnectionID], image)
		drawn++
	}
	return grouped
}

func distinctImageCount(players []*models.Player) int {
	seen := make(map[string]bool)
	for _, p := range players {
		for _, img := range p.Images {
			seen[img] = true
		}
	}
	return len(seen)
}
