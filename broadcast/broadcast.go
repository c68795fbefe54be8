// broadcast/broadcast.go
package broadcast

import (
	"encoding/json"

	"github.com/bizround/gameserver/logger"
	"github.com/bizround/gameserver/network"
	"github.com/bizround/gameserver/persistence"
	"github.com/bizround/gameserver/session"
)

// GamePublisher pushes the current authoritative game snapshot to every
// session observing a game. It implements engine.Publisher. Delivery is
// fire-and-forget: a session that cannot be written to is skipped, never
// escalated.
type GamePublisher struct {
	games          persistence.GameRepository
	sessionManager *session.Manager
}

func NewGamePublisher(games persistence.GameRepository, sessionManager *session.Manager) *GamePublisher {
	return &GamePublisher{
		games:          games,
		sessionManager: sessionManager,
	}
}

// PublishCurrentGame loads the full game tree, renders the overview snapshot
// and broadcasts it to the game's sessions.
func (p *GamePublisher) PublishCurrentGame(gameID uint) error {
	game, err := p.games.GetGameForOverview(gameID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(game.ToOverview())
	if err != nil {
		return err
	}

	for _, s := range p.sessionManager.GetByGameID(gameID) {
		if err := s.Send(network.MsgTypeGameState, data); err != nil {
			logger.Log.Warnf("Dropping state push to session %s: %v", s.GetID(), err)
			continue
		}
	}

	return nil
}
