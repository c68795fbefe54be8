// models/round.go
package models

// Round 一局游戏中的一个回合
// Order is 1-based and unique per game. The Actions collection only grows
// while the round is open; a round never re-opens once every player confirmed.
type Round struct {
	ID      uint          `gorm:"primaryKey" json:"id"`
	GameID  uint          `gorm:"index;not null" json:"game_id"`
	Game    *Game         `json:"-"`
	Order   int           `gorm:"not null" json:"order"`
	Actions []RoundAction `gorm:"constraint:OnDelete:CASCADE" json:"actions"`
}

// CanPlayerAct reports whether the player may still submit actions this round.
// A player who has recorded a ConfirmRound action is locked out until the
// round advances.
func (r *Round) CanPlayerAct(playerID uint) bool {
	for _, a := range r.Actions {
		if a.PlayerID == playerID && a.Kind == ActionConfirmRound {
			return false
		}
	}
	return true
}

// IsComplete is true exactly when every player currently registered in the
// owning game has a ConfirmRound action recorded for this round. The count of
// non-confirm actions is irrelevant.
func (r *Round) IsComplete() bool {
	if r.Game == nil || len(r.Game.Players) == 0 {
		return false
	}
	for _, p := range r.Game.Players {
		if r.CanPlayerAct(p.ID) {
			return false
		}
	}
	return true
}

// Record appends an action to the round. Appending is the only mutation a
// round allows; ordering of the slice is the application order.
func (r *Round) Record(action RoundAction) {
	action.RoundID = r.ID
	r.Actions = append(r.Actions, action)
}
