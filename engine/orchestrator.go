// engine/orchestrator.go
package engine

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/bizround/gameserver/logger"
	"github.com/bizround/gameserver/models"
	"github.com/bizround/gameserver/persistence"
)

// ActInRoundParams carries one player submission. Round and player may each
// be given either by identifier or as an already-resolved aggregate, never
// both.
type ActInRoundParams struct {
	Kind     models.ActionKind
	Payload  json.RawMessage
	RoundID  uint
	Round    *models.Round
	PlayerID uint
	Player   *models.Player
}

// Validate accumulates every problem with the parameter set.
func (p *ActInRoundParams) Validate() []string {
	var reasons []string
	if p.Kind == "" {
		reasons = append(reasons, "action kind must be specified")
	}
	if p.RoundID == 0 && p.Round == nil {
		reasons = append(reasons, "round id must be provided when round is not")
	}
	if p.RoundID != 0 && p.Round != nil {
		reasons = append(reasons, "cannot provide both round id and round")
	}
	if p.PlayerID == 0 && p.Player == nil {
		reasons = append(reasons, "player id must be provided when player is not")
	}
	if p.PlayerID != 0 && p.Player != nil {
		reasons = append(reasons, "cannot provide both player id and player")
	}
	return reasons
}

// Orchestrator coordinates one submission end to end: validate, resolve,
// record, detect completion, run the completion sweep, advance the game and
// publish the new state.
type Orchestrator struct {
	store     persistence.Store
	applier   *Applier
	lifecycle *Lifecycle
	publisher Publisher

	// One mutex per round, kept for the lifetime of the orchestrator so a
	// late submission can never race a fresh lock. The
	// check-complete/apply/advance sequence
	// must run at most once per round even when the final confirmation and a
	// near-simultaneous duplicate race each other.
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewOrchestrator(store persistence.Store, applier *Applier, lifecycle *Lifecycle, publisher Publisher) *Orchestrator {
	return &Orchestrator{
		store:     store,
		applier:   applier,
		lifecycle: lifecycle,
		publisher: publisher,
		locks:     make(map[uint]*sync.Mutex),
	}
}

func (o *Orchestrator) roundLock(roundID uint) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	lock, ok := o.locks[roundID]
	if !ok {
		lock = &sync.Mutex{}
		o.locks[roundID] = lock
	}
	return lock
}

// ActInRound records one player action and, when it completes the round,
// applies every recorded action in submission order before advancing the
// game. If any application fails the whole operation fails and the round
// stays open with its recorded actions intact; a later submission retries
// the sweep.
func (o *Orchestrator) ActInRound(params ActInRoundParams) (*models.Round, error) {
	if reasons := params.Validate(); len(reasons) > 0 {
		return nil, &ValidationError{Reasons: reasons}
	}

	roundID := params.RoundID
	if params.Round != nil {
		roundID = params.Round.ID
	}

	lock := o.roundLock(roundID)
	lock.Lock()
	defer lock.Unlock()

	// Resolve inside the lock so the completion check sees every action
	// recorded by submissions that beat this one to it.
	round := params.Round
	if round == nil {
		var err error
		round, err = o.store.GetRound(roundID)
		if err != nil {
			return nil, fmt.Errorf("%w: %d", ErrRoundNotFound, roundID)
		}
	}

	player := params.Player
	if player == nil {
		var err error
		player, err = o.store.GetPlayer(params.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("%w: %d", ErrPlayerNotFound, params.PlayerID)
		}
	}

	if !round.CanPlayerAct(player.ID) {
		return nil, fmt.Errorf("%w: player %d, round %d", ErrPlayerCannotActInRound, player.ID, round.ID)
	}

	action, err := models.DecodeAction(params.Kind, player.ID, params.Payload)
	if err != nil {
		return nil, err
	}

	round.Record(action)
	if err := o.store.SaveRound(round); err != nil {
		return nil, err
	}

	if round.IsComplete() {
		if err := o.completeRound(round); err != nil {
			return nil, err
		}
	}

	o.publish(round.GameID)
	return round, nil
}

// completeRound runs the completion sweep and hands the round to the
// lifecycle. Fail-closed: the round only advances once every recorded action
// applied successfully.
func (o *Orchestrator) completeRound(round *models.Round) error {
	game, err := o.store.GetGame(round.GameID)
	if err != nil {
		return fmt.Errorf("%w: %d", ErrGameNotFound, round.GameID)
	}

	for _, action := range round.Actions {
		if action.Kind == models.ActionConfirmRound {
			continue
		}
		if err := o.applier.Apply(action, game); err != nil {
			return fmt.Errorf("applying %s by player %d: %w", action.Kind, action.PlayerID, err)
		}
	}

	if _, err := o.lifecycle.FinishRound(round); err != nil {
		return err
	}

	logger.Log.Infof("Round %d of game %d completed with %d actions", round.Order, round.GameID, len(round.Actions))
	return nil
}

func (o *Orchestrator) publish(gameID uint) {
	if o.publisher == nil {
		return
	}
	if err := o.publisher.PublishCurrentGame(gameID); err != nil {
		logger.Log.Warnf("Failed to publish state for game %d: %v", gameID, err)
	}
}
