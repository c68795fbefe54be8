// engine/lifecycle.go
package engine

import (
	"errors"
	"fmt"

	"github.com/bizround/gameserver/logger"
	"github.com/bizround/gameserver/models"
	"github.com/bizround/gameserver/persistence"
)

// Lifecycle decides whether a new round can start, creates it, and finalizes
// games that have run their course. Round setup is also where per-round
// economics tick: salaries are paid and claimed projects advance.
type Lifecycle struct {
	store     persistence.Store
	publisher Publisher
	rng       *Rand
	settings  Settings
}

func NewLifecycle(store persistence.Store, publisher Publisher, rng *Rand, settings Settings) *Lifecycle {
	return &Lifecycle{store: store, publisher: publisher, rng: rng, settings: settings}
}

// CreateGame 创建一局新游戏，等待玩家加入
func (l *Lifecycle) CreateGame(name string, maxPlayers, maxRounds int) (*models.Game, error) {
	var reasons []string
	if name == "" {
		reasons = append(reasons, "game name must not be empty")
	}
	if maxPlayers < 1 {
		reasons = append(reasons, "max players must be at least 1")
	}
	if maxRounds < 1 {
		reasons = append(reasons, "max rounds must be at least 1")
	}
	if len(reasons) > 0 {
		return nil, &ValidationError{Reasons: reasons}
	}

	game := &models.Game{
		Name:       name,
		MaxPlayers: maxPlayers,
		MaxRounds:  maxRounds,
		Status:     models.GameStatusWaiting,
	}
	if err := l.store.SaveGame(game); err != nil {
		return nil, err
	}
	return game, nil
}

// JoinGame 加入游戏并创建玩家与所属公司
func (l *Lifecycle) JoinGame(gameID uint, playerName string) (*models.Player, error) {
	if playerName == "" {
		return nil, &ValidationError{Reasons: []string{"player name must not be empty"}}
	}

	game, err := l.store.GetGame(gameID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrGameNotFound, gameID)
	}
	if game.Status != models.GameStatusWaiting {
		return nil, ErrGameAlreadyStarted
	}
	if len(game.Players) >= game.MaxPlayers {
		return nil, ErrGameFull
	}

	player := &models.Player{Name: playerName, GameID: gameID}
	if err := l.store.SavePlayer(player); err != nil {
		return nil, err
	}

	company := &models.Company{
		Name:     playerName + " & Co",
		PlayerID: player.ID,
		Treasury: l.settings.StartingTreasury,
	}
	if err := l.store.SaveCompany(company); err != nil {
		return nil, err
	}
	player.Company = company

	l.publish(gameID)
	return player, nil
}

// StartGame moves the game into progress and opens round 1. Only the first
// player to have joined may start it.
func (l *Lifecycle) StartGame(gameID, playerID uint) (*models.Game, error) {
	game, err := l.store.GetGame(gameID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrGameNotFound, gameID)
	}
	if game.Status != models.GameStatusWaiting {
		return nil, ErrGameAlreadyStarted
	}
	if len(game.Players) == 0 || firstPlayerID(game) != playerID {
		return nil, ErrNotGameOwner
	}

	game.Status = models.GameStatusInProgress
	if err := l.store.SaveGame(game); err != nil {
		return nil, err
	}

	if _, err := l.StartRound(game); err != nil {
		return nil, err
	}
	return game, nil
}

func firstPlayerID(game *models.Game) uint {
	first := game.Players[0].ID
	for _, p := range game.Players[1:] {
		if p.ID < first {
			first = p.ID
		}
	}
	return first
}

// StartRound creates the next round and spawns one fresh project from a
// randomly chosen template as part of round setup.
func (l *Lifecycle) StartRound(game *models.Game) (*models.Round, error) {
	if !game.CanStartNewRound() {
		return nil, fmt.Errorf("%w: game %d at round %d/%d", ErrCannotStartRound, game.ID, game.CurrentRound, game.MaxRounds)
	}

	templates, err := l.store.ProjectTemplates()
	if err != nil {
		return nil, err
	}
	if len(templates) > 0 {
		tmpl := templates[l.rng.Intn(len(templates))]
		project := &models.Project{
			GameID:          game.ID,
			TemplateID:      tmpl.ID,
			Status:          models.ProjectStatusAvailable,
			RoundsRemaining: tmpl.Rounds,
		}
		if err := l.store.SaveProject(project); err != nil {
			return nil, err
		}
		logger.Log.Infof("Spawned project %q for game %d", tmpl.Name, game.ID)
	}

	round := &models.Round{GameID: game.ID, Order: game.CurrentRound + 1}
	if err := l.store.SaveRound(round); err != nil {
		return nil, err
	}

	game.CurrentRound = round.Order
	if err := l.store.SaveGame(game); err != nil {
		return nil, err
	}

	l.publish(game.ID)
	return round, nil
}

// FinishRound settles the completed round's economics, then either opens the
// next round or finishes the game. It returns the new current round, or the
// completed round itself when the game is over.
func (l *Lifecycle) FinishRound(round *models.Round) (*models.Round, error) {
	game, err := l.store.GetGameForOverview(round.GameID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrGameNotFound, round.GameID)
	}

	if err := l.settleRound(game); err != nil {
		return nil, err
	}

	if game.CanStartNewRound() {
		return l.StartRound(game)
	}

	if _, err := l.FinishGame(game.ID); err != nil {
		return nil, err
	}
	return round, nil
}

// FinishGame 将游戏标记为已结束。重复调用是无害的空操作。
func (l *Lifecycle) FinishGame(gameID uint) (*models.Game, error) {
	game, err := l.store.FinishGame(gameID)
	if err != nil {
		if errors.Is(err, persistence.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrGameNotFound, gameID)
		}
		return nil, err
	}
	l.publish(gameID)
	return game, nil
}

// settleRound pays each company's payroll and advances claimed projects,
// crediting rewards when they complete.
func (l *Lifecycle) settleRound(game *models.Game) error {
	for i := range game.Players {
		company := game.Players[i].Company
		if company == nil {
			continue
		}
		var payroll float64
		for _, e := range company.Employees {
			payroll += e.Salary
		}
		if payroll == 0 {
			continue
		}
		stored, err := l.store.GetCompany(company.ID)
		if err != nil {
			return err
		}
		stored.Treasury -= int64(payroll)
		if err := l.store.SaveCompany(stored); err != nil {
			return err
		}
	}

	projects, err := l.store.GetProjectsByGame(game.ID)
	if err != nil {
		return err
	}
	for i := range projects {
		project := projects[i]
		if project.Status != models.ProjectStatusInProgress {
			continue
		}
		project.RoundsRemaining--
		if project.RoundsRemaining <= 0 {
			project.Status = models.ProjectStatusCompleted
			if project.CompanyID != nil {
				company, err := l.store.GetCompany(*project.CompanyID)
				if err != nil {
					return err
				}
				company.Treasury += int64(project.Template.Reward)
				if err := l.store.SaveCompany(company); err != nil {
					return err
				}
				logger.Log.Infof("Project %d completed by company %d, reward %.0f", project.ID, company.ID, project.Template.Reward)
			}
		}
		if err := l.store.SaveProject(&project); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lifecycle) publish(gameID uint) {
	if l.publisher == nil {
		return
	}
	if err := l.publisher.PublishCurrentGame(gameID); err != nil {
		logger.Log.Warnf("Failed to publish state for game %d: %v", gameID, err)
	}
}
