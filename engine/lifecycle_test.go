package engine

import (
	"errors"
	"testing"

	"github.com/bizround/gameserver/models"
	"github.com/bizround/gameserver/persistence"
)

func newLifecycle() (*Lifecycle, *persistence.MemoryStore, *mockPublisher) {
	store := persistence.NewMemoryStore()
	publisher := &mockPublisher{}
	return NewLifecycle(store, publisher, NewRand(1), DefaultSettings()), store, publisher
}

func TestCreateGame_Validation(t *testing.T) {
	lifecycle, _, _ := newLifecycle()

	_, err := lifecycle.CreateGame("", 0, 0)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if len(verr.Reasons) != 3 {
		t.Errorf("Expected 3 reasons, got %v", verr.Reasons)
	}
}

func TestJoinGame_CreatesCompanyWithStartingTreasury(t *testing.T) {
	lifecycle, store, _ := newLifecycle()

	game, err := lifecycle.CreateGame("Startup Wars", 4, 10)
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}

	player, err := lifecycle.JoinGame(game.ID, "Alice")
	if err != nil {
		t.Fatalf("JoinGame failed: %v", err)
	}
	if player.Company == nil {
		t.Fatal("Expected a company created for the joining player")
	}
	if player.Company.Treasury != DefaultSettings().StartingTreasury {
		t.Errorf("Expected treasury %d, got %d", DefaultSettings().StartingTreasury, player.Company.Treasury)
	}

	company, err := store.GetCompanyByPlayer(player.ID)
	if err != nil {
		t.Fatalf("Company not persisted: %v", err)
	}
	if company.Name != "Alice & Co" {
		t.Errorf("Unexpected company name %q", company.Name)
	}
}

func TestJoinGame_Rejections(t *testing.T) {
	lifecycle, _, _ := newLifecycle()

	game, _ := lifecycle.CreateGame("Tiny", 1, 3)
	alice, err := lifecycle.JoinGame(game.ID, "Alice")
	if err != nil {
		t.Fatalf("JoinGame failed: %v", err)
	}

	if _, err := lifecycle.JoinGame(game.ID, "Bob"); !errors.Is(err, ErrGameFull) {
		t.Errorf("Expected ErrGameFull, got %v", err)
	}

	if _, err := lifecycle.StartGame(game.ID, alice.ID); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	if _, err := lifecycle.JoinGame(game.ID, "Carol"); !errors.Is(err, ErrGameAlreadyStarted) {
		t.Errorf("Expected ErrGameAlreadyStarted, got %v", err)
	}

	if _, err := lifecycle.JoinGame(9999, "Dave"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Expected ErrGameNotFound, got %v", err)
	}
}

func TestStartGame_OnlyFirstJoinerMayStart(t *testing.T) {
	lifecycle, _, _ := newLifecycle()

	game, _ := lifecycle.CreateGame("Startup Wars", 4, 10)
	alice, _ := lifecycle.JoinGame(game.ID, "Alice")
	bob, _ := lifecycle.JoinGame(game.ID, "Bob")

	if _, err := lifecycle.StartGame(game.ID, bob.ID); !errors.Is(err, ErrNotGameOwner) {
		t.Errorf("Expected ErrNotGameOwner for a late joiner, got %v", err)
	}

	started, err := lifecycle.StartGame(game.ID, alice.ID)
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	if started.Status != models.GameStatusInProgress {
		t.Errorf("Expected status InProgress, got %s", started.Status)
	}

	if _, err := lifecycle.StartGame(game.ID, alice.ID); !errors.Is(err, ErrGameAlreadyStarted) {
		t.Errorf("Expected ErrGameAlreadyStarted on double start, got %v", err)
	}
}

func TestStartGame_OpensRoundOneWithProject(t *testing.T) {
	lifecycle, store, _ := newLifecycle()

	game, _ := lifecycle.CreateGame("Startup Wars", 2, 10)
	alice, _ := lifecycle.JoinGame(game.ID, "Alice")
	if _, err := lifecycle.StartGame(game.ID, alice.ID); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	full, _ := store.GetGameForOverview(game.ID)
	if full.CurrentRound != 1 {
		t.Errorf("Expected current round 1, got %d", full.CurrentRound)
	}
	if len(full.Rounds) != 1 || full.Rounds[0].Order != 1 {
		t.Fatalf("Expected one round with order 1, got %+v", full.Rounds)
	}
	if len(full.Projects) != 1 {
		t.Fatalf("Expected one project spawned at round start, got %d", len(full.Projects))
	}
	if full.Projects[0].Status != models.ProjectStatusAvailable {
		t.Errorf("Expected spawned project to be Available, got %s", full.Projects[0].Status)
	}
}

func TestStartRound_RefusesBeyondMaxRounds(t *testing.T) {
	lifecycle, _, _ := newLifecycle()

	game := &models.Game{
		ID:           1,
		Status:       models.GameStatusInProgress,
		MaxRounds:    3,
		CurrentRound: 3,
	}
	if _, err := lifecycle.StartRound(game); !errors.Is(err, ErrCannotStartRound) {
		t.Errorf("Expected ErrCannotStartRound at the round cap, got %v", err)
	}

	game.Status = models.GameStatusFinished
	game.CurrentRound = 1
	if _, err := lifecycle.StartRound(game); !errors.Is(err, ErrCannotStartRound) {
		t.Errorf("Expected ErrCannotStartRound on a finished game, got %v", err)
	}
}

func TestFinishGame_IsIdempotent(t *testing.T) {
	lifecycle, _, publisher := newLifecycle()

	game, _ := lifecycle.CreateGame("Short", 2, 1)

	finished, err := lifecycle.FinishGame(game.ID)
	if err != nil {
		t.Fatalf("FinishGame failed: %v", err)
	}
	if finished.Status != models.GameStatusFinished {
		t.Errorf("Expected status Finished, got %s", finished.Status)
	}

	again, err := lifecycle.FinishGame(game.ID)
	if err != nil {
		t.Fatalf("Repeated FinishGame should be a no-op, got %v", err)
	}
	if again.Status != models.GameStatusFinished {
		t.Errorf("Expected status Finished on repeat, got %s", again.Status)
	}

	if _, err := lifecycle.FinishGame(9999); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Expected ErrGameNotFound, got %v", err)
	}

	if publisher.count() == 0 {
		t.Error("Expected finish to publish the final state")
	}
}

func TestSettleRound_PaysSalariesAndAdvancesProjects(t *testing.T) {
	lifecycle, store, _ := newLifecycle()

	game, _ := lifecycle.CreateGame("Startup Wars", 2, 10)
	alice, _ := lifecycle.JoinGame(game.ID, "Alice")
	if _, err := lifecycle.StartGame(game.ID, alice.ID); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	company, _ := store.GetCompanyByPlayer(alice.ID)
	if err := store.SaveEmployee(&models.Employee{
		Name:      "Worker",
		GameID:    game.ID,
		CompanyID: company.ID,
		Salary:    1000,
	}); err != nil {
		t.Fatalf("SaveEmployee failed: %v", err)
	}

	projects, _ := store.GetProjectsByGame(game.ID)
	project := &projects[0]
	project.CompanyID = &company.ID
	project.Status = models.ProjectStatusInProgress
	project.RoundsRemaining = 1
	if err := store.SaveProject(project); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	var round *models.Round
	full, _ := store.GetGameForOverview(game.ID)
	for i := range full.Rounds {
		if full.Rounds[i].Order == full.CurrentRound {
			round = &full.Rounds[i]
		}
	}
	if round == nil {
		t.Fatal("No open round found")
	}
	if _, err := lifecycle.FinishRound(round); err != nil {
		t.Fatalf("FinishRound failed: %v", err)
	}

	reloaded, _ := store.GetProject(project.ID)
	if reloaded.Status != models.ProjectStatusCompleted {
		t.Errorf("Expected project Completed after its last round, got %s", reloaded.Status)
	}

	company, _ = store.GetCompanyByPlayer(alice.ID)
	expected := DefaultSettings().StartingTreasury - 1000 + int64(reloaded.Template.Reward)
	if company.Treasury != expected {
		t.Errorf("Expected treasury %d (payroll out, reward in), got %d", expected, company.Treasury)
	}
}
