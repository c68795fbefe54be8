package persistence

import (
	"errors"
	"testing"

	"github.com/bizround/gameserver/models"
)

func TestMemoryStore_GameRoundtrip(t *testing.T) {
	store := NewMemoryStore()

	game := &models.Game{Name: "Alpha", MaxPlayers: 2, MaxRounds: 3, Status: models.GameStatusWaiting}
	if err := store.SaveGame(game); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}
	if game.ID == 0 {
		t.Fatal("Expected an ID assigned on save")
	}

	loaded, err := store.GetGame(game.ID)
	if err != nil {
		t.Fatalf("GetGame failed: %v", err)
	}
	if loaded.Name != "Alpha" || loaded.MaxRounds != 3 {
		t.Errorf("Loaded game does not match: %+v", loaded)
	}

	if _, err := store.GetGame(9999); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound, got %v", err)
	}
}

func TestMemoryStore_GetJoinableGames(t *testing.T) {
	store := NewMemoryStore()

	waiting := &models.Game{Name: "Waiting", Status: models.GameStatusWaiting}
	running := &models.Game{Name: "Running", Status: models.GameStatusInProgress}
	store.SaveGame(waiting)
	store.SaveGame(running)

	joinable, err := store.GetJoinableGames()
	if err != nil {
		t.Fatalf("GetJoinableGames failed: %v", err)
	}
	if len(joinable) != 1 || joinable[0].Name != "Waiting" {
		t.Errorf("Expected only the waiting game, got %+v", joinable)
	}
}

func TestMemoryStore_RoundCopiesAreIsolated(t *testing.T) {
	store := NewMemoryStore()

	game := &models.Game{Name: "Alpha", Status: models.GameStatusInProgress}
	store.SaveGame(game)
	round := &models.Round{GameID: game.ID, Order: 1}
	if err := store.SaveRound(round); err != nil {
		t.Fatalf("SaveRound failed: %v", err)
	}

	first, _ := store.GetRound(round.ID)
	first.Actions = append(first.Actions, models.RoundAction{PlayerID: 1, Kind: models.ActionConfirmRound})

	// Mutating a read copy must not leak into the store.
	second, _ := store.GetRound(round.ID)
	if len(second.Actions) != 0 {
		t.Errorf("Expected an unmodified round, got %d actions", len(second.Actions))
	}

	if err := store.SaveRound(first); err != nil {
		t.Fatalf("SaveRound failed: %v", err)
	}
	third, _ := store.GetRound(round.ID)
	if len(third.Actions) != 1 {
		t.Fatalf("Expected 1 action after save, got %d", len(third.Actions))
	}
	if third.Actions[0].ID == 0 || third.Actions[0].RoundID != round.ID {
		t.Errorf("Expected the action keyed to its round, got %+v", third.Actions[0])
	}
}

func TestMemoryStore_GetRoundLoadsGameWithPlayers(t *testing.T) {
	store := NewMemoryStore()

	game := &models.Game{Name: "Alpha", Status: models.GameStatusInProgress}
	store.SaveGame(game)
	store.SavePlayer(&models.Player{Name: "Alice", GameID: game.ID})
	store.SavePlayer(&models.Player{Name: "Bob", GameID: game.ID})
	round := &models.Round{GameID: game.ID, Order: 1}
	store.SaveRound(round)

	loaded, err := store.GetRound(round.ID)
	if err != nil {
		t.Fatalf("GetRound failed: %v", err)
	}
	if loaded.Game == nil {
		t.Fatal("Expected the owning game loaded with the round")
	}
	if len(loaded.Game.Players) != 2 {
		t.Errorf("Expected 2 players on the loaded game, got %d", len(loaded.Game.Players))
	}
}

func TestMemoryStore_FinishGame(t *testing.T) {
	store := NewMemoryStore()

	game := &models.Game{Name: "Alpha", Status: models.GameStatusInProgress}
	store.SaveGame(game)

	finished, err := store.FinishGame(game.ID)
	if err != nil {
		t.Fatalf("FinishGame failed: %v", err)
	}
	if finished.Status != models.GameStatusFinished {
		t.Errorf("Expected Finished, got %s", finished.Status)
	}

	// Finishing twice stays Finished.
	again, err := store.FinishGame(game.ID)
	if err != nil || again.Status != models.GameStatusFinished {
		t.Errorf("Expected repeat finish to be harmless, got %v %v", again, err)
	}

	if _, err := store.FinishGame(9999); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound, got %v", err)
	}
}

func TestMemoryStore_CatalogSeeded(t *testing.T) {
	store := NewMemoryStore()

	skills, err := store.Skills()
	if err != nil || len(skills) == 0 {
		t.Errorf("Expected a seeded skill catalog, got %d (%v)", len(skills), err)
	}
	templates, err := store.ProjectTemplates()
	if err != nil || len(templates) == 0 {
		t.Errorf("Expected seeded project templates, got %d (%v)", len(templates), err)
	}
	for _, tmpl := range templates {
		if tmpl.Rounds < 1 || tmpl.Reward <= 0 {
			t.Errorf("Template %q has invalid tuning: %+v", tmpl.Name, tmpl)
		}
	}
}
