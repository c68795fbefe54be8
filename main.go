package main

import (
	"time"

	"github.com/bizround/gameserver/config"
	"github.com/bizround/gameserver/engine"
	"github.com/bizround/gameserver/logger"
	"github.com/bizround/gameserver/persistence"
	"github.com/bizround/gameserver/server"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the store
	var store persistence.Store
	var statistics persistence.StatisticsRepository

	switch cfg.Database.Driver {
	case "postgres":
		pg := cfg.Database.Postgres
		gormStore, err := persistence.NewGormPostgres(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		stats, err := persistence.NewSQLStatistics(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
		if err != nil {
			logger.Log.Fatalf("Failed to open statistics connection: %v", err)
		}
		store, statistics = gormStore, stats
		logger.Log.Info("Database connection successful.")
	case "memory":
		memStore := persistence.NewMemoryStore()
		store, statistics = memStore, persistence.NewMemoryStatistics(memStore)
		logger.Log.Info("Using in-memory store.")
	default:
		logger.Log.Fatalf("Unknown database driver: %q", cfg.Database.Driver)
	}
	defer store.Close()
	defer statistics.Close()

	settings := engine.Settings{
		StartingTreasury: cfg.Game.StartingTreasury,
		HireSkillCount:   cfg.Game.HireSkillCount,
		SkillLevelMax:    cfg.Game.SkillLevelMax,
		SalaryBase:       cfg.Game.SalaryBase,
		TrainingFee:      cfg.Game.TrainingFee,
	}

	seed := cfg.Game.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Initialize Game Server
	gameServer := server.NewGameServer(cfg.Server.HTTPAddress, cfg.Server.RPCAddress, store, statistics, settings, engine.NewRand(seed))
	gameServer.StartMetrics(cfg.Server.MetricsAddress)

	// Start Server
	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
