// engine/settings.go
package engine

// Settings 游戏数值配置
type Settings struct {
	StartingTreasury int64
	HireSkillCount   int
	SkillLevelMax    int
	SalaryBase       float64
	TrainingFee      int64
}

// DefaultSettings returns the tuning the simulation ships with.
func DefaultSettings() Settings {
	return Settings{
		StartingTreasury: 1000000,
		HireSkillCount:   3,
		SkillLevelMax:    10,
		SalaryBase:       200,
		TrainingFee:      50000,
	}
}

// Publisher pushes the current authoritative game snapshot to every client
// observing the game. Delivery is best-effort; the engine logs failures and
// continues. Declared here, consumer-side, so the engine does not import the
// transport.
type Publisher interface {
	PublishCurrentGame(gameID uint) error
}
