// models/models.go
package models

import (
	"time"
)

// GameStatus 游戏生命周期状态
type GameStatus string

const (
	GameStatusWaiting    GameStatus = "Waiting"
	GameStatusInProgress GameStatus = "InProgress"
	GameStatusFinished   GameStatus = "Finished"
)

// ProjectStatus marks where a project is in its lifecycle.
type ProjectStatus string

const (
	ProjectStatusAvailable  ProjectStatus = "Available"
	ProjectStatusInProgress ProjectStatus = "InProgress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
)

// Game 游戏聚合根
// Status only ever moves Waiting -> InProgress -> Finished.
type Game struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"uniqueIndex;not null" json:"name"`
	MaxPlayers   int        `gorm:"not null" json:"max_players"`
	MaxRounds    int        `gorm:"not null" json:"max_rounds"`
	CurrentRound int        `gorm:"default:0" json:"current_round"`
	Status       GameStatus `gorm:"not null" json:"status"`
	Players      []Player   `gorm:"constraint:OnDelete:CASCADE" json:"players"`
	Rounds       []Round    `gorm:"constraint:OnDelete:CASCADE" json:"rounds"`
	Projects     []Project  `gorm:"constraint:OnDelete:CASCADE" json:"projects"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CanStartNewRound reports whether one more round fits in this game.
// MaxRounds counts rounds 1..N inclusive, so a new round may only start
// while CurrentRound is still below it.
func (g *Game) CanStartNewRound() bool {
	return g.Status == GameStatusInProgress && g.CurrentRound < g.MaxRounds
}

// Player 玩家，属于一个游戏，拥有一家公司
type Player struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	GameID    uint      `gorm:"index;not null" json:"game_id"`
	Company   *Company  `gorm:"constraint:OnDelete:CASCADE" json:"company"`
	CreatedAt time.Time `json:"created_at"`
}

// Company 公司，与玩家一对一
type Company struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	PlayerID  uint       `gorm:"uniqueIndex;not null" json:"player_id"`
	Treasury  int64      `gorm:"not null" json:"treasury"`
	Employees []Employee `gorm:"constraint:OnDelete:CASCADE" json:"employees"`
}

// LeveledSkill pairs a skill name with a level. Levels are conventionally 0-10
// but not bounded here.
type LeveledSkill struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	EmployeeID uint   `gorm:"index" json:"-"`
	Name       string `gorm:"not null" json:"name"`
	Level      int    `gorm:"not null" json:"level"`
}

// Employee 雇员
type Employee struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Salary    float64        `gorm:"not null" json:"salary"`
	GameID    uint           `gorm:"index;not null" json:"game_id"`
	CompanyID uint           `gorm:"index" json:"company_id"`
	Skills    []LeveledSkill `gorm:"constraint:OnDelete:CASCADE" json:"skills"`
}

// Skill 技能目录条目，雇佣时从中抽取
type Skill struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// ProjectTemplate is the static definition projects are instantiated from.
type ProjectTemplate struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Name   string  `gorm:"not null" json:"name"`
	Rounds int     `gorm:"not null" json:"rounds"`
	Reward float64 `gorm:"not null" json:"reward"`
}

// Project 项目实例，每轮开始时从随机模板生成一个
type Project struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	GameID          uint            `gorm:"index;not null" json:"game_id"`
	TemplateID      uint            `gorm:"not null" json:"template_id"`
	Template        ProjectTemplate `json:"template"`
	CompanyID       *uint           `json:"company_id"`
	Status          ProjectStatus   `gorm:"not null;default:Available" json:"status"`
	RoundsRemaining int             `gorm:"not null" json:"rounds_remaining"`
}
