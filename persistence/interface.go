// persistence/interface.go
package persistence

import (
	"errors"

	"github.com/bizround/gameserver/models"
)

// 错误定义
var (
	ErrRecordNotFound = errors.New("record not found")
)

// GameRepository 游戏存取接口
type GameRepository interface {
	GetGame(id uint) (*models.Game, error)
	// GetGameForOverview loads the game with the full aggregate tree
	// (players, companies, employees, skills, rounds, actions, projects).
	GetGameForOverview(id uint) (*models.Game, error)
	GetJoinableGames() ([]models.Game, error)
	SaveGame(game *models.Game) error
	// FinishGame sets the game status to Finished and returns the updated
	// game. Finishing an already finished game is a no-op success.
	FinishGame(id uint) (*models.Game, error)
}

// RoundRepository 回合存取接口
type RoundRepository interface {
	// GetRound loads the round together with its owning game and that
	// game's players, which round-completion detection needs.
	GetRound(id uint) (*models.Round, error)
	SaveRound(round *models.Round) error
}

// PlayerRepository 玩家存取接口
type PlayerRepository interface {
	GetPlayer(id uint) (*models.Player, error)
	SavePlayer(player *models.Player) error
}

// CompanyRepository 公司存取接口
type CompanyRepository interface {
	GetCompany(id uint) (*models.Company, error)
	GetCompanyByPlayer(playerID uint) (*models.Company, error)
	SaveCompany(company *models.Company) error
}

// EmployeeRepository 雇员存取接口
type EmployeeRepository interface {
	GetEmployee(id uint) (*models.Employee, error)
	GetEmployeesByGame(gameID uint) ([]models.Employee, error)
	SaveEmployee(employee *models.Employee) error
	DeleteEmployee(id uint) error
}

// ProjectRepository 项目存取接口
type ProjectRepository interface {
	GetProject(id uint) (*models.Project, error)
	GetProjectsByGame(gameID uint) ([]models.Project, error)
	SaveProject(project *models.Project) error
}

// CatalogRepository exposes the static content projects and hires are
// generated from. Random choice is made by the caller with its own rng so
// content generation stays seedable.
type CatalogRepository interface {
	Skills() ([]models.Skill, error)
	ProjectTemplates() ([]models.ProjectTemplate, error)
}

// Store bundles every repository contract a running server needs.
type Store interface {
	GameRepository
	RoundRepository
	PlayerRepository
	CompanyRepository
	EmployeeRepository
	ProjectRepository
	CatalogRepository
	Close() error
}
