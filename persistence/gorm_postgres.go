// persistence/gorm_postgres.go
package persistence

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bizround/gameserver/models"
)

// GormPostgres 使用GORM的PostgreSQL实现
type GormPostgres struct {
	db *gorm.DB
}

// NewGormPostgres 创建GORM PostgreSQL数据库连接
func NewGormPostgres(host string, port int, user, password, dbname string) (*GormPostgres, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := autoMigrate(db); err != nil {
		return nil, err
	}
	if err := seedCatalog(db); err != nil {
		return nil, err
	}

	return &GormPostgres{db: db}, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Game{},
		&models.Player{},
		&models.Company{},
		&models.Employee{},
		&models.LeveledSkill{},
		&models.Skill{},
		&models.ProjectTemplate{},
		&models.Project{},
		&models.Round{},
		&models.RoundAction{},
	)
}

// seedCatalog fills the static content tables on first start.
func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Skill{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		skills := DefaultSkills()
		if err := db.Create(&skills).Error; err != nil {
			return err
		}
	}
	if err := db.Model(&models.ProjectTemplate{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		templates := DefaultProjectTemplates()
		if err := db.Create(&templates).Error; err != nil {
			return err
		}
	}
	return nil
}

// --- GameRepository ---

func (p *GormPostgres) GetGame(id uint) (*models.Game, error) {
	var game models.Game
	err := p.db.Preload("Players").Preload("Players.Company").First(&game, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &game, nil
}

func (p *GormPostgres) GetGameForOverview(id uint) (*models.Game, error) {
	var game models.Game
	err := p.db.
		Preload("Players.Company.Employees.Skills").
		Preload("Rounds.Actions").
		Preload("Projects.Template").
		First(&game, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &game, nil
}

func (p *GormPostgres) GetJoinableGames() ([]models.Game, error) {
	var games []models.Game
	err := p.db.Preload("Players").
		Where("status = ?", models.GameStatusWaiting).
		Find(&games).Error
	return games, err
}

func (p *GormPostgres) SaveGame(game *models.Game) error {
	return p.db.Save(game).Error
}

func (p *GormPostgres) FinishGame(id uint) (*models.Game, error) {
	var game models.Game
	if err := p.db.First(&game, id).Error; err != nil {
		return nil, translate(err)
	}
	if game.Status != models.GameStatusFinished {
		game.Status = models.GameStatusFinished
		if err := p.db.Save(&game).Error; err != nil {
			return nil, err
		}
	}
	return &game, nil
}

// --- RoundRepository ---

func (p *GormPostgres) GetRound(id uint) (*models.Round, error) {
	var round models.Round
	err := p.db.
		Preload("Actions").
		Preload("Game.Players").
		Preload("Game.Rounds").
		First(&round, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &round, nil
}

func (p *GormPostgres) SaveRound(round *models.Round) error {
	return p.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(round).Error
}

// --- PlayerRepository ---

func (p *GormPostgres) GetPlayer(id uint) (*models.Player, error) {
	var player models.Player
	if err := p.db.Preload("Company").First(&player, id).Error; err != nil {
		return nil, translate(err)
	}
	return &player, nil
}

func (p *GormPostgres) SavePlayer(player *models.Player) error {
	return p.db.Save(player).Error
}

// --- CompanyRepository ---

func (p *GormPostgres) GetCompany(id uint) (*models.Company, error) {
	var company models.Company
	if err := p.db.Preload("Employees.Skills").First(&company, id).Error; err != nil {
		return nil, translate(err)
	}
	return &company, nil
}

func (p *GormPostgres) GetCompanyByPlayer(playerID uint) (*models.Company, error) {
	var company models.Company
	err := p.db.Preload("Employees.Skills").
		Where("player_id = ?", playerID).
		First(&company).Error
	if err != nil {
		return nil, translate(err)
	}
	return &company, nil
}

func (p *GormPostgres) SaveCompany(company *models.Company) error {
	return p.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(company).Error
}

// --- EmployeeRepository ---

func (p *GormPostgres) GetEmployee(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := p.db.Preload("Skills").First(&employee, id).Error; err != nil {
		return nil, translate(err)
	}
	return &employee, nil
}

func (p *GormPostgres) GetEmployeesByGame(gameID uint) ([]models.Employee, error) {
	var employees []models.Employee
	err := p.db.Preload("Skills").
		Where("game_id = ?", gameID).
		Find(&employees).Error
	return employees, err
}

func (p *GormPostgres) SaveEmployee(employee *models.Employee) error {
	return p.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(employee).Error
}

func (p *GormPostgres) DeleteEmployee(id uint) error {
	result := p.db.Select("Skills").Delete(&models.Employee{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// --- ProjectRepository ---

func (p *GormPostgres) GetProject(id uint) (*models.Project, error) {
	var project models.Project
	if err := p.db.Preload("Template").First(&project, id).Error; err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (p *GormPostgres) GetProjectsByGame(gameID uint) ([]models.Project, error) {
	var projects []models.Project
	err := p.db.Preload("Template").
		Where("game_id = ?", gameID).
		Find(&projects).Error
	return projects, err
}

func (p *GormPostgres) SaveProject(project *models.Project) error {
	return p.db.Save(project).Error
}

// --- CatalogRepository ---

func (p *GormPostgres) Skills() ([]models.Skill, error) {
	var skills []models.Skill
	err := p.db.Order("id").Find(&skills).Error
	return skills, err
}

func (p *GormPostgres) ProjectTemplates() ([]models.ProjectTemplate, error) {
	var templates []models.ProjectTemplate
	err := p.db.Order("id").Find(&templates).Error
	return templates, err
}

// Close 关闭数据库连接
func (p *GormPostgres) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}
