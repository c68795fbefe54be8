// persistence/memory.go
package persistence

import (
	"sync"

	"github.com/bizround/gameserver/models"
)

// MemoryStore is an in-memory Store. It backs tests and the "memory" database
// driver for running without PostgreSQL. Aggregates are stored normalized and
// assembled on read, and reads hand out copies so callers mutate nothing
// until they save.
type MemoryStore struct {
	mu        sync.RWMutex
	seq       uint
	games     map[uint]models.Game
	players   map[uint]models.Player
	companies map[uint]models.Company
	employees map[uint]models.Employee
	projects  map[uint]models.Project
	rounds    map[uint]models.Round
	skills    []models.Skill
	templates []models.ProjectTemplate
}

// NewMemoryStore 创建内存存储，预置技能与项目模板目录
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		games:     make(map[uint]models.Game),
		players:   make(map[uint]models.Player),
		companies: make(map[uint]models.Company),
		employees: make(map[uint]models.Employee),
		projects:  make(map[uint]models.Project),
		rounds:    make(map[uint]models.Round),
		skills:    DefaultSkills(),
		templates: DefaultProjectTemplates(),
	}
	for i := range s.skills {
		s.skills[i].ID = uint(i + 1)
	}
	for i := range s.templates {
		s.templates[i].ID = uint(i + 1)
	}
	return s
}

func (s *MemoryStore) nextID() uint {
	s.seq++
	return s.seq
}

// --- assembly helpers (callers hold at least a read lock) ---

func (s *MemoryStore) playerTree(id uint, withEmployees bool) (models.Player, bool) {
	player, ok := s.players[id]
	if !ok {
		return models.Player{}, false
	}
	for _, c := range s.companies {
		if c.PlayerID == id {
			company := c
			if withEmployees {
				company.Employees = s.employeesOfCompany(c.ID)
			}
			player.Company = &company
			break
		}
	}
	return player, true
}

func (s *MemoryStore) employeesOfCompany(companyID uint) []models.Employee {
	var out []models.Employee
	for _, e := range s.employees {
		if e.CompanyID == companyID {
			out = append(out, copyEmployee(e))
		}
	}
	return out
}

func (s *MemoryStore) gameTree(id uint, full bool) (models.Game, bool) {
	game, ok := s.games[id]
	if !ok {
		return models.Game{}, false
	}
	for _, p := range s.players {
		if p.GameID == id {
			player, _ := s.playerTree(p.ID, full)
			game.Players = append(game.Players, player)
		}
	}
	if full {
		for _, r := range s.rounds {
			if r.GameID == id {
				game.Rounds = append(game.Rounds, copyRound(r))
			}
		}
		for _, pr := range s.projects {
			if pr.GameID == id {
				game.Projects = append(game.Projects, s.projectTree(pr))
			}
		}
	}
	return game, true
}

func (s *MemoryStore) projectTree(p models.Project) models.Project {
	for _, t := range s.templates {
		if t.ID == p.TemplateID {
			p.Template = t
			break
		}
	}
	return p
}

func copyEmployee(e models.Employee) models.Employee {
	e.Skills = append([]models.LeveledSkill(nil), e.Skills...)
	return e
}

func copyRound(r models.Round) models.Round {
	r.Actions = append([]models.RoundAction(nil), r.Actions...)
	return r
}

// --- GameRepository ---

func (s *MemoryStore) GetGame(id uint) (*models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.gameTree(id, false)
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &game, nil
}

func (s *MemoryStore) GetGameForOverview(id uint) (*models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.gameTree(id, true)
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &game, nil
}

func (s *MemoryStore) GetJoinableGames() ([]models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Game
	for id, g := range s.games {
		if g.Status == models.GameStatusWaiting {
			game, _ := s.gameTree(id, false)
			out = append(out, game)
		}
	}
	return out, nil
}

func (s *MemoryStore) SaveGame(game *models.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if game.ID == 0 {
		game.ID = s.nextID()
	}
	stored := *game
	stored.Players = nil
	stored.Rounds = nil
	stored.Projects = nil
	s.games[stored.ID] = stored
	return nil
}

func (s *MemoryStore) FinishGame(id uint) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	game.Status = models.GameStatusFinished
	s.games[id] = game
	result := game
	return &result, nil
}

// --- RoundRepository ---

func (s *MemoryStore) GetRound(id uint) (*models.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.rounds[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	round := copyRound(stored)
	if game, ok := s.gameTree(round.GameID, false); ok {
		round.Game = &game
	}
	return &round, nil
}

func (s *MemoryStore) SaveRound(round *models.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if round.ID == 0 {
		round.ID = s.nextID()
	}
	for i := range round.Actions {
		if round.Actions[i].ID == 0 {
			round.Actions[i].ID = s.nextID()
		}
		round.Actions[i].RoundID = round.ID
	}
	stored := copyRound(*round)
	stored.Game = nil
	s.rounds[stored.ID] = stored
	return nil
}

// --- PlayerRepository ---

func (s *MemoryStore) GetPlayer(id uint) (*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.playerTree(id, false)
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &player, nil
}

func (s *MemoryStore) SavePlayer(player *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if player.ID == 0 {
		player.ID = s.nextID()
	}
	stored := *player
	stored.Company = nil
	s.players[stored.ID] = stored
	return nil
}

// --- CompanyRepository ---

func (s *MemoryStore) GetCompany(id uint) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	company, ok := s.companies[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	company.Employees = s.employeesOfCompany(id)
	return &company, nil
}

func (s *MemoryStore) GetCompanyByPlayer(playerID uint) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.companies {
		if c.PlayerID == playerID {
			company := c
			company.Employees = s.employeesOfCompany(c.ID)
			return &company, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (s *MemoryStore) SaveCompany(company *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if company.ID == 0 {
		company.ID = s.nextID()
	}
	stored := *company
	stored.Employees = nil
	s.companies[stored.ID] = stored
	return nil
}

// --- EmployeeRepository ---

func (s *MemoryStore) GetEmployee(id uint) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	employee, ok := s.employees[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	result := copyEmployee(employee)
	return &result, nil
}

func (s *MemoryStore) GetEmployeesByGame(gameID uint) ([]models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Employee
	for _, e := range s.employees {
		if e.GameID == gameID {
			out = append(out, copyEmployee(e))
		}
	}
	return out, nil
}

func (s *MemoryStore) SaveEmployee(employee *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if employee.ID == 0 {
		employee.ID = s.nextID()
	}
	for i := range employee.Skills {
		if employee.Skills[i].ID == 0 {
			employee.Skills[i].ID = s.nextID()
		}
		employee.Skills[i].EmployeeID = employee.ID
	}
	s.employees[employee.ID] = copyEmployee(*employee)
	return nil
}

func (s *MemoryStore) DeleteEmployee(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[id]; !ok {
		return ErrRecordNotFound
	}
	delete(s.employees, id)
	return nil
}

// --- ProjectRepository ---

func (s *MemoryStore) GetProject(id uint) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	result := s.projectTree(project)
	return &result, nil
}

func (s *MemoryStore) GetProjectsByGame(gameID uint) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Project
	for _, p := range s.projects {
		if p.GameID == gameID {
			out = append(out, s.projectTree(p))
		}
	}
	return out, nil
}

func (s *MemoryStore) SaveProject(project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if project.ID == 0 {
		project.ID = s.nextID()
	}
	stored := *project
	stored.Template = models.ProjectTemplate{}
	s.projects[stored.ID] = stored
	return nil
}

// --- CatalogRepository ---

func (s *MemoryStore) Skills() ([]models.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Skill(nil), s.skills...), nil
}

func (s *MemoryStore) ProjectTemplates() ([]models.ProjectTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ProjectTemplate(nil), s.templates...), nil
}

// Close 实现 Store 接口，无资源需要释放
func (s *MemoryStore) Close() error {
	return nil
}
