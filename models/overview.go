// models/overview.go
// Overview records are the snapshot DTOs pushed to connected clients whenever
// the authoritative game state changes.
package models

// GameOverview 游戏快照，推送给所有观察该游戏的客户端
type GameOverview struct {
	ID              uint              `json:"id"`
	Name            string            `json:"name"`
	Players         []PlayerOverview  `json:"players"`
	PlayersCount    int               `json:"players_count"`
	MaxPlayersCount int               `json:"max_players_count"`
	MaxRounds       int               `json:"max_rounds"`
	CurrentRound    int               `json:"current_round"`
	Status          string            `json:"status"`
	Rounds          []RoundOverview   `json:"rounds"`
	Projects        []ProjectOverview `json:"projects"`
}

type PlayerOverview struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Company CompanyOverview `json:"company"`
}

type CompanyOverview struct {
	ID        uint               `json:"id"`
	Name      string             `json:"name"`
	Treasury  int64              `json:"treasury"`
	Employees []EmployeeOverview `json:"employees"`
}

type EmployeeOverview struct {
	ID     uint            `json:"id"`
	Name   string          `json:"name"`
	Salary float64         `json:"salary"`
	Skills []SkillOverview `json:"skills"`
}

type SkillOverview struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type ProjectOverview struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Rounds          int     `json:"rounds"`
	RoundsRemaining int     `json:"rounds_remaining"`
	Reward          float64 `json:"reward"`
	Status          string  `json:"status"`
}

type RoundOverview struct {
	ID      uint                  `json:"id"`
	Order   int                   `json:"order"`
	Actions []RoundActionOverview `json:"actions"`
}

type RoundActionOverview struct {
	Kind     string `json:"kind"`
	PlayerID uint   `json:"player_id"`
}

// ToOverview 构建整棵快照树
func (g *Game) ToOverview() GameOverview {
	players := make([]PlayerOverview, 0, len(g.Players))
	for i := range g.Players {
		players = append(players, g.Players[i].ToOverview())
	}
	rounds := make([]RoundOverview, 0, len(g.Rounds))
	for i := range g.Rounds {
		rounds = append(rounds, g.Rounds[i].ToOverview())
	}
	projects := make([]ProjectOverview, 0, len(g.Projects))
	for i := range g.Projects {
		projects = append(projects, g.Projects[i].ToOverview())
	}
	return GameOverview{
		ID:              g.ID,
		Name:            g.Name,
		Players:         players,
		PlayersCount:    len(g.Players),
		MaxPlayersCount: g.MaxPlayers,
		MaxRounds:       g.MaxRounds,
		CurrentRound:    g.CurrentRound,
		Status:          string(g.Status),
		Rounds:          rounds,
		Projects:        projects,
	}
}

func (p *Player) ToOverview() PlayerOverview {
	overview := PlayerOverview{ID: p.ID, Name: p.Name}
	if p.Company != nil {
		overview.Company = p.Company.ToOverview()
	}
	return overview
}

func (c *Company) ToOverview() CompanyOverview {
	employees := make([]EmployeeOverview, 0, len(c.Employees))
	for i := range c.Employees {
		employees = append(employees, c.Employees[i].ToOverview())
	}
	return CompanyOverview{ID: c.ID, Name: c.Name, Treasury: c.Treasury, Employees: employees}
}

func (e *Employee) ToOverview() EmployeeOverview {
	skills := make([]SkillOverview, 0, len(e.Skills))
	for _, s := range e.Skills {
		skills = append(skills, SkillOverview{Name: s.Name, Level: s.Level})
	}
	return EmployeeOverview{ID: e.ID, Name: e.Name, Salary: e.Salary, Skills: skills}
}

func (p *Project) ToOverview() ProjectOverview {
	return ProjectOverview{
		ID:              p.ID,
		Name:            p.Template.Name,
		Rounds:          p.Template.Rounds,
		RoundsRemaining: p.RoundsRemaining,
		Reward:          p.Template.Reward,
		Status:          string(p.Status),
	}
}

func (r *Round) ToOverview() RoundOverview {
	actions := make([]RoundActionOverview, 0, len(r.Actions))
	for _, a := range r.Actions {
		actions = append(actions, RoundActionOverview{Kind: string(a.Kind), PlayerID: a.PlayerID})
	}
	return RoundOverview{ID: r.ID, Order: r.Order, Actions: actions}
}
