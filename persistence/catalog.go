// persistence/catalog.go
package persistence

import (
	"github.com/bizround/gameserver/models"
)

// DefaultSkills is the skill catalog new stores are seeded with.
func DefaultSkills() []models.Skill {
	return []models.Skill{
		{Name: "Backend Development"},
		{Name: "Frontend Development"},
		{Name: "Database Administration"},
		{Name: "Project Management"},
		{Name: "UX Design"},
		{Name: "DevOps"},
		{Name: "Quality Assurance"},
		{Name: "Data Analysis"},
		{Name: "Security Auditing"},
		{Name: "Technical Writing"},
	}
}

// DefaultProjectTemplates is the project template catalog new stores are
// seeded with. Rewards scale roughly with duration.
func DefaultProjectTemplates() []models.ProjectTemplate {
	return []models.ProjectTemplate{
		{Name: "Landing Page Revamp", Rounds: 1, Reward: 250000},
		{Name: "Mobile App MVP", Rounds: 2, Reward: 550000},
		{Name: "Payment Gateway Integration", Rounds: 2, Reward: 600000},
		{Name: "Data Warehouse Migration", Rounds: 3, Reward: 900000},
		{Name: "E-Commerce Platform", Rounds: 3, Reward: 950000},
		{Name: "Legacy System Rewrite", Rounds: 4, Reward: 1300000},
		{Name: "Fraud Detection Pipeline", Rounds: 3, Reward: 1000000},
		{Name: "Internal Tooling Suite", Rounds: 2, Reward: 500000},
		{Name: "API Gateway Rollout", Rounds: 2, Reward: 650000},
		{Name: "Compliance Audit Portal", Rounds: 4, Reward: 1400000},
	}
}
