// engine/employee.go
package engine

import (
	"fmt"

	"github.com/bizround/gameserver/models"
)

// hireNames is the candidate pool new hires draw their names from.
var hireNames = []string{
	"Alex Morgan", "Sam Patel", "Jordan Lee", "Casey Nguyen", "Riley Chen",
	"Taylor Brooks", "Morgan Reyes", "Jamie Fox", "Quinn Davis", "Avery Kim",
	"Drew Santos", "Robin Clarke", "Skyler Adams", "Charlie Osei", "Dana Silva",
}

// newHire builds an employee with a fixed-size sample of distinct skills at
// random levels. Salary is a function of skill count and average level,
// scaled down by a random discount of up to ten percent.
func (a *Applier) newHire(gameID, companyID uint) (*models.Employee, error) {
	catalog, err := a.store.Skills()
	if err != nil {
		return nil, err
	}
	count := a.settings.HireSkillCount
	if count > len(catalog) {
		return nil, fmt.Errorf("skill catalog too small: have %d, need %d", len(catalog), count)
	}

	skills := make([]models.LeveledSkill, 0, count)
	levelSum := 0
	for _, idx := range a.rng.Perm(len(catalog))[:count] {
		level := a.rng.Intn(a.settings.SkillLevelMax) + 1
		levelSum += level
		skills = append(skills, models.LeveledSkill{Name: catalog[idx].Name, Level: level})
	}

	avgLevel := float64(levelSum) / float64(count)
	salary := a.settings.SalaryBase * float64(count) * avgLevel * (1 - a.rng.Float64()*0.1)

	return &models.Employee{
		Name:      hireNames[a.rng.Intn(len(hireNames))],
		Salary:    salary,
		GameID:    gameID,
		CompanyID: companyID,
		Skills:    skills,
	}, nil
}
