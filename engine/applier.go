// engine/applier.go
package engine

import (
	"errors"
	"fmt"

	"github.com/bizround/gameserver/models"
	"github.com/bizround/gameserver/persistence"
)

// Applier applies one committed round action to the owning company, employee
// or project aggregate. It knows nothing about round mechanics; the
// orchestrator decides when applications run and in what order.
type Applier struct {
	store    persistence.Store
	rng      *Rand
	settings Settings
}

func NewApplier(store persistence.Store, rng *Rand, settings Settings) *Applier {
	return &Applier{store: store, rng: rng, settings: settings}
}

// Apply dispatches on the action kind. ConfirmRound is acknowledged but has
// no effect. The default branch guards against an action that passed decoding
// but has no handler; that is a programming error, not user input.
func (a *Applier) Apply(action models.RoundAction, game *models.Game) error {
	switch action.Kind {
	case models.ActionEnrollEmployee:
		return a.enrollEmployee(action, game)
	case models.ActionFireAnEmployee:
		return a.fireEmployee(action)
	case models.ActionSendEmployeeForTraining:
		return a.trainEmployee(action)
	case models.ActionParticipateInProject:
		return a.participateInProject(action, game)
	case models.ActionConfirmRound:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedActionKind, action.Kind)
	}
}

func (a *Applier) enrollEmployee(action models.RoundAction, game *models.Game) error {
	company, err := a.store.GetCompanyByPlayer(action.PlayerID)
	if err != nil {
		if errors.Is(err, persistence.ErrRecordNotFound) {
			return fmt.Errorf("%w: player %d", ErrCompanyNotFound, action.PlayerID)
		}
		return err
	}

	employee, err := a.newHire(game.ID, company.ID)
	if err != nil {
		return err
	}

	return a.store.SaveEmployee(employee)
}

func (a *Applier) fireEmployee(action models.RoundAction) error {
	if _, err := a.employeeInScope(action); err != nil {
		return err
	}
	if err := a.store.DeleteEmployee(action.EmployeeID); err != nil {
		if errors.Is(err, persistence.ErrRecordNotFound) {
			return fmt.Errorf("%w: employee %d", ErrEmployeeNotFound, action.EmployeeID)
		}
		return err
	}
	return nil
}

func (a *Applier) trainEmployee(action models.RoundAction) error {
	employee, err := a.employeeInScope(action)
	if err != nil {
		return err
	}
	if len(employee.Skills) == 0 {
		return fmt.Errorf("%w: employee %d has no skills to train", ErrEmployeeNotFound, action.EmployeeID)
	}

	// Training sharpens one randomly chosen skill by a level and costs the
	// company a flat fee.
	employee.Skills[a.rng.Intn(len(employee.Skills))].Level++
	if err := a.store.SaveEmployee(employee); err != nil {
		return err
	}

	company, err := a.store.GetCompany(employee.CompanyID)
	if err != nil {
		return err
	}
	company.Treasury -= a.settings.TrainingFee
	return a.store.SaveCompany(company)
}

func (a *Applier) participateInProject(action models.RoundAction, game *models.Game) error {
	project, err := a.store.GetProject(action.ProjectID)
	if err != nil || project.GameID != game.ID {
		return fmt.Errorf("%w: project %d", ErrProjectNotFound, action.ProjectID)
	}
	if project.Status != models.ProjectStatusAvailable {
		return fmt.Errorf("%w: project %d is %s", ErrProjectUnavailable, project.ID, project.Status)
	}

	company, err := a.store.GetCompanyByPlayer(action.PlayerID)
	if err != nil {
		return fmt.Errorf("%w: player %d", ErrCompanyNotFound, action.PlayerID)
	}

	// One active engagement per company.
	projects, err := a.store.GetProjectsByGame(game.ID)
	if err != nil {
		return err
	}
	for _, p := range projects {
		if p.CompanyID != nil && *p.CompanyID == company.ID && p.Status == models.ProjectStatusInProgress {
			return fmt.Errorf("%w: company %d already engaged in project %d", ErrProjectUnavailable, company.ID, p.ID)
		}
	}

	project.CompanyID = &company.ID
	project.Status = models.ProjectStatusInProgress
	project.RoundsRemaining = project.Template.Rounds
	return a.store.SaveProject(project)
}

// employeeInScope resolves the referenced employee and verifies it belongs to
// the acting player's company. A reference outside that scope reads as not
// found.
func (a *Applier) employeeInScope(action models.RoundAction) (*models.Employee, error) {
	employee, err := a.store.GetEmployee(action.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("%w: employee %d", ErrEmployeeNotFound, action.EmployeeID)
	}
	company, err := a.store.GetCompanyByPlayer(action.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("%w: player %d", ErrCompanyNotFound, action.PlayerID)
	}
	if employee.CompanyID != company.ID {
		return nil, fmt.Errorf("%w: employee %d is not in company %d", ErrEmployeeNotFound, action.EmployeeID, company.ID)
	}
	return employee, nil
}
