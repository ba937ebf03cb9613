package namespace

import (
	"context"
	"fmt"
	"strings"
	"teamboard/account"
	"teamboard/authority"
	"teamboard/bizerror"
	"teamboard/domain"
	"teamboard/domain/membership"
	"teamboard/domain/schedule"
	"teamboard/event"
	"teamboard/persistence"
	"teamboard/session"

	"github.com/fundwit/go-commons/types"
)

var (
	QueryAccountNamesFunc = account.QueryAccountNames
)

type ProjectDatesReport struct {
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages"`
	schedule.Conflicts
}

type MembershipReport struct {
	ProjectID  types.ID `json:"projectId"`
	Consistent bool     `json:"consistent"`
	Violations []string `json:"violations"`
}

func QueryProjects(s *session.Session) ([]domain.Project, error) {
	w, err := persistence.LoadWorkspace(s.Ctx())
	if err != nil {
		return nil, err
	}
	result := []domain.Project{}
	for _, p := range w.Projects {
		if authority.CanViewProject(s.UserID(), p, w.Members) {
			result = append(result, p)
		}
	}
	return result, nil
}

func DetailProject(id types.ID, s *session.Session) (*domain.ProjectDetail, error) {
	w, err := persistence.LoadWorkspace(s.Ctx())
	if err != nil {
		return nil, err
	}
	p, err := loadProject(w, id)
	if err != nil {
		return nil, err
	}
	if !authority.CanViewProject(s.UserID(), *p, w.Members) {
		return nil, bizerror.ErrForbidden
	}
	return &domain.ProjectDetail{
		Project:   *p,
		Divisions: domain.DivisionsOfProject(w.Divisions, id),
		Members:   domain.MembersOfProject(w.Members, id),
		Tasks:     domain.TasksOfProject(w.Tasks, id),
	}, nil
}

// CreateProject makes the caller the owner of the new project.
func CreateProject(c *domain.ProjectCreation, s *session.Session) (*domain.Project, error) {
	if s.UserID() == 0 {
		return nil, bizerror.ErrUnauthenticated
	}

	var created domain.Project
	err := persistence.Transaction(s.Ctx(), func(ctx context.Context) error {
		violations := schedule.ValidateProjectDates(domain.Project{StartDate: c.StartDate, EndDate: c.EndDate}.Range())
		if c.ManagerID != 0 && c.ManagerID != s.UserID() {
			names, err := QueryAccountNamesFunc(ctx, []types.ID{c.ManagerID})
			if err != nil {
				return err
			}
			if _, found := names[c.ManagerID]; !found {
				violations = append(violations, fmt.Sprintf("manager %s does not exist", c.ManagerID))
			}
		}
		if len(violations) > 0 {
			return bizerror.NewErrValidation(violations...)
		}

		w, err := persistence.LoadWorkspace(ctx)
		if err != nil {
			return err
		}
		now := types.CurrentTimestamp()
		created = domain.Project{
			ID:          w.NextProjectID(),
			Name:        strings.TrimSpace(c.Name),
			Description: c.Description,
			StartDate:   c.StartDate,
			EndDate:     c.EndDate,
			OwnerID:     s.UserID(),
			Status:      domain.ProjectInProgress,
			CreateTime:  now,
			UpdateTime:  now,
		}
		if c.ManagerID != s.UserID() {
			created.ManagerID = c.ManagerID
		}
		w.Projects = append(w.Projects, created)
		EnsureCoreMembers(w, created.ID)
		if err := w.Save(ctx); err != nil {
			return err
		}

		_, err = event.CreateEventFunc(ctx, event.SourceProject, created.ID, created.Name, created.ID,
			event.EventCategoryCreated, nil, identityOf(s))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject refuses date changes which would leave divisions or tasks outside the project range.
func UpdateProject(id types.ID, u *domain.ProjectUpdating, s *session.Session) error {
	return persistence.Transaction(s.Ctx(), func(ctx context.Context) error {
		w, err := persistence.LoadWorkspace(ctx)
		if err != nil {
			return err
		}
		p, err := loadProject(w, id)
		if err != nil {
			return err
		}
		if !authority.CanManageProject(s.UserID(), *p) {
			return bizerror.ErrForbidden
		}

		candidate := domain.Project{StartDate: u.StartDate, EndDate: u.EndDate}.Range()
		violations := schedule.ValidateProjectDates(candidate)
		if len(violations) == 0 {
			violations = append(violations, schedule.DetectProjectConflicts(id, candidate, w.Divisions, w.Tasks).Messages()...)
		}

		managerID := u.ManagerID
		if managerID == p.OwnerID {
			managerID = 0
		}
		if managerID != p.ManagerID && managerID != 0 {
			names, err := QueryAccountNamesFunc(ctx, []types.ID{managerID})
			if err != nil {
				return err
			}
			if _, found := names[managerID]; !found {
				violations = append(violations, fmt.Sprintf("manager %s does not exist", managerID))
			}
			for _, d := range domain.DivisionsOfProject(w.Divisions, id) {
				if d.CoordinatorID == managerID {
					violations = append(violations, fmt.Sprintf("manager %s coordinates division %s", managerID, d.Name))
				}
			}
		}
		if len(violations) > 0 {
			return bizerror.NewErrValidation(violations...)
		}

		changes := event.UpdatedProperties{}.
			Changed("name", p.Name, strings.TrimSpace(u.Name)).
			Changed("description", p.Description, u.Description).
			Changed("startDate", p.StartDate.String(), u.StartDate.String()).
			Changed("endDate", p.EndDate.String(), u.EndDate.String()).
			Changed("managerId", p.ManagerID.String(), managerID.String())

		if managerID != p.ManagerID && p.ManagerID != 0 {
			dropManagerRow(w, id, p.ManagerID)
		}

		p.Name = strings.TrimSpace(u.Name)
		p.Description = u.Description
		p.StartDate = u.StartDate
		p.EndDate = u.EndDate
		p.ManagerID = managerID
		if u.Status != "" {
			changes = changes.Changed("status", string(p.Status), string(u.Status))
			p.Status = u.Status
		}
		p.UpdateTime = types.CurrentTimestamp()
		project := *p

		EnsureCoreMembers(w, id)
		if err := w.Save(ctx); err != nil {
			return err
		}
		_, err = event.CreateEventFunc(ctx, event.SourceProject, id, project.Name, id,
			event.EventCategoryPropertyUpdated, changes, identityOf(s))
		return err
	})
}

// dropManagerRow removes the project-level manager row of a previous manager.
func dropManagerRow(w *persistence.Workspace, projectID, userID types.ID) {
	kept := []domain.Member{}
	removed := []types.ID{}
	for _, m := range w.Members {
		if m.ProjectID == projectID && m.UserID == userID && m.DivisionID == domain.ProjectLevel &&
			domain.NormalizeRole(string(m.Role)) == domain.RoleManager {
			removed = append(removed, m.ID)
			continue
		}
		kept = append(kept, m)
	}
	w.Members = kept
	w.UnassignTasks(removed...)
}

// CheckProjectDates reports, without saving, what a change of the project dates would conflict with.
func CheckProjectDates(id types.ID, c *domain.ProjectDatesCheck, s *session.Session) (*ProjectDatesReport, error) {
	w, err := persistence.LoadWorkspace(s.Ctx())
	if err != nil {
		return nil, err
	}
	p, err := loadProject(w, id)
	if err != nil {
		return nil, err
	}
	if !authority.CanViewProject(s.UserID(), *p, w.Members) {
		return nil, bizerror.ErrForbidden
	}

	candidate := domain.Project{StartDate: c.StartDate, EndDate: c.EndDate}.Range()
	report := &ProjectDatesReport{Messages: schedule.ValidateProjectDates(candidate)}
	report.Conflicts = schedule.DetectProjectConflicts(id, candidate, w.Divisions, w.Tasks)
	report.Messages = append(report.Messages, report.Conflicts.Messages()...)
	report.Valid = len(report.Messages) == 0
	return report, nil
}

// DeleteProject removes the project with all its divisions, members and tasks. Owner only.
func DeleteProject(id types.ID, s *session.Session) error {
	return persistence.Transaction(s.Ctx(), func(ctx context.Context) error {
		w, err := persistence.LoadWorkspace(ctx)
		if err != nil {
			return err
		}
		p, err := loadProject(w, id)
		if err != nil {
			return err
		}
		if !authority.CanDeleteProject(s.UserID(), *p) {
			return bizerror.ErrForbidden
		}
		project := *p
		w.CascadeDeleteProject(id)
		if err := w.Save(ctx); err != nil {
			return err
		}
		_, err = event.CreateEventFunc(ctx, event.SourceProject, id, project.Name, id,
			event.EventCategoryDeleted, nil, identityOf(s))
		return err
	})
}

func CheckMembership(id types.ID, s *session.Session) (*MembershipReport, error) {
	w, err := persistence.LoadWorkspace(s.Ctx())
	if err != nil {
		return nil, err
	}
	p, err := loadProject(w, id)
	if err != nil {
		return nil, err
	}
	if !authority.CanViewProject(s.UserID(), *p, w.Members) {
		return nil, bizerror.ErrForbidden
	}
	violations := membership.Check(*p, w.Divisions, w.Members)
	if violations == nil {
		violations = []string{}
	}
	return &MembershipReport{ProjectID: id, Consistent: len(violations) == 0, Violations: violations}, nil
}
