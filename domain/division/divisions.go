package division

import (
	"context"
	"fmt"
	"strings"
	"teamboard/account"
	"teamboard/authority"
	"teamboard/bizerror"
	"teamboard/domain"
	"teamboard/domain/eligibility"
	"teamboard/domain/namespace"
	"teamboard/domain/schedule"
	"teamboard/event"
	"teamboard/persistence"
	"teamboard/session"

	"github.com/fundwit/go-commons/types"
)

const (
	MsgNameRequired                = "division name is required"
	MsgCoordinatorIsOwnerOrManager = "the project owner or manager can not coordinate a division"
)

var (
	QueryAccountNamesFunc = account.QueryAccountNames
)

func QueryDivisions(q *domain.DivisionQuery, s *session.Session) ([]domain.Division, error) {
	w, err := persistence.LoadWorkspace(s.Ctx())
	if err != nil {
		return nil, err
	}
	p, found := w.Project(q.ProjectID)
	if !found {
		return nil, domain.ErrNotFound
	}
	if !authority.CanViewProject(s.UserID(), *p, w.Members) {
		return nil, bizerror.ErrForbidden
	}
	return domain.DivisionsOfProject(w.Divisions, p.ID), nil
}

func CreateDivision(c *domain.DivisionCreation, s *session.Session) (*domain.Division, error) {
	var created domain.Division
	err := persistence.Transaction(s.Ctx(), func(ctx context.Context) error {
		w, err := persistence.LoadWorkspace(ctx)
		if err != nil {
			return err
		}
		p, found := w.Project(c.ProjectID)
		if !found {
			return domain.ErrNotFound
		}
		if !authority.CanEditDivision(s.UserID(), *p) {
			return bizerror.ErrForbidden
		}

		now := types.CurrentTimestamp()
		created = domain.Division{
			ID:            w.NextDivisionID(),
			ProjectID:     p.ID,
			Name:          strings.TrimSpace(c.Name),
			MainTask:      c.MainTask,
			CoordinatorID: c.CoordinatorID,
			Status:        c.Status,
			StartDate:     c.StartDate,
			DueDate:       c.DueDate,
			CreateTime:    now,
			UpdateTime:    now,
		}
		if created.Status == "" {
			created.Status = domain.StatusTodo
		}
		violations, err := ValidateDivision(ctx, w, *p, created, 0)
		if err != nil {
			return err
		}
		if len(violations) > 0 {
			return bizerror.NewErrValidation(violations...)
		}

		w.Divisions = append(w.Divisions, created)
		namespace.EnsureCoreMembers(w, p.ID)
		if err := w.Save(ctx); err != nil {
			return err
		}
		_, err = event.CreateEventFunc(ctx, event.SourceDivision, created.ID, created.Name, p.ID,
			event.EventCategoryCreated, nil, &s.Identity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func UpdateDivision(id types.ID, u *domain.DivisionUpdating, s *session.Session) error {
	return persistence.Transaction(s.Ctx(), func(ctx context.Context) error {
		w, err := persistence.LoadWorkspace(ctx)
		if err != nil {
			return err
		}
		d, found := w.Division(id)
		if !found {
			return domain.ErrNotFound
		}
		p, found := w.Project(d.ProjectID)
		if !found {
			return domain.ErrNotFound
		}
		if !authority.CanEditDivision(s.UserID(), *p) {
			return bizerror.ErrForbidden
		}

		candidate := *d
		candidate.Name = strings.TrimSpace(u.Name)
		candidate.MainTask = u.MainTask
		candidate.CoordinatorID = u.CoordinatorID
		candidate.StartDate = u.StartDate
		candidate.DueDate = u.DueDate
		violations, err := ValidateDivision(ctx, w, *p, candidate, id)
		if err != nil {
			return err
		}
		if len(violations) > 0 {
			return bizerror.NewErrValidation(violations...)
		}

		changes := event.UpdatedProperties{}.
			Changed("name", d.Name, candidate.Name).
			Changed("mainTask", d.MainTask, candidate.MainTask).
			Changed("coordinatorId", d.CoordinatorID.String(), candidate.CoordinatorID.String()).
			Changed("startDate", d.StartDate.String(), candidate.StartDate.String()).
			Changed("dueDate", d.DueDate.String(), candidate.DueDate.String())
		candidate.UpdateTime = types.CurrentTimestamp()
		*d = candidate

		namespace.EnsureCoreMembers(w, p.ID)
		if err := w.Save(ctx); err != nil {
			return err
		}
		_, err = event.CreateEventFunc(ctx, event.SourceDivision, id, candidate.Name, p.ID,
			event.EventCategoryPropertyUpdated, changes, &s.Identity)
		return err
	})
}

// ValidateDivision collects every violation of a division about to be saved. editingID is 0 for a new division.
func ValidateDivision(ctx context.Context, w *persistence.Workspace, p domain.Project, d domain.Division, editingID types.ID) ([]string, error) {
	violations := []string{}
	if d.Name == "" {
		violations = append(violations, MsgNameRequired)
	} else {
		for _, other := range domain.DivisionsOfProject(w.Divisions, p.ID) {
			if other.ID != editingID && other.NameKey() == d.NameKey() {
				violations = append(violations, fmt.Sprintf("division name %q is already used in this project", d.Name))
				break
			}
		}
	}

	violations = append(violations, schedule.ValidateDivisionDates(p, d)...)

	if d.CoordinatorID != 0 {
		current := domain.Division{}
		if editingID != 0 {
			current, _ = domain.FindDivision(w.Divisions, editingID)
		}
		if d.CoordinatorID != current.CoordinatorID {
			coordinatorViolation, err := validateCoordinator(ctx, w, p, d.CoordinatorID, editingID)
			if err != nil {
				return nil, err
			}
			if coordinatorViolation != "" {
				violations = append(violations, coordinatorViolation)
			} else if d.Range().Valid() {
				if row, moves := relocatedRow(w, p.ID, d.CoordinatorID, editingID); moves &&
					len(schedule.DetectMemberConflicts(row.ID, d.Range(), w.Tasks)) > 0 {
					violations = append(violations, schedule.MsgTaskOutsideDivision)
				}
			}
		}
	}

	if editingID != 0 && d.Range().Valid() {
		if conflicts := schedule.DetectDivisionConflicts(editingID, d.Range(), w.Members, w.Tasks); len(conflicts) > 0 {
			violations = append(violations, schedule.MsgDivisionExcludesItsTasks)
		}
	}
	return violations, nil
}

func validateCoordinator(ctx context.Context, w *persistence.Workspace, p domain.Project, userID, editingID types.ID) (string, error) {
	if userID == p.OwnerID || (p.ManagerID != 0 && userID == p.ManagerID) {
		return MsgCoordinatorIsOwnerOrManager, nil
	}
	names, err := QueryAccountNamesFunc(ctx, []types.ID{userID})
	if err != nil {
		return "", err
	}
	if _, found := names[userID]; !found {
		return fmt.Sprintf("coordinator %s does not exist", userID), nil
	}
	q := eligibility.Query{Project: p, Divisions: w.Divisions, Members: w.Members, EditingDivisionID: editingID}
	if !eligibility.IsEligible(q, userID) {
		return fmt.Sprintf("user %s is not eligible to coordinate this division", names[userID]), nil
	}
	return "", nil
}

// relocatedRow picks the row reconciliation turns into the coordinator's leader row: the row already at
// the division, else the user's first row in the project. moves is false when no existing row changes division.
func relocatedRow(w *persistence.Workspace, projectID, userID, editingID types.ID) (row domain.Member, moves bool) {
	found := false
	for _, m := range w.Members {
		if m.ProjectID != projectID || m.UserID != userID {
			continue
		}
		if editingID != 0 && m.DivisionID == editingID {
			return m, false
		}
		if !found {
			row, found = m, true
		}
	}
	return row, found
}

// ChangeDivisionStatus is open to project managers and the division coordinator.
func ChangeDivisionStatus(id types.ID, c *domain.StatusChanging, s *session.Session) error {
	return persistence.Transaction(s.Ctx(), func(ctx context.Context) error {
		w, err := persistence.LoadWorkspace(ctx)
		if err != nil {
			return err
		}
		d, found := w.Division(id)
		if !found {
			return domain.ErrNotFound
		}
		p, found := w.Project(d.ProjectID)
		if !found {
			return domain.ErrNotFound
		}
		if !authority.CanChangeDivisionStatus(s.UserID(), *d, *p) {
			return bizerror.ErrForbidden
		}
		if err := domain.CheckStatusTransition(d.Status, c.Status); err != nil {
			return err
		}
		if d.Status == c.Status {
			return nil
		}

		changes := event.UpdatedProperties{}.Changed("status", string(d.Status), string(c.Status))
		d.Status = c.Status
		d.UpdateTime = types.CurrentTimestamp()
		division := *d
		if err := persistence.SaveDivisions(ctx, w.Divisions); err != nil {
			return err
		}
		_, err = event.CreateEventFunc(ctx, event.SourceDivision, id, division.Name, division.ProjectID,
			event.EventCategoryPropertyUpdated, changes, &s.Identity)
		return err
	})
}

// DeleteDivision also removes the member rows placed in the division and unassigns their tasks.
func DeleteDivision(id types.ID, s *session.Session) error {
	return persistence.Transaction(s.Ctx(), func(ctx context.Context) error {
		w, err := persistence.LoadWorkspace(ctx)
		if err != nil {
			return err
		}
		d, found := w.Division(id)
		if !found {
			return domain.ErrNotFound
		}
		division := *d
		p, found := w.Project(division.ProjectID)
		if !found {
			return domain.ErrNotFound
		}
		if !authority.CanDeleteDivision(s.UserID(), *p) {
			return bizerror.ErrForbidden
		}

		divisions := make([]domain.Division, 0, len(w.Divisions))
		for _, other := range w.Divisions {
			if other.ID != id {
				divisions = append(divisions, other)
			}
		}
		w.Divisions = divisions

		members := make([]domain.Member, 0, len(w.Members))
		removed := []types.ID{}
		for _, m := range w.Members {
			if m.ProjectID == division.ProjectID && m.DivisionID == id {
				removed = append(removed, m.ID)
				continue
			}
			members = append(members, m)
		}
		w.Members = members
		w.UnassignTasks(removed...)

		namespace.EnsureCoreMembers(w, division.ProjectID)
		if err := w.Save(ctx); err != nil {
			return err
		}
		_, err = event.CreateEventFunc(ctx, event.SourceDivision, id, division.Name, division.ProjectID,
			event.EventCategoryDeleted, nil, &s.Identity)
		return err
	})
}
