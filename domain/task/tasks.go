package task

import (
	"context"
	"fmt"
	"strings"
	"teamboard/authority"
	"teamboard/bizerror"
	"teamboard/domain"
	"teamboard/domain/schedule"
	"teamboard/event"
	"teamboard/persistence"
	"teamboard/session"

	"github.com/fundwit/go-commons/types"
)

func QueryTasks(q *domain.TaskQuery, s *session.Session) ([]domain.Task, error) {
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
	return domain.TasksOfProject(w.Tasks, p.ID), nil
}

func CreateTask(c *domain.TaskCreation, s *session.Session) (*domain.Task, error) {
	var created domain.Task
	err := persistence.Transaction(s.Ctx(), func(ctx context.Context) error {
		w, err := persistence.LoadWorkspace(ctx)
		if err != nil {
			return err
		}
		p, found := w.Project(c.ProjectID)
		if !found {
			return domain.ErrNotFound
		}
		if !authority.CanEditTaskFields(s.UserID(), *p) {
			return bizerror.ErrForbidden
		}

		now := types.CurrentTimestamp()
		created = domain.Task{
			ID:          w.NextTaskID(),
			ProjectID:   p.ID,
			Title:       strings.TrimSpace(c.Title),
			Description: c.Description,
			AssigneeID:  c.AssigneeID,
			Status:      c.Status,
			StartDate:   c.StartDate,
			DueDate:     c.DueDate,
			CreateTime:  now,
			UpdateTime:  now,
		}
		if created.Status == "" {
			created.Status = domain.StatusTodo
		}
		if violations := ValidateTask(w, *p, created); len(violations) > 0 {
			return bizerror.NewErrValidation(violations...)
		}

		w.Tasks = append(w.Tasks, created)
		if err := persistence.SaveTasks(ctx, w.Tasks); err != nil {
			return err
		}
		_, err = event.CreateEventFunc(ctx, event.SourceTask, created.ID, created.Title, p.ID,
			event.EventCategoryCreated, nil, &s.Identity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ValidateTask checks the assignee belongs to the project and the dates fit the assignee's division and the project.
func ValidateTask(w *persistence.Workspace, p domain.Project, t domain.Task) []string {
	violations := []string{}
	if t.Title == "" {
		violations = append(violations, "task title is required")
	}
	if t.AssigneeID != 0 {
		m, found := domain.FindMember(w.Members, t.AssigneeID)
		if !found || m.ProjectID != p.ID {
			violations = append(violations, fmt.Sprintf("assignee %s is not a member of the project", t.AssigneeID))
			return append(violations, schedule.ValidateTaskDates(p, nil, t)...)
		}
	}
	division, _ := domain.AssigneeDivision(t, w.Members, w.Divisions)
	return append(violations, schedule.ValidateTaskDates(p, division, t)...)
}

func UpdateTask(id types.ID, u *domain.TaskUpdating, s *session.Session) error {
	return persistence.Transaction(s.Ctx(), func(ctx context.Context) error {
		w, err := persistence.LoadWorkspace(ctx)
		if err != nil {
			return err
		}
		t, found := w.Task(id)
		if !found {
			return domain.ErrNotFound
		}
		p, found := w.Project(t.ProjectID)
		if !found {
			return domain.ErrNotFound
		}
		if !authority.CanEditTaskFields(s.UserID(), *p) {
			return bizerror.ErrForbidden
		}

		candidate := *t
		candidate.Title = strings.TrimSpace(u.Title)
		candidate.Description = u.Description
		candidate.AssigneeID = u.AssigneeID
		candidate.StartDate = u.StartDate
		candidate.DueDate = u.DueDate
		if violations := ValidateTask(w, *p, candidate); len(violations) > 0 {
			return bizerror.NewErrValidation(violations...)
		}

		changes := event.UpdatedProperties{}.
			Changed("title", t.Title, candidate.Title).
			Changed("description", t.Description, candidate.Description).
			Changed("assigneeId", t.AssigneeID.String(), candidate.AssigneeID.String()).
			Changed("startDate", t.StartDate.String(), candidate.StartDate.String()).
			Changed("dueDate", t.DueDate.String(), candidate.DueDate.String())
		candidate.UpdateTime = types.CurrentTimestamp()
		*t = candidate

		if err := persistence.SaveTasks(ctx, w.Tasks); err != nil {
			return err
		}
		_, err = event.CreateEventFunc(ctx, event.SourceTask, id, candidate.Title, candidate.ProjectID,
			event.EventCategoryPropertyUpdated, changes, &s.Identity)
		return err
	})
}

// ChangeTaskStatus is open to project managers, the coordinator of the assignee's division and the assignee.
func ChangeTaskStatus(id types.ID, c *domain.StatusChanging, s *session.Session) error {
	return persistence.Transaction(s.Ctx(), func(ctx context.Context) error {
		w, err := persistence.LoadWorkspace(ctx)
		if err != nil {
			return err
		}
		t, found := w.Task(id)
		if !found {
			return domain.ErrNotFound
		}
		p, found := w.Project(t.ProjectID)
		if !found {
			return domain.ErrNotFound
		}
		var assignee *domain.Member
		if m, found := domain.FindMember(w.Members, t.AssigneeID); found && t.AssigneeID != 0 {
			assignee = &m
		}
		if !authority.CanChangeTaskStatus(s.UserID(), *t, assignee, w.Divisions, *p) {
			return bizerror.ErrForbidden
		}
		if err := domain.CheckStatusTransition(t.Status, c.Status); err != nil {
			return err
		}
		if t.Status == c.Status {
			return nil
		}

		changes := event.UpdatedProperties{}.Changed("status", string(t.Status), string(c.Status))
		t.Status = c.Status
		t.UpdateTime = types.CurrentTimestamp()
		task := *t
		if err := persistence.SaveTasks(ctx, w.Tasks); err != nil {
			return err
		}
		_, err = event.CreateEventFunc(ctx, event.SourceTask, id, task.Title, task.ProjectID,
			event.EventCategoryPropertyUpdated, changes, &s.Identity)
		return err
	})
}

func DeleteTask(id types.ID, s *session.Session) error {
	return persistence.Transaction(s.Ctx(), func(ctx context.Context) error {
		w, err := persistence.LoadWorkspace(ctx)
		if err != nil {
			return err
		}
		t, found := w.Task(id)
		if !found {
			return domain.ErrNotFound
		}
		task := *t
		p, found := w.Project(task.ProjectID)
		if !found {
			return domain.ErrNotFound
		}
		if !authority.CanDeleteTask(s.UserID(), *p) {
			return bizerror.ErrForbidden
		}

		tasks := make([]domain.Task, 0, len(w.Tasks))
		for _, other := range w.Tasks {
			if other.ID != id {
				tasks = append(tasks, other)
			}
		}
		if err := persistence.SaveTasks(ctx, tasks); err != nil {
			return err
		}
		_, err = event.CreateEventFunc(ctx, event.SourceTask, id, task.Title, task.ProjectID,
			event.EventCategoryDeleted, nil, &s.Identity)
		return err
	})
}
