package domain

import (
	"teamboard/domain/daterange"

	"github.com/fundwit/go-commons/types"
)

type Task struct {
	ID          types.ID       `json:"id"`
	ProjectID   types.ID       `json:"projectId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	AssigneeID  types.ID       `json:"assigneeId"` // member row id, 0 when unassigned
	Status      Status         `json:"status"`
	StartDate   daterange.Date `json:"startDate"`
	DueDate     daterange.Date `json:"dueDate"`

	CreateTime types.Timestamp `json:"createTime"`
	UpdateTime types.Timestamp `json:"updateTime"`
}

func (t Task) Range() daterange.Range {
	return daterange.Of(t.StartDate, t.DueDate)
}

type TaskCreation struct {
	ProjectID   types.ID       `json:"projectId" binding:"required"`
	Title       string         `json:"title" binding:"required,lte=200"`
	Description string         `json:"description" binding:"lte=5000"`
	AssigneeID  types.ID       `json:"assigneeId"`
	Status      Status         `json:"status" binding:"omitempty,oneof=todo in-progress review done"`
	StartDate   daterange.Date `json:"startDate"`
	DueDate     daterange.Date `json:"dueDate"`
}

type TaskUpdating struct {
	Title       string         `json:"title" binding:"required,lte=200"`
	Description string         `json:"description" binding:"lte=5000"`
	AssigneeID  types.ID       `json:"assigneeId"`
	StartDate   daterange.Date `json:"startDate"`
	DueDate     daterange.Date `json:"dueDate"`
}

type TaskQuery struct {
	ProjectID types.ID `json:"projectId" form:"projectId" binding:"required"`
}

func FindTask(tasks []Task, id types.ID) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

func TasksOfProject(tasks []Task, projectID types.ID) []Task {
	r := []Task{}
	for _, t := range tasks {
		if t.ProjectID == projectID {
			r = append(r, t)
		}
	}
	return r
}

// AssigneeDivision resolves the division of the member a task is assigned to.
func AssigneeDivision(t Task, members []Member, divisions []Division) (*Division, bool) {
	if t.AssigneeID == 0 {
		return nil, false
	}
	m, found := FindMember(members, t.AssigneeID)
	if !found || m.DivisionID == ProjectLevel {
		return nil, false
	}
	d, found := FindDivision(divisions, m.DivisionID)
	if !found {
		return nil, false
	}
	return &d, true
}
