package domain

import (
	"strings"
	"teamboard/domain/daterange"

	"github.com/fundwit/go-commons/types"
)

type Division struct {
	ID            types.ID       `json:"id"`
	ProjectID     types.ID       `json:"projectId"`
	Name          string         `json:"name"`
	MainTask      string         `json:"mainTask"`
	CoordinatorID types.ID       `json:"coordinatorId"`
	Status        Status         `json:"status"`
	StartDate     daterange.Date `json:"startDate"`
	DueDate       daterange.Date `json:"dueDate"`

	CreateTime types.Timestamp `json:"createTime"`
	UpdateTime types.Timestamp `json:"updateTime"`
}

func (d Division) Range() daterange.Range {
	return daterange.Of(d.StartDate, d.DueDate)
}

// NameKey is the form used for per-project name uniqueness.
func (d Division) NameKey() string {
	return DivisionNameKey(d.Name)
}

func DivisionNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type DivisionCreation struct {
	ProjectID     types.ID       `json:"projectId" binding:"required"`
	Name          string         `json:"name" binding:"required,lte=100"`
	MainTask      string         `json:"mainTask" binding:"lte=2000"`
	CoordinatorID types.ID       `json:"coordinatorId"`
	Status        Status         `json:"status" binding:"omitempty,oneof=todo in-progress review done"`
	StartDate     daterange.Date `json:"startDate"`
	DueDate       daterange.Date `json:"dueDate"`
}

type DivisionUpdating struct {
	Name          string         `json:"name" binding:"required,lte=100"`
	MainTask      string         `json:"mainTask" binding:"lte=2000"`
	CoordinatorID types.ID       `json:"coordinatorId"`
	StartDate     daterange.Date `json:"startDate"`
	DueDate       daterange.Date `json:"dueDate"`
}

type DivisionQuery struct {
	ProjectID types.ID `json:"projectId" form:"projectId" binding:"required"`
}

type StatusChanging struct {
	Status Status `json:"status" binding:"required,oneof=todo in-progress review done"`
}

func FindDivision(divisions []Division, id types.ID) (Division, bool) {
	for _, d := range divisions {
		if d.ID == id {
			return d, true
		}
	}
	return Division{}, false
}

func DivisionsOfProject(divisions []Division, projectID types.ID) []Division {
	r := []Division{}
	for _, d := range divisions {
		if d.ProjectID == projectID {
			r = append(r, d)
		}
	}
	return r
}
