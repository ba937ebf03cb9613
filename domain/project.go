package domain

import (
	"teamboard/domain/daterange"

	"github.com/fundwit/go-commons/types"
)

type Project struct {
	ID          types.ID       `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	StartDate   daterange.Date `json:"startDate"`
	EndDate     daterange.Date `json:"endDate"`
	OwnerID     types.ID       `json:"ownerId"`
	ManagerID   types.ID       `json:"managerId"`
	Status      ProjectStatus  `json:"status"`

	CreateTime types.Timestamp `json:"createTime"`
	UpdateTime types.Timestamp `json:"updateTime"`
}

func (p Project) Range() daterange.Range {
	return daterange.Of(p.StartDate, p.EndDate)
}

type ProjectCreation struct {
	Name        string         `json:"name" binding:"required,lte=100"`
	Description string         `json:"description" binding:"lte=2000"`
	StartDate   daterange.Date `json:"startDate"`
	EndDate     daterange.Date `json:"endDate"`
	ManagerID   types.ID       `json:"managerId"`
}

type ProjectUpdating struct {
	Name        string         `json:"name" binding:"required,lte=100"`
	Description string         `json:"description" binding:"lte=2000"`
	StartDate   daterange.Date `json:"startDate"`
	EndDate     daterange.Date `json:"endDate"`
	ManagerID   types.ID       `json:"managerId"`
	Status      ProjectStatus  `json:"status" binding:"omitempty,oneof=in-progress completed"`
}

type ProjectDatesCheck struct {
	StartDate daterange.Date `json:"startDate"`
	EndDate   daterange.Date `json:"endDate"`
}

type ProjectDetail struct {
	Project
	Divisions []Division `json:"divisions"`
	Members   []Member   `json:"members"`
	Tasks     []Task     `json:"tasks"`
}
