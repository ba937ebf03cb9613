package domain

import (
	"github.com/fundwit/go-commons/types"
)

// ProjectLevel is the division id of member rows not tied to a division (owner and manager rows).
const ProjectLevel types.ID = 0

type Member struct {
	ID         types.ID `json:"id"`
	ProjectID  types.ID `json:"projectId"`
	UserID     types.ID `json:"userId"`
	DivisionID types.ID `json:"divisionId"`
	Role       Role     `json:"role"`

	CreateTime types.Timestamp `json:"createTime"`
	UpdateTime types.Timestamp `json:"updateTime"`
}

type MemberDetail struct {
	Member

	ProjectName  string `json:"projectName"`
	MemberName   string `json:"memberName"`
	DivisionName string `json:"divisionName"`
}

type MemberCreation struct {
	ProjectID  types.ID `json:"projectId" binding:"required"`
	UserID     types.ID `json:"userId" binding:"required"`
	DivisionID types.ID `json:"divisionId"`
}

type MemberQuery struct {
	ProjectID types.ID `json:"projectId" form:"projectId" binding:"required"`
}

type CoordinatorQuery struct {
	ProjectID  types.ID `form:"projectId" binding:"required"`
	DivisionID types.ID `form:"divisionId"`
	Keyword    string   `form:"keyword"`
}

func FindMember(members []Member, id types.ID) (Member, bool) {
	for _, m := range members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

func MembersOfProject(members []Member, projectID types.ID) []Member {
	r := []Member{}
	for _, m := range members {
		if m.ProjectID == projectID {
			r = append(r, m)
		}
	}
	return r
}

func IsProjectMember(members []Member, projectID, userID types.ID) bool {
	for _, m := range members {
		if m.ProjectID == projectID && m.UserID == userID {
			return true
		}
	}
	return false
}
