package authority

import (
	"teamboard/domain"

	"github.com/fundwit/go-commons/types"
)

// CanManageProject holds for the project owner and the project manager.
func CanManageProject(userID types.ID, p domain.Project) bool {
	if userID == 0 {
		return false
	}
	return userID == p.OwnerID || (p.ManagerID != 0 && userID == p.ManagerID)
}

// CanDeleteProject is reserved to the owner, the manager may only edit.
func CanDeleteProject(userID types.ID, p domain.Project) bool {
	return userID != 0 && userID == p.OwnerID
}

func CanViewProject(userID types.ID, p domain.Project, members []domain.Member) bool {
	return CanManageProject(userID, p) || domain.IsProjectMember(members, p.ID, userID)
}

func CanEditDivision(userID types.ID, p domain.Project) bool {
	return CanManageProject(userID, p)
}

func CanDeleteDivision(userID types.ID, p domain.Project) bool {
	return CanManageProject(userID, p)
}

// CanChangeDivisionStatus additionally lets the division's own coordinator move its status.
func CanChangeDivisionStatus(userID types.ID, d domain.Division, p domain.Project) bool {
	return CanManageProject(userID, p) || (userID != 0 && d.CoordinatorID == userID)
}

func CanManageMembers(userID types.ID, p domain.Project) bool {
	return CanManageProject(userID, p)
}

// CanChangeTaskStatus: project managers, the coordinator of the assignee's division, and the assignee.
// assignee is the member row the task is assigned to, nil when unassigned.
func CanChangeTaskStatus(userID types.ID, t domain.Task, assignee *domain.Member, divisions []domain.Division, p domain.Project) bool {
	if CanManageProject(userID, p) {
		return true
	}
	if userID == 0 || assignee == nil || assignee.ID != t.AssigneeID {
		return false
	}
	if assignee.UserID == userID {
		return true
	}
	if assignee.DivisionID == domain.ProjectLevel {
		return false
	}
	d, found := domain.FindDivision(divisions, assignee.DivisionID)
	return found && d.CoordinatorID == userID
}

func CanEditTaskFields(userID types.ID, p domain.Project) bool {
	return CanManageProject(userID, p)
}

func CanDeleteTask(userID types.ID, p domain.Project) bool {
	return CanManageProject(userID, p)
}
