package eligibility

import (
	"strings"
	"teamboard/domain"

	"github.com/fundwit/go-commons/types"
)

type Candidate struct {
	UserID types.ID `json:"userId"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
}

// Query describes a coordinator pick for a new division (EditingDivisionID == 0) or an existing one.
type Query struct {
	Project           domain.Project
	Divisions         []domain.Division
	Members           []domain.Member
	Candidates        []Candidate
	EditingDivisionID types.ID
	Keyword           string
}

// EligibleCoordinators keeps candidate order and never returns nil.
func EligibleCoordinators(q Query) []Candidate {
	r := []Candidate{}
	keyword := strings.ToLower(strings.TrimSpace(q.Keyword))
	for _, c := range q.Candidates {
		if !IsEligible(q, c.UserID) {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(c.Name), keyword) &&
			!strings.Contains(strings.ToLower(c.Email), keyword) {
			continue
		}
		r = append(r, c)
	}
	return r
}

// IsEligible applies the role rules of EligibleCoordinators to a single user, ignoring the keyword.
func IsEligible(q Query, userID types.ID) bool {
	if userID == 0 {
		return false
	}
	current := currentCoordinator(q)
	if current != 0 && userID == current {
		return true
	}

	if role, ok := domain.ProjectRoleOf(q.Project, q.Members, userID); ok && (role == domain.RoleOwner || role == domain.RoleManager) {
		return false
	}

	for _, d := range q.Divisions {
		if d.ProjectID == q.Project.ID && d.ID != q.EditingDivisionID && d.CoordinatorID == userID {
			return false
		}
	}

	for _, m := range q.Members {
		if m.ProjectID != q.Project.ID || m.UserID != userID {
			continue
		}
		if !m.Role.Special() {
			continue
		}
		if q.EditingDivisionID != 0 && m.DivisionID == q.EditingDivisionID {
			continue
		}
		return false
	}
	return true
}

func currentCoordinator(q Query) types.ID {
	if q.EditingDivisionID == 0 {
		return 0
	}
	d, found := domain.FindDivision(q.Divisions, q.EditingDivisionID)
	if !found || d.ProjectID != q.Project.ID {
		return 0
	}
	return d.CoordinatorID
}
