package membership

import (
	"fmt"
	"teamboard/domain"

	"github.com/fundwit/go-commons/types"
)

// Check lists every membership invariant the rows of project p currently break. A reconciled
// list that came from valid coordinator assignments yields no messages.
func Check(p domain.Project, divisions []domain.Division, members []domain.Member) []string {
	var violations []string
	rows := domain.MembersOfProject(members, p.ID)

	if !hasRow(rows, p.OwnerID, domain.ProjectLevel, domain.RoleOwner) {
		violations = append(violations, fmt.Sprintf("owner %s has no project-level owner row", p.OwnerID))
	}
	if p.ManagerID != 0 && !hasRow(rows, p.ManagerID, domain.ProjectLevel, domain.RoleManager) {
		violations = append(violations, fmt.Sprintf("manager %s has no project-level manager row", p.ManagerID))
	}

	divisionRows := map[types.ID]int{}
	for _, m := range rows {
		if m.DivisionID != domain.ProjectLevel {
			divisionRows[m.UserID]++
		}
	}
	for _, m := range rows {
		if count := divisionRows[m.UserID]; count > 1 {
			violations = append(violations, fmt.Sprintf("user %s has %d division rows", m.UserID, count))
			divisionRows[m.UserID] = 0
		}
	}

	projectDivisions := domain.DivisionsOfProject(divisions, p.ID)
	coordinators := map[types.ID]types.ID{}
	for _, d := range projectDivisions {
		if d.CoordinatorID == 0 {
			continue
		}
		if other, found := coordinators[d.CoordinatorID]; found {
			violations = append(violations, fmt.Sprintf("user %s coordinates divisions %s and %s", d.CoordinatorID, other, d.ID))
		}
		coordinators[d.CoordinatorID] = d.ID
		if d.CoordinatorID == p.OwnerID || d.CoordinatorID == p.ManagerID {
			violations = append(violations, fmt.Sprintf("division %s is coordinated by the project owner or manager", d.ID))
			continue
		}
		if n := countRows(rows, d.CoordinatorID, d.ID, domain.RoleLeader); n != 1 {
			violations = append(violations, fmt.Sprintf("division %s coordinator %s has %d leader rows", d.ID, d.CoordinatorID, n))
		}
	}

	for _, m := range rows {
		if domain.NormalizeRole(string(m.Role)) != domain.RoleLeader {
			continue
		}
		d, found := domain.FindDivision(projectDivisions, m.DivisionID)
		if !found || d.CoordinatorID != m.UserID {
			violations = append(violations, fmt.Sprintf("member %s is a leader of division %s without coordinating it", m.ID, m.DivisionID))
		}
	}
	return violations
}

func hasRow(rows []domain.Member, userID, divisionID types.ID, role domain.Role) bool {
	return countRows(rows, userID, divisionID, role) > 0
}

func countRows(rows []domain.Member, userID, divisionID types.ID, role domain.Role) int {
	n := 0
	for _, m := range rows {
		if m.UserID == userID && m.DivisionID == divisionID && domain.NormalizeRole(string(m.Role)) == role {
			n++
		}
	}
	return n
}
