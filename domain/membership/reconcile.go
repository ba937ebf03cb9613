package membership

import (
	"teamboard/domain"

	"github.com/fundwit/go-commons/types"
)

// Reconciler recomputes member rows so they agree with the project's owner/manager and the
// divisions' coordinator assignments. NextID and Now are injected so the result stays a pure
// function of its inputs; nil values fall back to max(id)+1 and the current time.
type Reconciler struct {
	NextID func() types.ID
	Now    func() types.Timestamp
}

// Reconcile applies the default Reconciler.
func Reconcile(p domain.Project, divisions []domain.Division, members []domain.Member) []domain.Member {
	return Reconciler{}.Reconcile(p, divisions, members)
}

// Reconcile never fails and never touches the input slice. Members of other projects pass through
// untouched. Running it on its own output yields the same rows.
func (r Reconciler) Reconcile(p domain.Project, divisions []domain.Division, members []domain.Member) []domain.Member {
	nextID := r.NextID
	if nextID == nil {
		nextID = sequenceAfter(members)
	}
	now := r.Now
	if now == nil {
		now = types.CurrentTimestamp
	}

	result := make([]domain.Member, len(members))
	copy(result, members)

	projectDivisions := domain.DivisionsOfProject(divisions, p.ID)

	// owner and manager rows are only ever added
	result = ensureProjectLevelRow(result, p.ID, p.OwnerID, domain.RoleOwner, nextID, now)
	result = ensureProjectLevelRow(result, p.ID, p.ManagerID, domain.RoleManager, nextID, now)

	// demotion runs before promotion, so a user switching divisions is judged on current assignments only
	for i := range result {
		m := &result[i]
		if m.ProjectID != p.ID || domain.NormalizeRole(string(m.Role)) != domain.RoleLeader {
			continue
		}
		d, found := domain.FindDivision(projectDivisions, m.DivisionID)
		if !found || d.CoordinatorID != m.UserID {
			m.Role = domain.RoleMember
			m.UpdateTime = now()
		}
	}

	for _, d := range projectDivisions {
		if d.CoordinatorID == 0 {
			continue
		}
		if d.CoordinatorID == p.OwnerID || (p.ManagerID != 0 && d.CoordinatorID == p.ManagerID) {
			continue
		}
		result = relocateLeader(result, p.ID, d, nextID, now)
	}

	return result
}

func ensureProjectLevelRow(members []domain.Member, projectID, userID types.ID, role domain.Role,
	nextID func() types.ID, now func() types.Timestamp) []domain.Member {
	if userID == 0 {
		return members
	}
	for _, m := range members {
		if m.ProjectID == projectID && m.UserID == userID && m.DivisionID == domain.ProjectLevel &&
			domain.NormalizeRole(string(m.Role)) == role {
			return members
		}
	}
	ts := now()
	return append(members, domain.Member{ID: nextID(), ProjectID: projectID, UserID: userID,
		DivisionID: domain.ProjectLevel, Role: role, CreateTime: ts, UpdateTime: ts})
}

// relocateLeader moves the coordinator's single division row to d instead of adding a second one.
func relocateLeader(members []domain.Member, projectID types.ID, d domain.Division,
	nextID func() types.ID, now func() types.Timestamp) []domain.Member {
	base := -1
	for i, m := range members {
		if m.ProjectID != projectID || m.UserID != d.CoordinatorID {
			continue
		}
		if m.DivisionID == d.ID {
			base = i
			break
		}
		if base < 0 {
			base = i
		}
	}

	if base < 0 {
		ts := now()
		return append(members, domain.Member{ID: nextID(), ProjectID: projectID, UserID: d.CoordinatorID,
			DivisionID: d.ID, Role: domain.RoleLeader, CreateTime: ts, UpdateTime: ts})
	}

	b := &members[base]
	if b.DivisionID != d.ID || b.Role != domain.RoleLeader {
		b.DivisionID = d.ID
		b.Role = domain.RoleLeader
		b.UpdateTime = now()
	}
	kept := members[base]

	result := members[:0:0]
	for i, m := range members {
		if i != base && m.ProjectID == projectID && m.UserID == d.CoordinatorID && m.DivisionID != domain.ProjectLevel {
			continue
		}
		if i == base {
			m = kept
		}
		result = append(result, m)
	}
	return result
}

func sequenceAfter(members []domain.Member) func() types.ID {
	var max types.ID
	for _, m := range members {
		if m.ID > max {
			max = m.ID
		}
	}
	return func() types.ID {
		max++
		return max
	}
}
