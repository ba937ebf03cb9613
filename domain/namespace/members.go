package namespace

import (
	"context"
	"fmt"
	"teamboard/account"
	"teamboard/authority"
	"teamboard/bizerror"
	"teamboard/domain"
	"teamboard/domain/eligibility"
	"teamboard/domain/schedule"
	"teamboard/event"
	"teamboard/persistence"
	"teamboard/session"

	"github.com/fundwit/go-commons/types"
)

var (
	QueryUserInfosFunc = account.QueryUserInfos
)

// AddProjectMember adds a plain member row. A user already placed in another division as a plain member
// is moved instead, so a user never holds two division rows.
func AddProjectMember(c *domain.MemberCreation, s *session.Session) (*domain.Member, error) {
	var result domain.Member
	err := persistence.Transaction(s.Ctx(), func(ctx context.Context) error {
		w, err := persistence.LoadWorkspace(ctx)
		if err != nil {
			return err
		}
		p, err := loadProject(w, c.ProjectID)
		if err != nil {
			return err
		}
		if !authority.CanManageMembers(s.UserID(), *p) {
			return bizerror.ErrForbidden
		}

		names, err := QueryAccountNamesFunc(ctx, []types.ID{c.UserID})
		if err != nil {
			return err
		}
		if _, found := names[c.UserID]; !found {
			return bizerror.NewErrValidation(fmt.Sprintf("user %s does not exist", c.UserID))
		}

		var division *domain.Division
		if c.DivisionID != domain.ProjectLevel {
			d, found := w.Division(c.DivisionID)
			if !found || d.ProjectID != c.ProjectID {
				return bizerror.NewErrValidation(fmt.Sprintf("division %s does not belong to the project", c.DivisionID))
			}
			division = d
		}

		var relocating *domain.Member
		for i := range w.Members {
			m := &w.Members[i]
			if m.ProjectID != c.ProjectID || m.UserID != c.UserID {
				continue
			}
			if m.DivisionID == c.DivisionID {
				return bizerror.ErrMemberExisted
			}
			if m.DivisionID != domain.ProjectLevel {
				if domain.NormalizeRole(string(m.Role)) == domain.RoleLeader {
					return bizerror.ErrLeaderMemberRelocate
				}
				relocating = m
			}
		}

		now := types.CurrentTimestamp()
		if relocating != nil {
			if division != nil {
				if tasks := schedule.DetectMemberConflicts(relocating.ID, division.Range(), w.Tasks); len(tasks) > 0 {
					return bizerror.NewErrValidation(schedule.MsgTaskOutsideDivision)
				}
			}
			relocating.DivisionID = c.DivisionID
			relocating.Role = domain.RoleMember
			relocating.UpdateTime = now
			result = *relocating
		} else {
			result = domain.Member{
				ID:         w.NextMemberID(),
				ProjectID:  c.ProjectID,
				UserID:     c.UserID,
				DivisionID: c.DivisionID,
				Role:       domain.RoleMember,
				CreateTime: now,
				UpdateTime: now,
			}
			w.Members = append(w.Members, result)
		}

		EnsureCoreMembers(w, c.ProjectID)
		if err := w.Save(ctx); err != nil {
			return err
		}
		_, err = event.CreateEventFunc(ctx, event.SourceMember, result.ID, names[c.UserID], c.ProjectID,
			event.EventCategoryCreated, nil, identityOf(s))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RemoveProjectMember deletes one member row. Owner and manager rows stay; removing a leader row
// clears the coordinator of its division.
func RemoveProjectMember(memberID types.ID, s *session.Session) error {
	return persistence.Transaction(s.Ctx(), func(ctx context.Context) error {
		w, err := persistence.LoadWorkspace(ctx)
		if err != nil {
			return err
		}
		m, found := w.Member(memberID)
		if !found {
			return domain.ErrNotFound
		}
		removed := *m
		p, err := loadProject(w, removed.ProjectID)
		if err != nil {
			return err
		}
		if !authority.CanManageMembers(s.UserID(), *p) {
			return bizerror.ErrForbidden
		}

		role := domain.NormalizeRole(string(removed.Role))
		if role == domain.RoleOwner || role == domain.RoleManager {
			return bizerror.ErrOwnerMemberRemove
		}
		if role == domain.RoleLeader {
			if d, found := w.Division(removed.DivisionID); found && d.CoordinatorID == removed.UserID {
				d.CoordinatorID = 0
				d.UpdateTime = types.CurrentTimestamp()
			}
		}

		kept := make([]domain.Member, 0, len(w.Members))
		for _, row := range w.Members {
			if row.ID != memberID {
				kept = append(kept, row)
			}
		}
		w.Members = kept
		w.UnassignTasks(memberID)

		EnsureCoreMembers(w, removed.ProjectID)
		if err := w.Save(ctx); err != nil {
			return err
		}
		_, err = event.CreateEventFunc(ctx, event.SourceMember, memberID, removed.UserID.String(), removed.ProjectID,
			event.EventCategoryDeleted, nil, identityOf(s))
		return err
	})
}

func QueryProjectMembers(q *domain.MemberQuery, s *session.Session) ([]domain.MemberDetail, error) {
	w, err := persistence.LoadWorkspace(s.Ctx())
	if err != nil {
		return nil, err
	}
	p, err := loadProject(w, q.ProjectID)
	if err != nil {
		return nil, err
	}
	if !authority.CanViewProject(s.UserID(), *p, w.Members) {
		return nil, bizerror.ErrForbidden
	}
	return DetailProjectMembers(s.Ctx(), *p, w.Divisions, domain.MembersOfProject(w.Members, p.ID))
}

func DetailProjectMembers(ctx context.Context, p domain.Project, divisions []domain.Division, members []domain.Member) ([]domain.MemberDetail, error) {
	ids := make([]types.ID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	names, err := QueryAccountNamesFunc(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]domain.MemberDetail, 0, len(members))
	for _, m := range members {
		detail := domain.MemberDetail{Member: m, ProjectName: p.Name, MemberName: names[m.UserID]}
		if d, found := domain.FindDivision(divisions, m.DivisionID); found {
			detail.DivisionName = d.Name
		}
		details = append(details, detail)
	}
	return details, nil
}

// QueryEligibleCoordinators lists the users who may coordinate a new division (DivisionID 0) or the given one.
func QueryEligibleCoordinators(q *domain.CoordinatorQuery, s *session.Session) ([]eligibility.Candidate, error) {
	w, err := persistence.LoadWorkspace(s.Ctx())
	if err != nil {
		return nil, err
	}
	p, err := loadProject(w, q.ProjectID)
	if err != nil {
		return nil, err
	}
	if !authority.CanEditDivision(s.UserID(), *p) {
		return nil, bizerror.ErrForbidden
	}
	if q.DivisionID != 0 {
		if d, found := w.Division(q.DivisionID); !found || d.ProjectID != p.ID {
			return nil, domain.ErrNotFound
		}
	}

	users, err := QueryUserInfosFunc(s.Ctx())
	if err != nil {
		return nil, err
	}
	return eligibility.EligibleCoordinators(eligibility.Query{
		Project:           *p,
		Divisions:         w.Divisions,
		Members:           w.Members,
		Candidates:        Candidates(users),
		EditingDivisionID: q.DivisionID,
		Keyword:           q.Keyword,
	}), nil
}

func Candidates(users []account.UserInfo) []eligibility.Candidate {
	candidates := make([]eligibility.Candidate, 0, len(users))
	for _, u := range users {
		candidates = append(candidates, eligibility.Candidate{UserID: u.ID, Name: u.DisplayName(), Email: u.Email})
	}
	return candidates
}
