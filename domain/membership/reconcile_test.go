package membership_test

import (
	"math/rand"
	"teamboard/domain"
	"teamboard/domain/membership"
	"time"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const (
	uOwner   types.ID = 100
	uManager types.ID = 200
	u1       types.ID = 1
	u2       types.ID = 2
	u3       types.ID = 3
)

var (
	fixedTime = types.TimestampOfDate(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	laterTime = types.TimestampOfDate(2024, 1, 1, 10, 0, 0, 0, time.UTC)
)

func fixedReconciler(members []domain.Member) membership.Reconciler {
	var max types.ID
	for _, m := range members {
		if m.ID > max {
			max = m.ID
		}
	}
	return membership.Reconciler{
		NextID: func() types.ID { max++; return max },
		Now:    func() types.Timestamp { return fixedTime },
	}
}

func reconcile(p domain.Project, divisions []domain.Division, members []domain.Member) []domain.Member {
	return fixedReconciler(members).Reconcile(p, divisions, members)
}

func withoutTimestamps(members []domain.Member) []domain.Member {
	r := make([]domain.Member, 0, len(members))
	for _, m := range members {
		m.CreateTime = types.Timestamp{}
		m.UpdateTime = types.Timestamp{}
		r = append(r, m)
	}
	return r
}

func rowsOf(members []domain.Member, userID types.ID) []domain.Member {
	var r []domain.Member
	for _, m := range members {
		if m.UserID == userID {
			r = append(r, m)
		}
	}
	return r
}

var _ = Describe("Reconcile", func() {
	var (
		project domain.Project
		d1, d2  domain.Division
	)

	BeforeEach(func() {
		project = domain.Project{ID: 10, OwnerID: uOwner}
		d1 = domain.Division{ID: 1, ProjectID: 10, Name: "D1", CoordinatorID: u1}
		d2 = domain.Division{ID: 2, ProjectID: 10, Name: "D2"}
	})

	Describe("owner and manager rows", func() {
		It("should add missing owner and manager rows at project level", func() {
			project.ManagerID = uManager
			r := reconcile(project, nil, nil)
			Expect(withoutTimestamps(r)).To(Equal([]domain.Member{
				{ID: 1, ProjectID: 10, UserID: uOwner, DivisionID: domain.ProjectLevel, Role: domain.RoleOwner},
				{ID: 2, ProjectID: 10, UserID: uManager, DivisionID: domain.ProjectLevel, Role: domain.RoleManager},
			}))
			Expect(r[0].CreateTime).To(Equal(fixedTime))
		})

		It("should never alter existing owner and manager rows", func() {
			project.ManagerID = uManager
			members := []domain.Member{
				{ID: 7, ProjectID: 10, UserID: uOwner, Role: domain.RoleOwner},
				{ID: 8, ProjectID: 10, UserID: uManager, Role: domain.RoleManager},
			}
			Expect(reconcile(project, []domain.Division{d1, d2}, members)[:2]).To(Equal(members))
		})

		It("should skip the manager row when the project has no manager", func() {
			Expect(reconcile(project, nil, nil)).To(HaveLen(1))
		})
	})

	Describe("scenarios", func() {
		It("should create the coordinator's leader row next to the owner row", func() {
			members := []domain.Member{{ID: 1, ProjectID: 10, UserID: uOwner, Role: domain.RoleOwner}}
			r := reconcile(project, []domain.Division{d1}, members)
			Expect(withoutTimestamps(r)).To(Equal([]domain.Member{
				{ID: 1, ProjectID: 10, UserID: uOwner, DivisionID: domain.ProjectLevel, Role: domain.RoleOwner},
				{ID: 2, ProjectID: 10, UserID: u1, DivisionID: d1.ID, Role: domain.RoleLeader},
			}))
		})

		It("should demote the previous coordinator and promote the new one", func() {
			members := reconcile(project, []domain.Division{d1}, []domain.Member{
				{ID: 1, ProjectID: 10, UserID: uOwner, Role: domain.RoleOwner}})

			d1.CoordinatorID = u2
			r := reconcile(project, []domain.Division{d1}, members)
			Expect(withoutTimestamps(r)).To(Equal([]domain.Member{
				{ID: 1, ProjectID: 10, UserID: uOwner, DivisionID: domain.ProjectLevel, Role: domain.RoleOwner},
				{ID: 2, ProjectID: 10, UserID: u1, DivisionID: d1.ID, Role: domain.RoleMember},
				{ID: 3, ProjectID: 10, UserID: u2, DivisionID: d1.ID, Role: domain.RoleLeader},
			}))
		})

		It("should move a plain member to the division they now lead", func() {
			d1.CoordinatorID = u3
			members := []domain.Member{
				{ID: 1, ProjectID: 10, UserID: uOwner, Role: domain.RoleOwner},
				{ID: 2, ProjectID: 10, UserID: u3, DivisionID: d2.ID, Role: domain.RoleMember},
			}
			r := reconcile(project, []domain.Division{d1, d2}, members)
			Expect(withoutTimestamps(rowsOf(r, u3))).To(Equal([]domain.Member{
				{ID: 2, ProjectID: 10, UserID: u3, DivisionID: d1.ID, Role: domain.RoleLeader},
			}))
			Expect(r).To(HaveLen(2))
			Expect(r[1].UpdateTime).To(Equal(fixedTime))
		})

		It("should prefer the row already at the division and drop the others", func() {
			members := []domain.Member{
				{ID: 1, ProjectID: 10, UserID: uOwner, Role: domain.RoleOwner},
				{ID: 2, ProjectID: 10, UserID: u1, DivisionID: d2.ID, Role: domain.RoleMember},
				{ID: 3, ProjectID: 10, UserID: u1, DivisionID: d1.ID, Role: domain.RoleMember},
			}
			r := reconcile(project, []domain.Division{d1, d2}, members)
			Expect(withoutTimestamps(rowsOf(r, u1))).To(Equal([]domain.Member{
				{ID: 3, ProjectID: 10, UserID: u1, DivisionID: d1.ID, Role: domain.RoleLeader},
			}))
		})

		It("should relocate the first row when none is at the division", func() {
			members := []domain.Member{
				{ID: 1, ProjectID: 10, UserID: uOwner, Role: domain.RoleOwner},
				{ID: 2, ProjectID: 10, UserID: u1, DivisionID: domain.ProjectLevel, Role: domain.RoleMember},
				{ID: 3, ProjectID: 10, UserID: u1, DivisionID: d2.ID, Role: domain.RoleMember},
			}
			r := reconcile(project, []domain.Division{d1, d2}, members)
			Expect(withoutTimestamps(rowsOf(r, u1))).To(Equal([]domain.Member{
				{ID: 2, ProjectID: 10, UserID: u1, DivisionID: d1.ID, Role: domain.RoleLeader},
			}))
		})

		It("should demote leaders of deleted divisions instead of removing them", func() {
			members := []domain.Member{
				{ID: 1, ProjectID: 10, UserID: uOwner, Role: domain.RoleOwner},
				{ID: 2, ProjectID: 10, UserID: u2, DivisionID: 99, Role: domain.RoleLeader},
			}
			r := reconcile(project, []domain.Division{d2}, members)
			Expect(withoutTimestamps(r)[1]).To(Equal(domain.Member{ID: 2, ProjectID: 10, UserID: u2, DivisionID: 99, Role: domain.RoleMember}))
		})

		It("should silently ignore owner or manager assigned as coordinator", func() {
			project.ManagerID = uManager
			d1.CoordinatorID = uOwner
			d2.CoordinatorID = uManager
			r := reconcile(project, []domain.Division{d1, d2}, nil)
			Expect(withoutTimestamps(r)).To(Equal([]domain.Member{
				{ID: 1, ProjectID: 10, UserID: uOwner, DivisionID: domain.ProjectLevel, Role: domain.RoleOwner},
				{ID: 2, ProjectID: 10, UserID: uManager, DivisionID: domain.ProjectLevel, Role: domain.RoleManager},
			}))
		})

		It("should leave rows of other projects untouched", func() {
			other := domain.Member{ID: 5, ProjectID: 11, UserID: u1, DivisionID: 42, Role: domain.RoleLeader}
			r := reconcile(project, []domain.Division{d1}, []domain.Member{other})
			Expect(r[0]).To(Equal(other))
			Expect(r).To(HaveLen(3))
		})

		It("should not mutate its input", func() {
			members := []domain.Member{{ID: 2, ProjectID: 10, UserID: u1, DivisionID: d2.ID, Role: domain.RoleLeader}}
			reconcile(project, []domain.Division{d1, d2}, members)
			Expect(members[0].Role).To(Equal(domain.RoleLeader))
			Expect(members[0].DivisionID).To(Equal(d2.ID))
		})
	})

	Describe("properties", func() {
		It("should hold for generated inputs", func() {
			rnd := rand.New(rand.NewSource(20240101))
			for round := 0; round < 500; round++ {
				p, divisions, members := generate(rnd)

				once := reconcile(p, divisions, members)
				later := fixedReconciler(once)
				later.Now = func() types.Timestamp { return laterTime }
				twice := later.Reconcile(p, divisions, once)
				Expect(twice).To(Equal(once), "round %d: a second run must not touch any row", round)

				Expect(membership.Check(p, divisions, once)).To(BeEmpty(), "round %d", round)
				Expect(once).To(ContainElement(ownerRowOf(once, p)), "round %d", round)
			}
		})
	})
})

func ownerRowOf(members []domain.Member, p domain.Project) domain.Member {
	for _, m := range members {
		if m.ProjectID == p.ID && m.UserID == p.OwnerID && m.DivisionID == domain.ProjectLevel && m.Role == domain.RoleOwner {
			return m
		}
	}
	return domain.Member{}
}

// generate builds a project whose coordinators are distinct non owner/manager users, and whose
// plain members hold at most one division row each.
func generate(rnd *rand.Rand) (domain.Project, []domain.Division, []domain.Member) {
	p := domain.Project{ID: 10, OwnerID: uOwner}
	if rnd.Intn(2) == 0 {
		p.ManagerID = uManager
	}

	users := []types.ID{1, 2, 3, 4, 5, 6, 7, 8}
	rnd.Shuffle(len(users), func(i, j int) { users[i], users[j] = users[j], users[i] })

	var divisions []domain.Division
	for i := 0; i < 1+rnd.Intn(4); i++ {
		d := domain.Division{ID: types.ID(i + 1), ProjectID: p.ID}
		if rnd.Intn(3) > 0 {
			d.CoordinatorID = users[i]
		}
		divisions = append(divisions, d)
	}

	var members []domain.Member
	id := types.ID(0)
	add := func(m domain.Member) {
		id++
		m.ID = id
		m.ProjectID = p.ID
		members = append(members, m)
	}
	if rnd.Intn(2) == 0 {
		add(domain.Member{UserID: p.OwnerID, Role: domain.RoleOwner})
	}
	for _, u := range users {
		if rnd.Intn(4) == 0 {
			add(domain.Member{UserID: u, Role: domain.RoleMember})
		}
		switch rnd.Intn(4) {
		case 0:
			add(domain.Member{UserID: u, DivisionID: types.ID(1 + rnd.Intn(5)), Role: domain.RoleLeader})
		case 1:
			add(domain.Member{UserID: u, DivisionID: types.ID(1 + rnd.Intn(5)), Role: domain.RoleMember})
		}
	}
	rnd.Shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })
	return p, divisions, members
}
