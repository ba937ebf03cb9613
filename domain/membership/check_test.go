package membership_test

import (
	"teamboard/domain"
	"teamboard/domain/membership"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Check", func() {
	project := domain.Project{ID: 10, OwnerID: uOwner, ManagerID: uManager}
	d1 := domain.Division{ID: 1, ProjectID: 10, CoordinatorID: u1}

	It("should report missing owner, manager and leader rows", func() {
		Expect(membership.Check(project, []domain.Division{d1}, nil)).To(Equal([]string{
			"owner 100 has no project-level owner row",
			"manager 200 has no project-level manager row",
			"division 1 coordinator 1 has 0 leader rows",
		}))
	})

	It("should report duplicated division rows and stale leaders", func() {
		members := []domain.Member{
			{ID: 1, ProjectID: 10, UserID: uOwner, Role: domain.RoleOwner},
			{ID: 2, ProjectID: 10, UserID: uManager, Role: domain.RoleManager},
			{ID: 3, ProjectID: 10, UserID: u1, DivisionID: 1, Role: domain.RoleLeader},
			{ID: 4, ProjectID: 10, UserID: u2, DivisionID: 1, Role: domain.RoleMember},
			{ID: 5, ProjectID: 10, UserID: u2, DivisionID: 2, Role: domain.RoleLeader},
		}
		Expect(membership.Check(project, []domain.Division{d1}, members)).To(Equal([]string{
			"user 2 has 2 division rows",
			"member 5 is a leader of division 2 without coordinating it",
		}))
	})

	It("should not let a division of another project vouch for a leader row", func() {
		foreign := domain.Division{ID: 2, ProjectID: 11, CoordinatorID: u2}
		members := []domain.Member{
			{ID: 1, ProjectID: 10, UserID: uOwner, Role: domain.RoleOwner},
			{ID: 2, ProjectID: 10, UserID: uManager, Role: domain.RoleManager},
			{ID: 3, ProjectID: 10, UserID: u1, DivisionID: 1, Role: domain.RoleLeader},
			{ID: 4, ProjectID: 10, UserID: u2, DivisionID: 2, Role: domain.RoleLeader},
		}
		Expect(membership.Check(project, []domain.Division{d1, foreign}, members)).To(Equal([]string{
			"member 4 is a leader of division 2 without coordinating it",
		}))
	})

	It("should accept reconciled rows", func() {
		Expect(membership.Check(project, []domain.Division{d1}, membership.Reconcile(project, []domain.Division{d1}, nil))).To(BeEmpty())
	})
})
