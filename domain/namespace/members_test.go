package namespace_test

import (
	"teamboard/bizerror"
	"teamboard/domain"
	"teamboard/domain/daterange"
	"teamboard/domain/eligibility"
	"teamboard/domain/namespace"
	"teamboard/domain/schedule"
	"teamboard/testinfra"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ProjectMembers", func() {
	var (
		ann = testinfra.BuildSession(1, "ann")
		bob = testinfra.BuildSession(2, "bob")
		cid = testinfra.BuildSession(3, "cid")

		p *domain.Project
	)

	BeforeEach(func() {
		seedUsers("ann", "bob", "cid", "dan", "eve")
		var err error
		p, err = namespace.CreateProject(&domain.ProjectCreation{Name: "launch", ManagerID: 2}, ann)
		Expect(err).To(BeNil())

		w := workspace()
		w.Divisions = append(w.Divisions,
			domain.Division{ID: 1, ProjectID: p.ID, Name: "design", CoordinatorID: 3,
				StartDate: daterange.MustParseDate("2024-03-01"), DueDate: daterange.MustParseDate("2024-03-31")},
			domain.Division{ID: 2, ProjectID: p.ID, Name: "build",
				StartDate: daterange.MustParseDate("2024-04-01"), DueDate: daterange.MustParseDate("2024-04-30")},
		)
		namespace.EnsureCoreMembers(w, p.ID)
		saveWorkspace(w)
	})

	Describe("AddProjectMember", func() {
		It("should add a plain member row", func() {
			m, err := namespace.AddProjectMember(&domain.MemberCreation{ProjectID: p.ID, UserID: 4, DivisionID: 2}, bob)
			Expect(err).To(BeNil())
			Expect(m.Role).To(Equal(domain.RoleMember))
			Expect(m.DivisionID).To(Equal(types.ID(2)))
			Expect(rowsOf(workspace().Members, 4)).To(HaveLen(1))
		})

		It("should reject callers who do not manage the project", func() {
			_, err := namespace.AddProjectMember(&domain.MemberCreation{ProjectID: p.ID, UserID: 4}, cid)
			Expect(err).To(Equal(bizerror.ErrForbidden))
		})

		It("should reject duplicates and unknown references", func() {
			_, err := namespace.AddProjectMember(&domain.MemberCreation{ProjectID: p.ID, UserID: 4, DivisionID: 2}, bob)
			Expect(err).To(BeNil())
			_, err = namespace.AddProjectMember(&domain.MemberCreation{ProjectID: p.ID, UserID: 4, DivisionID: 2}, bob)
			Expect(err).To(Equal(bizerror.ErrMemberExisted))

			_, err = namespace.AddProjectMember(&domain.MemberCreation{ProjectID: p.ID, UserID: 42}, bob)
			Expect(validationMessages(err)).To(Equal([]string{"user 42 does not exist"}))

			_, err = namespace.AddProjectMember(&domain.MemberCreation{ProjectID: p.ID, UserID: 4, DivisionID: 9}, bob)
			Expect(validationMessages(err)).To(Equal([]string{"division 9 does not belong to the project"}))
		})

		It("should move a plain member between divisions instead of duplicating", func() {
			first, err := namespace.AddProjectMember(&domain.MemberCreation{ProjectID: p.ID, UserID: 4, DivisionID: 1}, bob)
			Expect(err).To(BeNil())
			moved, err := namespace.AddProjectMember(&domain.MemberCreation{ProjectID: p.ID, UserID: 4, DivisionID: 2}, bob)
			Expect(err).To(BeNil())
			Expect(moved.ID).To(Equal(first.ID))

			rows := rowsOf(workspace().Members, 4)
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].DivisionID).To(Equal(types.ID(2)))
		})

		It("should keep assigned tasks inside the target division", func() {
			first, err := namespace.AddProjectMember(&domain.MemberCreation{ProjectID: p.ID, UserID: 4, DivisionID: 1}, bob)
			Expect(err).To(BeNil())
			w := workspace()
			w.Tasks = append(w.Tasks, domain.Task{ID: 1, ProjectID: p.ID, AssigneeID: first.ID,
				StartDate: daterange.MustParseDate("2024-03-10"), DueDate: daterange.MustParseDate("2024-03-12")})
			saveWorkspace(w)

			_, err = namespace.AddProjectMember(&domain.MemberCreation{ProjectID: p.ID, UserID: 4, DivisionID: 2}, bob)
			Expect(validationMessages(err)).To(Equal([]string{schedule.MsgTaskOutsideDivision}))
		})

		It("should not move a division leader", func() {
			_, err := namespace.AddProjectMember(&domain.MemberCreation{ProjectID: p.ID, UserID: 3, DivisionID: 2}, bob)
			Expect(err).To(Equal(bizerror.ErrLeaderMemberRelocate))
		})
	})

	Describe("RemoveProjectMember", func() {
		It("should protect owner and manager rows", func() {
			for _, m := range append(rowsOf(workspace().Members, 1), rowsOf(workspace().Members, 2)...) {
				Expect(namespace.RemoveProjectMember(m.ID, ann)).To(Equal(bizerror.ErrOwnerMemberRemove))
			}
		})

		It("should clear the coordinator when removing a leader and unassign tasks", func() {
			leader := rowsOf(workspace().Members, 3)[0]
			Expect(leader.Role).To(Equal(domain.RoleLeader))
			w := workspace()
			w.Tasks = append(w.Tasks, domain.Task{ID: 1, ProjectID: p.ID, AssigneeID: leader.ID})
			saveWorkspace(w)

			Expect(namespace.RemoveProjectMember(leader.ID, bob)).To(Succeed())

			w = workspace()
			Expect(rowsOf(w.Members, 3)).To(BeEmpty())
			d, _ := w.Division(1)
			Expect(d.CoordinatorID).To(BeZero())
			t, _ := w.Task(1)
			Expect(t.AssigneeID).To(BeZero())

			report, err := namespace.CheckMembership(p.ID, ann)
			Expect(err).To(BeNil())
			Expect(report.Violations).To(BeEmpty())
		})

		It("should fail for unknown rows", func() {
			Expect(namespace.RemoveProjectMember(99, ann)).To(Equal(domain.ErrNotFound))
		})
	})

	Describe("QueryProjectMembers", func() {
		It("should resolve user and division names", func() {
			details, err := namespace.QueryProjectMembers(&domain.MemberQuery{ProjectID: p.ID}, cid)
			Expect(err).To(BeNil())
			Expect(details).To(HaveLen(3))
			names := map[string]string{}
			for _, d := range details {
				Expect(d.ProjectName).To(Equal("launch"))
				names[d.MemberName] = d.DivisionName
			}
			Expect(names).To(Equal(map[string]string{"ann": "", "bob": "", "cid": "design"}))

			_, err = namespace.QueryProjectMembers(&domain.MemberQuery{ProjectID: p.ID}, testinfra.BuildSession(5, "eve"))
			Expect(err).To(Equal(bizerror.ErrForbidden))
		})
	})

	Describe("QueryEligibleCoordinators", func() {
		It("should exclude owner, manager and other coordinators for a new division", func() {
			candidates, err := namespace.QueryEligibleCoordinators(&domain.CoordinatorQuery{ProjectID: p.ID}, bob)
			Expect(err).To(BeNil())
			Expect(candidates).To(Equal([]eligibility.Candidate{
				{UserID: 4, Name: "dan", Email: "dan@example.com"},
				{UserID: 5, Name: "eve", Email: "eve@example.com"},
			}))
		})

		It("should keep the current coordinator of the edited division", func() {
			candidates, err := namespace.QueryEligibleCoordinators(&domain.CoordinatorQuery{ProjectID: p.ID, DivisionID: 1, Keyword: "CID"}, bob)
			Expect(err).To(BeNil())
			Expect(candidates).To(Equal([]eligibility.Candidate{{UserID: 3, Name: "cid", Email: "cid@example.com"}}))
		})

		It("should be restricted to project managers", func() {
			_, err := namespace.QueryEligibleCoordinators(&domain.CoordinatorQuery{ProjectID: p.ID}, cid)
			Expect(err).To(Equal(bizerror.ErrForbidden))
			_, err = namespace.QueryEligibleCoordinators(&domain.CoordinatorQuery{ProjectID: p.ID, DivisionID: 7}, bob)
			Expect(err).To(Equal(domain.ErrNotFound))
		})
	})
})
