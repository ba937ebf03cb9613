package namespace_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"teamboard/bizerror"
	"teamboard/domain"
	"teamboard/domain/daterange"
	"teamboard/domain/eligibility"
	"teamboard/domain/namespace"
	"teamboard/session"
	"teamboard/testinfra"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ProjectsRestAPI", func() {
	var (
		router *gin.Engine
	)
	BeforeEach(func() {
		router = gin.New()
		router.Use(bizerror.ErrorHandling())
		testinfra.InjectSession(router, testinfra.BuildSession(1, "ann"))
		namespace.RegisterProjectsRestAPI(router)
		namespace.RegisterProjectMembersRestAPI(router)
	})
	AfterEach(func() {
		namespace.QueryProjectsFunc = namespace.QueryProjects
		namespace.CreateProjectFunc = namespace.CreateProject
		namespace.UpdateProjectFunc = namespace.UpdateProject
		namespace.DeleteProjectFunc = namespace.DeleteProject
		namespace.CheckProjectDatesFunc = namespace.CheckProjectDates
		namespace.CheckMembershipFunc = namespace.CheckMembership
		namespace.AddProjectMemberFunc = namespace.AddProjectMember
		namespace.QueryEligibleCoordinatorsFunc = namespace.QueryEligibleCoordinators
	})

	Describe("handleQueryProjects", func() {
		It("should render projects", func() {
			namespace.QueryProjectsFunc = func(s *session.Session) ([]domain.Project, error) {
				ts := types.TimestampOfDate(2024, 1, 1, 0, 0, 0, 0, time.UTC)
				return []domain.Project{{ID: 123, Name: "launch", OwnerID: 1, StartDate: daterange.MustParseDate("2024-01-01"),
					Status: domain.ProjectInProgress, CreateTime: ts, UpdateTime: ts}}, nil
			}
			req := httptest.NewRequest(http.MethodGet, namespace.PathProjects, nil)
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(ContainSubstring(`"id":"123"`))
			Expect(body).To(ContainSubstring(`"startDate":"2024-01-01"`))
			Expect(body).To(ContainSubstring(`"endDate":null`))
		})
	})

	Describe("handleCreateProject", func() {
		It("should bind dates and the manager", func() {
			var payload *domain.ProjectCreation
			namespace.CreateProjectFunc = func(c *domain.ProjectCreation, s *session.Session) (*domain.Project, error) {
				payload = c
				return &domain.Project{ID: 1, Name: c.Name, OwnerID: s.UserID()}, nil
			}
			req := httptest.NewRequest(http.MethodPost, namespace.PathProjects,
				bytes.NewBufferString(`{"name":"launch","startDate":"2024-01-01","endDate":"","managerId":"2"}`))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusCreated))
			Expect(body).To(ContainSubstring(`"ownerId":"1"`))
			Expect(payload.StartDate.String()).To(Equal("2024-01-01"))
			Expect(payload.EndDate.Specified()).To(BeFalse())
			Expect(payload.ManagerID).To(Equal(types.ID(2)))
		})

		It("should reject malformed dates", func() {
			req := httptest.NewRequest(http.MethodPost, namespace.PathProjects,
				bytes.NewBufferString(`{"name":"launch","startDate":"01/02/2024"}`))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(ContainSubstring(`"code":"common.bad_param"`))
		})

		It("should render validation messages", func() {
			namespace.CreateProjectFunc = func(c *domain.ProjectCreation, s *session.Session) (*domain.Project, error) {
				return nil, bizerror.NewErrValidation("project start date must not be after its end date")
			}
			req := httptest.NewRequest(http.MethodPost, namespace.PathProjects, bytes.NewBufferString(`{"name":"launch"}`))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(body).To(MatchJSON(`{"code":"common.validation_failed","message":"validation failed",
				"data":["project start date must not be after its end date"]}`))
		})
	})

	Describe("handleUpdateProject and handleDeleteProject", func() {
		It("should pass the path id", func() {
			var updated, deleted types.ID
			namespace.UpdateProjectFunc = func(id types.ID, u *domain.ProjectUpdating, s *session.Session) error {
				updated = id
				return nil
			}
			namespace.DeleteProjectFunc = func(id types.ID, s *session.Session) error {
				deleted = id
				return domain.ErrNotFound
			}

			req := httptest.NewRequest(http.MethodPut, namespace.PathProjects+"/12", bytes.NewBufferString(`{"name":"x","status":"completed"}`))
			status, _, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
			Expect(updated).To(Equal(types.ID(12)))

			req = httptest.NewRequest(http.MethodDelete, namespace.PathProjects+"/13", nil)
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusNotFound))
			Expect(body).To(MatchJSON(`{"code":"common.record_not_found","message":"record not found","data":null}`))
			Expect(deleted).To(Equal(types.ID(13)))
		})

		It("should reject unknown project status", func() {
			req := httptest.NewRequest(http.MethodPut, namespace.PathProjects+"/12", bytes.NewBufferString(`{"name":"x","status":"archived"}`))
			status, _, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("diagnostics", func() {
		It("should expose the dates check and the membership check", func() {
			namespace.CheckProjectDatesFunc = func(id types.ID, c *domain.ProjectDatesCheck, s *session.Session) (*namespace.ProjectDatesReport, error) {
				return &namespace.ProjectDatesReport{Valid: true, Messages: []string{}}, nil
			}
			namespace.CheckMembershipFunc = func(id types.ID, s *session.Session) (*namespace.MembershipReport, error) {
				return &namespace.MembershipReport{ProjectID: id, Consistent: true, Violations: []string{}}, nil
			}

			req := httptest.NewRequest(http.MethodPost, namespace.PathProjects+"/3/dates-check", bytes.NewBufferString(`{"startDate":"2024-01-01"}`))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(MatchJSON(`{"valid":true,"messages":[],"divisionConflicts":null,"taskConflicts":null}`))

			req = httptest.NewRequest(http.MethodGet, namespace.PathProjects+"/3/membership-check", nil)
			status, body, _ = testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(MatchJSON(`{"projectId":"3","consistent":true,"violations":[]}`))
		})
	})

	Describe("members", func() {
		It("should map membership conflicts", func() {
			namespace.AddProjectMemberFunc = func(c *domain.MemberCreation, s *session.Session) (*domain.Member, error) {
				return nil, bizerror.ErrMemberExisted
			}
			req := httptest.NewRequest(http.MethodPost, namespace.PathProjectMembers, bytes.NewBufferString(`{"projectId":"1","userId":"4"}`))
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusConflict))
			Expect(body).To(ContainSubstring("member existed"))
		})

		It("should query coordinator candidates", func() {
			namespace.QueryEligibleCoordinatorsFunc = func(q *domain.CoordinatorQuery, s *session.Session) ([]eligibility.Candidate, error) {
				Expect(q.ProjectID).To(Equal(types.ID(1)))
				Expect(q.DivisionID).To(Equal(types.ID(2)))
				Expect(q.Keyword).To(Equal("da"))
				return []eligibility.Candidate{{UserID: 4, Name: "dan"}}, nil
			}
			req := httptest.NewRequest(http.MethodGet, namespace.PathCoordinatorCandidates+"?projectId=1&divisionId=2&keyword=da", nil)
			status, body, _ := testinfra.ExecuteRequest(req, router)
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(MatchJSON(`[{"userId":"4","name":"dan","email":""}]`))
		})
	})
})
