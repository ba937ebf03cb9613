package namespace

import (
	"net/http"
	"teamboard/bizerror"
	"teamboard/domain"
	"teamboard/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathProjectMembers        = "/v1/project-members"
	PathCoordinatorCandidates = "/v1/coordinator-candidates"

	AddProjectMemberFunc          = AddProjectMember
	QueryProjectMembersFunc       = QueryProjectMembers
	RemoveProjectMemberFunc       = RemoveProjectMember
	QueryEligibleCoordinatorsFunc = QueryEligibleCoordinators
)

func RegisterProjectMembersRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathProjectMembers, middleWares...)
	g.GET("", handleQueryProjectMembers)
	g.POST("", handleAddProjectMember)
	g.DELETE(":id", handleRemoveProjectMember)

	r.GET(PathCoordinatorCandidates, append(middleWares, handleQueryEligibleCoordinators)...)
}

func handleQueryProjectMembers(c *gin.Context) {
	query := domain.MemberQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := QueryProjectMembersFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func handleAddProjectMember(c *gin.Context) {
	payload := domain.MemberCreation{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := AddProjectMemberFunc(&payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, result)
}

func handleRemoveProjectMember(c *gin.Context) {
	id := bindPathID(c)
	if err := RemoveProjectMemberFunc(id, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleQueryEligibleCoordinators(c *gin.Context) {
	query := domain.CoordinatorQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := QueryEligibleCoordinatorsFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}
