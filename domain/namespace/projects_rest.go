package namespace

import (
	"net/http"
	"teamboard/bizerror"
	"teamboard/common"
	"teamboard/domain"
	"teamboard/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathProjects = "/v1/projects"

	QueryProjectsFunc     = QueryProjects
	DetailProjectFunc     = DetailProject
	CreateProjectFunc     = CreateProject
	UpdateProjectFunc     = UpdateProject
	DeleteProjectFunc     = DeleteProject
	CheckProjectDatesFunc = CheckProjectDates
	CheckMembershipFunc   = CheckMembership
)

func RegisterProjectsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathProjects, middleWares...)
	g.GET("", handleQueryProjects)
	g.POST("", handleCreateProject)
	g.GET(":id", handleDetailProject)
	g.PUT(":id", handleUpdateProject)
	g.DELETE(":id", handleDeleteProject)
	g.POST(":id/dates-check", handleCheckProjectDates)
	g.GET(":id/membership-check", handleCheckMembership)
}

func bindPathID(c *gin.Context) types.ID {
	id, err := common.BindingPathID(c)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	return id
}

func handleQueryProjects(c *gin.Context) {
	result, err := QueryProjectsFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func handleCreateProject(c *gin.Context) {
	payload := domain.ProjectCreation{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := CreateProjectFunc(&payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, result)
}

func handleDetailProject(c *gin.Context) {
	id := bindPathID(c)
	result, err := DetailProjectFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func handleUpdateProject(c *gin.Context) {
	id := bindPathID(c)
	payload := domain.ProjectUpdating{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UpdateProjectFunc(id, &payload, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusOK)
}

func handleDeleteProject(c *gin.Context) {
	id := bindPathID(c)
	if err := DeleteProjectFunc(id, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleCheckProjectDates(c *gin.Context) {
	id := bindPathID(c)
	payload := domain.ProjectDatesCheck{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := CheckProjectDatesFunc(id, &payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func handleCheckMembership(c *gin.Context) {
	id := bindPathID(c)
	result, err := CheckMembershipFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}
