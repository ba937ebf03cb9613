package division

import (
	"net/http"
	"teamboard/bizerror"
	"teamboard/common"
	"teamboard/domain"
	"teamboard/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathDivisions = "/v1/divisions"

	QueryDivisionsFunc       = QueryDivisions
	CreateDivisionFunc       = CreateDivision
	UpdateDivisionFunc       = UpdateDivision
	ChangeDivisionStatusFunc = ChangeDivisionStatus
	DeleteDivisionFunc       = DeleteDivision
)

func RegisterDivisionsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathDivisions, middleWares...)
	g.GET("", handleQueryDivisions)
	g.POST("", handleCreateDivision)
	g.PUT(":id", handleUpdateDivision)
	g.PUT(":id/status", handleChangeDivisionStatus)
	g.DELETE(":id", handleDeleteDivision)
}

func handleQueryDivisions(c *gin.Context) {
	query := domain.DivisionQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := QueryDivisionsFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func handleCreateDivision(c *gin.Context) {
	creation := domain.DivisionCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := CreateDivisionFunc(&creation, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, result)
}

func handleUpdateDivision(c *gin.Context) {
	id, err := common.BindingPathID(c)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	updating := domain.DivisionUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UpdateDivisionFunc(id, &updating, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusOK)
}

func handleChangeDivisionStatus(c *gin.Context) {
	id, err := common.BindingPathID(c)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	changing := domain.StatusChanging{}
	if err := c.ShouldBindBodyWith(&changing, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := ChangeDivisionStatusFunc(id, &changing, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusOK)
}

func handleDeleteDivision(c *gin.Context) {
	id, err := common.BindingPathID(c)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := DeleteDivisionFunc(id, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
