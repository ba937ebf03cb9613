package task

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
	PathTasks = "/v1/tasks"

	QueryTasksFunc       = QueryTasks
	CreateTaskFunc       = CreateTask
	UpdateTaskFunc       = UpdateTask
	ChangeTaskStatusFunc = ChangeTaskStatus
	DeleteTaskFunc       = DeleteTask
)

func RegisterTasksRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathTasks, middleWares...)
	g.GET("", handleQueryTasks)
	g.POST("", handleCreateTask)
	g.PUT(":id", handleUpdateTask)
	g.PUT(":id/status", handleChangeTaskStatus)
	g.DELETE(":id", handleDeleteTask)
}

func pathID(c *gin.Context) types.ID {
	id, err := common.BindingPathID(c)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	return id
}

func handleQueryTasks(c *gin.Context) {
	query := domain.TaskQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := QueryTasksFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func handleCreateTask(c *gin.Context) {
	creation := domain.TaskCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	result, err := CreateTaskFunc(&creation, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, result)
}

func handleUpdateTask(c *gin.Context) {
	id := pathID(c)
	updating := domain.TaskUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UpdateTaskFunc(id, &updating, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusOK)
}

func handleChangeTaskStatus(c *gin.Context) {
	id := pathID(c)
	changing := domain.StatusChanging{}
	if err := c.ShouldBindBodyWith(&changing, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := ChangeTaskStatusFunc(id, &changing, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusOK)
}

func handleDeleteTask(c *gin.Context) {
	if err := DeleteTaskFunc(pathID(c), session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
