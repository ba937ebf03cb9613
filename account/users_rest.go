package account

import (
	"net/http"
	"teamboard/bizerror"
	"teamboard/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathUsers = "/v1/users"
)

// RegisterUsersHandler exposes registration without authentication, the rest behind middleWares.
func RegisterUsersHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	r.POST(PathUsers, handleCreateUser)

	g := r.Group(PathUsers, middleWares...)
	g.GET("", handleQueryUsers)
	g.PUT(":id", handleUpdateUser)

	r.GET("/me", append(middleWares, UserInfoQueryHandler)...)
}

func UserInfoQueryHandler(c *gin.Context) {
	c.JSON(http.StatusOK, session.ExtractSessionFromGinContext(c))
}

func handleCreateUser(c *gin.Context) {
	creation := UserCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	user, err := CreateUserFunc(&creation, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, user)
}

func handleQueryUsers(c *gin.Context) {
	query := UserQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	users, err := QueryUsersFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, users)
}

func handleUpdateUser(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	updating := UserUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UpdateUserFunc(id, &updating, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
