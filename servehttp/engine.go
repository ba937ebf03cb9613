package servehttp

import (
	"net/http"
	"teamboard/account"
	"teamboard/bizerror"
	"teamboard/domain/division"
	"teamboard/domain/namespace"
	"teamboard/domain/task"
	"teamboard/event"
	"teamboard/infra/tracing"
	"teamboard/session"
	"teamboard/sessions"

	"github.com/gin-gonic/gin"
)

// BuildEngine assembles the router: tracing and error rendering for every route, and the
// session filter in front of everything except sign up and sign in.
func BuildEngine(serviceName string) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), tracing.TracingIngress(), bizerror.ErrorHandling())

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, serviceName)
	})

	auth := session.SimpleAuthFilter()
	account.RegisterUsersHandler(engine, auth)
	sessions.RegisterSessionsHandler(engine)
	namespace.RegisterProjectsRestAPI(engine, auth)
	namespace.RegisterProjectMembersRestAPI(engine, auth)
	division.RegisterDivisionsRestAPI(engine, auth)
	task.RegisterTasksRestAPI(engine, auth)
	event.RegisterEventsRestAPI(engine, auth)
	return engine
}
