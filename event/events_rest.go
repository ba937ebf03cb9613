package event

import (
	"net/http"
	"teamboard/bizerror"
	"teamboard/session"

	"github.com/gin-gonic/gin"
)

var PathEvents = "/v1/events"

func RegisterEventsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathEvents, middleWares...)
	g.GET("", handleQueryEvents)
}

func handleQueryEvents(c *gin.Context) {
	query := EventQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	records, err := QueryEventsFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}
