package common

import (
	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

type ErrBadPathID struct {
	Cause error
}

func (e *ErrBadPathID) Error() string {
	return "invalid path id: " + e.Cause.Error()
}
func (e *ErrBadPathID) Unwrap() error {
	return e.Cause
}

func BindingPathID(c *gin.Context) (types.ID, error) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		return 0, &ErrBadPathID{Cause: err}
	}
	return id, nil
}
