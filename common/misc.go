package common

import (
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/sony/sonyflake"
)

const CodeInternalServerError = "common.internal_server_error"

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

var DefaultIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{
	StartTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	MachineID: func() (uint16, error) { return 1, nil },
})

func NextId(idWorker *sonyflake.Sonyflake) types.ID {
	id, err := idWorker.NextID()
	if err != nil {
		panic(err)
	}
	return types.ID(id)
}
