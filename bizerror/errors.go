package bizerror

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrTooManyRequests = errors.New("too many requests")

	ErrOwnerMemberRemove    = errors.New("the owner and manager membership can not be removed")
	ErrLeaderMemberRelocate = errors.New("a division leader can only be moved by changing the division coordinator")
	ErrMemberExisted        = errors.New("member existed")
	ErrUserNameExisted      = errors.New("user name existed")
)

type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status  int
	Code    string
	Message string

	Data  interface{}
	Cause error
}

type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}
func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "common.bad_param"
}
func (e *ErrBadParam) Respond() *BizErrorDetail {
	message := "common.bad_param"
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: message, Data: nil}
}

// ErrValidation carries every human readable violation found by the validators.
type ErrValidation struct {
	Messages []string
}

func NewErrValidation(messages ...string) *ErrValidation {
	return &ErrValidation{Messages: messages}
}

func (e *ErrValidation) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}
func (e *ErrValidation) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "common.validation_failed", Message: "validation failed", Data: e.Messages}
}
