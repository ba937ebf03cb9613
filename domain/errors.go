package domain

import "errors"

var (
	ErrNotFound                = errors.New("not found")
	ErrUnknownStatus           = errors.New("unknown status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
