package gateway

import "errors"

var (
	ErrDuplicatePath    = errors.New("gateway path already in use")
	ErrInvalidTarget    = errors.New("invalid forward target")
	ErrUnknownMatchMode = errors.New("unknown gateway match mode")
)
