package proxy

import "errors"

var (
	ErrUpstream      = errors.New("upstream request failed")
	ErrMultipartBody = errors.New("malformed multipart body")
	ErrInvalidTarget = errors.New("invalid relay target")
	ErrTempFile      = errors.New("temporary upload file")
)
