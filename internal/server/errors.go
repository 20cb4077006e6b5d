// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	ErrListen   = errors.New("error opening listener")
	ErrShutdown = errors.New("error shutting down http server")
)
