package restlite

import "errors"

var (
	// ErrPathInUse is returned when a route or forward key is registered twice.
	ErrPathInUse = errors.New("path already in use")

	// ErrServerFrozen is returned by registration calls made after the server
	// started handling requests.
	ErrServerFrozen = errors.New("server is frozen")

	// ErrInvalidTarget is returned by ForwardRoute.To for targets that are
	// not absolute http or https URLs.
	ErrInvalidTarget = errors.New("invalid forward target")

	// ErrNilPredicate is returned when a guard is registered without a
	// predicate.
	ErrNilPredicate = errors.New("nil predicate")

	// ErrExternalLogger is returned by SetLogOutput when the logger was
	// supplied with WithLogger.
	ErrExternalLogger = errors.New("logger supplied by caller")

	errBodyTooLarge = errors.New("request body too large")
)
