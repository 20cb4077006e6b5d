package logger

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var ErrUnknownMode = errors.New("unknown logging mode")

// Mode is the logging verbosity of a server.
type Mode string

const (
	// ModeOff emits only entries written with Log(), such as the startup banner.
	ModeOff Mode = "off"

	// ModeGateway emits info and above: relay traffic and failures. Access
	// denials are left out, see [Mode.LogsDenials].
	ModeGateway Mode = "gateway"

	// ModeDebug emits everything, including per-request entries.
	ModeDebug Mode = "debug"

	// ModeError emits warnings and errors: denials and failures.
	ModeError Mode = "error"
)

// ParseMode converts a configuration value to a Mode. "true" is accepted as
// ModeGateway and "false" or an empty value as ModeOff.
func ParseMode(s string) (Mode, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "false", string(ModeOff):
		return ModeOff, nil
	case "true", string(ModeGateway):
		return ModeGateway, nil
	case string(ModeDebug):
		return ModeDebug, nil
	case string(ModeError):
		return ModeError, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// LogsDenials reports whether access denials, such as failed guards and
// rejected bodies, are logged in mode m. Gateway mode logs relay traffic only.
func (m Mode) LogsDenials() bool {
	return m != ModeGateway
}

func (m Mode) level() (zerolog.Level, error) {
	switch m {
	case "", ModeOff:
		return zerolog.NoLevel, nil
	case ModeGateway:
		return zerolog.InfoLevel, nil
	case ModeDebug:
		return zerolog.DebugLevel, nil
	case ModeError:
		return zerolog.WarnLevel, nil
	default:
		return zerolog.Disabled, fmt.Errorf("%w: %q", ErrUnknownMode, string(m))
	}
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
