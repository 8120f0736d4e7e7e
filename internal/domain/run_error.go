package domain

import (
	"context"
	"errors"
	"net"
	"strings"
)

func classifyRunError(err error) RunErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return RunErrorTimeout
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return RunErrorTimeout
	}

	var oe *OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case KindUnavailable:
			return RunErrorConn
		case KindExecution:
			return RunErrorUnknown
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"):
		return RunErrorConn
	case strings.Contains(msg, "status "):
		return RunErrorHTTP
	default:
		return RunErrorUnknown
	}
}
