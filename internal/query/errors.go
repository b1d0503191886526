package query

import (
	"context"
	"errors"
	"net"

	"github.com/nutriflavoros/nutriplan-cli/internal/api"
)

// ErrorKind classifies a failed fetch for callers that present errors
// differently by class.
type ErrorKind string

const (
	KindNone    ErrorKind = ""
	KindNetwork ErrorKind = "network"
	KindHTTP4xx ErrorKind = "http-4xx"
	KindHTTP5xx ErrorKind = "http-5xx"
	KindTimeout ErrorKind = "timeout"
)

// Classify maps a transport error onto its kind. Timeouts are
// distinguished from other network failures because the UI treats them
// as retryable with different messaging.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var ne *api.NetworkError
	if errors.As(err, &ne) {
		if errors.Is(err, context.DeadlineExceeded) {
			return KindTimeout
		}
		var nerr net.Error
		if errors.As(ne.Err, &nerr) && nerr.Timeout() {
			return KindTimeout
		}
		return KindNetwork
	}
	var he *api.HTTPError
	if errors.As(err, &he) {
		if he.Status >= 500 {
			return KindHTTP5xx
		}
		return KindHTTP4xx
	}
	return KindNetwork
}

// Retryable reports whether a fetch failing with err may be retried
// automatically. 4xx responses never are.
func Retryable(err error) bool {
	switch Classify(err) {
	case KindNetwork, KindTimeout, KindHTTP5xx:
		return true
	}
	return false
}
