package nakama

import (
	"errors"

	"blackjack/internal/app"
	"blackjack/internal/device"
	"blackjack/internal/domain"
	"blackjack/internal/session"

	"github.com/heroiclabs/nakama-common/runtime"
)

var (
	errNoUser         = errors.New("no user in context")
	errInvalidPayload = errors.New("invalid payload")
	errUnknownSession = errors.New("session not open")
	errNotOwner       = errors.New("ticket belongs to another user")
)

// classify names an error for clients and picks its gRPC status.
func classify(err error) (kind string, code int) {
	switch {
	case errors.Is(err, session.ErrSessionBusy):
		return "session_busy", codeAborted
	case errors.Is(err, app.ErrInvalidCommand):
		return "invalid_command", codeInvalidArgument
	case errors.Is(err, app.ErrIllegalTransition):
		return "illegal_transition", codeFailedPrecondition
	case errors.Is(err, domain.ErrHandCapacityExceeded):
		return "hand_capacity", codeResourceExhausted
	case errors.Is(err, session.ErrInvalidTicket), errors.Is(err, errNoUser), errors.Is(err, errNotOwner):
		return "unauthenticated", codeUnauthenticated
	case errors.Is(err, errUnknownSession):
		return "session_not_open", codeNotFound
	case errors.Is(err, device.ErrTransportFault), errors.Is(err, errInvalidPayload):
		return "transport_fault", codeInvalidArgument
	default:
		return "internal", codeInternal
	}
}

func toRuntimeError(err error) error {
	_, code := classify(err)
	return runtime.NewError(err.Error(), code)
}
