package interfaces

import (
	"context"
	"errors"

	"zerovicio/internal/domain/entities"
)

// ErrGatewaysExhausted signals that no strategy produced a recognized payment
// code. It is not a hard failure: the caller falls back to a mock charge.
var ErrGatewaysExhausted = errors.New("all payment gateways exhausted")

// IGatewayDispatcher tries the configured payment gateways in order.
//
// Diagnostics for every attempt are returned on success and on exhaustion.
type IGatewayDispatcher interface {
	Dispatch(ctx context.Context, order entities.Order, requestID string) (entities.GatewayResult, []entities.AttemptDiagnostic, error)
}
