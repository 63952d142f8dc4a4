package ports

import (
	"context"

	"shipquote/internal/core/domain/model/route"
)

// RouteProvider resolves the travel distance and time between two free-text addresses.
// Any failure, including zero results and malformed provider responses, is an error;
// a returned Quote is always usable.
type RouteProvider interface {
	Quote(ctx context.Context, origin, destination string) (route.Quote, error)
}
