// Package correlation tags asynchronous work, like cloud metric pushes,
// with an ID that survives across the goroutine boundary so control
// plane logs and service logs can be joined.
package correlation

import (
	"context"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// HeaderName is the wire header carrying the correlation ID.
const HeaderName = "X-Correlation-Id"

type correlationKey struct{}

// FromContext fetches the correlation ID from the context, or "" when
// none was set.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if val, ok := ctx.Value(correlationKey{}).(string); ok {
		return val
	}
	return ""
}

// WithID sets the correlation ID onto the context.
func WithID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationKey{}, id)
}

// Ensure guarantees a correlation ID on the context, minting a ULID
// when missing. ULIDs sort by creation time, so batch IDs line up
// chronologically in log searches.
func Ensure(ctx context.Context) (context.Context, string) {
	cid := FromContext(ctx)
	if cid == "" {
		cid = ulid.Make().String()
	}
	return WithID(ctx, cid), cid
}

// Field renders the context's correlation ID as a zap field; a skipped
// field when the context carries none.
func Field(ctx context.Context) zap.Field {
	cid := FromContext(ctx)
	if cid == "" {
		return zap.Skip()
	}
	return zap.String("correlation_id", cid)
}
