package audit

import "context"

type contextKey struct{}

// Metadata describes the HTTP request an audited operation came from.
type Metadata struct {
	RequestID string
	IPAddress string
	UserAgent string
}

// WithMetadata attaches request metadata to ctx for audit logging.
func WithMetadata(ctx context.Context, md Metadata) context.Context {
	return context.WithValue(ctx, contextKey{}, md)
}

// MetadataFromContext returns the metadata attached by WithMetadata, or the
// zero value.
func MetadataFromContext(ctx context.Context) Metadata {
	if md, ok := ctx.Value(contextKey{}).(Metadata); ok {
		return md
	}
	return Metadata{}
}
