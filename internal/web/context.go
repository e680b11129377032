package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/catalog-admin/internal/audit"
	"github.com/go-chi/chi/v5/middleware"
)

// WithRequestMetadata adds request ID, IP and User-Agent to ctx for audit logging.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	return audit.WithMetadata(ctx, audit.Metadata{
		RequestID: middleware.GetReqID(ctx),
		IPAddress: clientIP(r), // already rewritten by TrustedRealIP
		UserAgent: r.UserAgent(),
	})
}
