package audit

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/auth"
	"github.com/condosys/condo-management/internal/transport/middleware"
)

// RequestLogMiddleware writes one Log row per API request. It runs after the
// auth middleware so the actor is known when the request carries a valid
// token; unauthenticated requests are logged with a nil user id. The write is
// fire-and-forget; see Service.WriteLog.
func RequestLogMiddleware(svc *Service) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			var bodyBytes []byte
			if r.Body != nil {
				bodyBytes, _ = io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			}

			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)

			entry := &Log{
				Action:         actionFor(r.Method),
				EntityType:     entityTypeFor(r.URL.Path),
				RequestID:      middleware.RequestIDFromContext(r.Context()),
				IPAddress:      clientIP(r),
				UserAgent:      r.UserAgent(),
				RequestMethod:  r.Method,
				RequestPath:    r.URL.Path,
				RequestData:    middleware.FilterSensitiveBody(bodyBytes),
				ResponseStatus: sw.status(),
				DurationMs:     time.Since(start).Milliseconds(),
			}
			if u, ok := auth.UserFromContext(r.Context()); ok {
				entry.UserID = &u.ID
			}

			ctx, cancel := internal.WithTimeout(r.Context(), 0)
			defer cancel()
			svc.WriteLog(ctx, entry)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.statusCode = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) status() int {
	if sw.statusCode == 0 {
		return http.StatusOK
	}
	return sw.statusCode
}

func actionFor(method string) string {
	switch method {
	case http.MethodGet:
		return "read"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	}
	return strings.ToLower(method)
}

// entityTypeFor extracts the first path segment after the API prefix, e.g.
// /api/v1/employees/3 -> "employees".
func entityTypeFor(path string) *string {
	trimmed := strings.TrimPrefix(path, "/api/v1")
	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return nil
	}
	segment := trimmed
	if i := strings.IndexByte(trimmed, '/'); i > 0 {
		segment = trimmed[:i]
	}
	return &segment
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
