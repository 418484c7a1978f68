package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
)

type ctxKey string

const (
	ownerIDKey   ctxKey = "ownerID"
	requestIDKey ctxKey = "requestID"
)

const requestIDHeader = "X-Request-ID"

// middleware wraps an http.Handler with additional behavior.
type middleware func(http.Handler) http.Handler

// chain applies middlewares so the first one listed runs first.
func chain(h http.Handler, middlewares ...middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// withRequestID assigns every request a uuid, reachable from the request
// context and echoed in the response headers.
func (s *HTTPServer) withRequestID() middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)
			ctx := context.WithValue(r.Context(), requestIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// withRecover converts panics in handlers into a plain 500 response.
func (s *HTTPServer) withRecover() middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					s.logger.Error(r.Context(), "panic in handler", "panic", p, "path", r.URL.Path)
					writeJSON(w, http.StatusInternalServerError, messageResponse{Message: msgInternalError})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// withLogging logs one line per request.
func (s *HTTPServer) withLogging() middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug(r.Context(), "request",
				"method", r.Method, "path", r.URL.Path, "request_id", requestIDFromContext(r.Context()))
			next.ServeHTTP(w, r)
		})
	}
}

// withAuth verifies the bearer token and stores the authenticated owner id
// in the request context. It runs before any note handler; a missing,
// malformed or expired token never reaches the note service and always gets
// the same 401 answer.
func (s *HTTPServer) withAuth() middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeJSON(w, http.StatusUnauthorized, messageResponse{Message: msgMissingToken})
				return
			}

			userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, messageResponse{Message: msgMissingToken})
				return
			}

			ctx := context.WithValue(r.Context(), ownerIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ownerIDFromContext returns the authenticated owner id placed by withAuth.
func ownerIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ownerIDKey).(int64)
	return id, ok
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
