package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const ownerKey contextKey = "owner"

// IdentityResolver maps a bearer token to the owner id scoping every call.
// The reference subsystem performs no authentication itself; a real
// deployment plugs a session-provider lookup in here.
type IdentityResolver func(token string) (uuid.UUID, error)

// StaticIdentity treats the bearer token as the owner id itself. Good
// enough for development and tests.
func StaticIdentity() IdentityResolver {
	return func(token string) (uuid.UUID, error) {
		return uuid.Parse(token)
	}
}

// OwnerMiddleware resolves the owner id from the Authorization header and
// injects it into the request context. Requests without a resolvable
// identity fail closed with 401.
func OwnerMiddleware(resolve IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" || token == r.Header.Get("Authorization") {
				writeJSON(w, http.StatusUnauthorized, errorBody("missing bearer token"))
				return
			}

			ownerID, err := resolve(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody("unknown identity"))
				return
			}

			ctx := context.WithValue(r.Context(), ownerKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerFromContext returns the owner id injected by OwnerMiddleware.
func OwnerFromContext(ctx context.Context) (uuid.UUID, bool) {
	ownerID, ok := ctx.Value(ownerKey).(uuid.UUID)
	return ownerID, ok
}

// RequestTimeMiddleware logs the handling time of every request.
func RequestTimeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.Infof("request time: %s %s: %v", r.Method, r.URL.Path, time.Since(start))
	})
}
