package apiserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/basalt-io/basalt-cms/pkg/auth"
	"github.com/basalt-io/basalt-cms/pkg/model"
)

type ContextKey string

const CurrentAdmin ContextKey = "currentAdmin"

// bearerAuthMiddleware verifies the access token and stores the admin
// identity on the request context. Everything behind it can trust
// adminFromContext without doing any auth work itself.
func bearerAuthMiddleware(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorization := r.Header.Get("Authorization")
			token := strings.TrimPrefix(authorization, "Bearer ")
			if token == "" || token == authorization {
				writeError(w, http.StatusUnauthorized, errors.New("missing bearer token"))
				return
			}

			admin, err := svc.Verify(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, errors.New("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), CurrentAdmin, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func adminFromContext(ctx context.Context) model.AdminInfo {
	admin, _ := ctx.Value(CurrentAdmin).(model.AdminInfo)
	return admin
}
