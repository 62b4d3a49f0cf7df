package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/samvrant/cadasta-platform/internal/permissions"
)

// PermissionMiddleware gates routes on actions from the permission policy
// table. The scope value for project-scoped actions is taken from the
// projectID URL parameter.
type PermissionMiddleware struct {
	checker permissions.Checker
	logr    *zap.Logger
}

func NewPermissionMiddleware(checker permissions.Checker, logr *zap.Logger) *PermissionMiddleware {
	return &PermissionMiddleware{checker: checker, logr: logr}
}

// Require wraps a route with a check for one named action. Unknown actions
// are a programming error and fail closed.
func (m *PermissionMiddleware) Require(action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			policy, ok := permissions.Lookup(action)
			if !ok {
				m.logr.Error("unregistered permission action", zap.String("action", action))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			sub := permissions.Subject{}
			if userID, ok := r.Context().Value(ContextUserIDKey).(string); ok {
				sub.UserID = userID
			}
			if roles, ok := r.Context().Value(ContextRolesKey).([]string); ok {
				sub.Roles = roles
			}

			var scopeValue string
			if policy.Scope == permissions.ScopeProject {
				scopeValue = chi.URLParam(r, "projectID")
			}

			allowed, err := m.checker.Check(r.Context(), sub, action, scopeValue)
			if err != nil {
				m.logr.Error("permission check failed", zap.Error(err), zap.String("action", action))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": policy.ErrorMessage})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
