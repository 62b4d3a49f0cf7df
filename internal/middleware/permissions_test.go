package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/samvrant/cadasta-platform/internal/permissions"
)

type fakeChecker struct {
	allowed    bool
	gotAction  string
	gotScope   string
	gotSubject permissions.Subject
}

func (f *fakeChecker) Check(_ context.Context, sub permissions.Subject, action string, scopeValue string) (bool, error) {
	f.gotSubject = sub
	f.gotAction = action
	f.gotScope = scopeValue
	return f.allowed, nil
}

func newPermissionRouter(checker permissions.Checker) http.Handler {
	permMW := NewPermissionMiddleware(checker, zap.NewNop())

	r := chi.NewRouter()
	r.Route("/projects/{projectID}/spatial-units", func(r chi.Router) {
		r.With(permMW.Require(permissions.SpatialList)).Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func TestRequire_Allowed(t *testing.T) {
	checker := &fakeChecker{allowed: true}
	router := newPermissionRouter(checker)

	req := httptest.NewRequest(http.MethodGet, "/projects/proj-1/spatial-units/", nil)
	ctx := context.WithValue(req.Context(), ContextUserIDKey, "user-1")
	ctx = context.WithValue(ctx, ContextRolesKey, []string{"viewer"})
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, permissions.SpatialList, checker.gotAction)
	assert.Equal(t, "proj-1", checker.gotScope)
	assert.Equal(t, "user-1", checker.gotSubject.UserID)
	assert.Equal(t, []string{"viewer"}, checker.gotSubject.Roles)
}

func TestRequire_DeniedUsesPolicyMessage(t *testing.T) {
	checker := &fakeChecker{allowed: false}
	router := newPermissionRouter(checker)

	req := httptest.NewRequest(http.MethodGet, "/projects/proj-1/spatial-units/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	policy, ok := permissions.Lookup(permissions.SpatialList)
	require.True(t, ok)
	assert.Contains(t, rec.Body.String(), policy.ErrorMessage)
}
