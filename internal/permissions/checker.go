package permissions

import "context"

// Subject is the authenticated principal asking to perform an action.
// Roles come from the JWT claims attached by the auth middleware.
type Subject struct {
	UserID string
	Roles  []string
}

// Checker decides whether a subject may perform an action against a scope
// value (the owning project's ID for project-scoped actions).
type Checker interface {
	Check(ctx context.Context, sub Subject, action string, scopeValue string) (bool, error)
}

// roleGrants maps a role to the actions it grants.
var roleGrants = map[string][]string{
	"viewer": {
		SpatialList, SpatialView,
		SpatialRelList, SpatialRelView,
	},
	"editor": {
		SpatialList, SpatialView, SpatialAdd, SpatialUpdate,
		SpatialRelList, SpatialRelView, SpatialRelAdd, SpatialRelUpdate,
	},
	"manager": {
		SpatialList, SpatialView, SpatialAdd, SpatialUpdate, SpatialDelete,
		SpatialRelList, SpatialRelView, SpatialRelAdd, SpatialRelUpdate, SpatialRelDelete,
	},
}

// RoleChecker grants actions from the subject's roles alone. Scope is
// accepted as-is: project membership is assumed to be encoded in the roles
// claim by the identity provider.
type RoleChecker struct{}

func NewRoleChecker() *RoleChecker { return &RoleChecker{} }

func (c *RoleChecker) Check(_ context.Context, sub Subject, action string, _ string) (bool, error) {
	for _, role := range sub.Roles {
		for _, granted := range roleGrants[role] {
			if granted == action {
				return true, nil
			}
		}
	}
	return false, nil
}
