// Package permissions declares the named actions that gate access to
// spatial records. The registry is a static policy table: action name to
// description, denial message and scope-resolution rule. Enforcement is
// delegated to a Checker so the decision engine stays pluggable.
package permissions

import (
	"sort"
)

// Scope names the object a permission is evaluated against.
type Scope string

// ScopeProject scopes an action to the owning project.
const ScopeProject Scope = "project"

// Spatial unit actions.
const (
	SpatialList   = "spatial.list"
	SpatialAdd    = "spatial.add"
	SpatialView   = "spatial.view"
	SpatialUpdate = "spatial.update"
	SpatialDelete = "spatial.delete"
)

// Spatial unit relationship actions.
const (
	SpatialRelList   = "spatial_rel.list"
	SpatialRelAdd    = "spatial_rel.add"
	SpatialRelView   = "spatial_rel.view"
	SpatialRelUpdate = "spatial_rel.update"
	SpatialRelDelete = "spatial_rel.delete"
)

// Policy is one row of the policy table.
type Policy struct {
	Description  string
	ErrorMessage string
	Scope        Scope
}

var registry = map[string]Policy{
	SpatialList: {
		Description:  "List existing spatial units of a project",
		ErrorMessage: "You don't have permission to view spatial units of this project",
		Scope:        ScopeProject,
	},
	SpatialAdd: {
		Description:  "Add a spatial unit to a project",
		ErrorMessage: "You don't have permission to add spatial units to this project",
		Scope:        ScopeProject,
	},
	SpatialView: {
		Description:  "View an existing spatial unit of a project",
		ErrorMessage: "You don't have permission to view this spatial unit",
		Scope:        ScopeProject,
	},
	SpatialUpdate: {
		Description:  "Update an existing spatial unit of a project",
		ErrorMessage: "You don't have permission to update this spatial unit",
		Scope:        ScopeProject,
	},
	SpatialDelete: {
		Description:  "Delete a spatial unit from a project",
		ErrorMessage: "You don't have permission to remove this spatial unit",
		Scope:        ScopeProject,
	},
	SpatialRelList: {
		Description:  "List spatial unit relationships of a project",
		ErrorMessage: "You don't have permission to view spatial unit relationships of this project",
		Scope:        ScopeProject,
	},
	SpatialRelAdd: {
		Description:  "Add a spatial unit relationship to a project",
		ErrorMessage: "You don't have permission to add spatial unit relationships to this project",
		Scope:        ScopeProject,
	},
	SpatialRelView: {
		Description:  "View an existing spatial unit relationship of a project",
		ErrorMessage: "You don't have permission to view this spatial unit relationship",
		Scope:        ScopeProject,
	},
	SpatialRelUpdate: {
		Description:  "Update an existing spatial unit relationship of a project",
		ErrorMessage: "You don't have permission to update this spatial unit relationship",
		Scope:        ScopeProject,
	},
	SpatialRelDelete: {
		Description:  "Delete a spatial unit relationship from a project",
		ErrorMessage: "You don't have permission to remove this spatial unit relationship",
		Scope:        ScopeProject,
	},
}

// Lookup returns the policy declared for an action.
func Lookup(action string) (Policy, bool) {
	p, ok := registry[action]
	return p, ok
}

// Actions returns all registered action names, sorted.
func Actions() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
