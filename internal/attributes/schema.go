// Package attributes validates the JSON attribute bags carried by spatial
// units and relationships. Allowed keys depend on the record's type code:
// each code maps to an explicit schema of named, typed, required/optional
// fields, checked on every write.
package attributes

import (
	"fmt"

	"github.com/samvrant/cadasta-platform/internal/models"
)

// Kind is the JSON value kind a field accepts.
type Kind string

const (
	String  Kind = "string"
	Number  Kind = "number"
	Boolean Kind = "boolean"
	Object  Kind = "object"
	Array   Kind = "array"
)

// Field describes one allowed attribute.
type Field struct {
	Kind     Kind
	Required bool
}

// Schema maps attribute names to their field definitions. Keys not present
// in the schema are rejected.
type Schema map[string]Field

// unitSchemas keys spatial unit attribute schemas by unit type code.
var unitSchemas = map[string]Schema{
	models.UnitParcel: {
		"land_use":   {Kind: String},
		"area_sqm":   {Kind: Number},
		"registered": {Kind: Boolean},
		"notes":      {Kind: String},
	},
	models.UnitCommunityBoundary: {
		"community": {Kind: String, Required: true},
		"notes":     {Kind: String},
	},
	models.UnitBuilding: {
		"floors":    {Kind: Number},
		"occupancy": {Kind: String},
		"notes":     {Kind: String},
	},
	models.UnitApartment: {
		"unit_number": {Kind: String, Required: true},
		"floor":       {Kind: Number},
		"notes":       {Kind: String},
	},
	models.UnitProjectExtent: {
		"notes": {Kind: String},
	},
	models.UnitRightOfWay: {
		"width_m": {Kind: Number},
		"notes":   {Kind: String},
	},
	models.UnitUtilityCorridor: {
		"utility": {Kind: String, Required: true},
		"width_m": {Kind: Number},
		"notes":   {Kind: String},
	},
	models.UnitNationalPark: {
		"designation": {Kind: String},
		"notes":       {Kind: String},
	},
	models.UnitMiscellaneous: {
		"description": {Kind: String},
		"notes":       {Kind: String},
		"tags":        {Kind: Array},
		"extra":       {Kind: Object},
	},
}

// relSchemas keys relationship attribute schemas by relationship type code.
var relSchemas = map[string]Schema{
	models.RelContained: {
		"notes": {Kind: String},
	},
	models.RelSplit: {
		"split_date": {Kind: String},
		"notes":      {Kind: String},
	},
	models.RelMerge: {
		"merge_date": {Kind: String},
		"notes":      {Kind: String},
	},
}

// ValidateUnit checks a spatial unit attribute bag against the schema for
// the given unit type code.
func ValidateUnit(typeCode string, attrs map[string]interface{}) error {
	schema, ok := unitSchemas[typeCode]
	if !ok {
		return fmt.Errorf("unknown spatial unit type %q", typeCode)
	}
	return schema.Validate(attrs)
}

// ValidateRelationship checks a relationship attribute bag against the
// schema for the given relationship type code.
func ValidateRelationship(typeCode string, attrs map[string]interface{}) error {
	schema, ok := relSchemas[typeCode]
	if !ok {
		return fmt.Errorf("unknown relationship type %q", typeCode)
	}
	return schema.Validate(attrs)
}

// Validate checks an already-decoded JSON object against the schema.
func (s Schema) Validate(attrs map[string]interface{}) error {
	for name, value := range attrs {
		field, ok := s[name]
		if !ok {
			return fmt.Errorf("attribute %q is not allowed", name)
		}
		if value == nil {
			continue
		}
		if !field.Kind.matches(value) {
			return fmt.Errorf("attribute %q must be a %s", name, field.Kind)
		}
	}
	for name, field := range s {
		if !field.Required {
			continue
		}
		if v, ok := attrs[name]; !ok || v == nil {
			return fmt.Errorf("attribute %q is required", name)
		}
	}
	return nil
}

// matches reports whether a decoded JSON value has this kind. Numbers are
// float64 after encoding/json decoding.
func (k Kind) matches(value interface{}) bool {
	switch k {
	case String:
		_, ok := value.(string)
		return ok
	case Number:
		switch value.(type) {
		case float64, int, int64:
			return true
		}
		return false
	case Boolean:
		_, ok := value.(bool)
		return ok
	case Object:
		_, ok := value.(map[string]interface{})
		return ok
	case Array:
		_, ok := value.([]interface{})
		return ok
	}
	return false
}
