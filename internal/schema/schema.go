// Package schema describes the entity models as JSON-Schema-style documents
// for the database viewer and API clients. Descriptions are derived from the
// model structs' json and validate tags, so the published schema cannot
// drift from what validation actually enforces.
package schema

import (
	"reflect"
	"strings"
	"time"

	"github.com/nvenk/divvy/internal/models"
)

// Models returns the schema description of every entity collection,
// keyed by collection name.
func Models() map[string]any {
	return map[string]any{
		"appuser": describe(models.Appuser{}, "Users of the app", map[string]any{
			"default_currency": models.DefaultCurrency,
			"locale":           models.DefaultLocale,
		}),
		"group": describe(models.Group{}, "Group of people who share expenses", map[string]any{
			"default_currency": models.DefaultCurrency,
		}),
		"expense": describe(models.Expense{}, "Expense added to a group", map[string]any{
			"currency": models.DefaultCurrency,
		}),
	}
}

var timeType = reflect.TypeOf(time.Time{})

// describe builds an object schema for a model struct. defaults supplies the
// default values applied at construction time, keyed by JSON field name.
func describe(model any, title string, defaults map[string]any) map[string]any {
	out := describeStruct(reflect.TypeOf(model))
	out["title"] = title
	for field, value := range defaults {
		if prop, ok := out["properties"].(map[string]any)[field].(map[string]any); ok {
			prop["default"] = value
		}
	}
	return out
}

func describeStruct(t reflect.Type) map[string]any {
	properties := make(map[string]any, t.NumField())
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		constraints := strings.Split(field.Tag.Get("validate"), ",")
		properties[name] = describeField(field.Type, constraints)
		if hasConstraint(constraints, "required") {
			required = append(required, name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func describeField(t reflect.Type, constraints []string) map[string]any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch {
	case t == timeType:
		return map[string]any{"type": "string", "format": "date-time"}
	case t.Kind() == reflect.String:
		prop := map[string]any{"type": "string"}
		if hasConstraint(constraints, "email") {
			prop["format"] = "email"
		}
		if hasConstraint(constraints, "url") {
			prop["format"] = "uri"
		}
		if values := constraintParam(constraints, "oneof"); values != "" {
			prop["enum"] = strings.Split(values, " ")
		}
		return prop
	case t.Kind() == reflect.Float64, t.Kind() == reflect.Float32:
		prop := map[string]any{"type": "number"}
		if v := constraintParam(constraints, "gt"); v != "" {
			prop["exclusiveMinimum"] = v
		}
		if v := constraintParam(constraints, "gte"); v != "" {
			prop["minimum"] = v
		}
		return prop
	case t.Kind() == reflect.Slice:
		// Element constraints follow "dive" in the validate tag.
		elem := describeField(t.Elem(), constraintsAfterDive(constraints))
		return map[string]any{"type": "array", "items": elem}
	case t.Kind() == reflect.Struct:
		return describeStruct(t)
	default:
		return map[string]any{"type": t.Kind().String()}
	}
}

func hasConstraint(constraints []string, name string) bool {
	for _, c := range constraints {
		if c == name || strings.HasPrefix(c, name+"=") {
			return true
		}
	}
	return false
}

func constraintParam(constraints []string, name string) string {
	for _, c := range constraints {
		if strings.HasPrefix(c, name+"=") {
			return strings.TrimPrefix(c, name+"=")
		}
	}
	return ""
}

func constraintsAfterDive(constraints []string) []string {
	for i, c := range constraints {
		if c == "dive" {
			return constraints[i+1:]
		}
	}
	return nil
}
