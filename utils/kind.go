package utils

import (
	"reflect"
	"strings"
)

// KindOf returns a short, human-readable name for the dynamic kind of v.
// Slices and arrays report "array", maps and structs report "object",
// functions report "function" and a nil interface reports "nil".
// Pointers report the kind of the value they point to.
// Every other kind uses its reflect name ("string", "int", "bool", ...).
func KindOf(v any) string {
	if v == nil {
		return "nil"
	}

	return kindOfType(reflect.TypeOf(v))
}

func kindOfType(typ reflect.Type) string {
	switch typ.Kind() { //nolint:exhaustive
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Func:
		return "function"
	case reflect.Pointer:
		return kindOfType(typ.Elem())
	case reflect.Interface:
		return "unknown"
	default:
		return typ.Kind().String()
	}
}

// DescribeKinds joins the distinct kinds of values, in first-seen order, with " | ".
// An empty slice falls back to the static kind of T.
func DescribeKinds[T any](values []T) string {
	if len(values) == 0 {
		return kindOfType(reflect.TypeFor[T]())
	}

	seen := make(map[string]struct{}, len(values))
	kinds := make([]string, 0, 1)

	for _, value := range values {
		kind := KindOf(value)
		if _, ok := seen[kind]; ok {
			continue
		}

		seen[kind] = struct{}{}
		kinds = append(kinds, kind)
	}

	return strings.Join(kinds, " | ")
}

// IsObject reports whether v is a non-nil map or a struct (or a pointer to one).
func IsObject(v any) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}

		rv = rv.Elem()
	}

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Map:
		return !rv.IsNil()
	case reflect.Struct:
		return true
	default:
		return false
	}
}

// IsArray reports whether v is a slice or an array.
func IsArray(v any) bool {
	if v == nil {
		return false
	}

	kind := reflect.TypeOf(v).Kind()

	return kind == reflect.Slice || kind == reflect.Array
}
