// Package jsontree wraps github.com/tidwall/gjson as the thin "tree
// reader" collaborator the identifier-resolver and repository backends
// depend on (§1's "JSON parsers abstracted as tree readers"), the way
// kedacore/keda's scalers pull values out of arbitrary response bodies
// with gjson.GetBytes(body, path) instead of unmarshaling into a struct.
package jsontree

import "github.com/tidwall/gjson"

// Value is a read-only JSON node.
type Value = gjson.Result

// Get looks up a dotted gjson path in raw JSON, e.g. "published.date-parts.0.0".
func Get(body []byte, path string) Value {
	return gjson.GetBytes(body, path)
}

// String returns v's string form, or "" if v is absent.
func String(v Value) string {
	if !v.Exists() {
		return ""
	}
	return v.String()
}

// Int returns v's integer form, or 0 if v is absent.
func Int(v Value) int {
	if !v.Exists() {
		return 0
	}
	return int(v.Int())
}

// Array returns v's array elements, or nil if v is absent or not an array.
func Array(v Value) []Value {
	if !v.Exists() || !v.IsArray() {
		return nil
	}
	return v.Array()
}
