// Package jsonx holds the best-effort JSON carve-out used to pull a decision
// object out of free-form model text. It never returns an error: callers get
// ok=false and apply their own fallback. Isolated here so it can be swapped
// for structured-output APIs later.
package jsonx

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Carve extracts the substring spanning the first '{' and the last '}' of s
// and reports whether it parses as a JSON object. Model output frequently
// wraps the object in prose or code fences; everything outside the braces is
// discarded.
func Carve(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", false
	}
	candidate := s[start : end+1]
	if !gjson.Valid(candidate) {
		return "", false
	}
	return candidate, true
}

// CarveObject carves a JSON object out of s and returns it as a gjson result
// for field extraction. ok is false when no parsable object is present.
func CarveObject(s string) (gjson.Result, bool) {
	candidate, ok := Carve(s)
	if !ok {
		return gjson.Result{}, false
	}
	parsed := gjson.Parse(candidate)
	if !parsed.IsObject() {
		return gjson.Result{}, false
	}
	return parsed, true
}
