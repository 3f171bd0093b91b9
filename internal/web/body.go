package web

import (
	"fmt"
	"net/url"
)

// Body is the decoded request payload.
// Exactly one of Form and JSON is populated, or neither for empty or unsupported bodies.
// JSON holds whatever the payload decodes to: an object, an array or a scalar.
type Body struct {
	Form url.Values
	JSON any
}

// Get returns a field from either representation as a string.
// JSON payloads only expose fields when they are objects.
func (b Body) Get(key string) string {
	if b.Form != nil {
		return b.Form.Get(key)
	}
	obj, _ := b.JSON.(map[string]any)
	if v, ok := obj[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
	return ""
}

// Empty reports whether nothing was decoded.
func (b Body) Empty() bool {
	return len(b.Form) == 0 && b.JSON == nil
}
