package soap

import "strings"

// HeaderSet is an ordered set of HTTP header name/value pairs.
//
// Names are matched case-sensitively. Setting an existing name replaces its
// value in place, so the original position is kept.
// The zero value is ready to use.
type HeaderSet struct {
	names  []string
	values map[string]string
}

// NewHeaderSet creates an empty HeaderSet.
func NewHeaderSet() *HeaderSet {
	return &HeaderSet{}
}

// Set sets the value for name.
func (h *HeaderSet) Set(name, value string) {
	if h.values == nil {
		h.values = make(map[string]string)
	}
	if _, ok := h.values[name]; !ok {
		h.names = append(h.names, name)
	}
	h.values[name] = value
}

// Get returns the value for name and whether it was present.
func (h *HeaderSet) Get(name string) (string, bool) {
	if h == nil {
		return "", false
	}
	v, ok := h.values[name]
	return v, ok
}

// Del removes name from the set.
func (h *HeaderSet) Del(name string) {
	if h == nil {
		return
	}
	if _, ok := h.values[name]; !ok {
		return
	}
	delete(h.values, name)
	for i, n := range h.names {
		if n == name {
			h.names = append(h.names[:i], h.names[i+1:]...)
			break
		}
	}
}

// Len returns the number of headers in the set.
func (h *HeaderSet) Len() int {
	if h == nil {
		return 0
	}
	return len(h.names)
}

// Names returns the header names in insertion order.
func (h *HeaderSet) Names() []string {
	if h == nil {
		return nil
	}
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Clone returns a deep copy of h. Cloning a nil set returns an empty set.
func (h *HeaderSet) Clone() *HeaderSet {
	c := NewHeaderSet()
	if h == nil {
		return c
	}
	for _, n := range h.names {
		c.Set(n, h.values[n])
	}
	return c
}

// Lines returns the headers as "Name: Value" strings in order.
func (h *HeaderSet) Lines() []string {
	if h == nil {
		return nil
	}
	lines := make([]string, 0, len(h.names))
	for _, n := range h.names {
		lines = append(lines, n+": "+h.values[n])
	}
	return lines
}

// EscapeAction escapes double quotes in a SOAP action so it can be placed
// inside a quoted header value.
func EscapeAction(action string) string {
	return strings.ReplaceAll(action, `"`, `\"`)
}

// BuildHeaders returns the HTTP header lines for a SOAP request.
//
// Custom headers come first in their stored order. The computed Content-Type
// and SOAPAction entries overwrite custom entries with the same name.
// contentType, when non-empty, overrides the version default; for V2 every
// ActionPlaceholder in it is replaced by the escaped action.
// Unrecognized versions get ContentTypeFallback and ignore both action and
// override.
func BuildHeaders(version Version, action string, custom *HeaderSet, contentType string) []string {
	headers := custom.Clone()
	escaped := EscapeAction(action)

	switch version {
	case V1:
		if contentType != "" {
			headers.Set("Content-Type", contentType)
		} else {
			headers.Set("Content-Type", ContentTypeSOAP11)
		}
		if action != "" {
			headers.Set("SOAPAction", `"`+escaped+`"`)
		}
	case V2:
		switch {
		case contentType == "":
			ct := ContentTypeSOAP12
			if action != "" {
				ct += `; action="` + escaped + `"`
			}
			headers.Set("Content-Type", ct)
		case action == "":
			headers.Set("Content-Type", contentType)
		default:
			headers.Set("Content-Type", strings.ReplaceAll(contentType, ActionPlaceholder, escaped))
		}
	default:
		headers.Set("Content-Type", ContentTypeFallback)
	}

	return headers.Lines()
}
