package validator

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Selector identifies where in a request a field value lives.
// An empty Location means "any": body, headers, params and query are searched
// in that order and the first hit wins.
type Selector struct {
	Location Location
	Field    string
}

// Select returns the field value and the location it was found in.
// A missing field yields Absent(); absence is never an error. For "any"
// selectors that miss everywhere, the reported location is the body.
func (s Selector) Select(req *Request) (Value, Location) {
	if req == nil {
		req = &Request{}
	}

	if s.Location != "" {
		return selectFrom(req, s.Location, s.Field), s.Location
	}

	for _, loc := range anyLocation {
		if v := selectFrom(req, loc, s.Field); v.IsPresent() {
			return v, loc
		}
	}
	return Absent(), LocationBody
}

func selectFrom(req *Request, loc Location, field string) Value {
	switch loc {
	case LocationBody:
		return selectBody(req, field)
	case LocationQuery:
		if v, ok := req.Query[field]; ok {
			return Present(v)
		}
	case LocationParams:
		if v, ok := req.Params[field]; ok {
			return Present(v)
		}
	case LocationHeaders:
		return selectHeader(req.Headers, field)
	}
	return Absent()
}

func selectBody(req *Request, path string) Value {
	// Exact keys win, so fields whose names contain dots still resolve.
	if v, ok := req.Body[path]; ok {
		return Present(v)
	}
	if !strings.Contains(path, ".") {
		return Absent()
	}

	if len(req.RawBody) > 0 && gjson.ValidBytes(req.RawBody) {
		res := gjson.GetBytes(req.RawBody, escapeJSONPath(path))
		if !res.Exists() {
			return Absent()
		}
		return Present(res.Value())
	}

	if v, ok := walk(req.Body, strings.Split(path, ".")); ok {
		return Present(v)
	}
	return Absent()
}

func selectHeader(headers map[string]string, name string) Value {
	if v, ok := headers[strings.ToLower(name)]; ok {
		return Present(v)
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return Present(v)
		}
	}
	return Absent()
}

// walk resolves a dotted path through nested maps and lists.
func walk(node any, parts []string) (any, bool) {
	cur := node
	for _, part := range parts {
		switch n := cur.(type) {
		case map[string]any:
			v, ok := n[part]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(n) {
				return nil, false
			}
			cur = n[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// escapeJSONPath escapes gjson query syntax so that only "." acts as a
// separator.
func escapeJSONPath(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	for _, r := range path {
		switch r {
		case '*', '?', '#', '@', '|', '!', '=', '<', '>', '%', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
