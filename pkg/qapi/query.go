package qapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Params is the parameter bag a search builder accumulates before each
// fetch. Values may be strings, numbers, booleans, or string slices; slices
// are kept as-is and joined with commas only when the bag is serialized.
// Setting the same key twice overwrites.
type Params map[string]any

// NewParams creates an empty parameter bag.
func NewParams() Params {
	return make(Params)
}

// Set stores value under name, replacing any previous value. A nil value is
// a no-op so optional setters can pass through unset fields.
func (p Params) Set(name string, value any) Params {
	if value == nil {
		return p
	}

	p[name] = value

	return p
}

// Has reports whether name has been set.
func (p Params) Has(name string) bool {
	_, ok := p[name]

	return ok
}

// Int reads name as an integer, tolerating string-typed values. The second
// result is false when the key is absent or not numeric.
func (p Params) Int(name string) (int, bool) {
	raw, ok := p[name]
	if !ok {
		return 0, false
	}

	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}

		return n, true
	default:
		return 0, false
	}
}

// Clone returns an independent copy of the bag. Traversals snapshot the bag
// this way so concurrent setter calls cannot skew later pages.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		if s, ok := v.([]string); ok {
			out[k] = append([]string(nil), s...)

			continue
		}

		out[k] = v
	}

	return out
}

// Values serializes the bag into url.Values following the wire convention:
// slice values join with commas, booleans and numbers render in their
// canonical form.
func (p Params) Values() url.Values {
	values := url.Values{}
	for k, v := range p {
		values.Set(k, formatParam(v))
	}

	return values
}

func formatParam(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
