package sentence

import (
	"strings"
)

const (
	Empty = "_"

	// KeyEntity holds the concatenated bracket string of a token.
	KeyEntity = "Entity"
)

// Misc is the ordered key/values side-table of a token. Values of a key are
// rendered comma separated, except the Entity brackets, which are
// concatenated.
type Misc struct {
	keys []string
	vals map[string][]string
}

// ParseMisc parses a MISC column (k=v|k2=v2). An underscore is the empty
// side-table.
func ParseMisc(s string) Misc {
	var m Misc
	if s == "" || s == Empty {
		return m
	}

	for _, item := range strings.Split(s, "|") {
		if item == "" {
			continue
		}
		k, v, ok := strings.Cut(item, "=")
		if !ok {
			m.Set(k)
			continue
		}
		m.Set(k, v)
	}

	return m
}

// Set replaces the values of key.
func (m *Misc) Set(key string, vals ...string) {
	if m.vals == nil {
		m.vals = map[string][]string{}
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = append([]string(nil), vals...)
}

// Append adds a value to key, keeping the existing ones.
func (m *Misc) Append(key, val string) {
	if m.vals == nil {
		m.vals = map[string][]string{}
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = append(m.vals[key], val)
}

func (m Misc) Get(key string) ([]string, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Value returns the rendered value of key.
func (m Misc) Value(key string) string {
	return strings.Join(m.vals[key], separator(key))
}

func (m *Misc) Delete(key string) {
	if _, ok := m.vals[key]; !ok {
		return
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m Misc) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m Misc) Len() int {
	return len(m.keys)
}

// Union copies the entries of o into m. Entries of o win on key collision.
// If keys are given, only those keys are copied.
func (m *Misc) Union(o Misc, keys ...string) {
	for _, k := range o.keys {
		if len(keys) > 0 && !contains(keys, k) {
			continue
		}
		m.Set(k, o.vals[k]...)
	}
}

// Merge appends the values of o to the values of m, key by key.
func (m *Misc) Merge(o Misc) {
	for _, k := range o.keys {
		if _, ok := m.vals[k]; !ok {
			m.Set(k)
		}
		for _, v := range o.vals[k] {
			m.Append(k, v)
		}
	}
}

func (m Misc) Clone() Misc {
	var c Misc
	for _, k := range m.keys {
		c.Set(k, m.vals[k]...)
	}
	return c
}

// String renders the side-table as a MISC column.
func (m Misc) String() string {
	if len(m.keys) == 0 {
		return Empty
	}

	parts := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		vals := m.vals[k]
		if len(vals) == 0 {
			parts = append(parts, k)
			continue
		}
		parts = append(parts, k+"="+strings.Join(vals, separator(k)))
	}
	return strings.Join(parts, "|")
}

func (m Misc) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Misc) UnmarshalText(b []byte) error {
	*m = ParseMisc(string(b))
	return nil
}

func separator(key string) string {
	if key == KeyEntity {
		return ""
	}
	return ","
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}
