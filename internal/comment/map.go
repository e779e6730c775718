package comment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors returned by the typed lookups on Map.
var (
	ErrKeyMissing    = errors.New("key missing")
	ErrKeyUnparsable = errors.New("key unparsable")
)

// KeyError reports a key whose value could not be converted.
type KeyError struct {
	Key   string
	Value string
	Err   error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *KeyError) Unwrap() []error { return []error{ErrKeyUnparsable, e.Err} }

// Map is an ordered key/value mapping. Re-setting a key replaces its value but
// keeps its original position. The zero value is ready to use.
type Map struct {
	keys   []string
	values map[string]string
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]string)}
}

// Set stores value under key.
func (m *Map) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it was present.
func (m *Map) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of distinct keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in first-insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Each calls fn for every pair in insertion order.
func (m *Map) Each(fn func(key, value string)) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// Int returns the value of key as an integer. ScanImage writes some scalars
// as single-element arrays ("[3]"); the brackets are ignored.
func (m *Map) Int(key string) (int, error) {
	raw, ok := m.Get(key)
	if !ok {
		return 0, ErrKeyMissing
	}
	n, err := strconv.Atoi(unbracket(raw))
	if err != nil {
		return 0, &KeyError{Key: key, Value: raw, Err: err}
	}
	return n, nil
}

// Uint32 returns the value of key as an unsigned 32-bit integer. Signs and
// values above math.MaxUint32 are rejected with a *KeyError.
func (m *Map) Uint32(key string) (uint32, error) {
	raw, ok := m.Get(key)
	if !ok {
		return 0, ErrKeyMissing
	}
	n, err := strconv.ParseUint(unbracket(raw), 10, 32)
	if err != nil {
		return 0, &KeyError{Key: key, Value: raw, Err: err}
	}
	return uint32(n), nil
}

// Float returns the value of key as a float64.
func (m *Map) Float(key string) (float64, error) {
	raw, ok := m.Get(key)
	if !ok {
		return 0, ErrKeyMissing
	}
	f, err := strconv.ParseFloat(unbracket(raw), 64)
	if err != nil {
		return 0, &KeyError{Key: key, Value: raw, Err: err}
	}
	return f, nil
}

// unbracket strips one pair of enclosing square brackets and whitespace.
func unbracket(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
