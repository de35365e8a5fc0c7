package rop

import (
	"fmt"
	"reflect"
	"sort"
)

// Payload is an insertion-ordered key/value map used for service params,
// result data and result errors. Keys are stored in their canonical string
// form (see Key), so "email" and a named string type holding "email" address
// the same entry.
//
// A Payload is never modified in place: With and Merge return new payloads.
// The zero value is an empty payload ready to use.
type Payload struct {
	keys   []string
	values map[string]any
}

// Of builds a payload from alternating key/value arguments:
//
//	rop.Of("email", "a@b.com", "name", "Fede")
//
// A trailing key without a value is stored with a nil value.
func Of(kv ...any) Payload {
	p := Payload{
		keys:   make([]string, 0, (len(kv)+1)/2),
		values: make(map[string]any, (len(kv)+1)/2),
	}
	for i := 0; i < len(kv); i += 2 {
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		p.set(Key(kv[i]), v)
	}
	return p
}

// FromMap builds a payload from a Go map. Map iteration order is random, so
// the keys are sorted to keep the result deterministic.
func FromMap[V any](m map[string]V) Payload {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := Payload{keys: make([]string, 0, len(m)), values: make(map[string]any, len(m))}
	for _, k := range keys {
		p.set(k, m[k])
	}
	return p
}

// Key returns the canonical string form of a payload key.
func Key(k any) string {
	switch v := k.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	if rv := reflect.ValueOf(k); rv.IsValid() && rv.Kind() == reflect.String {
		return rv.String()
	}
	return fmt.Sprint(k)
}

func (p *Payload) set(key string, v any) {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = v
}

func (p Payload) clone() Payload {
	c := Payload{
		keys:   make([]string, len(p.keys), len(p.keys)+1),
		values: make(map[string]any, len(p.values)+1),
	}
	copy(c.keys, p.keys)
	for k, v := range p.values {
		c.values[k] = v
	}
	return c
}

// Len returns the number of entries.
func (p Payload) Len() int {
	return len(p.keys)
}

// IsEmpty reports whether the payload has no entries.
func (p Payload) IsEmpty() bool {
	return len(p.keys) == 0
}

// Keys returns the keys in insertion order.
func (p Payload) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Get returns the value stored under key.
func (p Payload) Get(key any) (any, bool) {
	v, ok := p.values[Key(key)]
	return v, ok
}

// Has reports whether key is present.
func (p Payload) Has(key any) bool {
	_, ok := p.values[Key(key)]
	return ok
}

// With returns a copy of p with key set to v. An existing key keeps its
// position.
func (p Payload) With(key any, v any) Payload {
	c := p.clone()
	c.set(Key(key), v)
	return c
}

// Merge returns a copy of p with every entry of other applied on top of it.
// On a key collision the value from other wins and the key keeps the
// position it had in p.
func (p Payload) Merge(other Payload) Payload {
	c := p.clone()
	for _, k := range other.keys {
		c.set(k, other.values[k])
	}
	return c
}

// Each calls fn for every entry in insertion order until fn returns false.
func (p Payload) Each(fn func(key string, v any) bool) {
	for _, k := range p.keys {
		if !fn(k, p.values[k]) {
			return
		}
	}
}

// ToMap converts the payload into a plain map. Nested payloads are converted
// as well.
func (p Payload) ToMap() map[string]any {
	out := make(map[string]any, len(p.keys))
	for _, k := range p.keys {
		v := p.values[k]
		if nested, ok := v.(Payload); ok {
			out[k] = nested.ToMap()
			continue
		}
		out[k] = v
	}
	return out
}

// Equal reports whether both payloads hold the same keys, in the same order,
// with deeply equal values.
func (p Payload) Equal(other Payload) bool {
	if len(p.keys) != len(other.keys) {
		return false
	}
	for i, k := range p.keys {
		if other.keys[i] != k {
			return false
		}
		a, b := p.values[k], other.values[k]
		if pa, ok := a.(Payload); ok {
			pb, ok := b.(Payload)
			if !ok || !pa.Equal(pb) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(a, b) {
			return false
		}
	}
	return true
}

// String renders the payload in insertion order, e.g. {email:a@b.com}.
func (p Payload) String() string {
	s := "{"
	for i, k := range p.keys {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s:%v", k, p.values[k])
	}
	return s + "}"
}
