// Package entity contains the core business objects of the project.
package entity

import (
	"sort"
	"strings"
)

// Attribute is one key/value pair describing a variant, e.g. color=red.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Attributes is the ordered attribute set that distinguishes a variant.
// Two variants of the same product may never share a normalized attribute set,
// so comparison must be deterministic: normalize before storing or comparing.
type Attributes []Attribute

// Normalize returns a canonical copy: keys and values trimmed and lower-cased,
// pairs sorted by key then value. The receiver is not modified.
func (as Attributes) Normalize() Attributes {
	normalized := make(Attributes, 0, len(as))
	for _, a := range as {
		normalized = append(normalized, Attribute{
			Key:   strings.ToLower(strings.TrimSpace(a.Key)),
			Value: strings.ToLower(strings.TrimSpace(a.Value)),
		})
	}

	sort.Slice(normalized, func(i, j int) bool {
		if normalized[i].Key != normalized[j].Key {
			return normalized[i].Key < normalized[j].Key
		}

		return normalized[i].Value < normalized[j].Value
	})

	return normalized
}

// Equal reports whether two attribute sets are identical after normalization.
func (as Attributes) Equal(other Attributes) bool {
	a, b := as.Normalize(), other.Normalize()
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// IsWellFormed checks that every pair has a non-empty key and value.
func (as Attributes) IsWellFormed() bool {
	if len(as) == 0 {
		return false
	}

	for _, a := range as {
		if strings.TrimSpace(a.Key) == "" || strings.TrimSpace(a.Value) == "" {
			return false
		}
	}

	return true
}
