// Package features holds the set of enabled feature flags.
//
// Flags come from the GCN_FEATURES environment variable, a comma-separated
// list of names. Names are compared case-insensitively.
package features

import (
	"context"
	"sort"
	"strings"
)

// Set is an immutable set of enabled feature names, stored upper-cased.
type Set struct {
	names map[string]struct{}
}

// Parse builds a Set from a comma-separated list. Blank entries are ignored.
func Parse(csv string) Set {
	names := make(map[string]struct{})
	for _, name := range strings.Split(csv, ",") {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name != "" {
			names[name] = struct{}{}
		}
	}
	return Set{names: names}
}

// Enabled reports whether the named feature is on.
func (s Set) Enabled(name string) bool {
	_, ok := s.names[strings.ToUpper(name)]
	return ok
}

// Names returns the enabled features in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type contextKey struct{}

// WithContext returns a copy of ctx carrying s.
func WithContext(ctx context.Context, s Set) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the Set stored in ctx, or an empty Set.
func FromContext(ctx context.Context) Set {
	s, _ := ctx.Value(contextKey{}).(Set)
	return s
}

// Enabled is shorthand for FromContext(ctx).Enabled(name).
func Enabled(ctx context.Context, name string) bool {
	return FromContext(ctx).Enabled(name)
}
