package projection

import (
	"fmt"
	"reflect"
	"strings"
)

// MappingTarget is the set of internal fields realizing one external field.
// InternalFields is never empty.
type MappingTarget struct {
	InternalFields []string
	Reverse        bool
}

// NewMappingTarget validates and returns a MappingTarget.
func NewMappingTarget(reverse bool, internalFields ...string) (MappingTarget, error) {
	if len(internalFields) == 0 {
		return MappingTarget{}, fmt.Errorf("%w: mapping target needs at least one internal field", ErrInvalidArgument)
	}
	for _, f := range internalFields {
		if strings.TrimSpace(f) == "" {
			return MappingTarget{}, fmt.Errorf("%w: empty internal field name", ErrInvalidArgument)
		}
	}
	return MappingTarget{
		InternalFields: append([]string(nil), internalFields...),
		Reverse:        reverse,
	}, nil
}

// Target is a shorthand for static mapping tables. It panics on an empty list.
func Target(internalFields ...string) MappingTarget {
	t, err := NewMappingTarget(false, internalFields...)
	if err != nil {
		panic(err)
	}
	return t
}

// Reversed is Target with the reverse flag set.
func Reversed(internalFields ...string) MappingTarget {
	t := Target(internalFields...)
	t.Reverse = true
	return t
}

// PropertyMapping maps external field names (case-insensitive) to their
// MappingTarget for one external/internal type pair. It is immutable once built.
type PropertyMapping struct {
	targets map[string]MappingTarget
	names   []string
}

// NewPropertyMapping copies entries into a new mapping. Keys differing only by
// case are rejected.
func NewPropertyMapping(entries map[string]MappingTarget) (*PropertyMapping, error) {
	m := &PropertyMapping{targets: make(map[string]MappingTarget, len(entries))}
	for name, target := range entries {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return nil, fmt.Errorf("%w: empty external field name", ErrInvalidArgument)
		}
		if len(target.InternalFields) == 0 {
			return nil, fmt.Errorf("%w: external field %q maps to no internal fields", ErrInvalidArgument, name)
		}
		if _, dup := m.targets[key]; dup {
			return nil, fmt.Errorf("%w: external field %q declared twice", ErrInvalidArgument, name)
		}
		m.targets[key] = MappingTarget{
			InternalFields: append([]string(nil), target.InternalFields...),
			Reverse:        target.Reverse,
		}
		m.names = append(m.names, name)
	}
	return m, nil
}

// Lookup resolves an external field name, ignoring case.
func (m *PropertyMapping) Lookup(name string) (MappingTarget, bool) {
	t, ok := m.targets[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Len reports the number of external fields in the mapping.
func (m *PropertyMapping) Len() int { return len(m.targets) }

type typePair struct {
	external reflect.Type
	internal reflect.Type
}

// Registry holds one PropertyMapping per (external, internal) type pair.
// Register is called during startup only; after that the registry is read
// concurrently without locking.
type Registry struct {
	mappings map[typePair]*PropertyMapping
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{mappings: make(map[typePair]*PropertyMapping)}
}

// Register stores the mapping for a type pair, replacing any earlier one.
func (r *Registry) Register(external, internal reflect.Type, m *PropertyMapping) error {
	if external == nil || internal == nil {
		return invalidArgument("type")
	}
	if m == nil {
		return invalidArgument("mapping")
	}
	r.mappings[typePair{external, internal}] = m
	return nil
}

// Lookup returns the mapping registered for the exact type pair.
func (r *Registry) Lookup(external, internal reflect.Type) (*PropertyMapping, error) {
	m, ok := r.mappings[typePair{external, internal}]
	if !ok {
		return nil, fmt.Errorf("%w for <%v,%v>", ErrMappingNotFound, external, internal)
	}
	return m, nil
}

// RegisterMapping registers m for the pair (TExternal, TInternal).
func RegisterMapping[TExternal, TInternal any](r *Registry, m *PropertyMapping) error {
	return r.Register(typeOf[TExternal](), typeOf[TInternal](), m)
}

// LookupMapping returns the mapping for the pair (TExternal, TInternal).
func LookupMapping[TExternal, TInternal any](r *Registry) (*PropertyMapping, error) {
	return r.Lookup(typeOf[TExternal](), typeOf[TInternal]())
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// ValidateOrderBy reports whether every clause of orderBy names a field of m,
// without building an ordering. It fails the same way ApplySort would.
func ValidateOrderBy(m *PropertyMapping, orderBy string) error {
	if m == nil {
		return invalidArgument("mapping")
	}
	for _, clause := range splitList(orderBy) {
		name, _ := parseClause(clause)
		if _, ok := m.Lookup(name); !ok {
			return &FieldError{Kind: ErrUnknownSortField, Field: name}
		}
	}
	return nil
}
