package projection

import "strings"

// Field reads one named value off a T.
type Field[T any] struct {
	Name string
	Get  func(T) any
}

// NewField returns a Field with the given name and getter.
func NewField[T any](name string, get func(T) any) Field[T] {
	return Field[T]{Name: name, Get: get}
}

// Fields is the accessor table of a type: its externally visible field names in
// declared order, each with a getter. Tables are declared once per type and are
// read-only afterwards.
type Fields[T any] struct {
	list  []Field[T]
	index map[string]int
}

// NewFields builds an accessor table. It panics on an empty or duplicate
// (case-insensitive) name, since tables are package-level declarations.
func NewFields[T any](fields ...Field[T]) *Fields[T] {
	t := &Fields[T]{
		list:  make([]Field[T], 0, len(fields)),
		index: make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		key := strings.ToLower(f.Name)
		if key == "" || f.Get == nil {
			panic("projection: field needs a name and a getter")
		}
		if _, dup := t.index[key]; dup {
			panic("projection: duplicate field " + f.Name)
		}
		t.index[key] = len(t.list)
		t.list = append(t.list, f)
	}
	return t
}

// Names returns the declared field names in order.
func (t *Fields[T]) Names() []string {
	names := make([]string, len(t.list))
	for i, f := range t.list {
		names[i] = f.Name
	}
	return names
}

// Lookup finds a field by case-insensitive name.
func (t *Fields[T]) Lookup(name string) (Field[T], bool) {
	i, ok := t.index[strings.ToLower(name)]
	if !ok {
		return Field[T]{}, false
	}
	return t.list[i], true
}

// Len reports the number of fields in the table.
func (t *Fields[T]) Len() int { return len(t.list) }

// splitList splits a comma separated list and trims each entry. A blank list
// yields nil; empty entries inside a non-blank list are kept.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
