package projection

import (
	"fmt"
	"iter"
	"strings"
)

// ShapeData projects source onto the fields named in the comma separated
// fields list, or onto every field of the table when fields is blank. Names in
// requiredFields are appended when not already selected.
func ShapeData[T any](table *Fields[T], source *T, fields, requiredFields string) (ShapedRecord, error) {
	if table == nil {
		return ShapedRecord{}, invalidArgument("field table")
	}
	if source == nil {
		return ShapedRecord{}, invalidArgument("source")
	}
	selected, err := selectFields(table, fields, requiredFields)
	if err != nil {
		return ShapedRecord{}, err
	}
	return project(selected, *source), nil
}

// ShapeDataMany shapes each element of sources lazily, in order. Elements are
// validated one by one; an element that fails yields its error.
func ShapeDataMany[T any](table *Fields[T], sources iter.Seq[T], fields, requiredFields string) (iter.Seq2[ShapedRecord, error], error) {
	if table == nil {
		return nil, invalidArgument("field table")
	}
	if sources == nil {
		return nil, invalidArgument("sources")
	}
	return func(yield func(ShapedRecord, error) bool) {
		for src := range sources {
			rec, err := ShapeData(table, &src, fields, requiredFields)
			if !yield(rec, err) {
				return
			}
		}
	}, nil
}

// ShapeSlice shapes every element of sources and stops at the first error.
func ShapeSlice[T any](table *Fields[T], sources []T, fields, requiredFields string) ([]ShapedRecord, error) {
	if sources == nil {
		return nil, invalidArgument("sources")
	}
	seq, err := ShapeDataMany(table, func(yield func(T) bool) {
		for _, s := range sources {
			if !yield(s) {
				return
			}
		}
	}, fields, requiredFields)
	if err != nil {
		return nil, err
	}
	out := make([]ShapedRecord, 0, len(sources))
	for rec, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// CheckFields fails with ErrUnknownField naming the first entry of the comma
// separated fields list that is not a field of table. A blank list is valid.
func CheckFields[T any](table *Fields[T], fields string) error {
	if table == nil {
		return invalidArgument("field table")
	}
	for _, name := range splitList(fields) {
		if _, ok := table.Lookup(name); !ok {
			return &FieldError{Kind: ErrUnknownField, Field: name}
		}
	}
	return nil
}

// HasFields reports whether every name in fields is a field of table.
func HasFields[T any](table *Fields[T], fields string) bool {
	return CheckFields(table, fields) == nil
}

// selectFields resolves the ordered field selection for one shape call. The
// result is the same for every element of a sequence, but is recomputed per
// element so each one is checked on its own.
func selectFields[T any](table *Fields[T], fields, requiredFields string) ([]Field[T], error) {
	var selected []Field[T]
	if names := splitList(fields); names == nil {
		selected = append(selected, table.list...)
	} else {
		selected = make([]Field[T], 0, len(names))
		for _, name := range names {
			f, ok := table.Lookup(name)
			if !ok {
				return nil, &FieldError{Kind: ErrUnknownField, Field: name}
			}
			selected = append(selected, f)
		}
	}

	for _, name := range splitList(requiredFields) {
		if name == "" || containsField(selected, name) {
			continue
		}
		f, ok := table.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: required field %q is not a field of %v", ErrInvalidArgument, name, typeOf[T]())
		}
		selected = append(selected, f)
	}
	return selected, nil
}

func containsField[T any](fields []Field[T], name string) bool {
	for _, f := range fields {
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}

func project[T any](fields []Field[T], source T) ShapedRecord {
	rec := NewShapedRecord(len(fields))
	for _, f := range fields {
		rec.Set(f.Name, f.Get(source))
	}
	return rec
}
