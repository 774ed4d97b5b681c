package projection

import "strings"

// ApplySort orders q by a client orderBy string such as "name desc, age".
// Each clause is resolved through m; every internal field of the matched
// target becomes a sort key, flipped when the target is marked Reverse.
//
// A blank orderBy returns q itself.
func ApplySort[T any](q Query[T], orderBy string, m *PropertyMapping) (Query[T], error) {
	if q == nil {
		return nil, invalidArgument("query")
	}
	if m == nil {
		return nil, invalidArgument("mapping")
	}
	clauses := splitList(orderBy)
	if len(clauses) == 0 {
		return q, nil
	}

	var keys []SortKey
	for _, clause := range clauses {
		name, desc := parseClause(clause)
		target, ok := m.Lookup(name)
		if !ok {
			return nil, &FieldError{Kind: ErrUnknownSortField, Field: name}
		}
		// reverse flips the requested direction rather than overriding it
		if target.Reverse {
			desc = !desc
		}
		for _, field := range target.InternalFields {
			keys = append(keys, SortKey{Field: field, Descending: desc})
		}
	}
	return q.OrderBy(keys...), nil
}

// parseClause splits "field [direction]" on the first space.
func parseClause(clause string) (name string, desc bool) {
	name, dir, found := strings.Cut(clause, " ")
	if !found {
		return name, false
	}
	return name, strings.EqualFold(strings.TrimSpace(dir), "desc")
}
