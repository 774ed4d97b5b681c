package projection

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ShapedRecord is an ordered name → value projection of one object.
type ShapedRecord struct {
	names  []string
	values map[string]any
}

// NewShapedRecord returns an empty record with room for n fields.
func NewShapedRecord(n int) ShapedRecord {
	return ShapedRecord{
		names:  make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// Set adds or replaces a field. New fields are appended.
func (r *ShapedRecord) Set(name string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// Get returns a field value by exact name.
func (r ShapedRecord) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the record holds name, ignoring case.
func (r ShapedRecord) Has(name string) bool {
	for _, n := range r.names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// Names returns the field names in order.
func (r ShapedRecord) Names() []string {
	return append([]string(nil), r.names...)
}

// Len reports the number of fields.
func (r ShapedRecord) Len() int { return len(r.names) }

// MarshalJSON writes the record as a JSON object, keeping field order.
func (r ShapedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
