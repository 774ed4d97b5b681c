package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// ErrInvalidPatch is returned when a JSON Patch document cannot be decoded or
// applied, or produces a body with unknown members.
var ErrInvalidPatch = errors.New("invalid patch document")

// applyPatch applies an RFC 6902 document to the JSON form of target and
// decodes the result back into it.
func applyPatch[T any](target *T, patch []byte) error {
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	doc, err := json.Marshal(target)
	if err != nil {
		return err
	}
	patched, err := p.Apply(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	var out T
	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	*target = out
	return nil
}
