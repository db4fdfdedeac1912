package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mensah/schoolms/internal/pkg/apperrors"
)

// immutable are the fields Apply refuses to change.
var immutable = map[string]bool{
	"id":         true,
	"created_at": true,
}

// Apply is the single mutation path for entities. It merges the given fields
// onto a copy of e, rejecting unknown and immutable field names instead of
// silently attaching them, stamps updated_at, and re-validates. The returned
// entity is a fresh instance; e is left untouched.
func Apply(e Entity, fields map[string]interface{}) (Entity, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Kind(), err)
	}

	current := map[string]interface{}{}
	if err := json.Unmarshal(raw, &current); err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Kind(), err)
	}

	for name, value := range fields {
		if immutable[name] {
			return nil, apperrors.NewValidationError(name, "immutable field")
		}
		if _, ok := current[name]; !ok {
			return nil, apperrors.NewValidationError(name, "unknown field")
		}
		current[name] = value
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("merge %s: %w", e.Kind(), err)
	}

	fresh, ok := NewOf(e.Kind())
	if !ok {
		return nil, apperrors.NewUnknownTypeError(string(e.Kind()))
	}

	dec := json.NewDecoder(bytes.NewReader(merged))
	dec.DisallowUnknownFields()
	if err := dec.Decode(fresh); err != nil {
		return nil, apperrors.NewValidationError(e.Kind().String(), err.Error())
	}

	fresh.Touch()
	if err := fresh.Validate(); err != nil {
		return nil, err
	}

	return fresh, nil
}
