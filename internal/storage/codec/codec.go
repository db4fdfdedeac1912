// Package codec converts entities to and from the flat tagged map
// representation shared by the persisted layouts: every declared field as a
// primitive value, timestamps in their fixed textual form, and a __class__
// discriminator naming the concrete type. decode(encode(e)) is
// attribute-equal to e for every registered kind.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mensah/schoolms/internal/app/models"
	"github.com/mensah/schoolms/internal/pkg/apperrors"
)

// ClassKey is the discriminator field in encoded documents.
const ClassKey = "__class__"

// Encode converts an entity into its flat tagged map. Only declared fields
// appear; backend book-keeping state never leaks into the result.
func Encode(e models.Entity) (map[string]interface{}, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Kind(), err)
	}

	doc := map[string]interface{}{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Kind(), err)
	}

	doc[ClassKey] = string(e.Kind())
	return doc, nil
}

// Decode materializes an entity from its flat tagged map. The concrete
// constructor is looked up by the __class__ tag; an unregistered tag fails
// with ErrUnknownType and field values that break entity invariants fail
// with ErrValidation.
func Decode(doc map[string]interface{}) (models.Entity, error) {
	tag, ok := doc[ClassKey].(string)
	if !ok || tag == "" {
		return nil, apperrors.NewUnknownTypeError("")
	}

	entity, ok := models.NewOf(models.Kind(tag))
	if !ok {
		return nil, apperrors.NewUnknownTypeError(tag)
	}

	fields := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		if k == ClassKey {
			continue
		}
		fields[k] = v
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", tag, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(entity); err != nil {
		return nil, apperrors.NewValidationError(tag, err.Error())
	}

	if err := entity.Validate(); err != nil {
		return nil, err
	}

	return entity, nil
}

// Fields returns the declared field names of a kind, derived from a zero
// instance's encoded form. Used to validate filter expressions before a scan
// or a SQL translation.
func Fields(kind models.Kind) (map[string]bool, error) {
	proto, ok := models.NewOf(kind)
	if !ok {
		return nil, apperrors.NewUnknownTypeError(string(kind))
	}

	doc, err := Encode(proto)
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(doc))
	for k := range doc {
		if k == ClassKey {
			continue
		}
		names[k] = true
	}
	return names, nil
}
