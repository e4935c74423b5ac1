package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vicam001/order-extract/internal/common"
	"github.com/vicam001/order-extract/internal/entity"
)

// Validator checks candidate orders against the order schema. The schema is
// compiled once and reused for every record.
type Validator struct {
	compiled *jsonschema.Schema
}

// NewValidator compiles the built-in order schema.
func NewValidator() (*Validator, error) {
	b, err := json.Marshal(BuildOrderSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("order.schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile("order.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{compiled: compiled}, nil
}

// Validate checks one candidate record. It returns the record unchanged on
// success, or a ValidationError enumerating every constraint violation.
func (v *Validator) Validate(order entity.Order) (entity.Order, error) {
	data, err := json.Marshal(order)
	if err != nil {
		return entity.Order{}, fmt.Errorf("marshal order: %w", err)
	}

	// Cross-field invariant the schema language cannot express.
	var violations []common.FieldViolation
	if order.Header.NumberOfStops != len(order.Stops) {
		violations = append(violations, common.FieldViolation{
			Field:  "/header/number_of_stops",
			Reason: fmt.Sprintf("declares %d stops, record has %d", order.Header.NumberOfStops, len(order.Stops)),
		})
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return entity.Order{}, fmt.Errorf("unmarshal order: %w", err)
	}
	if err := v.compiled.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if ok := asValidationError(err, &ve); ok {
			violations = append(violations, flatten(ve)...)
		} else {
			violations = append(violations, common.FieldViolation{Field: "/", Reason: err.Error()})
		}
	}

	if len(violations) > 0 {
		return entity.Order{}, common.NewValidationError(violations...)
	}
	return order, nil
}

func asValidationError(err error, target **jsonschema.ValidationError) bool {
	ve, ok := err.(*jsonschema.ValidationError)
	if ok {
		*target = ve
	}
	return ok
}

// flatten walks the cause tree and keeps only leaf violations, which carry
// the concrete field locations.
func flatten(ve *jsonschema.ValidationError) []common.FieldViolation {
	if len(ve.Causes) == 0 {
		field := ve.InstanceLocation
		if field == "" {
			field = "/"
		}
		return []common.FieldViolation{{Field: field, Reason: ve.Message}}
	}
	var out []common.FieldViolation
	for _, cause := range ve.Causes {
		out = append(out, flatten(cause)...)
	}
	return out
}
