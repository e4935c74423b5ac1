package schema

import (
	"github.com/vicam001/order-extract/constants"
)

// BuildOrderSchema returns the order record's JSON-Schema (draft 2020-12
// subset) as a generic map. Validation is structural only: required fields,
// types, and closed enums — extracted values are never cross-checked against
// the source document.
func BuildOrderSchema() map[string]any {
	address := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"address_name": map[string]any{"type": "string"},
			"street":       map[string]any{"type": "string", "minLength": 1},
			"city":         map[string]any{"type": "string"},
			"province":     map[string]any{"type": "string", "minLength": 1},
			// Raw as extracted; may or may not be all digits.
			"postal_code": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"street", "province", "postal_code"},
	}

	contact := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"contact_person": map[string]any{"type": "string"},
			"phone":          map[string]any{"type": "string"},
		},
	}

	vehicle := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"license_plate": map[string]any{"type": "string", "minLength": 1},
			"vin":           map[string]any{"type": "string"},
			"make":          map[string]any{"type": "string", "minLength": 1},
			"model":         map[string]any{"type": "string"},
			"color":         map[string]any{"type": "string", "enum": constants.ColorsAsStringSlice()},
			"release_id":    map[string]any{"type": "string", "pattern": `^[0-9A-Za-z]*$`},
			"weight":        map[string]any{"type": "number"},
			"volume":        map[string]any{"type": "number"},
			"activity":      map[string]any{"type": "string", "enum": []string{"Collection", "Delivery"}},
		},
		"required": []string{"license_plate", "make"},
	}

	stop := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"stop_number": map[string]any{"type": "integer", "minimum": 1},
			"address":     address,
			"contact":     contact,
			"vehicles":    map[string]any{"type": "array", "items": vehicle, "minItems": 1},
			"comments":    map[string]any{"type": "string"},
		},
		"required": []string{"stop_number", "address", "vehicles"},
	}

	header := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"company_name":          map[string]any{"type": "string"},
			"customer_code":         map[string]any{"type": "string"},
			"shipment_id":           map[string]any{"type": "string", "minLength": 1},
			"available_at":          map[string]any{"type": "string"},
			"delivery_requested_at": map[string]any{"type": "string"},
			"sender_email":          map[string]any{"type": "string"},
			"number_of_stops":       map[string]any{"type": "integer", "minimum": 1},
			"number_of_vehicles":    map[string]any{"type": "integer", "minimum": 0},
		},
		"required": []string{"shipment_id", "available_at", "delivery_requested_at", "number_of_stops", "number_of_vehicles"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"header": header,
			"stops":  map[string]any{"type": "array", "items": stop, "minItems": 1},
		},
		"required": []string{"header", "stops"},
	}
}
