package extract

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FieldRef names where one scalar lives in the document: which table, which
// row, and the label cell to skip over in that row. Positions are only
// meaningful for documents matching the template.
type FieldRef struct {
	Table int    `toml:"table"`
	Row   int    `toml:"row"`
	Label string `toml:"label"`
}

// StopTemplate maps the fields of one stop block onto its table.
type StopTemplate struct {
	Name       FieldRef `toml:"name"`
	Contact    FieldRef `toml:"contact"`
	Street     FieldRef `toml:"street"`
	PostalCode FieldRef `toml:"postal_code"`
	Province   FieldRef `toml:"province"`
	Phone      FieldRef `toml:"phone"`
	Comments   FieldRef `toml:"comments"`
}

// VehicleTemplate maps the vehicle block onto its table.
type VehicleTemplate struct {
	Plate FieldRef `toml:"plate"`
	Make  FieldRef `toml:"make"`
	Model FieldRef `toml:"model"`
	// StripMakeFromModel removes the make when the model cell embeds it.
	// The strip is an unconditional prefix removal.
	StripMakeFromModel bool `toml:"strip_make_from_model"`
}

// Template is the declarative field mapping for one document family. New
// templates are added by data, not by code changes.
type Template struct {
	Name            string          `toml:"name"`
	CompanyName     string          `toml:"company_name"`
	ShipmentIDRef   string          `toml:"shipment_id_ref"`
	DeliveryDateRef string          `toml:"delivery_date_ref"`
	Vehicle         VehicleTemplate `toml:"vehicle"`
	Pickup          StopTemplate    `toml:"pickup"`
	Delivery        StopTemplate    `toml:"delivery"`
}

// DefaultTemplate is the fixed SEMAT shipment-order layout the extraction was
// originally written against: Spanish captions, vehicle block in table 0,
// pickup in table 1, delivery in table 2.
func DefaultTemplate() Template {
	return Template{
		Name:            "semat",
		CompanyName:     "SEMAT",
		ShipmentIDRef:   "#/texts/5",
		DeliveryDateRef: "#/texts/6",
		Vehicle: VehicleTemplate{
			Plate:              FieldRef{Table: 0, Row: 0, Label: "Matrícula / Bastidor:"},
			Make:               FieldRef{Table: 0, Row: 1, Label: "Marca:"},
			Model:              FieldRef{Table: 0, Row: 2, Label: "Modelo:"},
			StripMakeFromModel: true,
		},
		Pickup: StopTemplate{
			Name:       FieldRef{Table: 1, Row: 0, Label: "Punto de Recogida:"},
			Contact:    FieldRef{Table: 1, Row: 1, Label: "Persona de Contacto:"},
			Street:     FieldRef{Table: 1, Row: 2, Label: "Dirección:"},
			PostalCode: FieldRef{Table: 1, Row: 3, Label: "Código Postal:"},
			Province:   FieldRef{Table: 1, Row: 4, Label: "Provincia:"},
			Phone:      FieldRef{Table: 1, Row: 5, Label: "Teléfono de Contacto:"},
			Comments:   FieldRef{Table: 1, Row: 6, Label: "Observaciones:"},
		},
		Delivery: StopTemplate{
			Name:       FieldRef{Table: 2, Row: 0, Label: "Punto de Entrega:"},
			Contact:    FieldRef{Table: 2, Row: 1, Label: "Persona de Contacto:"},
			Street:     FieldRef{Table: 2, Row: 2, Label: "Dirección:"},
			PostalCode: FieldRef{Table: 2, Row: 3, Label: "Código Postal:"},
			Province:   FieldRef{Table: 2, Row: 4, Label: "Provincia:"},
			Phone:      FieldRef{Table: 2, Row: 5, Label: "Teléfono de Contacto:"},
			Comments:   FieldRef{Table: 2, Row: 6, Label: "Observaciones:"},
		},
	}
}

// LoadTemplate reads a TOML template file. Fields left out of the file keep
// the default template's values, so an override only needs the labels or
// positions that differ.
func LoadTemplate(path string) (Template, error) {
	tpl := DefaultTemplate()

	raw, err := os.ReadFile(path)
	if err != nil {
		return tpl, fmt.Errorf("read template: %w", err)
	}
	if err := toml.Unmarshal(raw, &tpl); err != nil {
		return tpl, fmt.Errorf("parse template: %w", err)
	}
	if err := tpl.Validate(); err != nil {
		return tpl, err
	}
	return tpl, nil
}

// Validate rejects templates that cannot address a document at all.
func (t Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if t.ShipmentIDRef == "" {
		return fmt.Errorf("template %s: shipment_id_ref is required", t.Name)
	}
	refs := []FieldRef{
		t.Vehicle.Plate, t.Vehicle.Make, t.Vehicle.Model,
		t.Pickup.Street, t.Pickup.PostalCode, t.Pickup.Province,
		t.Delivery.Street, t.Delivery.PostalCode, t.Delivery.Province,
	}
	for _, r := range refs {
		if r.Table < 0 || r.Row < 0 {
			return fmt.Errorf("template %s: negative table or row index", t.Name)
		}
	}
	return nil
}
