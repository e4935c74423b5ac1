package extract

import (
	"log/slog"
	"time"

	"github.com/vicam001/order-extract/internal/common"
	"github.com/vicam001/order-extract/internal/entity"
	"github.com/vicam001/order-extract/internal/layout"
)

// Builder assembles a candidate order from one layout tree, driven by a
// declarative template. It is a one-shot transform with no state across
// calls; building the same tree twice yields structurally equal orders
// except for the available_at timestamp.
type Builder struct {
	Logger *slog.Logger
	Tpl    Template
	Now    func() time.Time
}

// NewBuilder wires a builder for one template.
func NewBuilder(logger *slog.Logger, tpl Template) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{Logger: logger, Tpl: tpl, Now: time.Now}
}

// Build maps the tree onto an order. Structural absence of a mapped table or
// row is the one fatal condition; individual field misses degrade to empty
// values or sentinels so a reviewable record is always produced when the
// skeleton is intact.
func (b *Builder) Build(tree *layout.Tree) (entity.Order, error) {
	shipmentID := b.textByRef(tree, b.Tpl.ShipmentIDRef)
	deliveryAt := b.textByRef(tree, b.Tpl.DeliveryDateRef)

	plate, err := b.fieldValue(tree, "license_plate", b.Tpl.Vehicle.Plate)
	if err != nil {
		return entity.Order{}, err
	}
	makeRes, err := b.fieldValue(tree, "make", b.Tpl.Vehicle.Make)
	if err != nil {
		return entity.Order{}, err
	}
	makeRes = makeRes.Map(func(s string) string {
		return StripLabelPrefix(b.Tpl.Vehicle.Make.Label, s)
	})
	modelRes, err := b.fieldValue(tree, "model", b.Tpl.Vehicle.Model)
	if err != nil {
		return entity.Order{}, err
	}
	modelRes = modelRes.Map(func(s string) string {
		return StripLabelPrefix(b.Tpl.Vehicle.Model.Label, s)
	})
	if b.Tpl.Vehicle.StripMakeFromModel {
		modelRes = modelRes.Map(func(s string) string {
			return StripLabelPrefix(makeRes.Value(), s)
		})
	}

	pickup, err := b.buildStop(tree, 1, b.Tpl.Pickup)
	if err != nil {
		return entity.Order{}, err
	}
	delivery, err := b.buildStop(tree, 2, b.Tpl.Delivery)
	if err != nil {
		return entity.Order{}, err
	}

	// Single-vehicle template: both stops carry the same unit.
	pickup.Vehicles = []entity.Vehicle{{
		LicensePlate: plate.Or(entity.UnknownValue),
		Make:         makeRes.Or(entity.UnknownValue),
		Model:        modelRes.Value(),
		Activity:     entity.ActivityCollection,
	}}
	delivery.Vehicles = []entity.Vehicle{{
		LicensePlate: plate.Or(entity.UnknownValue),
		Make:         makeRes.Or(entity.UnknownValue),
		Model:        modelRes.Value(),
		Activity:     entity.ActivityDelivery,
	}}

	stops := []entity.Stop{pickup, delivery}
	order := entity.Order{
		Header: entity.Header{
			CompanyName:         b.Tpl.CompanyName,
			ShipmentID:          shipmentID.Or(entity.UnknownValue),
			AvailableAt:         b.Now().Format("02/01/2006"),
			DeliveryRequestedAt: FormatDate(deliveryAt.Value()),
			NumberOfStops:       len(stops),
			NumberOfVehicles:    len(pickup.Vehicles),
		},
		Stops: stops,
	}

	b.Logger.Info("builder.ok",
		"template", b.Tpl.Name,
		"shipment_id", order.Header.ShipmentID,
		"stops", len(order.Stops),
	)
	return order, nil
}

func (b *Builder) buildStop(tree *layout.Tree, number int, tpl StopTemplate) (entity.Stop, error) {
	name, err := b.fieldValue(tree, "address_name", tpl.Name)
	if err != nil {
		return entity.Stop{}, err
	}
	street, err := b.fieldValue(tree, "street", tpl.Street)
	if err != nil {
		return entity.Stop{}, err
	}
	postal, err := b.fieldValue(tree, "postal_code", tpl.PostalCode)
	if err != nil {
		return entity.Stop{}, err
	}
	province, err := b.fieldValue(tree, "province", tpl.Province)
	if err != nil {
		return entity.Stop{}, err
	}
	person, err := b.fieldValue(tree, "contact_person", tpl.Contact)
	if err != nil {
		return entity.Stop{}, err
	}
	phone, err := b.fieldValue(tree, "phone", tpl.Phone)
	if err != nil {
		return entity.Stop{}, err
	}
	comments, err := b.fieldValue(tree, "comments", tpl.Comments)
	if err != nil {
		return entity.Stop{}, err
	}
	comments = comments.Map(func(s string) string {
		return StripLabelPrefix(tpl.Comments.Label, s)
	})

	return entity.Stop{
		StopNumber: number,
		Address: entity.Address{
			AddressName: name.Value(),
			Street:      street.Value(),
			Province:    province.Value(),
			PostalCode:  FirstWordIfPostalCode(postal.Value()),
		},
		Contact: &entity.Contact{
			ContactPerson: person.Value(),
			Phone:         phone.Value(),
		},
		Comments: comments.Value(),
	}, nil
}

// fieldValue resolves one mapped cell. A missing table or row is fatal;
// a row where no cell qualifies is a represented absence.
func (b *Builder) fieldValue(tree *layout.Tree, field string, ref FieldRef) (Result, error) {
	table, ok := tree.TableAt(ref.Table)
	if !ok {
		return NotFound(), common.NewExtractionError(common.MissingTable, field, layout.TableRef(ref.Table))
	}
	row, ok := rowAt(table, ref.Row)
	if !ok {
		return NotFound(), common.NewExtractionError(common.MissingRow, field, layout.TableRef(ref.Table))
	}
	return FirstNonMatching(row, ref.Label), nil
}

// rowAt reads a row through the TableView capability, so grid-backed and
// flat-cell-list-backed tables extract the same way.
func rowAt(view layout.TableView, i int) ([]layout.Cell, bool) {
	return view.Row(i)
}

func (b *Builder) textByRef(tree *layout.Tree, ref string) Result {
	if ref == "" {
		return NotFound()
	}
	content, ok := tree.TextByRef(ref)
	if !ok {
		b.Logger.Debug("builder.text.miss", "ref", ref)
		return NotFound()
	}
	return Found(content)
}
