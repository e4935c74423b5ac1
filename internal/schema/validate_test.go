package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicam001/order-extract/internal/common"
	"github.com/vicam001/order-extract/internal/entity"
)

func validOrder() entity.Order {
	vehicle := entity.Vehicle{
		LicensePlate: "1234ABC",
		Make:         "HYUNDAI",
		Model:        "I30",
		Activity:     entity.ActivityCollection,
	}
	stop := func(n int, activity entity.Activity) entity.Stop {
		v := vehicle
		v.Activity = activity
		return entity.Stop{
			StopNumber: n,
			Address: entity.Address{
				AddressName: "Campa Norte",
				Street:      "Calle Mayor 12",
				Province:    "Madrid",
				PostalCode:  "28050",
			},
			Contact:  &entity.Contact{ContactPerson: "Luis Ortega", Phone: "600111222"},
			Vehicles: []entity.Vehicle{v},
		}
	}
	return entity.Order{
		Header: entity.Header{
			CompanyName:         "SEMAT",
			ShipmentID:          "SHP-00412",
			AvailableAt:         "01/08/2024",
			DeliveryRequestedAt: "31/07/2024",
			NumberOfStops:       2,
			NumberOfVehicles:    1,
		},
		Stops: []entity.Stop{
			stop(1, entity.ActivityCollection),
			stop(2, entity.ActivityDelivery),
		},
	}
}

func TestValidateAcceptsCompleteOrder(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	order := validOrder()
	got, err := v.Validate(order)
	require.NoError(t, err)
	assert.Equal(t, order, got)
}

func TestValidateRejections(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*entity.Order)
	}{
		{
			name:   "missing street",
			mutate: func(o *entity.Order) { o.Stops[0].Address.Street = "" },
		},
		{
			name:   "missing shipment id",
			mutate: func(o *entity.Order) { o.Header.ShipmentID = "" },
		},
		{
			name:   "unknown color",
			mutate: func(o *entity.Order) { o.Stops[0].Vehicles[0].Color = "Purple" },
		},
		{
			name:   "bad activity",
			mutate: func(o *entity.Order) { o.Stops[1].Vehicles[0].Activity = "Return" },
		},
		{
			name:   "no vehicles on a stop",
			mutate: func(o *entity.Order) { o.Stops[0].Vehicles = nil },
		},
		{
			name:   "stop count mismatch",
			mutate: func(o *entity.Order) { o.Header.NumberOfStops = 3 },
		},
		{
			name:   "release id with separators",
			mutate: func(o *entity.Order) { o.Stops[0].Vehicles[0].ReleaseID = "004A-0724359" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validOrder()
			tt.mutate(&order)

			_, err := v.Validate(order)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrValidation))

			var ve *common.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Violations)
		})
	}
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	order := validOrder()
	order.Header.ShipmentID = ""
	order.Stops[0].Address.Street = ""
	order.Stops[1].Address.Province = ""

	_, err = v.Validate(order)
	require.Error(t, err)

	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.GreaterOrEqual(t, len(ve.Violations), 3)
}

func TestValidateAcceptsKnownColors(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	order := validOrder()
	order.Stops[0].Vehicles[0].Color = "Grey"
	_, err = v.Validate(order)
	require.NoError(t, err)
}
