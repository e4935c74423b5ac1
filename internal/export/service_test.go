package export

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vicam001/order-extract/internal/entity"
)

func sampleOrder() entity.Order {
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
			{
				StopNumber: 1,
				Address:    entity.Address{AddressName: "Campa Norte", Street: "Calle Mayor 12", Province: "Madrid", PostalCode: "28050"},
				Contact:    &entity.Contact{ContactPerson: "Luis Ortega", Phone: "600111222"},
				Vehicles: []entity.Vehicle{
					{LicensePlate: "1234ABC", Make: "HYUNDAI", Model: "I30", Activity: entity.ActivityCollection},
				},
				Comments: "Llamar antes",
			},
			{
				StopNumber: 2,
				Address:    entity.Address{AddressName: "Concesionario Sur", Street: "Avenida del Puerto 3", Province: "Valencia", PostalCode: "46021"},
				Vehicles: []entity.Vehicle{
					{LicensePlate: "1234ABC", Make: "HYUNDAI", Model: "I30", Activity: entity.ActivityDelivery},
				},
			},
		},
	}
}

func TestOrdersXLSXOneRowPerStop(t *testing.T) {
	s := NewService(nil)
	data, err := s.OrdersXLSX(context.Background(), []entity.Order{sampleOrder()})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + two stops

	assert.Equal(t, "Shipment ID", rows[0][0])
	assert.Equal(t, "SHP-00412", rows[1][0])
	assert.Equal(t, "1", rows[1][4])
	assert.Equal(t, "Collection", rows[1][5])
	assert.Equal(t, "Campa Norte", rows[1][6])
	assert.Equal(t, "2", rows[2][4])
	assert.Equal(t, "Delivery", rows[2][5])
	assert.Equal(t, "1234ABC", rows[2][12])
}

func TestOrdersXLSXEmptyBatch(t *testing.T) {
	s := NewService(nil)
	data, err := s.OrdersXLSX(context.Background(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"short passes through", "hola", 140, "hola"},
		{"ascii at limit", strings.Repeat("a", 140), 140, strings.Repeat("a", 140)},
		{"ascii over limit", strings.Repeat("a", 141), 140, strings.Repeat("a", 139) + "…"},
		{"multibyte at byte boundary", strings.Repeat("a", 138) + "éé", 140, strings.Repeat("a", 138) + "éé"},
		{"multibyte over limit", strings.Repeat("a", 139) + "éé", 140, strings.Repeat("a", 139) + "…"},
		{"accent kept whole", "Avería en rampa, llamar al llegar", 10, "Avería en…"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := truncate(tc.input, tc.n)
			assert.Equal(t, tc.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestOrdersXLSXTruncatedCommentIsValidUTF8(t *testing.T) {
	order := sampleOrder()
	order.Stops[0].Comments = strings.Repeat("Señalización dañada. ", 20)

	s := NewService(nil)
	data, err := s.OrdersXLSX(context.Background(), []entity.Order{order})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	comment, err := f.GetCellValue("Orders", "P2")
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(comment))
	assert.True(t, strings.HasSuffix(comment, "…"))
}

func TestOrdersXLSXContactOptional(t *testing.T) {
	order := sampleOrder()

	s := NewService(nil)
	data, err := s.OrdersXLSX(context.Background(), []entity.Order{order})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	// Second stop has no contact; its cells stay empty.
	contact, err := f.GetCellValue("Orders", "K3")
	require.NoError(t, err)
	assert.Equal(t, "", contact)
}
