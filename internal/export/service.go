package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vicam001/order-extract/internal/entity"
)

// Service produces XLSX bytes for operator review of a batch of accepted
// orders.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// OrdersXLSX returns an XLSX workbook (as bytes) with one row per stop of
// every order.
func (s *Service) OrdersXLSX(ctx context.Context, orders []entity.Order) ([]byte, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Orders"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Shipment ID",
		"Company",
		"Available At",
		"Delivery Requested At",
		"Stop",
		"Activity",
		"Location",
		"Street",
		"Postal Code",
		"Province",
		"Contact",
		"Phone",
		"License Plate",
		"Make",
		"Model",
		"Comments",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, order := range orders {
		for _, stop := range order.Stops {
			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheet, cell, v)
			}

			activity := ""
			plate, vmake, vmodel := "", "", ""
			if len(stop.Vehicles) > 0 {
				v := stop.Vehicles[0]
				activity = string(v.Activity)
				plate, vmake, vmodel = v.LicensePlate, v.Make, v.Model
			}
			contact, phone := "", ""
			if stop.Contact != nil {
				contact, phone = stop.Contact.ContactPerson, stop.Contact.Phone
			}

			write(1, order.Header.ShipmentID)
			write(2, order.Header.CompanyName)
			write(3, order.Header.AvailableAt)
			write(4, order.Header.DeliveryRequestedAt)
			write(5, stop.StopNumber)
			write(6, activity)
			write(7, stop.Address.AddressName)
			write(8, stop.Address.Street)
			write(9, stop.Address.PostalCode)
			write(10, stop.Address.Province)
			write(11, contact)
			write(12, phone)
			write(13, plate)
			write(14, vmake)
			write(15, vmodel)
			write(16, truncate(stop.Comments, 140))

			row++
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 18) // shipment id
	_ = f.SetColWidth(sheet, "C", "D", 20) // dates
	_ = f.SetColWidth(sheet, "G", "H", 32) // location, street
	_ = f.SetColWidth(sheet, "P", "P", 48) // comments

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"orders", len(orders),
		"rows", row-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// truncate caps s at n runes so multibyte text never splits mid-character.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n == 1 {
		return string(runes[:1])
	}
	return string(runes[:n-1]) + "…"
}
