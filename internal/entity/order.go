package entity

import (
	"github.com/vicam001/order-extract/constants"
)

// Activity says whether a vehicle is picked up or dropped off at a stop.
type Activity string

const (
	ActivityCollection Activity = "Collection"
	ActivityDelivery   Activity = "Delivery"
)

// UnknownValue is substituted for required vehicle fields that could not be
// recovered from the document, so the record stays structurally valid.
const UnknownValue = "UNKNOWN"

// Address is one stop's location for data transfer between layers.
type Address struct {
	AddressName string `json:"address_name,omitempty"`
	Street      string `json:"street"`
	City        string `json:"city,omitempty"`
	Province    string `json:"province"`
	// PostalCode is kept as the raw extracted string; it may carry a trailing
	// city name when the heuristic split does not apply.
	PostalCode string `json:"postal_code"`
}

// Contact is the person to reach at a stop.
type Contact struct {
	ContactPerson string `json:"contact_person,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

// Vehicle is one transported unit attached to a stop.
type Vehicle struct {
	LicensePlate string          `json:"license_plate"`
	VIN          string          `json:"vin,omitempty"`
	Make         string          `json:"make"`
	Model        string          `json:"model,omitempty"`
	Color        constants.Color `json:"color,omitempty"`
	ReleaseID    string          `json:"release_id,omitempty"`
	Weight       *float64        `json:"weight,omitempty"`
	Volume       *float64        `json:"volume,omitempty"`
	Activity     Activity        `json:"activity,omitempty"`
}

// Stop is one pickup or delivery point of an order.
type Stop struct {
	StopNumber int       `json:"stop_number"`
	Address    Address   `json:"address"`
	Contact    *Contact  `json:"contact,omitempty"`
	Vehicles   []Vehicle `json:"vehicles"`
	Comments   string    `json:"comments,omitempty"`
}

// Header carries the order-level fields of a shipment document.
type Header struct {
	CompanyName         string `json:"company_name,omitempty"`
	CustomerCode        string `json:"customer_code,omitempty"`
	ShipmentID          string `json:"shipment_id"`
	AvailableAt         string `json:"available_at"`
	DeliveryRequestedAt string `json:"delivery_requested_at"`
	SenderEmail         string `json:"sender_email,omitempty"`
	NumberOfStops       int    `json:"number_of_stops"`
	NumberOfVehicles    int    `json:"number_of_vehicles"`
}

// Order is the validated record extracted from one document. It is built
// once, validated immediately, and never mutated afterwards.
type Order struct {
	Header Header `json:"header"`
	Stops  []Stop `json:"stops"`
}

// OrderList wraps a batch of orders for JSON serialization.
type OrderList struct {
	Orders []Order `json:"orders"`
}
