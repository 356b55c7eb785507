package entities

type Coordinates struct {
	Lat float64
	Lon float64
}

type ShipmentStatus string

const (
	ShipmentCreated   ShipmentStatus = "CREATED"
	ShipmentInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentDelivered ShipmentStatus = "DELIVERED"
	ShipmentCancelled ShipmentStatus = "CANCELLED"
)

func (s ShipmentStatus) String() string {
	return string(s)
}

type Shipment struct {
	ID          string
	PickupCode  string
	Origin      Coordinates
	Destination Coordinates
	Current     *Coordinates
	Status      ShipmentStatus
	CarrierID   *string
}

// ShipmentTicket - результат создания отправки, код передается водителю вне системы.
type ShipmentTicket struct {
	ID         string
	PickupCode string
}

// PickupBinding связывает отправку с перевозчиком после погашения кода.
type PickupBinding struct {
	ShipmentID string
	CarrierID  string
	Origin     Coordinates
}

func (b PickupBinding) Valid() bool {
	return b.ShipmentID != "" && b.CarrierID != ""
}
