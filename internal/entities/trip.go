package entities

type TripState string

const (
	TripAwaitingAssignment           TripState = "AWAITING_ASSIGNMENT"
	TripEnRoute                      TripState = "EN_ROUTE"
	TripAwaitingDeliveryConfirmation TripState = "AWAITING_DELIVERY_CONFIRMATION"
	TripDelivered                    TripState = "DELIVERED"
)

func (s TripState) String() string {
	return string(s)
}
