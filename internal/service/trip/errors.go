package trip

import "errors"

var (
	ErrInvalidTransition   = errors.New("invalid trip transition")
	ErrOperationInProgress = errors.New("trip operation already in progress")
	ErrNotAwaitingDelivery = errors.New("trip is not awaiting delivery confirmation")
	ErrUndefinedStatus     = errors.New("undefined shipment status")
)
