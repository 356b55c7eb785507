package incident

import "errors"

var (
	ErrNoActiveTrip     = errors.New("no active trip")
	ErrCarrierNotListed = errors.New("carrier not in active fleet")
	ErrFleetUnavailable = errors.New("fleet unavailable")
	ErrPositionUnknown  = errors.New("truck position unknown")
	ErrReporterClosed   = errors.New("incident reporter closed")
)
