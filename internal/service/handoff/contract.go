//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=handoff_test
package handoff

import (
	"context"
)

type Gateway interface {
	ConfirmArrival(ctx context.Context, shipmentID string) error
}
