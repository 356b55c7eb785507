package handoff

import (
	"context"
	"fmt"
)

// Service - сторона депо: принимает токен, предъявленный водителем, и завершает доставку.
type Service struct {
	gateway Gateway
}

func New(gateway Gateway) *Service {
	return &Service{gateway: gateway}
}

func (s *Service) Confirm(ctx context.Context, token string) (string, error) {
	shipmentID, err := DecodeToken(token)
	if err != nil {
		return "", err
	}

	if err := s.gateway.ConfirmArrival(ctx, shipmentID); err != nil {
		return "", fmt.Errorf("confirm arrival %s: %w", shipmentID, err)
	}
	return shipmentID, nil
}
