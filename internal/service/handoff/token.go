package handoff

import (
	"fmt"
	"strings"
	"unicode"
)

// tokenPrefix версионирует формат, который водитель показывает оператору депо.
const tokenPrefix = "AGT1:"

func EncodeToken(shipmentID string) string {
	return tokenPrefix + shipmentID
}

func DecodeToken(token string) (string, error) {
	token = strings.TrimSpace(token)
	if !strings.HasPrefix(token, tokenPrefix) {
		return "", fmt.Errorf("%w: unknown format", ErrMalformedToken)
	}

	shipmentID := strings.TrimPrefix(token, tokenPrefix)
	if shipmentID == "" {
		return "", fmt.Errorf("%w: empty shipment id", ErrMalformedToken)
	}
	if strings.IndexFunc(shipmentID, unicode.IsSpace) >= 0 || strings.Contains(shipmentID, "/") {
		return "", fmt.Errorf("%w: invalid shipment id", ErrMalformedToken)
	}
	return shipmentID, nil
}
