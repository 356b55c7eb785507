package shipment

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

var pickupCodePattern = regexp.MustCompile(`^AG-\d{6}$`)

var errEmptyResponse = errors.New("empty response body")

// transportError - запрос не дошел до сервиса или ответ не был получен.
type transportError struct {
	Err error
}

func (e *transportError) Error() string {
	return e.Err.Error()
}

func (e *transportError) Unwrap() error {
	return e.Err
}

// statusError - ответ удаленного сервиса с кодом вне 2xx.
type statusError struct {
	Code    int
	Message string
}

func (e *statusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote responded %d", e.Code)
	}
	return fmt.Sprintf("remote responded %d: %s", e.Code, e.Message)
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var se *statusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}

	var te *transportError
	return errors.As(err, &te)
}

func statusCodeLabel(err error) string {
	if err == nil {
		return "OK"
	}
	var se *statusError
	if errors.As(err, &se) {
		return strconv.Itoa(se.Code)
	}
	return "TRANSPORT"
}

func remoteMessage(err error, fallback string) string {
	var se *statusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

func statusCode(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// isProximityRejection отличает отказ по расстоянию от прочих 400.
func isProximityRejection(err error) bool {
	var se *statusError
	if !errors.As(err, &se) {
		return false
	}
	if se.Code != http.StatusBadRequest && se.Code != http.StatusConflict && se.Code != http.StatusUnprocessableEntity {
		return false
	}
	return strings.Contains(strings.ToLower(se.Message), "too far")
}
