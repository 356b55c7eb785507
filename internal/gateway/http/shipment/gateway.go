package shipment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agritrack/internal/entities"
	retrierconfig "agritrack/pkg/retrier"
	"agritrack/pkg/retrier/backoff_adapter"

	"github.com/go-playground/validator/v10"
)

const (
	serviceName = "agritrack-api"

	defaultSummaryRange = "24h"
	maxErrorBodyBytes   = 4 << 10
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 1 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// Gateway - клиент удаленного сервиса отправок.
// Экземпляр без сессии умеет только Login/Register, остальные вызовы
// требуют копию, привязанную к сессии через WithSession.
type Gateway struct {
	baseURL  string
	client   doer
	retrier  retrier
	validate *validator.Validate
	session  entities.Session
}

func New(baseURL string, client doer) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return &Gateway{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   client,
		retrier:  backoff_adapter.New(retryConfig),
		validate: validator.New(),
	}
}

// WithSession возвращает копию шлюза с credential сессии. Транспорт общий.
func (g *Gateway) WithSession(session entities.Session) *Gateway {
	bound := *g
	bound.session = session
	return &bound
}

func (g *Gateway) Session() entities.Session {
	return g.session
}

func (g *Gateway) Login(ctx context.Context, email, password string) (*entities.Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, entities.ValidationError("Email and password are required")
	}

	var resp loginResponse
	err := g.executeWithMetrics(ctx, "Login", func(ctx context.Context) error {
		return g.send(ctx, http.MethodPost, "/login", loginRequest{Username: email, Password: password}, &resp, false)
	})
	if err != nil {
		if code := statusCode(err); code == http.StatusUnauthorized || code == http.StatusBadRequest {
			return nil, entities.NewError(entities.ErrUnauthenticated, remoteMessage(err, "Invalid credentials"), err)
		}
		return nil, entities.RemoteError("Login failed", err)
	}
	if resp.Token == "" {
		return nil, entities.RemoteError("Login failed", errEmptyResponse)
	}

	session := &entities.Session{
		Token:   resp.Token,
		Subject: resp.UserID,
	}
	if role, ok := entities.ParseRole(resp.Role); ok {
		session.Role = role
	}
	return session, nil
}

func (g *Gateway) Register(ctx context.Context, email, password string, role entities.Role) error {
	if strings.TrimSpace(email) == "" || password == "" || role.WireName() == "" {
		return entities.ValidationError("All fields are required")
	}

	req := registerRequest{Username: email, Password: password, Role: role.WireName()}
	err := g.executeWithMetrics(ctx, "Register", func(ctx context.Context) error {
		return g.send(ctx, http.MethodPost, "/register", req, nil, false)
	})
	if err != nil {
		if code := statusCode(err); code == http.StatusConflict || code == http.StatusBadRequest {
			return entities.ValidationError(remoteMessage(err, "Registration failed"))
		}
		return entities.RemoteError("Registration failed", err)
	}
	return nil
}

func (g *Gateway) CreateShipment(ctx context.Context, origin, destination entities.Coordinates) (*entities.ShipmentTicket, error) {
	req := createShipmentRequest{
		OriginLat: origin.Lat,
		OriginLon: origin.Lon,
		DestLat:   destination.Lat,
		DestLon:   destination.Lon,
	}
	if err := g.validate.Struct(req); err != nil {
		return nil, entities.ValidationError("Coordinates out of range")
	}
	if !g.session.Authenticated() {
		return nil, entities.UnauthenticatedError()
	}

	var resp createShipmentResponse
	err := g.executeWithMetrics(ctx, "CreateShipment", func(ctx context.Context) error {
		return g.send(ctx, http.MethodPost, "/api/shipments", req, &resp, true)
	})
	if err != nil {
		return nil, g.remoteFailure("Failed to create shipment", err)
	}
	if resp.ID == "" || resp.PickupCode == "" {
		return nil, entities.RemoteError("Failed to create shipment", errEmptyResponse)
	}

	return &entities.ShipmentTicket{ID: resp.ID, PickupCode: resp.PickupCode}, nil
}

// RedeemPickupCode проверяет формат кода до любого сетевого вызова.
func (g *Gateway) RedeemPickupCode(ctx context.Context, code string) (*entities.PickupBinding, error) {
	code = strings.TrimSpace(code)
	if !pickupCodePattern.MatchString(code) {
		return nil, entities.InvalidCodeError("Invalid code format")
	}
	if !g.session.Authenticated() {
		return nil, entities.UnauthenticatedError()
	}

	var resp pickupResponse
	err := g.executeWithMetrics(ctx, "RedeemPickupCode", func(ctx context.Context) error {
		return g.send(ctx, http.MethodPost, "/api/shipments/pickup", pickupRequest{PickupCode: code}, &resp, true)
	})
	if err != nil {
		switch statusCode(err) {
		case http.StatusBadRequest, http.StatusNotFound, http.StatusConflict:
			return nil, entities.InvalidCodeError(remoteMessage(err, "Invalid or expired code"))
		case http.StatusUnauthorized:
			return nil, entities.UnauthenticatedError()
		}
		return nil, entities.RemoteError("Failed to redeem pickup code", err)
	}
	if !resp.Success || resp.ShipmentID == "" || resp.TruckID == "" {
		return nil, entities.InvalidCodeError("Invalid or expired code")
	}

	return toPickupBinding(resp), nil
}

func (g *Gateway) ReportIncident(ctx context.Context, report entities.IncidentReport) error {
	req := toIncidentRequest(report)
	if err := g.validate.Struct(req); err != nil {
		return entities.ValidationError("Invalid incident report")
	}
	if !g.session.Authenticated() {
		return entities.UnauthenticatedError()
	}

	err := g.executeWithMetrics(ctx, "ReportIncident", func(ctx context.Context) error {
		return g.send(ctx, http.MethodPost, "/api/telemetry/incident", req, nil, true)
	})
	if err != nil {
		return g.remoteFailure("Failed to report incident", err)
	}
	return nil
}

// ListActiveShipments никогда не возвращает ошибку: любой сбой дает Degraded снимок.
func (g *Gateway) ListActiveShipments(ctx context.Context) entities.FleetSnapshot {
	if !g.session.Authenticated() {
		return entities.FleetSnapshot{Degraded: true}
	}

	var resp []activeShipment
	err := g.executeRead(ctx, "ListActiveShipments", func(ctx context.Context) error {
		resp = nil
		return g.send(ctx, http.MethodGet, "/api/shipments/active", nil, &resp, true)
	})
	if err != nil {
		return entities.FleetSnapshot{Degraded: true}
	}

	return toFleetSnapshot(resp)
}

// FetchSummary при сбое отдает нулевую сводку с флагом Degraded.
func (g *Gateway) FetchSummary(ctx context.Context) entities.Summary {
	if !g.session.Authenticated() {
		return entities.Summary{TimeRange: defaultSummaryRange, Degraded: true}
	}

	var resp summaryResponse
	path := "/dashboard/summary?" + url.Values{"range": {defaultSummaryRange}}.Encode()
	err := g.executeRead(ctx, "FetchSummary", func(ctx context.Context) error {
		resp = summaryResponse{}
		return g.send(ctx, http.MethodGet, path, nil, &resp, true)
	})
	if err != nil {
		return entities.Summary{TimeRange: defaultSummaryRange, Degraded: true}
	}

	return toSummary(resp)
}

// ShipmentStatus ищет отправку в списке активных. Отправка, пропавшая из
// успешно полученного списка, считается доставленной.
func (g *Gateway) ShipmentStatus(ctx context.Context, shipmentID string) (entities.ShipmentStatus, error) {
	if shipmentID == "" {
		return "", entities.ValidationError("Shipment ID is required")
	}
	if !g.session.Authenticated() {
		return "", entities.UnauthenticatedError()
	}

	var resp []activeShipment
	err := g.executeRead(ctx, "ShipmentStatus", func(ctx context.Context) error {
		resp = nil
		return g.send(ctx, http.MethodGet, "/api/shipments/active", nil, &resp, true)
	})
	if err != nil {
		return "", g.remoteFailure("Failed to check shipment status", err)
	}

	for _, s := range resp {
		if s.ID != shipmentID {
			continue
		}
		if s.Status == "" {
			return entities.ShipmentInTransit, nil
		}
		return entities.ShipmentStatus(strings.ToUpper(s.Status)), nil
	}
	return entities.ShipmentDelivered, nil
}

// VerifyArrival - проверка водителя, что грузовик рядом с точкой назначения.
func (g *Gateway) VerifyArrival(ctx context.Context, shipmentID string, coords entities.Coordinates) error {
	req := verifyRequest{ShipmentID: shipmentID, Lat: coords.Lat, Lon: coords.Lon}
	if err := g.validate.Struct(req); err != nil {
		return entities.ValidationError("Invalid arrival coordinates")
	}
	if !g.session.Authenticated() {
		return entities.UnauthenticatedError()
	}

	var resp successResponse
	err := g.executeWithMetrics(ctx, "VerifyArrival", func(ctx context.Context) error {
		return g.send(ctx, http.MethodPost, "/api/shipments/verify", req, &resp, true)
	})
	if err != nil {
		return g.arrivalFailure("Failed to verify arrival", err)
	}
	return nil
}

// ConfirmArrival завершает доставку со стороны депо.
func (g *Gateway) ConfirmArrival(ctx context.Context, shipmentID string) error {
	if shipmentID == "" {
		return entities.ValidationError("Shipment ID is required")
	}
	if !g.session.Authenticated() {
		return entities.UnauthenticatedError()
	}

	err := g.executeWithMetrics(ctx, "ConfirmArrival", func(ctx context.Context) error {
		return g.send(ctx, http.MethodPost, "/api/shipments/complete", completeRequest{ShipmentID: shipmentID}, nil, true)
	})
	if err != nil {
		return g.arrivalFailure("Failed to verify shipment", err)
	}
	return nil
}

func (g *Gateway) arrivalFailure(op string, err error) error {
	if isProximityRejection(err) {
		return entities.TooFarError(remoteMessage(err, "You are too far from the destination."))
	}
	return g.remoteFailure(op, err)
}

func (g *Gateway) remoteFailure(op string, err error) error {
	if statusCode(err) == http.StatusUnauthorized {
		return entities.UnauthenticatedError()
	}
	return entities.RemoteError(remoteMessage(err, op), err)
}

// executeRead - чтение с ретраями транзиентных ошибок.
func (g *Gateway) executeRead(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	code := statusCodeLabel(err)
	GatewayRequestDuration.WithLabelValues(serviceName, method, code).Observe(time.Since(start).Seconds())
	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(serviceName, method, code).Inc()
	}

	return err
}

// executeWithMetrics - разовый вызов без ретраев, для записывающих операций.
func (g *Gateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	GatewayRequestDuration.WithLabelValues(serviceName, method, statusCodeLabel(err)).Observe(time.Since(start).Seconds())
	return err
}

func (g *Gateway) send(ctx context.Context, method, path string, in, out any, auth bool) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+g.session.Token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return &transportError{Err: fmt.Errorf("%s %s: %w", method, path, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeStatusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyResponse
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeStatusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	var body errorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return &statusError{Code: resp.StatusCode, Message: body.Error}
	}
	return &statusError{Code: resp.StatusCode}
}
