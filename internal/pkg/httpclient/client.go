package httpclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"agritrack/internal/pkg/config"
	"agritrack/pkg/logger"
	retrierconfig "agritrack/pkg/retrier"
	"agritrack/pkg/retrier/backoff_adapter"
)

const (
	DialTimeout         = 5 * time.Second
	KeepAlive           = 30 * time.Second
	IdleConnTimeout     = 90 * time.Second
	MaxIdleConnsPerHost = 16

	initialInterval = 1 * time.Second
	maxInterval     = 10 * time.Second
	maxElapsedTime  = 1 * time.Minute
	randomization   = 0.5
	multiplier      = 2

	pingPath = "/dashboard/summary"
)

// NewClient собирает HTTP клиент к сервису отправок и дожидается его доступности.
// Любой HTTP ответ (даже 4xx) значит, что сервис поднят.
func NewClient(ctx context.Context, log logger.Logger, cfg *config.ShipmentService) (*http.Client, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   DialTimeout,
			KeepAlive: KeepAlive,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConnsPerHost: MaxIdleConnsPerHost,
		IdleConnTimeout:     IdleConnTimeout,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   cfg.RequestTimeout,
	}

	httpLog := log.With(
		logger.NewField("component", "http-client"),
		logger.NewField("host", cfg.BaseURL),
	)

	if err := ping(ctx, httpLog, client, cfg.BaseURL); err != nil {
		transport.CloseIdleConnections()
		return nil, fmt.Errorf("shipment service connection: %w", err)
	}

	return client, nil
}

func ping(ctx context.Context, log logger.Logger, client *http.Client, baseURL string) error {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     nil, // все ошибки ретраим
	}

	retrier := backoff_adapter.New(retryConfig)
	url := strings.TrimRight(baseURL, "/") + pingPath

	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.With(
			logger.NewField("attempt", attempt),
		).Info("attempting shipment service connection")

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Body.Close()
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("shipment service connection failed after retries")
		return fmt.Errorf("failed to reach shipment service: %w", err)
	}

	log.With(logger.NewField(
		"attempts", attempt),
	).Info("shipment service connection established")
	return nil
}
