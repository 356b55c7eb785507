package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	defaultFleetPollInterval    = 2 * time.Second
	defaultSummaryPollInterval  = 3 * time.Second
	defaultDeliveryPollInterval = 3 * time.Second
	defaultGatewayTimeout       = 10 * time.Second
	defaultSessionMaxAge        = 24 * time.Hour
)

type (
	Polling struct {
		FleetInterval    time.Duration
		SummaryInterval  time.Duration
		DeliveryInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	ShipmentService struct {
		BaseURL        string
		RequestTimeout time.Duration
	}

	Session struct {
		Secret       string
		MaxAge       time.Duration
		SecureCookie bool
	}

	// Kafka не обязательна: без брокеров события прибытия в Kafka не публикуются.
	Kafka struct {
		Brokers       string
		ArrivalsTopic string
		Sarama        Sarama
	}

	Sarama struct {
		Version string
	}

	Config struct {
		LogLevel        string
		Polling         Polling
		Server          HTTPServer
		ShipmentService ShipmentService
		Session         Session
		Kafka           Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func (k Kafka) Enabled() bool {
	return k.Brokers != ""
}

func loadFromEnv() (*Config, error) {
	fleetInterval, err := osGetEnvDurationDefault("POLL_FLEET_INTERVAL", defaultFleetPollInterval)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	summaryInterval, err := osGetEnvDurationDefault("POLL_SUMMARY_INTERVAL", defaultSummaryPollInterval)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	deliveryInterval, err := osGetEnvDurationDefault("POLL_DELIVERY_INTERVAL", defaultDeliveryPollInterval)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	gatewayTimeout, err := osGetEnvDurationDefault("GATEWAY_REQUEST_TIMEOUT", defaultGatewayTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	sessionMaxAge, err := osGetEnvDurationDefault("SESSION_MAX_AGE", defaultSessionMaxAge)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	secureCookie, err := osGetBool("SESSION_SECURE_COOKIE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		LogLevel: os.Getenv("LOG_LEVEL"),
		Polling: Polling{
			FleetInterval:    fleetInterval,
			SummaryInterval:  summaryInterval,
			DeliveryInterval: deliveryInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		ShipmentService: ShipmentService{
			BaseURL:        os.Getenv("AGRITRACK_API_URL"),
			RequestTimeout: gatewayTimeout,
		},
		Session: Session{
			Secret:       os.Getenv("SESSION_SECRET"),
			MaxAge:       sessionMaxAge,
			SecureCookie: secureCookie,
		},
		Kafka: Kafka{
			Brokers:       os.Getenv("KAFKA_BROKERS"),
			ArrivalsTopic: os.Getenv("KAFKA_ARRIVALS_TOPIC"),
			Sarama: Sarama{
				Version: os.Getenv("KAFKA_SARAMA_VERSION"),
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.ShipmentService.BaseURL == "" {
		return errors.New("AGRITRACK_API_URL is required")
	}
	if u, err := url.Parse(cfg.ShipmentService.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("AGRITRACK_API_URL must be an absolute URL, got %q", cfg.ShipmentService.BaseURL)
	}

	if len(cfg.Session.Secret) < 32 {
		return errors.New("SESSION_SECRET is required (at least 32 bytes)")
	}

	if cfg.Polling.FleetInterval <= 0 || cfg.Polling.SummaryInterval <= 0 || cfg.Polling.DeliveryInterval <= 0 {
		return errors.New("POLL_*_INTERVAL values must be positive")
	}

	if cfg.Kafka.Enabled() {
		if cfg.Kafka.ArrivalsTopic == "" {
			return errors.New("KAFKA_ARRIVALS_TOPIC is required when KAFKA_BROKERS is set")
		}
		if cfg.Kafka.Sarama.Version == "" {
			return errors.New("KAFKA_SARAMA_VERSION is required when KAFKA_BROKERS is set")
		}
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	return osGetEnvDurationDefault(s, 0)
}

func osGetEnvDurationDefault(s string, def time.Duration) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
