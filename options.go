package diskdb

import (
	"crypto/tls"
	"strconv"
	"time"
)

// config holds the configuration for a Client
type config struct {
	// Server address
	host string
	port int

	// TLS for the server connection (nil = plaintext)
	tlsConfig *tls.Config

	// Timeouts
	connectTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	framingWindow  time.Duration

	// Observability
	logger  Logger
	metrics MetricsCollector
}

// defaultConfig returns a configuration with sensible defaults
func defaultConfig() *config {
	return &config{
		host:           "localhost",
		port:           6380,
		connectTimeout: 5 * time.Second,
		readTimeout:    5 * time.Second,
		writeTimeout:   5 * time.Second,
		framingWindow:  500 * time.Millisecond,
		logger:         &defaultLogger{},
	}
}

// addr returns the host:port dial target
func (c *config) addr() string {
	return c.host + ":" + strconv.Itoa(c.port)
}

// Option represents a configuration option for a Client
type Option func(*config) error

// WithHost sets the server hostname
//
// Example:
//
//	WithHost("diskdb.example.com")
func WithHost(host string) Option {
	return func(c *config) error {
		if host == "" {
			return ErrInvalidConfig
		}
		c.host = host
		return nil
	}
}

// WithPort sets the server port
//
// Example:
//
//	WithPort(6380)
func WithPort(port int) Option {
	return func(c *config) error {
		if port <= 0 || port > 65535 {
			return ErrInvalidConfig
		}
		c.port = port
		return nil
	}
}

// WithConnectTimeout sets the dial timeout for establishing the connection
//
// Example:
//
//	WithConnectTimeout(10 * time.Second)
func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *config) error {
		if timeout <= 0 {
			return ErrInvalidConfig
		}
		c.connectTimeout = timeout
		return nil
	}
}

// WithTimeout sets the per-read deadline for single-line replies and the
// write deadline for outgoing commands
//
// Example:
//
//	WithTimeout(5 * time.Second)
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) error {
		if timeout <= 0 {
			return ErrInvalidConfig
		}
		c.readTimeout = timeout
		c.writeTimeout = timeout
		return nil
	}
}

// WithFramingWindow sets the shortened read deadline used to detect the end
// of a multi-value reply. The window must be shorter than the operational
// timeout; a larger window tolerates slower servers at the cost of a longer
// pause at the end of every multi-value reply.
//
// Example:
//
//	WithFramingWindow(500 * time.Millisecond)
func WithFramingWindow(window time.Duration) Option {
	return func(c *config) error {
		if window <= 0 {
			return ErrInvalidConfig
		}
		c.framingWindow = window
		return nil
	}
}

// WithTLS configures TLS for the server connection
//
// Example:
//
//	WithTLS(&tls.Config{ServerName: "diskdb.example.com"})
func WithTLS(tlsConfig *tls.Config) Option {
	return func(c *config) error {
		c.tlsConfig = tlsConfig
		return nil
	}
}

// WithLogger sets a custom logger for the client
//
// Example:
//
//	WithLogger(myCustomLogger)
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return ErrInvalidConfig
		}
		c.logger = logger
		return nil
	}
}

// WithMetrics enables metrics collection with the provided collector
//
// Example:
//
//	WithMetrics(myMetricsCollector)
func WithMetrics(collector MetricsCollector) Option {
	return func(c *config) error {
		c.metrics = collector
		return nil
	}
}
