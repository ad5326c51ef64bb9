package cqlwire

import "github.com/rcrowley/go-metrics"

// Config holds the connection-level facts the decoder cannot learn from the
// byte stream itself: the protocol version and the body compression that were
// negotiated at STARTUP.
type Config struct {
	// Version is the negotiated protocol version (1 or 2). The decoder does
	// not negotiate; it is told.
	Version uint8

	// Compression is the body codec negotiated at STARTUP. Bodies of frames
	// carrying the compressed flag are inflated with it before decoding.
	Compression CompressionCodec

	// MetricRegistry receives the decode metrics (response-size histogram,
	// response-rate meters). Defaults to a local registry.
	MetricRegistry metrics.Registry
}

// NewConfig returns a new configuration instance with sane defaults.
func NewConfig() *Config {
	c := &Config{}
	c.Version = 2
	c.Compression = CompressionNone
	c.MetricRegistry = metrics.NewRegistry()
	return c
}

// Validate checks a Config instance. It will return a ConfigurationError if
// the specified values don't make sense.
func (c *Config) Validate() error {
	switch {
	case c.Version < 1 || c.Version > 2:
		return ConfigurationError("Version must be 1 or 2")
	case c.Compression < CompressionNone || c.Compression > CompressionLZ4:
		return ConfigurationError("Compression must be none, snappy or lz4")
	case c.MetricRegistry == nil:
		return ConfigurationError("MetricRegistry must not be nil")
	}
	return nil
}
