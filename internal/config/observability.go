package config

// TracingConfig holds OTLP tracing configuration.
//
// Traces are exported over OTLP/HTTP to a local collector or agent.
// See internal/observability for setup.
type TracingConfig struct {
	// Enabled turns trace export on. Default: false (no-op provider).
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// Endpoint is the OTLP/HTTP collector endpoint (default: localhost:4318)
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`
	// Environment is the deployment environment tag (default: dev)
	Environment string `mapstructure:"environment" json:"environment"`
	// ServiceName is the reported service name (default: scribe)
	ServiceName string `mapstructure:"service_name" json:"service_name"`
}
