package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the maintenance endpoints.
	ApiKey string `mapstructure:"api_key" default:""`
	// Environment selects the runtime environment (production, development).
	Environment string `mapstructure:"environment" default:"development"`
}

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// IsValidEnvironment checks if the configured environment is valid.
func (c Config) IsValidEnvironment() bool {
	switch c.Environment {
	case EnvProduction, EnvDevelopment:
		return true
	default:
		return false
	}
}

// IsProduction reports whether the server runs in production mode. Unsafe
// toggles like webhook signature skipping are refused in production.
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}
