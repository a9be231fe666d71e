package provider

// Config holds configuration for the transcoding provider API.
type Config struct {
	// BaseURL is the root URL of the provider's REST API.
	BaseURL string `mapstructure:"base_url" default:"https://api.provider.example.com"`
	// TokenID is the API access token identifier.
	TokenID string `mapstructure:"token_id" default:""`
	// TokenSecret is the API access token secret.
	TokenSecret string `mapstructure:"token_secret" default:""`
	// WebhookSecret is the shared secret used to verify webhook signatures.
	WebhookSecret string `mapstructure:"webhook_secret" default:""`
	// WebhookSkipVerify disables signature verification. Only honored outside
	// of the production environment.
	WebhookSkipVerify bool `mapstructure:"webhook_skip_verify" default:"false"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PageSize is the page size used when listing assets.
	PageSize int `mapstructure:"page_size" default:"100"`
}
