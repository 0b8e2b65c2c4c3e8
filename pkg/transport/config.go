package transport

import "time"

const (
	DefaultBaseURL   = "https://api.pspdfkit.com"
	DefaultTimeout   = 300 * time.Second
	DefaultUserAgent = "nutrient-dws-go/0.1.0"
)

// Config holds the service connection settings.
type Config struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// DefaultConfig returns the settings used when a field is left empty.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()

	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}

	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}

	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}

	return c
}
