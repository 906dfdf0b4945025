package gymapi

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 20 * time.Second
)

// Config represents the configuration for the branch API client
type Config struct {
	// BaseURL is the API origin, e.g. https://api.milicode.ir
	BaseURL string

	// ReadTimeout bounds list and detail requests
	ReadTimeout time.Duration

	// WriteTimeout bounds create, facilities and media requests
	WriteTimeout time.Duration
}

// Validate checks the configuration and fills in default timeouts
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base url is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base url %q is not absolute", ErrInvalidConfig, c.BaseURL)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	return nil
}
