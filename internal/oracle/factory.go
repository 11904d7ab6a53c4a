package oracle

import (
	"fmt"
	"strings"
)

// NewClient creates a predictor client based on the provided configuration.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "http":
		return newHTTPClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported oracle provider: %s", cfg.Provider)
	}
}
