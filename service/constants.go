package service

import "time"

const (
	// Anthropic messages endpoint defaults.
	DefaultAnthropicURL   = "https://api.anthropic.com/v1/messages"
	DefaultAnthropicModel = "claude-3-opus-20240229"
	DefaultMaxTokens      = 1000
	DefaultRequestTimeout = 30 * time.Second

	anthropicVersion = "2023-06-01"

	// Horizon for the projected-value calculation.
	projectionYears = 5
)
