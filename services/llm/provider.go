// Package llmsvc implements the language-model providers behind the assistant.
package llmsvc

import (
	"github.com/trezcool/trackademics/core"
	"github.com/trezcool/trackademics/core/assistant"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderConsole   = "console"
)

// NewProvider returns the provider named in the config, falling back to the console one.
func NewProvider(conf *core.Config, logger core.Logger) assistant.Provider {
	switch core.CleanString(conf.Assistant.Provider, true) {
	case ProviderAnthropic:
		if conf.Assistant.APIKey == "" {
			logger.Warn("assistant.apiKey is not set: falling back to the console provider")
			return NewConsoleProvider(conf)
		}
		return NewAnthropicProvider(conf)
	case ProviderConsole:
		return NewConsoleProvider(conf)
	default:
		logger.Warn("unknown assistant provider: falling back to the console provider", conf.Assistant.Provider)
		return NewConsoleProvider(conf)
	}
}
