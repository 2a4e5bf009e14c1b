// Package llm holds the configuration and conversation-facing types shared
// between the providers, the agent and the CLI.
package llm

// TracingConfig controls the OpenTelemetry integration.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	SamplerType  string  `mapstructure:"sampler_type"`
	SamplerRatio float64 `mapstructure:"sampler_ratio"`
}

// Config is the process configuration, resolved once at startup from
// viper (flags, environment, config file) and passed down explicitly.
type Config struct {
	// Provider selects the API provider ("anthropic" or "openai"). When
	// empty it is inferred from which credential is present in the
	// environment.
	Provider string `mapstructure:"provider"`
	// Model is the provider-specific model identifier.
	Model string `mapstructure:"model"`
	// MaxTokens caps the response size per model call.
	MaxTokens int `mapstructure:"max_tokens"`
	// BaseURL overrides the OpenAI-compatible endpoint (deepseek etc.).
	BaseURL string `mapstructure:"base_url"`
	// APIKey is resolved from the environment, never from the config file.
	APIKey string `mapstructure:"-"`

	// WorkingDir is the sandbox root for all file tools. Defaults to the
	// current directory.
	WorkingDir string `mapstructure:"working_dir"`
	// SkillsDir is the root directory scanned for skills.
	SkillsDir string `mapstructure:"skills_dir"`
	// BashTimeout bounds execute_bash, in seconds.
	BashTimeout int `mapstructure:"bash_timeout"`
	// MaxTurns bounds the model/tool round trips per user message.
	MaxTurns int `mapstructure:"max_turns"`

	LogLevel  string        `mapstructure:"log_level"`
	LogFormat string        `mapstructure:"log_format"`
	Tracing   TracingConfig `mapstructure:"tracing"`

	// Profile selects one of the named profiles; profile values are merged
	// over the base configuration at load time.
	Profile  string                    `mapstructure:"profile"`
	Profiles map[string]map[string]any `mapstructure:"profiles"`
}
