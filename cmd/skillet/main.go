package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/skillet-ai/skillet/pkg/llm"
	"github.com/skillet-ai/skillet/pkg/logger"
	"github.com/skillet-ai/skillet/pkg/presenter"
	"github.com/skillet-ai/skillet/pkg/telemetry"
	"github.com/skillet-ai/skillet/pkg/version"
	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
)

func init() {
	viper.SetEnvPrefix("SKILLET")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillet")
	viper.AddConfigPath(".")

	// Config file is optional.
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "skillet",
	Short: "An LLM agent with progressively loaded skills",
	Long: `Skillet is a CLI agent that completes tasks with file, bash and skill
tools. Skills are directories with a SKILL.md file; only their name and
description are loaded up front, and the full instructions are loaded on
demand when the model activates them.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			presenter.Warning("invalid log level: " + err.Error())
		}
		logger.SetLogFormat(viper.GetString("log_format"))
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			runCmd.Run(cmd, args)
			return
		}
		_ = cmd.Help()
		os.Exit(1)
	},
}

// loadConfig resolves the full configuration from viper and the
// environment.
func loadConfig() (llmtypes.Config, error) {
	return llm.GetConfigFromViper()
}

// loadConfigWithoutCredentials resolves the configuration for commands
// that never call a model.
func loadConfigWithoutCredentials() (llmtypes.Config, error) {
	return llm.GetBaseConfigFromViper()
}

// initTracing starts the tracer provider when tracing is enabled and
// returns its shutdown function.
func initTracing(ctx context.Context, config llmtypes.Config) func(context.Context) error {
	shutdown, err := telemetry.InitTracer(ctx, telemetry.Config{
		Enabled:        config.Tracing.Enabled,
		ServiceName:    "skillet",
		ServiceVersion: version.Get().Version,
		SamplerType:    config.Tracing.SamplerType,
		SamplerRatio:   config.Tracing.SamplerRatio,
	})
	if err != nil {
		presenter.Warning("tracing disabled: " + err.Error())
		return func(context.Context) error { return nil }
	}
	return shutdown
}

func registerFlags(flags *pflag.FlagSet) {
	flags.String("provider", "", "LLM provider (anthropic or openai)")
	flags.String("model", "", "model identifier (overrides config)")
	flags.Int("max-tokens", 0, "maximum tokens per response")
	flags.String("base-url", "", "OpenAI-compatible endpoint override")
	flags.String("working-dir", "", "sandbox root for file tools (defaults to the current directory)")
	flags.String("skills-dir", "", "directory scanned for skills (defaults to ./skills)")
	flags.Int("bash-timeout", 0, "execute_bash timeout in seconds")
	flags.Int("max-turns", 0, "maximum model/tool round trips per message")
	flags.String("profile", "", "configuration profile to apply")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "fmt", "log format (fmt or json)")

	for viperKey, flagName := range map[string]string{
		"provider":     "provider",
		"model":        "model",
		"max_tokens":   "max-tokens",
		"base_url":     "base-url",
		"working_dir":  "working-dir",
		"skills_dir":   "skills-dir",
		"bash_timeout": "bash-timeout",
		"max_turns":    "max-turns",
		"profile":      "profile",
		"log_level":    "log-level",
		"log_format":   "log-format",
	} {
		if err := viper.BindPFlag(viperKey, flags.Lookup(flagName)); err != nil {
			presenter.Error(err, "failed to bind flag "+flagName)
			os.Exit(1)
		}
	}
}

func main() {
	registerFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		presenter.Error(err, "command failed")
		os.Exit(1)
	}
}
