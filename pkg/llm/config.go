package llm

import (
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
)

const deepseekBaseURL = "https://api.deepseek.com"

// GetConfigFromViper resolves the process configuration: viper values,
// the active profile merged on top, then provider and credential
// inference from the environment.
func GetConfigFromViper() (llmtypes.Config, error) {
	config, err := GetBaseConfigFromViper()
	if err != nil {
		return config, err
	}

	if err := resolveProvider(&config); err != nil {
		return config, err
	}
	return config, nil
}

// GetBaseConfigFromViper resolves the configuration without requiring a
// credential, for commands that never call a model.
func GetBaseConfigFromViper() (llmtypes.Config, error) {
	var config llmtypes.Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, errors.Wrap(err, "failed to unmarshal configuration")
	}

	if config.Profiles != nil {
		delete(config.Profiles, "default")
	}

	profileName := getActiveProfile()
	if profileName != "" {
		profile, exists := config.Profiles[profileName]
		if !exists {
			return config, errors.Errorf("unknown profile: %q", profileName)
		}
		if err := applyProfile(&config, profile); err != nil {
			return config, err
		}
	}

	applyDefaults(&config)
	return config, nil
}

func getActiveProfile() string {
	profile := viper.GetString("profile")
	if profile == "default" {
		return ""
	}
	return profile
}

func applyProfile(config *llmtypes.Config, profile map[string]any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		WeaklyTypedInput: true,
		ZeroFields:       false,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create profile decoder")
	}

	if err := decoder.Decode(profile); err != nil {
		return errors.Wrapf(err, "failed to apply profile %q", config.Profile)
	}
	return nil
}

func applyDefaults(config *llmtypes.Config) {
	if config.MaxTokens == 0 {
		config.MaxTokens = 8192
	}
	if config.BashTimeout == 0 {
		config.BashTimeout = 60
	}
	if config.MaxTurns == 0 {
		config.MaxTurns = 50
	}
	if config.SkillsDir == "" {
		config.SkillsDir = "./skills"
	}
}

// resolveProvider fills Provider, APIKey and for deepseek the BaseURL and
// model defaults. An explicitly configured provider wins; otherwise the
// provider is inferred from which credential is present, checking
// Anthropic first.
func resolveProvider(config *llmtypes.Config) error {
	if config.Provider == "" {
		switch {
		case os.Getenv("ANTHROPIC_API_KEY") != "":
			config.Provider = "anthropic"
		case os.Getenv("OPENAI_API_KEY") != "":
			config.Provider = "openai"
		case os.Getenv("DEEPSEEK_API_KEY") != "":
			config.Provider = "openai"
			config.APIKey = os.Getenv("DEEPSEEK_API_KEY")
			if config.BaseURL == "" {
				config.BaseURL = deepseekBaseURL
			}
			if config.Model == "" {
				config.Model = "deepseek-chat"
			}
		default:
			return errors.New("no api key found: set ANTHROPIC_API_KEY, OPENAI_API_KEY or DEEPSEEK_API_KEY")
		}
	}

	if config.APIKey == "" {
		switch config.Provider {
		case "anthropic":
			config.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "openai":
			config.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	if config.APIKey == "" {
		return errors.Errorf("no api key found for provider %q", config.Provider)
	}
	return nil
}
