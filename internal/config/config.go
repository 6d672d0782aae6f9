package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

var (
	// ownerNameRegex matches user and organization logins
	ownerNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)
	// repoNameRegex matches repository names, including dot-prefixed ones like .github
	repoNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

const (
	EventPullRequest  = "pull_request"
	EventIssueComment = "issue_comment"
)

type Config struct {
	GithubToken        string `mapstructure:"github_token"`
	OpenAIAPIKey       string `mapstructure:"openai_api_key"`
	AnthropicAPIKey    string `mapstructure:"anthropic_api_key"`
	Repository         string `mapstructure:"repository"`
	BaseRef            string `mapstructure:"base_ref"`
	HeadRef            string `mapstructure:"head_ref"`
	BotName            string `mapstructure:"bot_name"`
	UserMessage        string `mapstructure:"user_message"`
	SystemMessage      string `mapstructure:"system_message"`
	SystemPromptFile   string `mapstructure:"system_prompt_file"`
	EventName          string `mapstructure:"event_name"`
	Model              string `mapstructure:"model"`
	Provider           string `mapstructure:"provider"`
	MaxTokens          int    `mapstructure:"max_tokens"`
	OpenAIBaseURL      string `mapstructure:"openai_base_url"`
	AnthropicBaseURL   string `mapstructure:"anthropic_base_url"`
	OllamaHost         string `mapstructure:"ollama_host"`
	GithubAPIURL       string `mapstructure:"github_api_url"`
	CompareServiceSpec string `mapstructure:"compare_service_spec"`
	PRNumber           int    `mapstructure:"pr_number"`
	AttributionMessage string `mapstructure:"attribution_message"`
	Verbose            bool   `mapstructure:"verbose"`
	OutputFile         string `mapstructure:"output_file"`
	DryRun             bool   `mapstructure:"dry_run"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		BotName:   "auto-pr-writer-bot",
		EventName: EventPullRequest,
		// long context model, change with caution
		Model:        "gpt-4-1106-preview",
		Provider:     ProviderOpenAI,
		MaxTokens:    2560,
		OllamaHost:   "http://localhost:11434",
		GithubAPIURL: "https://api.github.com/",
		Verbose:      true,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderOllama:
	default:
		return fmt.Errorf("unsupported generation provider: %s", c.Provider)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.PRNumber < 0 {
		return fmt.Errorf("pr_number cannot be negative")
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("model cannot be empty")
	}
	return nil
}

// GenerationAPIKey returns the credential of the configured provider.
func (c *Config) GenerationAPIKey() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	}
	return ""
}

// GenerationBaseURL returns the endpoint override of the configured provider.
func (c *Config) GenerationBaseURL() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.AnthropicBaseURL
	case ProviderOllama:
		return c.OllamaHost
	}
	return c.OpenAIBaseURL
}

// ParseRepository splits an "owner/name" slug and validates both parts.
func ParseRepository(slug string) (string, string, error) {
	parts := strings.Split(strings.TrimSpace(slug), "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("repository must be in the form owner/name, got %q", slug)
	}
	if err := ValidateGitHubOwnerRepo(parts[0], parts[1]); err != nil {
		return "", "", err
	}
	return parts[0], parts[1], nil
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	if !ownerNameRegex.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !repoNameRegex.MatchString(repo) || repo == "." || repo == ".." {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

// LoadConfig reads .env, the optional config file, environment variables and flags.
// configFile overrides the default .auto-pr-writer.yaml lookup; flags may be nil.
func LoadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	// a missing .env is the normal case in CI
	_ = godotenv.Load()
	v := viper.New()
	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".auto-pr-writer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("AUTO_PR_WRITER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	// BindEnv allows multiple env vars - it will check them in order
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	if flags != nil {
		for name, key := range flagBindings {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind --%s flag: %w", name, err)
			}
		}
	}
	defaults := DefaultConfig()
	v.SetDefault(KeyBotName, defaults.BotName)
	v.SetDefault(KeyEventName, defaults.EventName)
	v.SetDefault(KeyModel, defaults.Model)
	v.SetDefault(KeyProvider, defaults.Provider)
	v.SetDefault(KeyMaxTokens, defaults.MaxTokens)
	v.SetDefault(KeyOllamaHost, defaults.OllamaHost)
	v.SetDefault(KeyGithubAPIURL, defaults.GithubAPIURL)
	v.SetDefault(KeyVerbose, defaults.Verbose)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	// the bot name may be set to an empty string in workflow inputs
	if strings.TrimSpace(config.BotName) == "" {
		config.BotName = defaults.BotName
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}
