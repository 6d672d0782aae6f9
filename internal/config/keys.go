package config

const (
	KeyGithubToken        = "github_token"
	KeyOpenAIAPIKey       = "openai_api_key"
	KeyAnthropicAPIKey    = "anthropic_api_key"
	KeyRepository         = "repository"
	KeyBaseRef            = "base_ref"
	KeyHeadRef            = "head_ref"
	KeyBotName            = "bot_name"
	KeyUserMessage        = "user_message"
	KeySystemMessage      = "system_message"
	KeySystemPromptFile   = "system_prompt_file"
	KeyEventName          = "event_name"
	KeyModel              = "model"
	KeyProvider           = "provider"
	KeyMaxTokens          = "max_tokens"
	KeyOpenAIBaseURL      = "openai_base_url"
	KeyAnthropicBaseURL   = "anthropic_base_url"
	KeyOllamaHost         = "ollama_host"
	KeyGithubAPIURL       = "github_api_url"
	KeyCompareServiceSpec = "compare_service_spec"
	KeyPRNumber           = "pr_number"
	KeyAttribution        = "attribution_message"
	KeyVerbose            = "verbose"
	KeyOutputFile         = "output_file"
	KeyDryRun             = "dry_run"
)

// envBindings lists the environment variables checked for each key, in order.
var envBindings = map[string][]string{
	KeyGithubToken:        {"GITHUB_TOKEN"},
	KeyOpenAIAPIKey:       {"OPENAI_API_KEY"},
	KeyAnthropicAPIKey:    {"ANTHROPIC_API_KEY"},
	KeyRepository:         {"GITHUB_REPOSITORY"},
	KeyBaseRef:            {"BASE_REF"},
	KeyHeadRef:            {"HEAD_REF"},
	KeyBotName:            {"AUTO_PR_WRITER_BOT_NAME"},
	KeyUserMessage:        {"AUTO_PR_WRITER_USER_MESSAGE"},
	KeySystemMessage:      {"AUTO_PR_WRITER_SYSTEM_MESSAGE"},
	KeySystemPromptFile:   {"AUTO_PR_WRITER_SYSTEM_PROMPT_FILE"},
	KeyEventName:          {"EVENT_NAME"},
	KeyModel:              {"GENERATION_MODEL"},
	KeyProvider:           {"GENERATION_PROVIDER"},
	KeyMaxTokens:          {"GENERATION_MAX_TOKENS"},
	KeyOpenAIBaseURL:      {"OPENAI_BASE_URL"},
	KeyAnthropicBaseURL:   {"ANTHROPIC_BASE_URL"},
	KeyOllamaHost:         {"OLLAMA_HOST"},
	KeyGithubAPIURL:       {"GITHUB_API_URL"},
	KeyCompareServiceSpec: {"COMPARE_SERVICE_SPEC"},
	KeyPRNumber:           {"PR_NUMBER"},
	KeyAttribution:        {"AUTO_PR_WRITER_ATTRIBUTION_MESSAGE"},
	KeyVerbose:            {"VERBOSE"},
	KeyOutputFile:         {"GITHUB_OUTPUT"},
	KeyDryRun:             {"AUTO_PR_WRITER_DRY_RUN"},
}

// flagBindings maps command-line flags onto config keys.
var flagBindings = map[string]string{
	"verbose":    KeyVerbose,
	"model":      KeyModel,
	"provider":   KeyProvider,
	"max-tokens": KeyMaxTokens,
	"pr-number":  KeyPRNumber,
	"dry-run":    KeyDryRun,
}
