package orchestrator

// Output names written to the CI output file.
const (
	OutputGeneratedText  = "generated_pr_text"
	OutputGeneratedStats = "generated_pr_text_stats"
)

// Process exit codes besides the HTTP status of a failed PR update.
const (
	ExitCodeSuccess      = 0
	ExitCodeMissingInput = 1
)

const (
	msgMissingGithubToken = "Please provide GITHUB_TOKEN as environment variable."
	msgMissingOpenAIKey   = "Please set OPENAI_API_KEY environment variable to your OpenAI API key."
	msgMissingAnthropic   = "Please set ANTHROPIC_API_KEY environment variable to your Anthropic API key."
	msgMissingInputs      = "Please provide GITHUB_REPOSITORY, BASE_REF, HEAD_REF as environment variables " +
		"or command-line arguments."
)
