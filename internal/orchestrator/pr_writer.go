package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/compozy/prwriter/internal/config"
	"github.com/compozy/prwriter/internal/domain"
	"github.com/compozy/prwriter/internal/logging"
	"github.com/compozy/prwriter/internal/prompt"
	"github.com/compozy/prwriter/internal/repository"
	"github.com/compozy/prwriter/internal/service"
	"github.com/compozy/prwriter/internal/usecase"
)

// PRWriterConfig contains the inputs of a single run.
type PRWriterConfig struct {
	GithubToken        string
	Provider           string
	GenerationAPIKey   string
	GenerationBaseURL  string
	Model              string
	MaxTokens          int
	Repository         string
	BaseRef            string
	HeadRef            string
	PRNumber           int
	BotName            string
	EventName          string
	UserMessage        string
	SystemMessage      string
	SystemPromptFile   string
	AttributionMessage string
	Verbose            bool
	DryRun             bool
}

// NewPRWriterConfig maps the loaded configuration onto the run inputs.
func NewPRWriterConfig(cfg *config.Config) PRWriterConfig {
	return PRWriterConfig{
		GithubToken:        cfg.GithubToken,
		Provider:           cfg.Provider,
		GenerationAPIKey:   cfg.GenerationAPIKey(),
		GenerationBaseURL:  cfg.GenerationBaseURL(),
		Model:              cfg.Model,
		MaxTokens:          cfg.MaxTokens,
		Repository:         cfg.Repository,
		BaseRef:            cfg.BaseRef,
		HeadRef:            cfg.HeadRef,
		PRNumber:           cfg.PRNumber,
		BotName:            cfg.BotName,
		EventName:          cfg.EventName,
		UserMessage:        cfg.UserMessage,
		SystemMessage:      cfg.SystemMessage,
		SystemPromptFile:   cfg.SystemPromptFile,
		AttributionMessage: cfg.AttributionMessage,
		Verbose:            cfg.Verbose,
		DryRun:             cfg.DryRun,
	}
}

// ExitError carries the process exit code of a failed run.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GeneratorFactory builds the text generator once preconditions hold.
type GeneratorFactory func(cfg service.GeneratorConfig) (service.TextGenerator, error)

// PRWriterOrchestrator runs the description workflow: resolve the instruction,
// fetch the diff, generate the text, publish it.
type PRWriterOrchestrator struct {
	connector      service.ServiceConnector
	githubRepo     repository.GithubRepository
	outputRepo     repository.OutputRepository
	fsRepo         repository.FileSystemRepository
	newGenerator   GeneratorFactory
	logger         logging.Logger
	out            io.Writer
	estimateTokens func(model string, messages []domain.ChatMessage) int
}

// NewPRWriterOrchestrator creates a new PR writer orchestrator.
func NewPRWriterOrchestrator(
	connector service.ServiceConnector,
	githubRepo repository.GithubRepository,
	outputRepo repository.OutputRepository,
	fsRepo repository.FileSystemRepository,
	newGenerator GeneratorFactory,
	logger logging.Logger,
) *PRWriterOrchestrator {
	return &PRWriterOrchestrator{
		connector:      connector,
		githubRepo:     githubRepo,
		outputRepo:     outputRepo,
		fsRepo:         fsRepo,
		newGenerator:   newGenerator,
		logger:         logger.WithName("pr-writer"),
		out:            os.Stdout,
		estimateTokens: prompt.EstimateTokens,
	}
}

// Execute runs the complete workflow. Designed early exits return nil; failures
// that map to a specific exit code return an *ExitError.
func (o *PRWriterOrchestrator) Execute(ctx context.Context, cfg PRWriterConfig) error {
	if err := o.checkPreconditions(cfg); err != nil {
		return err
	}
	decision := (&usecase.ResolveInstructionUseCase{}).Execute(cfg.EventName, cfg.BotName, cfg.UserMessage)
	if !decision.Proceed {
		o.printStatus(decision.Reason)
		return nil
	}
	owner, repo, err := o.validateInputs(cfg)
	if err != nil {
		return err
	}
	log := o.logger.WithValues("repository", cfg.Repository, "base", cfg.BaseRef, "head", cfg.HeadRef)
	generator, err := o.newGenerator(service.GeneratorConfig{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.GenerationAPIKey,
		BaseURL:   cfg.GenerationBaseURL,
		MaxTokens: cfg.MaxTokens,
	})
	if err != nil {
		return fmt.Errorf("failed to create text generator: %w", err)
	}
	result, err := o.generate(ctx, log, generator, owner, repo, decision.CustomInstruction, cfg)
	if err != nil {
		return err
	}
	text := result.Content
	if cfg.AttributionMessage != "" {
		text = text + "\n\n" + cfg.AttributionMessage
	}
	stats := result.Usage.String()
	if cfg.Verbose {
		fmt.Fprintf(o.out, "%s\n\n%s\n", text, stats)
	} else {
		fmt.Fprintln(o.out, text)
	}
	if err := o.writeOutputs(ctx, text, stats); err != nil {
		return err
	}
	if cfg.DryRun {
		log.Info("dry run, pull request left unchanged")
		return nil
	}
	return o.updatePR(ctx, log, owner, repo, text, cfg)
}

// checkPreconditions fails fast, before any network call, on missing credentials.
func (o *PRWriterOrchestrator) checkPreconditions(cfg PRWriterConfig) error {
	if strings.TrimSpace(cfg.GithubToken) == "" {
		return o.exitWith(ExitCodeMissingInput, msgMissingGithubToken)
	}
	if service.RequiresAPIKey(cfg.Provider) && strings.TrimSpace(cfg.GenerationAPIKey) == "" {
		msg := msgMissingOpenAIKey
		if cfg.Provider == config.ProviderAnthropic {
			msg = msgMissingAnthropic
		}
		o.printStatus(msg)
		return &ExitError{Code: ExitCodeMissingInput, Err: fmt.Errorf("%w: %s", service.ErrMissingCredential, msg)}
	}
	return nil
}

// validateInputs checks repository and refs and splits the repository slug.
func (o *PRWriterOrchestrator) validateInputs(cfg PRWriterConfig) (string, string, error) {
	if cfg.Repository == "" || cfg.BaseRef == "" || cfg.HeadRef == "" {
		return "", "", o.exitWith(ExitCodeMissingInput, msgMissingInputs)
	}
	owner, repo, err := config.ParseRepository(cfg.Repository)
	if err != nil {
		return "", "", o.exitWith(ExitCodeMissingInput, fmt.Sprintf("Invalid GITHUB_REPOSITORY: %v", err))
	}
	for _, ref := range []string{cfg.BaseRef, cfg.HeadRef} {
		if err := ValidateRefName(ref); err != nil {
			return "", "", o.exitWith(ExitCodeMissingInput, fmt.Sprintf("Invalid ref: %v", err))
		}
	}
	return owner, repo, nil
}

func (o *PRWriterOrchestrator) generate(
	ctx context.Context,
	log logging.Logger,
	generator service.TextGenerator,
	owner, repo, instruction string,
	cfg PRWriterConfig,
) (*domain.GenerationResult, error) {
	fetch := &usecase.FetchDiffUseCase{Connector: o.connector}
	diff, err := fetch.Execute(ctx, owner, repo, cfg.BaseRef, cfg.HeadRef)
	if err != nil {
		return nil, err
	}
	log.Debug("fetched diff", "files", len(diff.Files))
	assemble := &usecase.AssemblePromptUseCase{
		FS:             o.fsRepo,
		Logger:         log,
		EstimateTokens: o.estimateTokens,
	}
	messages, err := assemble.Execute(ctx, usecase.PromptInput{
		Diff:              diff,
		CustomInstruction: instruction,
		SystemMessage:     cfg.SystemMessage,
		SystemPromptFile:  cfg.SystemPromptFile,
		Model:             cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assemble prompt: %w", err)
	}
	result, err := (&usecase.GenerateTextUseCase{Generator: generator}).Execute(ctx, messages)
	if err != nil {
		return nil, err
	}
	log.Debug("generated PR text", "usage", result.Usage.String())
	return result, nil
}

func (o *PRWriterOrchestrator) writeOutputs(ctx context.Context, text, stats string) error {
	if err := o.outputRepo.Write(ctx, OutputGeneratedText, text); err != nil {
		return fmt.Errorf("failed to write %s output: %w", OutputGeneratedText, err)
	}
	if err := o.outputRepo.Write(ctx, OutputGeneratedStats, stats); err != nil {
		return fmt.Errorf("failed to write %s output: %w", OutputGeneratedStats, err)
	}
	return nil
}

func (o *PRWriterOrchestrator) updatePR(
	ctx context.Context,
	log logging.Logger,
	owner, repo, text string,
	cfg PRWriterConfig,
) error {
	uc := &usecase.UpdatePRUseCase{GithubRepo: o.githubRepo, Token: cfg.GithubToken}
	resp, skipped, err := uc.Execute(ctx, usecase.UpdatePRInput{
		Owner:  owner,
		Repo:   repo,
		Number: cfg.PRNumber,
		Body:   text,
	})
	if err != nil {
		return err
	}
	if skipped {
		log.Debug("PR update skipped", "pr_number", cfg.PRNumber)
		return nil
	}
	if resp.StatusCode == http.StatusOK {
		o.printStatus(fmt.Sprintf("Successfully updated PR #%d description.", cfg.PRNumber))
		return nil
	}
	o.printStatus(fmt.Sprintf("Failed to update PR #%d description, status code %d: %s",
		cfg.PRNumber, resp.StatusCode, string(resp.Body)))
	serviceErr := &domain.ServiceError{
		Operation:  "update_pull_request",
		StatusCode: resp.StatusCode,
		Body:       string(resp.Body),
	}
	log.Error(serviceErr, "failed to update PR description", "pr_number", cfg.PRNumber, "status", resp.StatusCode)
	return &ExitError{Code: resp.StatusCode, Err: serviceErr}
}

// exitWith prints message and returns it as an ExitError with code.
func (o *PRWriterOrchestrator) exitWith(code int, message string) error {
	o.printStatus(message)
	return &ExitError{Code: code, Err: errors.New(message)}
}

// printStatus prints user-facing status lines to stdout
func (o *PRWriterOrchestrator) printStatus(message string) {
	fmt.Fprintln(o.out, message)
}
