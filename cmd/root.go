package cmd

import (
	"context"
	"fmt"

	"github.com/compozy/prwriter/internal/config"
	"github.com/compozy/prwriter/internal/orchestrator"
	"github.com/compozy/prwriter/internal/service"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the auto-pr-writer command.
func NewRootCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "auto-pr-writer [owner/repo base head]",
		Short: "Generate pull request descriptions from the branch diff",
		Long: `auto-pr-writer fetches the diff between two refs from the GitHub compare API,
asks a language model to describe it and writes the result as the pull request body.

Repository and refs come from GITHUB_REPOSITORY, BASE_REF and HEAD_REF or from the
three positional arguments. A comment mentioning the bot ("@auto-pr-writer-bot be brief")
adds a custom instruction; an instruction containing "skip" stops the run.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return fmt.Errorf("expected 0 or 3 arguments (owner/repo base head), got %d", len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			if len(args) == 3 {
				c.cfg.Repository, c.cfg.BaseRef, c.cfg.HeadRef = args[0], args[1], args[2]
			}
			c.populateGitDefaults(cmd.Context())
			orch := orchestrator.NewPRWriterOrchestrator(
				c.connector,
				c.ghRepo,
				c.outputRepo,
				c.fsRepo,
				service.NewTextGenerator,
				c.logger,
			)
			return orch.Execute(cmd.Context(), orchestrator.NewPRWriterConfig(c.cfg))
		},
	}
	defaults := config.DefaultConfig()
	cmd.Flags().StringVar(&configFile, "config", "", "Config file (default .auto-pr-writer.yaml)")
	cmd.Flags().Bool("verbose", defaults.Verbose, "Print usage statistics and debug logs")
	cmd.Flags().String("model", defaults.Model, "Model used to generate the description")
	cmd.Flags().String("provider", defaults.Provider, "Generation provider: openai, anthropic or ollama")
	cmd.Flags().Int("max-tokens", defaults.MaxTokens, "Maximum number of generated tokens")
	cmd.Flags().Int("pr-number", 0, "Pull request to update with the generated description")
	cmd.Flags().Bool("dry-run", false, "Print the description without updating the pull request")
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
