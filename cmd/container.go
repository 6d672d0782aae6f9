package cmd

import (
	"context"
	"net/http"

	"github.com/compozy/prwriter/internal/config"
	"github.com/compozy/prwriter/internal/logging"
	"github.com/compozy/prwriter/internal/repository"
	"github.com/compozy/prwriter/internal/service"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

// container holds all the dependencies for the application.
type container struct {
	cfg    *config.Config
	logger logging.Logger

	fsRepo     repository.FileSystemRepository
	ghRepo     repository.GithubRepository
	outputRepo repository.OutputRepository
	connector  service.ServiceConnector
	openGit    func(path string) (repository.GitRepository, error)
}

// newContainer creates a new container with all the dependencies.
func newContainer(configFile string, flags *pflag.FlagSet) (*container, error) {
	cfg, err := config.LoadConfig(configFile, flags)
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewZap(cfg.Verbose)
	if err != nil {
		return nil, err
	}
	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	ghRepo, err := repository.NewGithubRepository(cfg.GithubToken, cfg.GithubAPIURL)
	if err != nil {
		return nil, err
	}
	return &container{
		cfg:        cfg,
		logger:     logger,
		fsRepo:     fsRepo,
		ghRepo:     ghRepo,
		outputRepo: repository.NewActionsOutputRepository(fsRepo, cfg.OutputFile),
		connector:  service.NewLazyOpenAPIConnector(specLoader(fsRepo, cfg.CompareServiceSpec), ghRepo),
		openGit:    repository.NewGitRepository,
	}, nil
}

// specLoader reads the compare service description on first use, so runs that
// exit before fetching the diff never touch it.
func specLoader(fs repository.FileSystemRepository, location string) service.DocumentLoader {
	return func(ctx context.Context) (*service.OpenAPIDocument, error) {
		return service.LoadOpenAPIDocument(ctx, fs, http.DefaultClient, location)
	}
}

// populateGitDefaults fills repository and head ref from the local checkout
// when neither the environment nor the arguments provide them.
func (c *container) populateGitDefaults(ctx context.Context) {
	if c.cfg.Repository != "" && c.cfg.HeadRef != "" {
		return
	}
	gitRepo, err := c.openGit(".")
	if err != nil {
		c.logger.Debug("no local git repository for defaults", "error", err.Error())
		return
	}
	if c.cfg.Repository == "" {
		if owner, name, err := gitRepo.OriginRepository(ctx); err == nil {
			c.cfg.Repository = owner + "/" + name
		} else {
			c.logger.Debug("origin remote unavailable", "error", err.Error())
		}
	}
	if c.cfg.HeadRef == "" {
		if branch, err := gitRepo.GetCurrentBranch(ctx); err == nil {
			c.cfg.HeadRef = branch
		} else {
			c.logger.Debug("current branch unavailable", "error", err.Error())
		}
	}
}
