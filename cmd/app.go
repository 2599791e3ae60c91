package cmd

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/danielolaszy/relctl/internal/changelog"
	"github.com/danielolaszy/relctl/internal/config"
	"github.com/danielolaszy/relctl/internal/github"
	"github.com/danielolaszy/relctl/internal/gitrepo"
	"github.com/danielolaszy/relctl/internal/jira"
	"github.com/danielolaszy/relctl/internal/logging"
	"github.com/danielolaszy/relctl/internal/publish"
	"github.com/danielolaszy/relctl/internal/version"
)

// app carries the configuration shared by every command of one invocation.
type app struct {
	cfg *config.Config
	log *slog.Logger

	pomFlag        string
	changelogFlag  string
	repositoryFlag string
}

// setup loads the configuration and applies the global flags on top of it.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if a.pomFlag != "" {
		cfg.Project.POM = a.pomFlag
	}
	if a.changelogFlag != "" {
		cfg.Project.Changelog = a.changelogFlag
	}
	if a.repositoryFlag != "" {
		cfg.GitHub.Repository = a.repositoryFlag
	}

	logging.SetupLogger(cmd.ErrOrStderr(), logging.ParseLevel(cfg.LogLevel))
	a.log = logging.GetLogger().With("command", cmd.Name())
	a.log.Debug("configuration loaded",
		"pom", cfg.Project.POM,
		"changelog", cfg.Project.Changelog,
		"tracker", cfg.Project.Tracker,
		"repository", cfg.GitHub.Repository)

	a.cfg = cfg
	return nil
}

// resolveVersion returns the version given on the command line, or derives
// one from the descriptor's version with derive.
func (a *app) resolveVersion(args []string, derive func(string) (string, error)) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}

	current, err := version.Parse(a.cfg.Project.POM)
	if err != nil {
		return "", err
	}

	v, err := derive(current)
	if err != nil {
		return "", err
	}

	a.log.Info("resolved version from descriptor", "current", current, "version", v)
	return v, nil
}

func releaseOf(v string) (string, error) {
	return version.ToRelease(v), nil
}

func (a *app) store() *changelog.Store {
	return changelog.NewStore(a.cfg.Project.Changelog)
}

// repository returns the configured repository slug, falling back on the
// origin remote of the local checkout.
func (a *app) repository() (string, error) {
	if a.cfg.GitHub.Repository != "" {
		return a.cfg.GitHub.Repository, nil
	}

	repo, err := gitrepo.Open("")
	if err != nil {
		return "", fmt.Errorf("repository not configured (set GITHUB_REPOSITORY or --repository): %w", err)
	}
	slug, err := repo.Slug("origin")
	if err != nil {
		return "", fmt.Errorf("repository not configured (set GITHUB_REPOSITORY or --repository): %w", err)
	}

	a.log.Debug("repository detected from git remote", "repository", slug)
	return slug, nil
}

// headCommit returns the commit checked out locally, or "" outside a repository.
func (a *app) headCommit() string {
	repo, err := gitrepo.Open("")
	if err != nil {
		a.log.Debug("no local repository, release target left to the host", "error", err)
		return ""
	}
	head, err := repo.HeadCommit()
	if err != nil {
		a.log.Debug("no HEAD commit, release target left to the host", "error", err)
		return ""
	}
	return head
}

func (a *app) githubClient() (*github.Client, error) {
	if err := config.ValidateGitHubConfig(a.cfg); err != nil {
		return nil, err
	}

	repository, err := a.repository()
	if err != nil {
		return nil, err
	}

	client, err := github.NewClient(a.cfg.GitHub, repository)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize github client: %w", err)
	}
	return client, nil
}

// tracker returns the client of the configured milestone tracker.
func (a *app) tracker() (publish.MilestoneTracker, error) {
	if a.cfg.Project.Tracker == config.TrackerJira {
		client, err := jira.NewClient(a.cfg.Jira)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize jira client: %w", err)
		}
		return client, nil
	}
	return a.githubClient()
}

// milestoneURL points at the GitHub milestone search for v. It is only a
// reference for the changelog, so an unknown repository yields "".
func (a *app) milestoneURL(v string) string {
	if a.cfg.Project.Tracker != config.TrackerGitHub {
		return ""
	}
	repository, err := a.repository()
	if err != nil {
		a.log.Debug("no milestone link in changelog entry", "error", err)
		return ""
	}
	return fmt.Sprintf("https://%s/%s/milestones?state=all&q=%s",
		a.cfg.GitHub.Domain, repository, url.QueryEscape(v))
}
