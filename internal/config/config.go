// Package config provides centralized configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// TrackerGitHub keeps milestones on GitHub.
	TrackerGitHub = "github"
	// TrackerJira keeps milestones as Jira project versions.
	TrackerJira = "jira"

	// FileName is the optional configuration file looked up in the working directory.
	FileName = ".relctl"
)

// Config holds all configuration parameters for the application.
type Config struct {
	GitHub   GitHubConfig
	Jira     JiraConfig
	Project  ProjectConfig
	LogLevel string
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	Token      string
	Domain     string
	Repository string
}

// JiraConfig holds JIRA specific configuration.
type JiraConfig struct {
	URL      string
	Username string
	Token    string
	Project  string
}

// ProjectConfig holds the locations and conventions of the project being released.
type ProjectConfig struct {
	// POM is the path of the Maven descriptor holding the project version.
	POM string
	// Changelog is the path of the Markdown changelog.
	Changelog string
	// TagPrefix is prepended to a version to name its release tag.
	TagPrefix string
	// Tracker selects where milestones live: "github" or "jira".
	Tracker string
}

// LoadConfig loads configuration from the working directory and the environment.
func LoadConfig() (*Config, error) {
	return Load(".")
}

// Load reads the optional .relctl.yaml found in dir, then overlays environment
// variables on top of it.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("github.domain", "github.com")
	v.SetDefault("project.pom", "pom.xml")
	v.SetDefault("project.changelog", "CHANGES.md")
	v.SetDefault("project.tracker", TrackerGitHub)
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Map specific environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.domain", "GITHUB_DOMAIN")
	v.BindEnv("github.repository", "GITHUB_REPOSITORY")
	v.BindEnv("jira.url", "JIRA_URL")
	v.BindEnv("jira.username", "JIRA_USERNAME")
	v.BindEnv("jira.token", "JIRA_TOKEN")
	v.BindEnv("jira.project", "JIRA_PROJECT")
	v.BindEnv("project.pom", "RELCTL_POM")
	v.BindEnv("project.changelog", "RELCTL_CHANGELOG")
	v.BindEnv("project.tag_prefix", "RELCTL_TAG_PREFIX")
	v.BindEnv("project.tracker", "RELCTL_TRACKER")
	v.BindEnv("log_level", "LOG_LEVEL")

	config := &Config{
		GitHub: GitHubConfig{
			Token:      v.GetString("github.token"),
			Domain:     v.GetString("github.domain"),
			Repository: v.GetString("github.repository"),
		},
		Jira: JiraConfig{
			URL:      v.GetString("jira.url"),
			Username: v.GetString("jira.username"),
			Token:    v.GetString("jira.token"),
			Project:  v.GetString("jira.project"),
		},
		Project: ProjectConfig{
			POM:       v.GetString("project.pom"),
			Changelog: v.GetString("project.changelog"),
			TagPrefix: v.GetString("project.tag_prefix"),
			Tracker:   strings.ToLower(v.GetString("project.tracker")),
		},
		LogLevel: v.GetString("log_level"),
	}

	if config.GitHub.Domain == "" {
		config.GitHub.Domain = "github.com"
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig checks the settings every command relies on. Credentials are
// checked by the commands that need them.
func validateConfig(config *Config) error {
	switch config.Project.Tracker {
	case TrackerGitHub, TrackerJira:
	default:
		return fmt.Errorf("unknown tracker %q, expected %q or %q",
			config.Project.Tracker, TrackerGitHub, TrackerJira)
	}
	return nil
}

// ValidateGitHubConfig validates GitHub-specific configuration.
func ValidateGitHubConfig(config *Config) error {
	if config.GitHub.Token == "" {
		return fmt.Errorf("missing required environment variables: [GITHUB_TOKEN]")
	}
	return nil
}

// ValidateJiraConfig validates JIRA-specific configuration.
func ValidateJiraConfig(config *Config) error {
	var missingVars []string

	if config.Jira.URL == "" {
		missingVars = append(missingVars, "JIRA_URL")
	}
	if config.Jira.Username == "" {
		missingVars = append(missingVars, "JIRA_USERNAME")
	}
	if config.Jira.Token == "" {
		missingVars = append(missingVars, "JIRA_TOKEN")
	}
	if config.Jira.Project == "" {
		missingVars = append(missingVars, "JIRA_PROJECT")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}
