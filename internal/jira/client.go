// Package jira keeps release milestones as JIRA project versions (fix versions).
package jira

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	jira "github.com/andygrunwald/go-jira"

	"github.com/danielolaszy/relctl/internal/config"
	"github.com/danielolaszy/relctl/internal/logging"
	"github.com/danielolaszy/relctl/pkg/models"
)

// Client handles interactions with the JIRA API for a single project.
type Client struct {
	client  *jira.Client
	baseURL string
	project string
	now     func() time.Time
}

// NewClient creates a JIRA client authenticated with the configured user and API token.
func NewClient(cfg config.JiraConfig) (*Client, error) {
	if err := config.ValidateJiraConfig(&config.Config{Jira: cfg}); err != nil {
		return nil, err
	}

	tp := jira.BasicAuthTransport{
		Username: cfg.Username,
		Password: cfg.Token,
	}

	client, err := jira.NewClient(tp.Client(), cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	logging.Debug("jira configuration",
		"url", cfg.URL,
		"project", cfg.Project,
		"username", cfg.Username,
		"token", logging.MaskSensitive(cfg.Token))

	return &Client{
		client:  client,
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		project: cfg.Project,
		now:     time.Now,
	}, nil
}

// FindMilestone returns the project version named title, or nil.
func (c *Client) FindMilestone(ctx context.Context, title string) (*models.Milestone, error) {
	project, resp, err := c.client.Project.GetWithContext(ctx, c.project)
	if err != nil {
		logging.Error("failed to get jira project",
			"project", c.project,
			"error", err,
			"status_code", statusCode(resp))
		return nil, fmt.Errorf("failed to get jira project %s: %w", c.project, err)
	}

	for i := range project.Versions {
		v := project.Versions[i]
		if v.Name != title {
			continue
		}

		m := c.toMilestone(&v)
		if m.IsOpen() {
			open, err := c.countOpenIssues(ctx, title)
			if err != nil {
				return nil, err
			}
			m.OpenIssues = open
		}
		return m, nil
	}

	logging.Debug("jira version not found", "project", c.project, "version", title)
	return nil, nil
}

// CreateMilestone creates an unreleased project version.
func (c *Client) CreateMilestone(ctx context.Context, title string) (*models.Milestone, error) {
	project, resp, err := c.client.Project.GetWithContext(ctx, c.project)
	if err != nil {
		logging.Error("failed to get jira project",
			"project", c.project,
			"error", err,
			"status_code", statusCode(resp))
		return nil, fmt.Errorf("failed to get jira project %s: %w", c.project, err)
	}

	projectID, err := parseProjectID(project.ID)
	if err != nil {
		return nil, err
	}

	released := false
	created, resp, err := c.client.Version.CreateWithContext(ctx, &jira.Version{
		Name:      title,
		ProjectID: projectID,
		Released:  &released,
	})
	if err != nil {
		logging.Error("failed to create jira version",
			"project", c.project,
			"version", title,
			"error", err,
			"status_code", statusCode(resp))
		return nil, fmt.Errorf("failed to create jira version %s: %w", title, err)
	}

	return c.toMilestone(created), nil
}

// CloseMilestone releases the project version, dated today.
func (c *Client) CloseMilestone(ctx context.Context, m *models.Milestone) (*models.Milestone, error) {
	released := true
	updated, resp, err := c.client.Version.UpdateWithContext(ctx, &jira.Version{
		ID:          m.ID,
		Name:        m.Title,
		Released:    &released,
		ReleaseDate: c.now().Format("2006-01-02"),
	})
	if err != nil {
		logging.Error("failed to release jira version",
			"project", c.project,
			"version", m.Title,
			"error", err,
			"status_code", statusCode(resp))
		return nil, fmt.Errorf("failed to release jira version %s: %w", m.Title, err)
	}

	closed := c.toMilestone(updated)
	closed.ClosedIssues = m.ClosedIssues
	return closed, nil
}

// countOpenIssues returns how many issues of the version are not done yet.
func (c *Client) countOpenIssues(ctx context.Context, version string) (int, error) {
	jql := fmt.Sprintf(`project = %s AND fixVersion = %s AND statusCategory != Done`,
		quoteJQL(c.project), quoteJQL(version))

	_, resp, err := c.client.Issue.SearchWithContext(ctx, jql, &jira.SearchOptions{MaxResults: 1})
	if err != nil {
		logging.Error("failed to search jira issues",
			"jql", jql,
			"error", err,
			"status_code", statusCode(resp))
		return 0, fmt.Errorf("failed to search jira issues: %w", err)
	}

	logging.Debug("counted open jira issues", "version", version, "open_issues", resp.Total)
	return resp.Total, nil
}

func (c *Client) toMilestone(v *jira.Version) *models.Milestone {
	state := models.StateOpen
	if v.Released != nil && *v.Released {
		state = models.StateClosed
	}
	return &models.Milestone{
		ID:    v.ID,
		Title: v.Name,
		State: state,
		URL:   fmt.Sprintf("%s/projects/%s/versions/%s", c.baseURL, c.project, v.ID),
	}
}

func parseProjectID(id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0, fmt.Errorf("unexpected jira project id %q: %w", id, err)
	}
	return n, nil
}

func statusCode(resp *jira.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}

var jqlEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quoteJQL renders s as a double-quoted JQL string literal.
func quoteJQL(s string) string {
	return `"` + jqlEscaper.Replace(s) + `"`
}
