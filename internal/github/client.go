// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/danielolaszy/relctl/internal/config"
	"github.com/danielolaszy/relctl/internal/logging"
	"github.com/danielolaszy/relctl/pkg/models"
)

// APIError reports a non-success answer from the GitHub API.
type APIError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api returned %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Client encapsulates the GitHub API client for a single repository.
type Client struct {
	client *github.Client
	owner  string
	repo   string
}

// APIURL returns the REST endpoint of a GitHub domain. github.com is served
// from api.github.com; Enterprise installations serve it under /api/v3/.
func APIURL(domain string) string {
	if domain == "" || domain == "github.com" {
		return "https://api.github.com/"
	}
	return fmt.Sprintf("https://%s/api/v3/", domain)
}

// SplitRepository splits an "owner/repo" slug.
func SplitRepository(repository string) (string, string, error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format: %s, expected format: owner/repo", repository)
	}
	return parts[0], parts[1], nil
}

// NewClient creates a GitHub API client for repository ("owner/repo"),
// authenticated with the configured token.
func NewClient(cfg config.GitHubConfig, repository string) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("github token not found in configuration (set GITHUB_TOKEN)")
	}

	owner, repo, err := SplitRepository(repository)
	if err != nil {
		return nil, err
	}

	domain := cfg.Domain
	if domain == "" {
		domain = "github.com"
	}
	apiURL := APIURL(domain)

	logging.Debug("github configuration",
		"domain", domain,
		"api_url", apiURL,
		"repository", repository,
		"token", logging.MaskSensitive(cfg.Token))

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	client := github.NewClient(tc)

	// If not using default GitHub.com, set custom API endpoint
	if domain != "github.com" {
		parsedURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url: %w", err)
		}

		client.BaseURL = parsedURL
		client.UploadURL = parsedURL
	}

	return &Client{client: client, owner: owner, repo: repo}, nil
}

// Repository returns the "owner/repo" slug the client works on.
func (c *Client) Repository() string {
	return c.owner + "/" + c.repo
}

// FindMilestone returns the milestone titled title, open or closed, or nil.
func (c *Client) FindMilestone(ctx context.Context, title string) (*models.Milestone, error) {
	opts := &github.MilestoneListOptions{
		State: "all",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	for {
		milestones, resp, err := c.client.Issues.ListMilestones(ctx, c.owner, c.repo, opts)
		if err != nil {
			logging.Error("failed to list github milestones",
				"repository", c.Repository(),
				"error", err,
				"status_code", statusCode(resp))
			return nil, fmt.Errorf("failed to list milestones: %w", apiError(resp, err))
		}

		for _, m := range milestones {
			if m.GetTitle() == title {
				return toMilestone(m), nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logging.Debug("milestone not found", "repository", c.Repository(), "title", title)
	return nil, nil
}

// CreateMilestone opens a new milestone titled title.
func (c *Client) CreateMilestone(ctx context.Context, title string) (*models.Milestone, error) {
	m, resp, err := c.client.Issues.CreateMilestone(ctx, c.owner, c.repo, &github.Milestone{
		Title: github.String(title),
		State: github.String(models.StateOpen),
	})
	if err != nil {
		logging.Error("failed to create github milestone",
			"repository", c.Repository(),
			"title", title,
			"error", err,
			"status_code", statusCode(resp))
		return nil, fmt.Errorf("failed to create milestone %s: %w", title, apiError(resp, err))
	}

	return toMilestone(m), nil
}

// CloseMilestone marks milestone m as closed.
func (c *Client) CloseMilestone(ctx context.Context, m *models.Milestone) (*models.Milestone, error) {
	updated, resp, err := c.client.Issues.EditMilestone(ctx, c.owner, c.repo, m.Number, &github.Milestone{
		State: github.String(models.StateClosed),
	})
	if err != nil {
		logging.Error("failed to close github milestone",
			"repository", c.Repository(),
			"milestone_number", m.Number,
			"error", err,
			"status_code", statusCode(resp))
		return nil, fmt.Errorf("failed to close milestone %s: %w", m.Title, apiError(resp, err))
	}

	return toMilestone(updated), nil
}

// FindRelease returns the release of tag, drafts included, or nil. Drafts have
// no tag yet on GitHub's side, so releases are listed rather than fetched by tag.
func (c *Client) FindRelease(ctx context.Context, tag string) (*models.Release, error) {
	opts := &github.ListOptions{PerPage: 100}

	for {
		releases, resp, err := c.client.Repositories.ListReleases(ctx, c.owner, c.repo, opts)
		if err != nil {
			logging.Error("failed to list github releases",
				"repository", c.Repository(),
				"error", err,
				"status_code", statusCode(resp))
			return nil, fmt.Errorf("failed to list releases: %w", apiError(resp, err))
		}

		for _, r := range releases {
			if r.GetTagName() == tag {
				return toRelease(r), nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return nil, nil
}

// CreateRelease publishes r.
func (c *Client) CreateRelease(ctx context.Context, r models.Release) (*models.Release, error) {
	req := &github.RepositoryRelease{
		TagName:    github.String(r.Tag),
		Name:       github.String(r.Name),
		Body:       github.String(r.Body),
		Draft:      github.Bool(r.Draft),
		Prerelease: github.Bool(r.Prerelease),
	}
	if r.Target != "" {
		req.TargetCommitish = github.String(r.Target)
	}

	created, resp, err := c.client.Repositories.CreateRelease(ctx, c.owner, c.repo, req)
	if err != nil {
		logging.Error("failed to create github release",
			"repository", c.Repository(),
			"tag", r.Tag,
			"error", err,
			"status_code", statusCode(resp))
		return nil, fmt.Errorf("failed to create release %s: %w", r.Tag, apiError(resp, err))
	}

	return toRelease(created), nil
}

// UpdateRelease replaces the name, body and flags of release id.
func (c *Client) UpdateRelease(ctx context.Context, id int64, r models.Release) (*models.Release, error) {
	updated, resp, err := c.client.Repositories.EditRelease(ctx, c.owner, c.repo, id, &github.RepositoryRelease{
		Name:       github.String(r.Name),
		Body:       github.String(r.Body),
		Draft:      github.Bool(r.Draft),
		Prerelease: github.Bool(r.Prerelease),
	})
	if err != nil {
		logging.Error("failed to update github release",
			"repository", c.Repository(),
			"release_id", id,
			"error", err,
			"status_code", statusCode(resp))
		return nil, fmt.Errorf("failed to update release %s: %w", r.Tag, apiError(resp, err))
	}

	return toRelease(updated), nil
}

func toMilestone(m *github.Milestone) *models.Milestone {
	return &models.Milestone{
		Number:       m.GetNumber(),
		Title:        m.GetTitle(),
		State:        m.GetState(),
		OpenIssues:   m.GetOpenIssues(),
		ClosedIssues: m.GetClosedIssues(),
		URL:          m.GetHTMLURL(),
	}
}

func toRelease(r *github.RepositoryRelease) *models.Release {
	return &models.Release{
		ID:         r.GetID(),
		Tag:        r.GetTagName(),
		Target:     r.GetTargetCommitish(),
		Name:       r.GetName(),
		Body:       r.GetBody(),
		Draft:      r.GetDraft(),
		Prerelease: r.GetPrerelease(),
		URL:        r.GetHTMLURL(),
	}
}

func statusCode(resp *github.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}

// apiError turns a failed call into an *APIError when the server answered.
// Transport failures are returned unchanged.
func apiError(resp *github.Response, err error) error {
	if resp == nil || resp.Response == nil || resp.StatusCode < http.StatusBadRequest {
		return err
	}

	body := err.Error()
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		body = errResp.Message
		for _, e := range errResp.Errors {
			body += "; " + e.Error()
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Body: body, Err: err}
}
