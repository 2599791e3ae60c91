// Package publish holds the release policy shared by every issue tracker:
// when a milestone may be created or closed, and how a release is created or
// refreshed from the changelog.
package publish

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielolaszy/relctl/internal/logging"
	"github.com/danielolaszy/relctl/pkg/models"
)

var (
	// ErrMilestoneNotFound is returned when no milestone has the requested title.
	ErrMilestoneNotFound = errors.New("milestone not found")

	// ErrMilestoneHasOpenIssues is returned when closing a milestone that still has open issues.
	ErrMilestoneHasOpenIssues = errors.New("milestone has open issues")
)

// MilestoneTracker is implemented by issue trackers able to group issues per version.
//
// Find methods return nil without error when nothing matches.
type MilestoneTracker interface {
	// FindMilestone looks a milestone up by title, whatever its state.
	FindMilestone(ctx context.Context, title string) (*models.Milestone, error)

	// CreateMilestone opens a new milestone.
	CreateMilestone(ctx context.Context, title string) (*models.Milestone, error)

	// CloseMilestone marks m as closed.
	CloseMilestone(ctx context.Context, m *models.Milestone) (*models.Milestone, error)
}

// Releaser is implemented by hosts that publish releases.
type Releaser interface {
	// FindRelease looks a release up by tag, drafts included.
	FindRelease(ctx context.Context, tag string) (*models.Release, error)

	// CreateRelease publishes a new release.
	CreateRelease(ctx context.Context, r models.Release) (*models.Release, error)

	// UpdateRelease replaces the name, body and draft flag of an existing release.
	UpdateRelease(ctx context.Context, id int64, r models.Release) (*models.Release, error)
}

// OpenIssuesError reports a milestone that cannot be closed yet.
type OpenIssuesError struct {
	Milestone  string
	OpenIssues int
}

func (e *OpenIssuesError) Error() string {
	return fmt.Sprintf("milestone %s still has %d open issue(s)", e.Milestone, e.OpenIssues)
}

// Is lets errors.Is match ErrMilestoneHasOpenIssues.
func (e *OpenIssuesError) Is(target error) bool {
	return target == ErrMilestoneHasOpenIssues
}

// OpenMilestone makes sure a milestone exists for version v. An existing
// milestone is returned as is, whatever its state.
func OpenMilestone(ctx context.Context, t MilestoneTracker, v string) (*models.Milestone, error) {
	m, err := t.FindMilestone(ctx, v)
	if err != nil {
		return nil, err
	}
	if m != nil {
		logging.Warn("milestone already exists",
			"milestone", m.Title,
			"state", m.State,
			"url", m.URL)
		return m, nil
	}

	m, err = t.CreateMilestone(ctx, v)
	if err != nil {
		return nil, err
	}

	logging.Info("milestone created", "milestone", m.Title, "url", m.URL)
	return m, nil
}

// CloseMilestone closes the milestone of version v once all its issues are closed.
func CloseMilestone(ctx context.Context, t MilestoneTracker, v string) (*models.Milestone, error) {
	m, err := t.FindMilestone(ctx, v)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrMilestoneNotFound, v)
	}

	if !m.IsOpen() {
		logging.Warn("milestone already closed", "milestone", m.Title, "url", m.URL)
		return m, nil
	}

	if m.OpenIssues > 0 {
		logging.Error("cannot close milestone",
			"milestone", m.Title,
			"open_issues", m.OpenIssues)
		return nil, &OpenIssuesError{Milestone: m.Title, OpenIssues: m.OpenIssues}
	}

	closed, err := t.CloseMilestone(ctx, m)
	if err != nil {
		return nil, err
	}

	logging.Info("milestone closed",
		"milestone", closed.Title,
		"closed_issues", closed.ClosedIssues)
	return closed, nil
}

// PublishRelease creates the release for r.Tag, or refreshes it when one
// already exists for that tag.
func PublishRelease(ctx context.Context, rel Releaser, r models.Release) (*models.Release, error) {
	existing, err := rel.FindRelease(ctx, r.Tag)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		updated, err := rel.UpdateRelease(ctx, existing.ID, r)
		if err != nil {
			return nil, err
		}
		logging.Info("release updated",
			"tag", updated.Tag,
			"draft", updated.Draft,
			"url", updated.URL)
		return updated, nil
	}

	created, err := rel.CreateRelease(ctx, r)
	if err != nil {
		return nil, err
	}
	logging.Info("release created",
		"tag", created.Tag,
		"draft", created.Draft,
		"url", created.URL)
	return created, nil
}
