// Package models defines data structures shared across the application.
package models

// Milestone states.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// Milestone groups the issues planned for a version on the issue tracker.
type Milestone struct {
	// Number is the milestone number on GitHub (e.g., 12)
	Number int

	// ID is the tracker specific identifier when it is not numeric (Jira version ID)
	ID string

	// Title is the version the milestone stands for
	Title string

	// State is either StateOpen or StateClosed
	State string

	// OpenIssues is the number of issues still open in the milestone
	OpenIssues int

	// ClosedIssues is the number of closed issues in the milestone
	ClosedIssues int

	// URL points to the milestone page
	URL string
}

// IsOpen reports whether the milestone is still open.
func (m Milestone) IsOpen() bool {
	return m.State == StateOpen
}

// Release is a published (or draft) release tied to a tag.
type Release struct {
	// ID is the release identifier on GitHub
	ID int64

	// Tag is the git tag the release points to (e.g., "1.2.0")
	Tag string

	// Target is the commit or branch the tag is created from when it does not exist yet
	Target string

	// Name is the release title
	Name string

	// Body is the release notes, taken from the changelog
	Body string

	// Draft marks an unpublished release
	Draft bool

	// Prerelease marks a release that is not production ready
	Prerelease bool

	// URL points to the release page
	URL string
}
