// Package report prints command failures on stderr, with a hint for the
// failures a user can act on.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/danielolaszy/relctl/internal/changelog"
	"github.com/danielolaszy/relctl/internal/github"
	"github.com/danielolaszy/relctl/internal/publish"
	"github.com/danielolaszy/relctl/internal/version"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	hintLabel  = color.New(color.FgYellow).SprintFunc()
)

// Hint returns a short remediation for err, or an empty string.
func Hint(err error) string {
	var parseErr *version.ParseError
	var apiErr *github.APIError

	switch {
	case errors.Is(err, changelog.ErrDuplicateEntry):
		return "the changelog already has a section for this version"
	case errors.Is(err, changelog.ErrVersionNotFound):
		return "create the section first with 'relctl new <version>'"
	case errors.Is(err, publish.ErrMilestoneHasOpenIssues):
		return "close or move the remaining issues, then retry"
	case errors.Is(err, publish.ErrMilestoneNotFound):
		return "open it first with 'relctl milestone-open <version>'"
	case errors.As(err, &parseErr):
		return "pass the version explicitly or point --pom at the Maven descriptor"
	case errors.As(err, &apiErr) && apiErr.StatusCode == 401:
		return "check that GITHUB_TOKEN is valid"
	case errors.Is(err, os.ErrNotExist):
		return "check the --changelog and --pom paths"
	default:
		return ""
	}
}

// Error writes err, and its hint when there is one, to w.
func Error(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %v\n", errorLabel("error:"), err)
	if hint := Hint(err); hint != "" {
		fmt.Fprintf(w, "%s %s\n", hintLabel("hint:"), hint)
	}
}
