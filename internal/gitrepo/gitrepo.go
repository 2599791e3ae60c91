// Package gitrepo reads the metadata of the local git checkout that a release
// is cut from: the hosting repository slug and the commit to tag.
package gitrepo

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/danielolaszy/relctl/internal/logging"
)

// Repo is an opened local repository.
type Repo struct {
	repo *git.Repository
}

// Open opens the repository containing path, walking up to the .git
// directory. An empty path means the working directory.
func Open(path string) (*Repo, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logging.Debug("opened git repository", "path", path)
	return &Repo{repo: repo}, nil
}

// Slug returns the "owner/repo" slug of the named remote.
func (r *Repo) Slug(remote string) (string, error) {
	rem, err := r.repo.Remote(remote)
	if err != nil {
		return "", fmt.Errorf("getting remote %s: %w", remote, err)
	}

	urls := rem.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no url", remote)
	}
	return ParseSlug(urls[0])
}

// HeadCommit returns the hash of the commit HEAD points to.
func (r *Repo) HeadCommit() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	return head.Hash().String(), nil
}

// ParseSlug extracts "owner/repo" from a remote URL in scp-like
// (git@host:owner/repo.git) or URL (https://host/owner/repo.git,
// ssh://git@host/owner/repo) form.
func ParseSlug(remoteURL string) (string, error) {
	var path string
	if strings.Contains(remoteURL, "://") {
		u, err := url.Parse(remoteURL)
		if err != nil {
			return "", fmt.Errorf("invalid remote url %q: %w", remoteURL, err)
		}
		path = u.Path
	} else if i := strings.Index(remoteURL, ":"); i > 0 {
		path = remoteURL[i+1:]
	} else {
		return "", fmt.Errorf("unsupported remote url %q", remoteURL)
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", fmt.Errorf("no owner/repo in remote url %q", remoteURL)
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1], nil
}
