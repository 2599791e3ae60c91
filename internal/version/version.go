// Package version reads the project version from the Maven descriptor and
// derives the release and next versions from it.
package version

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/danielolaszy/relctl/internal/logging"
)

// SnapshotSuffix marks a development (not yet released) version.
const SnapshotSuffix = "-SNAPSHOT"

// ParseError reports a descriptor that is missing, malformed or declares no version.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to read version from %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// pom holds the few descriptor fields we care about. Element names are matched
// on their local name so the Maven namespace does not get in the way.
type pom struct {
	XMLName xml.Name `xml:"project"`
	Version string   `xml:"version"`
	Parent  struct {
		Version string `xml:"version"`
	} `xml:"parent"`
}

// Parse reads the version declared by the descriptor at path. A project
// without its own version inherits the one of its parent.
func Parse(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ParseError{Path: path, Err: err}
	}

	var p pom
	if err := xml.Unmarshal(data, &p); err != nil {
		return "", &ParseError{Path: path, Err: err}
	}

	v := strings.TrimSpace(p.Version)
	if v == "" {
		v = strings.TrimSpace(p.Parent.Version)
		if v != "" {
			logging.Debug("version inherited from parent", "path", path, "version", v)
		}
	}
	if v == "" {
		return "", &ParseError{Path: path, Err: fmt.Errorf("no version element under project")}
	}

	logging.Debug("parsed project version", "path", path, "version", v)
	return v, nil
}

// IsPreRelease reports whether v carries the snapshot suffix.
func IsPreRelease(v string) bool {
	return strings.HasSuffix(v, SnapshotSuffix)
}

// ToRelease strips the snapshot suffix, if any.
func ToRelease(v string) string {
	return strings.TrimSuffix(v, SnapshotSuffix)
}

// Snapshot returns v marked as a development version.
func Snapshot(v string) string {
	if IsPreRelease(v) {
		return v
	}
	return v + SnapshotSuffix
}

// Next returns the version that follows v. A snapshot is followed by its own
// release; a release is followed by the same version with its last component
// incremented, e.g. 1.2.9 -> 1.2.10.
func Next(v string) (string, error) {
	if IsPreRelease(v) {
		return ToRelease(v), nil
	}

	parts := strings.Split(v, ".")
	last := parts[len(parts)-1]
	n, err := strconv.Atoi(last)
	if err != nil {
		return "", fmt.Errorf("cannot increment version %q: %w", v, err)
	}
	parts[len(parts)-1] = strconv.Itoa(n + 1)
	return strings.Join(parts, "."), nil
}
