package changelog

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/danielolaszy/relctl/internal/logging"
)

var (
	// ErrDuplicateEntry is returned when a section already exists for a version.
	ErrDuplicateEntry = errors.New("changelog entry already exists")

	// ErrVersionNotFound is returned when no section exists for a version.
	ErrVersionNotFound = errors.New("changelog entry not found")
)

// Store gives access to a changelog file. Every mutation reads the whole file,
// transforms the parsed document and writes it back in one go.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore returns a store for the changelog at path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// WithClock replaces the clock used to date releases.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Path returns the location of the changelog file.
func (s *Store) Path() string {
	return s.path
}

// NewEntry adds an unreleased section for v on top of the changelog.
// milestoneURL, if set, is referenced from the new section.
func (s *Store) NewEntry(v, milestoneURL string) error {
	doc, mode, err := s.load()
	if err != nil {
		return err
	}

	if doc.Find(v) != nil {
		logging.Warn("changelog entry already exists", "path", s.path, "version", v)
		return fmt.Errorf("version %s: %w", v, ErrDuplicateEntry)
	}

	doc.Prepend(NewSection(v, milestoneURL))
	if err := s.save(doc, mode); err != nil {
		return err
	}

	logging.Info("created changelog entry", "path", s.path, "version", v)
	return nil
}

// Timestamp replaces the date of the section for v with today's date and
// returns the updated header line.
func (s *Store) Timestamp(v string) (string, error) {
	doc, mode, err := s.load()
	if err != nil {
		return "", err
	}

	sec := doc.Find(v)
	if sec == nil {
		return "", fmt.Errorf("version %s: %w", v, ErrVersionNotFound)
	}

	previous := sec.Date
	sec.SetDate(s.now().Format(DateLayout))
	if err := s.save(doc, mode); err != nil {
		return "", err
	}

	logging.Info("timestamped changelog entry",
		"path", s.path,
		"version", v,
		"previous_date", previous,
		"date", sec.Date)
	return sec.Header(), nil
}

// Log returns the body of the section for v.
func (s *Store) Log(v string) (string, error) {
	doc, _, err := s.load()
	if err != nil {
		return "", err
	}

	sec := doc.Find(v)
	if sec == nil {
		return "", fmt.Errorf("version %s: %w", v, ErrVersionNotFound)
	}

	logging.Debug("extracted changelog entry", "version", v, "body_lines", len(sec.Body))
	return sec.Log(), nil
}

// Versions lists the versions of every section in file order.
func (s *Store) Versions() ([]string, error) {
	doc, _, err := s.load()
	if err != nil {
		return nil, err
	}

	versions := make([]string, 0, len(doc.Sections))
	for _, sec := range doc.Sections {
		versions = append(versions, sec.Version)
	}
	return versions, nil
}

func (s *Store) load() (*Document, os.FileMode, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read changelog: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read changelog: %w", err)
	}

	doc := Parse(string(data))
	logging.Debug("parsed changelog",
		"path", s.path,
		"preamble_lines", len(doc.Preamble),
		"sections", len(doc.Sections))
	return doc, info.Mode().Perm(), nil
}

func (s *Store) save(doc *Document, mode os.FileMode) error {
	if err := os.WriteFile(s.path, []byte(doc.Render()), mode); err != nil {
		return fmt.Errorf("failed to write changelog: %w", err)
	}
	return nil
}
