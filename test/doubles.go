// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"context"
	"fmt"

	"github.com/CongL3/MobileDependecyManager/domain"
)

// ---------------------------------------------------------------------------
// SpySource
// ---------------------------------------------------------------------------

// SpySource implements domain.Source as a configurable spy.
// Configure the response fields for the methods your test exercises,
// then inspect the call-tracking fields to verify behavior.
type SpySource struct {
	// --- identity ---
	SourceName string
	// MatchAll makes MatchesURL accept every URL; otherwise only URLs
	// present in MatchURLs are accepted.
	MatchAll  bool
	MatchURLs map[string]bool

	// --- LatestVersion ---
	LatestVersions   map[string]string // url -> version
	LatestVersionErr error
	// spy: urls that were asked for a latest version
	LatestVersionCalls []string

	// --- BranchHead ---
	BranchHeads   map[string]string // url+"@"+branch -> sha
	BranchHeadErr error
	// spy: url@branch keys that were requested
	BranchHeadCalls []string

	// --- FileContent ---
	FileContents   map[string]string // path -> content
	FileContentErr error
	// spy: paths that were fetched
	FileContentCalls []string
}

var _ domain.Source = (*SpySource)(nil)

func (s *SpySource) Name() string { return s.SourceName }

func (s *SpySource) MatchesURL(rawURL string) bool {
	if s.MatchAll {
		return true
	}
	return s.MatchURLs[rawURL]
}

func (s *SpySource) LatestVersion(_ context.Context, rawURL string) (string, error) {
	s.LatestVersionCalls = append(s.LatestVersionCalls, rawURL)
	if s.LatestVersionErr != nil {
		return "", s.LatestVersionErr
	}
	if version, ok := s.LatestVersions[rawURL]; ok {
		return version, nil
	}
	return "", fmt.Errorf("no version configured for %s", rawURL)
}

func (s *SpySource) BranchHead(_ context.Context, rawURL, branch string) (string, error) {
	key := rawURL + "@" + branch
	s.BranchHeadCalls = append(s.BranchHeadCalls, key)
	if s.BranchHeadErr != nil {
		return "", s.BranchHeadErr
	}
	if sha, ok := s.BranchHeads[key]; ok {
		return sha, nil
	}
	return "", fmt.Errorf("no branch head configured for %s", key)
}

func (s *SpySource) FileContent(_ context.Context, _, _, path string) (string, error) {
	s.FileContentCalls = append(s.FileContentCalls, path)
	if s.FileContentErr != nil {
		return "", s.FileContentErr
	}
	if content, ok := s.FileContents[path]; ok {
		return content, nil
	}
	return "", fmt.Errorf("file not found: %s", path)
}

// ---------------------------------------------------------------------------
// DummySource
// ---------------------------------------------------------------------------

// DummySource is a no-op domain.Source for interface-compliance tests.
type DummySource struct{}

var _ domain.Source = (*DummySource)(nil)

func (d *DummySource) Name() string { return "dummy" }

func (d *DummySource) MatchesURL(_ string) bool { return false }

func (d *DummySource) LatestVersion(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (d *DummySource) BranchHead(_ context.Context, _, _ string) (string, error) {
	return "", nil
}

func (d *DummySource) FileContent(_ context.Context, _, _, _ string) (string, error) {
	return "", nil
}
