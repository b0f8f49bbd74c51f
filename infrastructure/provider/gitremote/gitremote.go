// Package gitremote implements domain.Source over the raw Git transport for
// dependencies hosted outside github.com. It only needs an advertised-refs
// exchange (the equivalent of git ls-remote), no clone.
package gitremote

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
	"golang.org/x/mod/semver"

	"github.com/CongL3/MobileDependecyManager/domain"
)

const (
	sourceName  = "gitremote"
	shortSHALen = 7
)

// ErrFileAccessUnsupported is returned by FileContent: the advertised-refs
// exchange cannot read blobs.
var ErrFileAccessUnsupported = errors.New(
	"reading files over the git protocol is not supported; host the manifest on github.com",
)

// Source lists remote refs directly over the Git transport. It acts as the
// catch-all at the end of the registry chain.
type Source struct {
	token string
}

// New creates a Git-protocol metadata source.
func New(token string) *Source {
	return &Source{token: token}
}

func (s *Source) Name() string { return sourceName }

// MatchesURL accepts any URL that looks like a Git remote.
func (s *Source) MatchesURL(rawURL string) bool {
	return strings.Contains(rawURL, "://") || strings.HasPrefix(rawURL, "git@")
}

// LatestVersion returns the highest version tag advertised by the remote.
func (s *Source) LatestVersion(ctx context.Context, rawURL string) (string, error) {
	refs, err := s.listRefs(ctx, rawURL)
	if err != nil {
		return "", err
	}

	var tags []string
	for _, ref := range refs {
		if !ref.Name().IsTag() {
			continue
		}
		name := ref.Name().Short()
		// Annotated tags advertise a peeled duplicate
		name = strings.TrimSuffix(name, "^{}")
		tags = append(tags, name)
	}

	if len(tags) == 0 {
		return "", fmt.Errorf("no tags advertised by %q", rawURL)
	}

	sort.Slice(tags, func(i, j int) bool {
		v1 := normalizeVersion(tags[i])
		v2 := normalizeVersion(tags[j])
		if semver.IsValid(v1) && semver.IsValid(v2) {
			return semver.Compare(v1, v2) > 0
		}
		return tags[i] > tags[j]
	})

	return tags[0], nil
}

// BranchHead returns the short SHA the remote advertises for the branch.
func (s *Source) BranchHead(ctx context.Context, rawURL, branch string) (string, error) {
	refs, err := s.listRefs(ctx, rawURL)
	if err != nil {
		return "", err
	}

	want := plumbing.NewBranchReferenceName(branch)
	for _, ref := range refs {
		if ref.Name() != want {
			continue
		}
		sha := ref.Hash().String()
		if len(sha) > shortSHALen {
			sha = sha[:shortSHALen]
		}
		return sha, nil
	}

	return "", fmt.Errorf("branch %q not advertised by %q", branch, rawURL)
}

// FileContent always fails: ls-remote cannot serve blobs.
func (s *Source) FileContent(_ context.Context, _, _, _ string) (string, error) {
	return "", ErrFileAccessUnsupported
}

func (s *Source) listRefs(ctx context.Context, rawURL string) ([]*plumbing.Reference, error) {
	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{rawURL},
	})

	var auth transport.AuthMethod
	if s.token != "" && strings.HasPrefix(rawURL, "http") {
		auth = &githttp.BasicAuth{Username: "x-access-token", Password: s.token}
	}

	refs, err := remote.ListContext(ctx, &git.ListOptions{Auth: auth})
	if err != nil {
		return nil, fmt.Errorf("failed to list refs for %q: %w", rawURL, err)
	}

	return refs, nil
}

func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

var _ domain.Source = (*Source)(nil)
