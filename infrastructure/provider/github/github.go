// Package github implements domain.Source on top of the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/mod/semver"
)

const (
	sourceName   = "github"
	perPage      = 100
	shortSHALen  = 7
	maxRedirects = 3
)

// ownerRepoPattern matches the owner and repository segments of a GitHub URL.
var ownerRepoPattern = regexp.MustCompile(`github\.com[:/]([^/]+)/([^/?#\s]+)`)

// Source implements domain.Source for repositories hosted on github.com.
type Source struct {
	token  string
	client *gh.Client
}

// New creates a GitHub metadata source. An empty token yields an
// unauthenticated client with the low anonymous rate limit.
func New(token string) *Source {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Source{
		token:  token,
		client: client,
	}
}

func (s *Source) Name() string { return sourceName }

func (s *Source) MatchesURL(rawURL string) bool {
	return strings.Contains(rawURL, "github.com")
}

// LatestVersion returns the tag of the latest published release, falling
// back to the highest tag when the repository has no releases.
func (s *Source) LatestVersion(ctx context.Context, rawURL string) (string, error) {
	owner, repo, err := ParseOwnerRepo(rawURL)
	if err != nil {
		return "", err
	}

	release, _, releaseErr := s.client.Repositories.GetLatestRelease(ctx, owner, repo)
	if releaseErr == nil && release.GetTagName() != "" {
		return release.GetTagName(), nil
	}

	tags, err := s.listTags(ctx, owner, repo)
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", fmt.Errorf("no releases or tags found for %s/%s", owner, repo)
	}

	return tags[0], nil
}

// BranchHead returns the short SHA of the latest commit on the given branch.
// A failed lookup of "master" retries "main", since many repositories renamed
// their default branch while older manifests still pin the old name.
func (s *Source) BranchHead(ctx context.Context, rawURL, branch string) (string, error) {
	owner, repo, err := ParseOwnerRepo(rawURL)
	if err != nil {
		return "", err
	}

	br, _, err := s.client.Repositories.GetBranch(ctx, owner, repo, branch, maxRedirects)
	if err != nil && branch == "master" {
		br, _, err = s.client.Repositories.GetBranch(ctx, owner, repo, "main", maxRedirects)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get branch %q for %s/%s: %w", branch, owner, repo, err)
	}

	sha := br.GetCommit().GetSHA()
	if len(sha) > shortSHALen {
		sha = sha[:shortSHALen]
	}
	return sha, nil
}

// FileContent reads a file from the repository at the given ref
// (empty ref means the default branch).
func (s *Source) FileContent(ctx context.Context, rawURL, ref, path string) (string, error) {
	owner, repo, err := ParseOwnerRepo(rawURL)
	if err != nil {
		return "", err
	}

	fileContent, _, _, err := s.client.Repositories.GetContents(
		ctx, owner, repo, path,
		&gh.RepositoryContentGetOptions{Ref: ref},
	)
	if err != nil {
		return "", fmt.Errorf("failed to get file %q: %w", path, err)
	}
	if fileContent == nil {
		return "", fmt.Errorf("path %q is a directory, not a file", path)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode file content: %w", err)
	}

	return content, nil
}

func (s *Source) listTags(ctx context.Context, owner, repo string) ([]string, error) {
	var allTags []string
	opts := &gh.ListOptions{PerPage: perPage}

	for {
		tags, resp, err := s.client.Repositories.ListTags(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list tags for %s/%s: %w", owner, repo, err)
		}

		for _, tag := range tags {
			allTags = append(allTags, tag.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	sortVersionsDescending(allTags)
	return allTags, nil
}

// ParseOwnerRepo extracts the owner and repository name from a GitHub URL.
func ParseOwnerRepo(rawURL string) (string, string, error) {
	trimmed := strings.TrimSuffix(strings.TrimRight(rawURL, "/"), ".git")

	match := ownerRepoPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return "", "", fmt.Errorf("could not parse GitHub URL %q", rawURL)
	}

	return match[1], match[2], nil
}

// --- version sorting ---

func sortVersionsDescending(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		v1 := normalizeVersion(versions[i])
		v2 := normalizeVersion(versions[j])
		if semver.IsValid(v1) && semver.IsValid(v2) {
			return semver.Compare(v1, v2) > 0
		}
		return versions[i] > versions[j]
	})
}

func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
