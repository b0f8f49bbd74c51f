package domain

import "context"

// Source abstracts a remote metadata backend (GitHub REST API, raw Git
// protocol, etc.). Each implementation resolves the latest published version,
// branch heads, and file contents for the repositories it can serve.
type Source interface {
	// Name returns the source identifier (e.g. "github", "gitremote").
	Name() string

	// MatchesURL returns true if the given repository URL belongs to this source.
	MatchesURL(rawURL string) bool

	// LatestVersion returns the latest published version for a repository,
	// preferring releases over plain tags where the backend distinguishes them.
	LatestVersion(ctx context.Context, rawURL string) (string, error)

	// BranchHead returns the short commit SHA at the head of the given branch.
	BranchHead(ctx context.Context, rawURL, branch string) (string, error)

	// FileContent reads a file from the repository at the given ref.
	// An empty ref means the default branch.
	FileContent(ctx context.Context, rawURL, ref, path string) (string, error)
}
