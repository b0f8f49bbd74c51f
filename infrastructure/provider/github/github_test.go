package github //nolint:testpackage // tests unexported functions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSource points an unauthenticated client at a local API stub.
func newTestSource(t *testing.T, handler http.Handler) *Source {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	source := New("")
	base, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	source.client.BaseURL = base

	return source
}

func TestParseOwnerRepo(t *testing.T) {
	t.Parallel()

	t.Run("should parse a plain https URL", func(t *testing.T) {
		t.Parallel()

		// when
		owner, repo, err := ParseOwnerRepo("https://github.com/airbnb/lottie-ios")

		// then
		require.NoError(t, err)
		assert.Equal(t, "airbnb", owner)
		assert.Equal(t, "lottie-ios", repo)
	})

	t.Run("should strip the .git suffix", func(t *testing.T) {
		t.Parallel()

		// when
		owner, repo, err := ParseOwnerRepo("https://github.com/firebase/firebase-ios-sdk.git")

		// then
		require.NoError(t, err)
		assert.Equal(t, "firebase", owner)
		assert.Equal(t, "firebase-ios-sdk", repo)
	})

	t.Run("should strip a trailing slash", func(t *testing.T) {
		t.Parallel()

		// when
		owner, repo, err := ParseOwnerRepo("https://github.com/guoyingtao/Mantis/")

		// then
		require.NoError(t, err)
		assert.Equal(t, "guoyingtao", owner)
		assert.Equal(t, "Mantis", repo)
	})

	t.Run("should parse an ssh-style URL", func(t *testing.T) {
		t.Parallel()

		// when
		owner, repo, err := ParseOwnerRepo("git@github.com:ashleymills/Reachability.swift.git")

		// then
		require.NoError(t, err)
		assert.Equal(t, "ashleymills", owner)
		assert.Equal(t, "Reachability.swift", repo)
	})

	t.Run("should reject non-github URLs", func(t *testing.T) {
		t.Parallel()

		// when
		_, _, err := ParseOwnerRepo("https://gitlab.com/org/repo")

		// then
		require.Error(t, err)
	})

	t.Run("should reject URLs without a repo segment", func(t *testing.T) {
		t.Parallel()

		// when
		_, _, err := ParseOwnerRepo("https://github.com/just-an-owner")

		// then
		require.Error(t, err)
	})
}

func TestSortVersionsDescending(t *testing.T) {
	t.Parallel()

	t.Run("should sort semver tags highest first", func(t *testing.T) {
		t.Parallel()

		// given
		versions := []string{"1.2.0", "10.0.0", "2.0.0", "1.10.0"}

		// when
		sortVersionsDescending(versions)

		// then
		assert.Equal(t, []string{"10.0.0", "2.0.0", "1.10.0", "1.2.0"}, versions)
	})

	t.Run("should handle mixed v prefixes", func(t *testing.T) {
		t.Parallel()

		// given
		versions := []string{"v1.0.0", "2.0.0", "v1.5.0"}

		// when
		sortVersionsDescending(versions)

		// then
		assert.Equal(t, []string{"2.0.0", "v1.5.0", "v1.0.0"}, versions)
	})

	t.Run("should fall back to string order for non-semver tags", func(t *testing.T) {
		t.Parallel()

		// given
		versions := []string{"release-a", "release-c", "release-b"}

		// when
		sortVersionsDescending(versions)

		// then
		assert.Equal(t, []string{"release-c", "release-b", "release-a"}, versions)
	})
}

func TestBranchHead(t *testing.T) {
	t.Parallel()

	t.Run("should return the short sha of the branch head", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/airbnb/lottie-ios/branches/master", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"name": "master", "commit": {"sha": "c01bbdf2d633cf049ae1ed1a68ba2aa9c48b5487"}}`))
		})
		source := newTestSource(t, mux)

		// when
		sha, err := source.BranchHead(context.Background(), "https://github.com/airbnb/lottie-ios", "master")

		// then
		require.NoError(t, err)
		assert.Equal(t, "c01bbdf", sha)
	})

	t.Run("should fall back from master to main when master is gone", func(t *testing.T) {
		t.Parallel()

		// given - the repository renamed its default branch
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/org/renamed/branches/master", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		mux.HandleFunc("/repos/org/renamed/branches/main", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"name": "main", "commit": {"sha": "a1b2c3d4e5f60718293a4b5c6d7e8f9012345678"}}`))
		})
		source := newTestSource(t, mux)

		// when
		sha, err := source.BranchHead(context.Background(), "https://github.com/org/renamed", "master")

		// then
		require.NoError(t, err)
		assert.Equal(t, "a1b2c3d", sha)
	})

	t.Run("should not fall back for branches other than master", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/org/repo/branches/develop", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		mux.HandleFunc("/repos/org/repo/branches/main", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"name": "main", "commit": {"sha": "a1b2c3d4e5f60718293a4b5c6d7e8f9012345678"}}`))
		})
		source := newTestSource(t, mux)

		// when
		_, err := source.BranchHead(context.Background(), "https://github.com/org/repo", "develop")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), `branch "develop"`)
	})
}

func TestLatestVersion(t *testing.T) {
	t.Parallel()

	t.Run("should prefer the latest release tag", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/airbnb/lottie-ios/releases/latest", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"tag_name": "4.4.0"}`))
		})
		source := newTestSource(t, mux)

		// when
		version, err := source.LatestVersion(context.Background(), "https://github.com/airbnb/lottie-ios")

		// then
		require.NoError(t, err)
		assert.Equal(t, "4.4.0", version)
	})

	t.Run("should fall back to the highest tag when there are no releases", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/org/untagged/releases/latest", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		mux.HandleFunc("/repos/org/untagged/tags", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"name": "1.2.0"}, {"name": "1.10.0"}, {"name": "1.9.0"}]`))
		})
		source := newTestSource(t, mux)

		// when
		version, err := source.LatestVersion(context.Background(), "https://github.com/org/untagged")

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.10.0", version)
	})
}

func TestMatchesURL(t *testing.T) {
	t.Parallel()

	t.Run("should match github URLs only", func(t *testing.T) {
		t.Parallel()

		// given
		source := New("")

		// then
		assert.True(t, source.MatchesURL("https://github.com/org/repo"))
		assert.True(t, source.MatchesURL("git@github.com:org/repo.git"))
		assert.False(t, source.MatchesURL("https://gitlab.com/org/repo"))
	})
}
