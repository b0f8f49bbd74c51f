package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CongL3/MobileDependecyManager/infrastructure/provider"
	testdoubles "github.com/CongL3/MobileDependecyManager/test"
)

func TestRegistry_ForURL(t *testing.T) {
	t.Parallel()

	t.Run("should dispatch to the first matching source", func(t *testing.T) {
		t.Parallel()

		// given
		specific := &testdoubles.SpySource{
			SourceName: "github",
			MatchURLs:  map[string]bool{"https://github.com/org/repo": true},
		}
		fallback := &testdoubles.SpySource{SourceName: "gitremote", MatchAll: true}
		registry := provider.NewRegistry(specific, fallback)

		// when
		source, err := registry.ForURL("https://github.com/org/repo")

		// then
		require.NoError(t, err)
		assert.Equal(t, "github", source.Name())
	})

	t.Run("should fall through to the catch-all source", func(t *testing.T) {
		t.Parallel()

		// given
		specific := &testdoubles.SpySource{
			SourceName: "github",
			MatchURLs:  map[string]bool{"https://github.com/org/repo": true},
		}
		fallback := &testdoubles.SpySource{SourceName: "gitremote", MatchAll: true}
		registry := provider.NewRegistry(specific, fallback)

		// when
		source, err := registry.ForURL("https://gitlab.com/org/repo")

		// then
		require.NoError(t, err)
		assert.Equal(t, "gitremote", source.Name())
	})

	t.Run("should fail when nothing matches", func(t *testing.T) {
		t.Parallel()

		// given
		registry := provider.NewRegistry(&testdoubles.SpySource{SourceName: "github"})

		// when
		_, err := registry.ForURL("not-a-url")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no metadata source matches")
	})

	t.Run("should append sources with Register", func(t *testing.T) {
		t.Parallel()

		// given
		registry := provider.NewRegistry()
		registry.Register(&testdoubles.SpySource{SourceName: "extra", MatchAll: true})

		// when
		source, err := registry.ForURL("anything")

		// then
		require.NoError(t, err)
		assert.Equal(t, "extra", source.Name())
		assert.Len(t, registry.All(), 1)
	})
}

func TestNewDefaultRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should route github URLs to the github source", func(t *testing.T) {
		t.Parallel()

		// given
		registry := provider.NewDefaultRegistry("")

		// when
		source, err := registry.ForURL("https://github.com/airbnb/lottie-ios")

		// then
		require.NoError(t, err)
		assert.Equal(t, "github", source.Name())
	})

	t.Run("should route other hosts to the git protocol source", func(t *testing.T) {
		t.Parallel()

		// given
		registry := provider.NewDefaultRegistry("")

		// when
		source, err := registry.ForURL("https://gitlab.com/org/repo.git")

		// then
		require.NoError(t, err)
		assert.Equal(t, "gitremote", source.Name())
	})
}
