// Package provider hosts the remote metadata sources and the registry that
// dispatches dependency URLs to them.
package provider

import (
	"fmt"

	"github.com/CongL3/MobileDependecyManager/domain"
	"github.com/CongL3/MobileDependecyManager/infrastructure/provider/github"
	"github.com/CongL3/MobileDependecyManager/infrastructure/provider/gitremote"
)

// Registry holds the configured metadata sources in dispatch order.
// The first source whose MatchesURL accepts a URL serves it.
type Registry struct {
	sources []domain.Source
}

// RegistryFactory builds a registry authenticated with the given token.
type RegistryFactory func(token string) *Registry

// NewRegistry creates a registry with the given sources in dispatch order.
func NewRegistry(sources ...domain.Source) *Registry {
	return &Registry{sources: sources}
}

// NewDefaultRegistry builds the default source chain: the GitHub API first,
// then the raw Git protocol as a catch-all for other hosts.
func NewDefaultRegistry(token string) *Registry {
	return NewRegistry(
		github.New(token),
		gitremote.New(token),
	)
}

// NewRegistryFactory returns the default registry constructor.
func NewRegistryFactory() RegistryFactory {
	return NewDefaultRegistry
}

// Register appends a source to the dispatch chain.
func (r *Registry) Register(s domain.Source) {
	r.sources = append(r.sources, s)
}

// ForURL returns the first source that can serve the given repository URL.
func (r *Registry) ForURL(rawURL string) (domain.Source, error) {
	for _, s := range r.sources {
		if s.MatchesURL(rawURL) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no metadata source matches URL %q", rawURL)
}

// All returns every registered source.
func (r *Registry) All() []domain.Source {
	return r.sources
}
