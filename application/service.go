package application

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/CongL3/MobileDependecyManager/config"
	"github.com/CongL3/MobileDependecyManager/domain"
	"github.com/CongL3/MobileDependecyManager/infrastructure/provider"
	"github.com/CongL3/MobileDependecyManager/manifest"
)

// CheckService orchestrates a full check run: resolve the dependency set,
// fetch the latest metadata per dependency, classify, assemble the report.
type CheckService struct {
	factory provider.RegistryFactory
}

// NewCheckService creates a new service with the given registry factory.
func NewCheckService(factory provider.RegistryFactory) *CheckService {
	return &CheckService{factory: factory}
}

// Run executes one check cycle. Failures while checking an individual
// dependency are captured on that record; only failures that prevent the
// dependency set from being resolved at all abort the run.
func (s *CheckService) Run(ctx context.Context, cfg *config.Config) (*domain.Report, error) {
	registry := s.factory(cfg.Token)

	pins, err := s.resolvePins(ctx, cfg, registry)
	if err != nil {
		return nil, err
	}

	logger.Infof("Checking %d dependencies...", len(pins))

	deps := make([]domain.Dependency, 0, len(pins))
	for _, pin := range pins {
		dep := s.check(ctx, registry, pin)
		logger.Debugf("%s: %s -> %s (%s)", dep.Name, dep.Resolved, dep.Latest, dep.Status)
		deps = append(deps, dep)
	}

	report := domain.NewReport(cfg.Project.URL, cfg.Project.Ref, cfg.Project.ManifestPath, deps)
	logger.Infof(
		"Check complete: %d total, %d up to date, %d updates, %d tracking, %d errors",
		report.Summary.Total,
		report.Summary.UpToDate,
		report.Summary.UpdatesAvailable,
		report.Summary.Tracking,
		report.Summary.Errors,
	)

	return report, nil
}

// resolvePins returns the dependency set, either by downloading and parsing
// the project's Package.resolved or from the static watchlist.
func (s *CheckService) resolvePins(
	ctx context.Context,
	cfg *config.Config,
	registry *provider.Registry,
) ([]domain.Pin, error) {
	if !cfg.UsesManifest() {
		logger.Infof("Using static watchlist with %d entries", len(cfg.Dependencies))
		return manifest.FromWatchlist(cfg.Dependencies), nil
	}

	source, err := registry.ForURL(cfg.Project.URL)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve project repository: %w", err)
	}

	logger.Infof("Fetching %s from %s", cfg.Project.ManifestPath, cfg.Project.URL)

	content, err := source.FileContent(ctx, cfg.Project.URL, cfg.Project.Ref, cfg.Project.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest: %w", err)
	}

	pins, err := manifest.Parse(content)
	if err != nil {
		return nil, err
	}

	return pins, nil
}

// check resolves the latest available version for a single pin and
// classifies it. Any failure becomes an Error Checking record.
func (s *CheckService) check(
	ctx context.Context,
	registry *provider.Registry,
	pin domain.Pin,
) domain.Dependency {
	dep := domain.Dependency{
		Name:     pin.Name,
		URL:      pin.URL,
		Resolved: pin.Resolved,
		Kind:     pin.Kind,
	}

	source, err := registry.ForURL(pin.URL)
	if err != nil {
		dep.Status = domain.StatusError
		dep.Notes = "Could not match dependency URL to a metadata source."
		return dep
	}

	var latest string
	var fetchErr error
	var notes string

	switch pin.Kind {
	case domain.PinUnknown:
		dep.Latest = "Unknown"
		dep.Status = domain.StatusError
		dep.Notes = "Unknown pin state in manifest."
		return dep
	case domain.PinVersion:
		latest, fetchErr = source.LatestVersion(ctx, pin.URL)
		if fetchErr == nil {
			notes = fmt.Sprintf("Latest from %s.", source.Name())
		}
	case domain.PinBranch:
		latest, fetchErr = source.BranchHead(ctx, pin.URL, pin.Resolved)
		if fetchErr == nil {
			notes = fmt.Sprintf("Latest commit on branch %q.", pin.Resolved)
		}
	case domain.PinRevision:
		// The latest value for a pinned commit is the pin itself.
		latest = pin.Resolved
		notes = "Pinned to specific commit."
	}

	if fetchErr != nil {
		logger.Warnf("Failed to check %s: %v", pin.Name, fetchErr)
		dep.Latest = "Unknown"
		dep.Status = domain.StatusError
		dep.Notes = fetchErr.Error()
		return dep
	}

	dep.Latest = latest
	dep.Notes = notes
	dep.Status = domain.Classify(pin.Kind, pin.Resolved, latest, false)

	if dep.Status == domain.StatusUpdateAvailable {
		if magnitude := domain.AnalyzeVersionDiff(pin.Resolved, latest).Magnitude(); magnitude != "" {
			dep.Notes = strings.TrimSpace(dep.Notes + " " + magnitude + " update available.")
		}
	}

	return dep
}
