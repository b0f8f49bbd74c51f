// Package manifest parses Swift Package Manager Package.resolved files and
// converts them (or a static watchlist) into dependency pins.
package manifest

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/CongL3/MobileDependecyManager/domain"
)

// packageResolved covers the manifest format revisions. Format 1 nests the
// pin list under "object"; formats 2 and 3 hoist it to the top level and
// rename the identity and URL keys.
type packageResolved struct {
	Version int `json:"version"`
	Object  *struct {
		Pins []resolvedPin `json:"pins"`
	} `json:"object"`
	Pins []resolvedPin `json:"pins"`
}

type resolvedPin struct {
	// Format 1 keys
	Package       string `json:"package"`
	RepositoryURL string `json:"repositoryURL"`

	// Format 2 keys
	Identity string `json:"identity"`
	Location string `json:"location"`

	State pinState `json:"state"`
}

type pinState struct {
	Version  string `json:"version"`
	Branch   string `json:"branch"`
	Revision string `json:"revision"`
}

const (
	formatV1 = 1
	formatV2 = 2
	formatV3 = 3
)

// Parse extracts dependency pins from a Package.resolved document.
// Pins missing both an identity and a repository URL are skipped.
func Parse(content string) ([]domain.Pin, error) {
	var doc packageResolved
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse Package.resolved: %w", err)
	}

	var rawPins []resolvedPin
	switch doc.Version {
	case formatV1:
		if doc.Object != nil {
			rawPins = doc.Object.Pins
		}
	case formatV2, formatV3:
		// Format 3 only adds an originHash field; the pin shape is unchanged.
		rawPins = doc.Pins
	default:
		return nil, fmt.Errorf("unsupported Package.resolved format version: %d", doc.Version)
	}

	pins := make([]domain.Pin, 0, len(rawPins))
	for _, raw := range rawPins {
		pin, ok := convertPin(raw)
		if !ok {
			logger.Debugf("Skipping pin with no identity or URL: %+v", raw)
			continue
		}
		pins = append(pins, pin)
	}

	logger.Debugf("Parsed %d pins from Package.resolved (format v%d)", len(pins), doc.Version)
	return pins, nil
}

func convertPin(raw resolvedPin) (domain.Pin, bool) {
	name := raw.Package
	if name == "" {
		name = raw.Identity
	}

	url := raw.RepositoryURL
	if url == "" {
		url = raw.Location
	}

	if name == "" && url != "" {
		name = path.Base(strings.TrimSuffix(url, ".git"))
	}
	if name == "" || url == "" {
		return domain.Pin{}, false
	}

	pin := domain.Pin{Name: name, URL: url}

	switch {
	case raw.State.Version != "":
		pin.Resolved = raw.State.Version
		pin.Kind = domain.PinVersion
	case raw.State.Branch != "":
		pin.Resolved = raw.State.Branch
		pin.Kind = domain.PinBranch
	case raw.State.Revision != "":
		pin.Resolved = raw.State.Revision
		pin.Kind = domain.PinRevision
	default:
		pin.Resolved = "unknown_state"
		pin.Kind = domain.PinUnknown
	}

	return pin, true
}

// wellKnownBranches are the ref names a watchlist entry can use to indicate
// branch tracking instead of a version pin.
var wellKnownBranches = map[string]bool{
	"master":  true,
	"main":    true,
	"develop": true,
	"dev":     true,
}

// WatchlistEntry is a dependency declared directly in the configuration
// instead of being discovered from a manifest.
type WatchlistEntry struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Pinned string `yaml:"pinned"`
}

// FromWatchlist converts static watchlist entries into pins. A pinned value
// naming a well-known branch becomes a branch pin; a 7-to-40 character hex
// string becomes a revision pin; anything else is treated as a version.
func FromWatchlist(entries []WatchlistEntry) []domain.Pin {
	pins := make([]domain.Pin, 0, len(entries))
	for _, entry := range entries {
		pin := domain.Pin{
			Name:     entry.Name,
			URL:      entry.URL,
			Resolved: entry.Pinned,
			Kind:     domain.PinVersion,
		}
		switch {
		case wellKnownBranches[entry.Pinned]:
			pin.Kind = domain.PinBranch
		case looksLikeCommitSHA(entry.Pinned):
			pin.Kind = domain.PinRevision
		}
		pins = append(pins, pin)
	}
	return pins
}

func looksLikeCommitSHA(ref string) bool {
	if len(ref) < 7 || len(ref) > 40 {
		return false
	}
	for _, r := range ref {
		isHex := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
		if !isHex {
			return false
		}
	}
	return true
}
