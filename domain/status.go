package domain

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Classify maps a checked pin to one of the four status categories.
//
// A fetch failure (or an empty latest value) always wins. Branch and revision
// pins are informational: a branch head moving does not make the pin outdated,
// and a revision pin's "latest" is the pin itself. Version pins compare
// semantically when both sides parse as semver, falling back to a string
// comparison otherwise.
func Classify(kind PinKind, resolved, latest string, fetchFailed bool) Status {
	if fetchFailed || latest == "" {
		return StatusError
	}

	switch kind {
	case PinBranch, PinRevision:
		return StatusTracking
	case PinVersion, PinUnknown:
		if IsNewerVersion(resolved, latest) {
			return StatusUpdateAvailable
		}
		return StatusUpToDate
	}

	return StatusError
}

// IsNewerVersion reports whether latest is strictly newer than current.
func IsNewerVersion(current, latest string) bool {
	currentNorm := normalizeVersion(current)
	latestNorm := normalizeVersion(latest)

	if semver.IsValid(currentNorm) && semver.IsValid(latestNorm) {
		return semver.Compare(latestNorm, currentNorm) > 0
	}

	// Fall back to string comparison for non-semver tags
	return latest > current
}

// VersionDiff describes the magnitude of an available update.
type VersionDiff struct {
	Current   string
	Available string
	IsMajor   bool
	IsMinor   bool
	IsPatch   bool
}

// AnalyzeVersionDiff determines the type of version change between the
// resolved and the latest available version. Non-semver inputs yield a diff
// with no type flags set.
func AnalyzeVersionDiff(current, latest string) VersionDiff {
	diff := VersionDiff{
		Current:   current,
		Available: latest,
	}

	currentNorm := normalizeVersion(current)
	latestNorm := normalizeVersion(latest)

	if !semver.IsValid(currentNorm) || !semver.IsValid(latestNorm) {
		return diff
	}

	if semver.Major(currentNorm) != semver.Major(latestNorm) {
		diff.IsMajor = true
		return diff
	}

	// Extract minor versions (the semver package has no Minor function)
	currentParts := strings.Split(strings.TrimPrefix(currentNorm, "v"), ".")
	latestParts := strings.Split(strings.TrimPrefix(latestNorm, "v"), ".")

	if len(currentParts) >= 2 && len(latestParts) >= 2 && currentParts[1] != latestParts[1] {
		diff.IsMinor = true
		return diff
	}

	diff.IsPatch = true
	return diff
}

// Magnitude returns "Major", "Minor", or "Patch", or an empty string when
// the change type could not be determined.
func (d VersionDiff) Magnitude() string {
	switch {
	case d.IsMajor:
		return "Major"
	case d.IsMinor:
		return "Minor"
	case d.IsPatch:
		return "Patch"
	}
	return ""
}

// normalizeVersion ensures the version has a 'v' prefix for semver compatibility.
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
