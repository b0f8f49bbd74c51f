package domain

import "time"

// PinKind describes how a dependency is pinned in the consuming project.
type PinKind string

const (
	PinVersion  PinKind = "version"  // Pinned to a released version tag
	PinBranch   PinKind = "branch"   // Tracking a branch head
	PinRevision PinKind = "revision" // Pinned to a specific commit
	PinUnknown  PinKind = "unknown"  // Manifest entry without a usable state
)

// Status is the computed version-state category of a dependency.
type Status string

const (
	StatusUpToDate        Status = "Up to Date"
	StatusUpdateAvailable Status = "Update Available"
	StatusTracking        Status = "Tracks Branch/Revision"
	StatusError           Status = "Error Checking"
)

// Pin is a single dependency reference as resolved by the consuming project,
// before any remote metadata has been fetched.
type Pin struct {
	Name     string
	URL      string
	Resolved string // Version tag, branch name, or commit SHA
	Kind     PinKind
}

// Dependency is the fully checked record for one pin. Records are built once
// per run and never mutated after classification.
type Dependency struct {
	Name     string  `json:"name"`
	URL      string  `json:"source_url"`
	Resolved string  `json:"resolved"`
	Kind     PinKind `json:"pin_kind"`
	Latest   string  `json:"latest"`
	Status   Status  `json:"status"`
	Notes    string  `json:"notes,omitempty"`
}

// Summary holds per-status counts for a run.
type Summary struct {
	Total            int `json:"total"`
	UpToDate         int `json:"up_to_date"`
	UpdatesAvailable int `json:"updates_available"`
	Tracking         int `json:"tracking"`
	Errors           int `json:"errors"`
}

// Report is the output of one check run. One instance per invocation,
// written once, read once by the dashboard.
type Report struct {
	GeneratedAt  time.Time    `json:"last_updated_utc"`
	ProjectURL   string       `json:"project_url,omitempty"`
	ProjectRef   string       `json:"project_ref,omitempty"`
	ManifestPath string       `json:"manifest_path,omitempty"`
	Summary      Summary      `json:"summary"`
	Dependencies []Dependency `json:"dependencies"`
}

// NewReport assembles a report from checked dependencies, computing the
// per-status summary. Dependency order is preserved as discovered.
func NewReport(projectURL, projectRef, manifestPath string, deps []Dependency) *Report {
	report := &Report{
		GeneratedAt:  time.Now().UTC(),
		ProjectURL:   projectURL,
		ProjectRef:   projectRef,
		ManifestPath: manifestPath,
		Dependencies: deps,
	}

	report.Summary.Total = len(deps)
	for _, dep := range deps {
		switch dep.Status {
		case StatusUpToDate:
			report.Summary.UpToDate++
		case StatusUpdateAvailable:
			report.Summary.UpdatesAvailable++
		case StatusTracking:
			report.Summary.Tracking++
		case StatusError:
			report.Summary.Errors++
		}
	}

	return report
}
