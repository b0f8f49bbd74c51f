package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/CongL3/MobileDependecyManager/domain"
)

type colorFn func(format string, a ...interface{}) string

// statusColors is the terminal palette for the four status categories.
var statusColors = struct {
	Green  colorFn
	Yellow colorFn
	Cyan   colorFn
	Red    colorFn
	Bold   colorFn
}{
	Green:  color.New(color.FgGreen).SprintfFunc(),
	Yellow: color.New(color.FgYellow).SprintfFunc(),
	Cyan:   color.New(color.FgCyan).SprintfFunc(),
	Red:    color.New(color.FgRed, color.Bold).SprintfFunc(),
	Bold:   color.New(color.Bold).SprintfFunc(),
}

func colorizeStatus(status domain.Status) string {
	switch status {
	case domain.StatusUpToDate:
		return statusColors.Green("%s", status)
	case domain.StatusUpdateAvailable:
		return statusColors.Yellow("%s", status)
	case domain.StatusTracking:
		return statusColors.Cyan("%s", status)
	case domain.StatusError:
		return statusColors.Red("%s", status)
	}
	return string(status)
}

// renderTable prints the dependency table. With outdatedOnly set, only
// rows with an update available are shown.
func renderTable(out io.Writer, deps []domain.Dependency, outdatedOnly bool) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Resolved", "Kind", "Latest", "Status", "Notes"})

	rows := 0
	for _, dep := range deps {
		if outdatedOnly && dep.Status != domain.StatusUpdateAvailable {
			continue
		}
		t.AppendRow(table.Row{
			dep.Name,
			dep.Resolved,
			dep.Kind,
			dep.Latest,
			colorizeStatus(dep.Status),
			dep.Notes,
		})
		rows++
	}

	if rows == 0 {
		fmt.Fprintln(out, "No dependencies to show.")
		return
	}
	t.Render()
}

func renderSummary(out io.Writer, summary domain.Summary) {
	fmt.Fprintf(out, "\n%s %d dependencies: %s, %s, %s, %s\n",
		statusColors.Bold("Total"),
		summary.Total,
		statusColors.Green("%d up to date", summary.UpToDate),
		statusColors.Yellow("%d updates available", summary.UpdatesAvailable),
		statusColors.Cyan("%d tracking", summary.Tracking),
		statusColors.Red("%d errors", summary.Errors),
	)
}
