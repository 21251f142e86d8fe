// Package describe renders the one-shot pod health report.
package describe

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/charliek/ktail/internal/kube"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true)
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	normalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Render writes the pod report: vital signs first, then recent events.
func Render(w io.Writer, report *kube.PodReport) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionStyle.Render("--- POD VITAL SIGNS ---"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Pod\t%s/%s\n", report.Namespace, report.Name)
	fmt.Fprintf(tw, "Status\t%s\n", phaseLabel(report.Phase))
	if report.PodIP != "" {
		fmt.Fprintf(tw, "Pod IP\t%s\n", report.PodIP)
	}
	if report.CPULimit != "" || report.MemoryLimit != "" {
		fmt.Fprintf(tw, "Limits\tCPU: %s, Mem: %s\n", orNone(report.CPULimit), orNone(report.MemoryLimit))
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionStyle.Render("--- RECENT EVENTS ---"))
	if len(report.Events) == 0 {
		fmt.Fprintln(w, "  (no recent events)")
		return
	}

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tREASON\tMESSAGE")
	for _, event := range report.Events {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", typeLabel(event.Type), event.Reason, event.Message)
	}
	tw.Flush()
}

func phaseLabel(phase string) string {
	if phase == "Running" {
		return runningStyle.Render(phase)
	}
	return warnStyle.Render(phase)
}

func typeLabel(eventType string) string {
	if eventType == "Warning" {
		return warnStyle.Render(eventType)
	}
	return normalStyle.Render(eventType)
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
