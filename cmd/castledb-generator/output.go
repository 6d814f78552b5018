package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"castledb-generator/internal/diagnostic"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f56"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9ca24"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#27ca3f")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

func printDiagnostics(w io.Writer, diags diagnostic.Diagnostics) {
	for _, d := range diags.Items {
		line := fmt.Sprintf("%s: %s", d.Severity, d)

		switch d.Severity {
		case diagnostic.SeverityError:
			line = errorStyle.Render(line)
		case diagnostic.SeverityWarning:
			line = warningStyle.Render(line)
		default:
			line = infoStyle.Render(line)
		}

		fmt.Fprintln(w, line)
	}
}
