package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning is a user-facing warning block. The validate command uses it
// to surface curation findings that do not fail verification.
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Findings   []string // Affected dataset entries (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning as an indented yellow block.
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("\x1b[33m")
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Findings) > 0 {
		b.WriteString("    ")
		if len(w.Findings) == 1 {
			b.WriteString("Affected entry:\n")
		} else {
			b.WriteString("Affected entries:\n")
		}

		for i, finding := range w.Findings {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, finding))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	b.WriteString("\x1b[0m")

	fmt.Fprint(out, b.String())
}

// WarnFindings creates a warning listing verification findings.
func WarnFindings(title string, findings []string) Warning {
	return Warning{
		Title:    title,
		Findings: findings,
	}
}
