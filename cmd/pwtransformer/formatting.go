package pwtransformer

import (
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/pwtransformer/pkg/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var boldStyle = lipgloss.NewStyle().Bold(true)

// formatBold returns the string in bold when stdout is a terminal
func formatBold(s string) string {
	if !style.ColorEnabled(os.Stdout) {
		return s
	}
	return boldStyle.Render(s)
}

// formatUpper returns the string in uppercase
func formatUpper(s string) string {
	return strings.ToUpper(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     formatUpper,
		"boldUpper": formatBoldUpper,
	})
}
