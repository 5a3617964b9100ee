// Package report renders audit results for people and for other tools.
package report

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Format is an output encoding.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatXLSX     Format = "xlsx"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat validates a format name; "md" and "yml" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", eris.Errorf("report: unknown format %q", s)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// DefaultFilename names an export after the selected company, or
// Audit_DIGICITY when none is selected.
func DefaultFilename(company string, f Format) string {
	name := strings.TrimSpace(company)
	if name == "" {
		name = "DIGICITY"
	}
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	return "Audit_" + name + "." + f.Ext()
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// mdCell escapes free text for a Markdown table cell.
func mdCell(s string) string {
	return cellEscaper.Replace(s)
}
