// Package renderer turns a fund projection into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	fund "github.com/etnz/communityfund"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates, _ = fs.Sub(templatesFS, "templates")

// DashboardOptions holds configuration for rendering a dashboard.
type DashboardOptions struct {
	SkipChart   bool // Do not render the bar chart.
	SkipRecords bool // Do not render the per month table.
	Width       int  // Width of the longest bar, defaults to 40.
}

// Summary renders the four summary cards.
func Summary(p fund.Projection) string {
	return renderTemplate("summary", "dashboard_summary.md", nil, newDashboardView(p, DashboardOptions{}))
}

// Table renders the per month records with their itemized distributions.
func Table(p fund.Projection) string {
	return renderTemplate("records", "dashboard_records.md", nil, newDashboardView(p, DashboardOptions{}))
}

// Chart renders the collected, distributed and cumulative bars of each month.
func Chart(p fund.Projection, width int) string {
	return renderTemplate("chart", "dashboard_chart.md", nil, newDashboardView(p, DashboardOptions{Width: width}))
}

// Dashboard renders the whole fund: summary, chart, records and notices.
func Dashboard(p fund.Projection, opts DashboardOptions) string {
	partials := map[string]string{
		"dashboard_summary": "dashboard_summary.md",
		"dashboard_chart":   "dashboard_chart.md",
		"dashboard_records": "dashboard_records.md",
		"dashboard_notices": "dashboard_notices.md",
	}
	// An empty file name results in an empty template.
	if opts.SkipChart {
		partials["dashboard_chart"] = ""
	}
	if opts.SkipRecords {
		partials["dashboard_records"] = ""
	}
	return renderTemplate("dashboard", "dashboard.md", partials, newDashboardView(p, opts))
}

// Record renders a single record.
func Record(r fund.Record) string {
	return renderTemplate("record", "record.md", nil, newRow(r))
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
