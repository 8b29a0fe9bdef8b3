package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
	"github.com/nazarpelekh/legit-wearher-bot/internal/render"
)

// Builder turns the reconciled data set into a browsable HTML summary page.
// The markdown body is assembled first, then converted with goldmark and
// wrapped into the page template.
type Builder struct {
	goldmark goldmark.Markdown
	page     *template.Template
}

// ReportData is everything one summary page shows.
type ReportData struct {
	Reading     models.IndexReading
	Forecast    []models.ForecastDay
	Alerts      []models.AlertRecord
	Bulletins   []models.Bulletin
	GeneratedAt time.Time
	Location    *time.Location
}

// NewBuilder creates a report builder.
func NewBuilder() *Builder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(),
		),
	)

	return &Builder{
		goldmark: md,
		page:     template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// BuildHTML renders the complete summary page.
func (b *Builder) BuildHTML(data ReportData) (string, error) {
	markdown := b.buildMarkdown(data)

	var body bytes.Buffer
	if err := b.goldmark.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}

	var page bytes.Buffer
	err := b.page.Execute(&page, struct {
		GeneratedAt string
		Content     template.HTML
	}{
		GeneratedAt: render.FormatTimestamp(data.GeneratedAt, data.Location),
		Content:     template.HTML(body.String()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render page template: %w", err)
	}
	return page.String(), nil
}

// buildMarkdown assembles the markdown body of the summary.
func (b *Builder) buildMarkdown(data ReportData) string {
	var md strings.Builder
	status := render.StatusFor(data.Reading.Kp)

	md.WriteString("# Space Weather Summary\n\n")

	md.WriteString("## Current Conditions\n\n")
	fmt.Fprintf(&md, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&md, "| Kp index | %.1f %s |\n", data.Reading.Kp, status.Emoji)
	fmt.Fprintf(&md, "| Status | %s |\n", status.Status)
	fmt.Fprintf(&md, "| Storm probability | %s |\n", render.StormProbability(data.Reading.Kp))
	fmt.Fprintf(&md, "| Primary source | %s |\n", render.SourceLabel(data.Reading.Source))
	fmt.Fprintf(&md, "| Sources answering | %d |\n\n", data.Reading.AvailableSources)

	if data.Reading.HasBackup {
		md.WriteString("Cross-checked values from backup sources:\n\n")
		for _, alt := range data.Reading.Alternatives {
			fmt.Fprintf(&md, "- %s reported %.1f\n", render.SourceLabel(alt.Source), alt.Kp)
		}
		md.WriteString("\n")
	}

	if len(data.Forecast) > 0 {
		md.WriteString("## 3-Day Forecast\n\n")
		if data.Forecast[0].Provenance == models.ProvenanceSynthesized {
			md.WriteString("*Generated from the current index; the upstream forecast was unavailable.*\n\n")
		}
		md.WriteString("| Day | Max Kp | Status | Confidence |\n|---|---|---|---|\n")
		for _, day := range data.Forecast {
			s := render.StatusFor(day.MaxKp)
			fmt.Fprintf(&md, "| %s | %.1f %s | %s | %s |\n",
				day.DateLabel, day.MaxKp, s.Emoji, s.Status, day.Confidence)
		}
		md.WriteString("\n")
	}

	md.WriteString("## Alerts\n\n")
	if len(data.Alerts) == 0 {
		md.WriteString("No active geomagnetic alerts.\n\n")
	} else {
		for _, alert := range data.Alerts {
			fmt.Fprintf(&md, "- **%s** — %s\n", alert.Kind, alert.Message)
		}
		md.WriteString("\n")
	}

	if len(data.Bulletins) > 0 {
		md.WriteString("## Recent Bulletins\n\n")
		for _, bulletin := range data.Bulletins {
			fmt.Fprintf(&md, "- [%s] %s\n", bulletin.Severity, bulletin.Title)
		}
		md.WriteString("\n")
	}

	return md.String()
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <title>Space Weather Summary</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; background: #f5f5f5; }
        .container { max-width: 800px; margin: 0 auto; background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        h1 { color: #333; }
        table { border-collapse: collapse; margin: 10px 0; }
        th, td { border: 1px solid #ddd; padding: 8px 12px; text-align: left; }
        th { background: #f8f9fa; }
        .footer { color: #666; margin-top: 30px; font-size: 0.9em; }
        img { max-width: 100%; }
    </style>
</head>
<body>
    <div class="container">
        {{.Content}}
        <p><img src="/chart.png" alt="Kp index trend"></p>
        <p class="footer">Generated at {{.GeneratedAt}}</p>
    </div>
</body>
</html>
`
