package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/vsinha/patisserie/pkg/application/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLPriceSheet renders a pricing run as a standalone HTML page with the
// cost composition chart inlined
type HTMLPriceSheet struct {
	now func() time.Time
}

// TemplateData contains all data for rendering the HTML template
type TemplateData struct {
	*dto.PricingRun
	Chart                template.HTML
	PricingTimeFormatted string
	GeneratedAt          string
}

// NewHTMLPriceSheet creates a new HTML price sheet generator
func NewHTMLPriceSheet() *HTMLPriceSheet {
	return &HTMLPriceSheet{now: time.Now}
}

// GenerateHTML renders the price sheet document
func (hs *HTMLPriceSheet) GenerateHTML(run *dto.PricingRun, config Config) (string, error) {
	tmpl, err := template.New("price_sheet.html").
		Funcs(template.FuncMap{
			"money":   FormatMoney,
			"percent": formatPercent,
		}).
		ParseFS(templateFS, "templates/price_sheet.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	data := &TemplateData{
		PricingRun: run,
		// The SVG is built from escaped recipe names and formatted numbers only
		Chart:                template.HTML(NewCostChart().GenerateSVG(run)),
		PricingTimeFormatted: hs.formatDuration(config.PricingTime),
		GeneratedAt:          hs.now().Format("2006-01-02 15:04:05"),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// formatDuration formats a time duration into human-readable format
func (hs *HTMLPriceSheet) formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return "< 1ms"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// generateHTMLOutput creates HTML output file
func generateHTMLOutput(run *dto.PricingRun, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for HTML format")
	}

	page, err := NewHTMLPriceSheet().GenerateHTML(run, config)
	if err != nil {
		return fmt.Errorf("failed to generate HTML price sheet: %w", err)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, HTMLFile)
	if err := os.WriteFile(filename, []byte(page), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "🌐 HTML price sheet saved to: %s\n", filename)
	}
	return nil
}
