package output

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/patisserie/pkg/application/dto"
)

// CostChart draws one stacked horizontal bar per recipe showing how the
// final price splits into ingredients, labor, overhead and margin
type CostChart struct {
	Width        int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	RowHeight    int
}

// CostSegment is one colored slice of a recipe bar
type CostSegment struct {
	Label  string
	Amount decimal.Decimal
	Color  string
	X      int
	Width  int
}

// CostBar is the row drawn for a single report
type CostBar struct {
	RecipeName string
	FinalPrice decimal.Decimal
	Y          int
	Segments   []CostSegment
}

var segmentColors = map[string]string{
	"Ingredients": "#8d6e63",
	"Labor":       "#f06292",
	"Overhead":    "#ffb74d",
	"Margin":      "#81c784",
}

var segmentOrder = []string{"Ingredients", "Labor", "Overhead", "Margin"}

// NewCostChart creates a chart with the default layout
func NewCostChart() *CostChart {
	return &CostChart{
		Width:        900,
		MarginLeft:   180,
		MarginTop:    50,
		MarginRight:  120,
		MarginBottom: 50,
		RowHeight:    30,
	}
}

// Height returns the SVG height needed for rows bars
func (cc *CostChart) Height(rows int) int {
	return cc.MarginTop + rows*cc.RowHeight + cc.MarginBottom
}

// GenerateSVG renders the chart as an SVG document
func (cc *CostChart) GenerateSVG(run *dto.PricingRun) string {
	var svg strings.Builder
	height := cc.Height(len(run.Reports))

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, cc.Width, height))
	svg.WriteString(`<defs><style>`)
	svg.WriteString(`.recipe-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.price-label { font-family: Arial, sans-serif; font-size: 11px; fill: #666; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.cost-bar { stroke: #fff; stroke-width: 1; }`)
	svg.WriteString(`</style></defs>`)
	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, cc.Width, height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title" text-anchor="middle">Price composition</text>`, cc.Width/2))

	if len(run.Reports) == 0 {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="price-label" text-anchor="middle">No recipes priced</text>`,
			cc.Width/2, cc.MarginTop+cc.RowHeight/2))
		svg.WriteString(`</svg>`)
		return svg.String()
	}

	for _, bar := range cc.createBars(run) {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="recipe-label" text-anchor="end">%s</text>`,
			cc.MarginLeft-10, bar.Y+cc.RowHeight/2, html.EscapeString(bar.RecipeName)))
		for _, seg := range bar.Segments {
			if seg.Width == 0 {
				continue
			}
			svg.WriteString(fmt.Sprintf(
				`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" class="cost-bar"><title>%s: %s</title></rect>`,
				seg.X, bar.Y+4, seg.Width, cc.RowHeight-8, seg.Color, seg.Label, FormatMoney(seg.Amount)))
		}
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="price-label">%s</text>`,
			cc.Width-cc.MarginRight+10, bar.Y+cc.RowHeight/2, FormatMoney(bar.FinalPrice)))
	}

	cc.drawLegend(&svg, height)
	svg.WriteString(`</svg>`)
	return svg.String()
}

// createBars scales every bar against the highest final price in the run
func (cc *CostChart) createBars(run *dto.PricingRun) []CostBar {
	chartWidth := decimal.NewFromInt(int64(cc.Width - cc.MarginLeft - cc.MarginRight))

	maxPrice := decimal.Zero
	for _, report := range run.Reports {
		if report.Breakdown.FinalPrice.GreaterThan(maxPrice) {
			maxPrice = report.Breakdown.FinalPrice
		}
	}

	bars := make([]CostBar, 0, len(run.Reports))
	for i, report := range run.Reports {
		b := report.Breakdown
		// Rounding up to the price increment is shown as part of the margin
		margin := b.FinalPrice.Sub(b.TotalCost)
		if margin.IsNegative() {
			margin = decimal.Zero
		}
		amounts := map[string]decimal.Decimal{
			"Ingredients": b.IngredientCost,
			"Labor":       b.LaborCost,
			"Overhead":    b.OverheadCost,
			"Margin":      margin,
		}

		bar := CostBar{
			RecipeName: report.RecipeName,
			FinalPrice: b.FinalPrice,
			Y:          cc.MarginTop + i*cc.RowHeight,
		}

		x := cc.MarginLeft
		for _, label := range segmentOrder {
			width := 0
			if maxPrice.IsPositive() {
				width = int(amounts[label].Div(maxPrice).Mul(chartWidth).IntPart())
			}
			bar.Segments = append(bar.Segments, CostSegment{
				Label:  label,
				Amount: amounts[label],
				Color:  segmentColors[label],
				X:      x,
				Width:  width,
			})
			x += width
		}

		bars = append(bars, bar)
	}

	return bars
}

func (cc *CostChart) drawLegend(svg *strings.Builder, height int) {
	x := cc.MarginLeft
	y := height - cc.MarginBottom/2
	for _, label := range segmentOrder {
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="12" height="12" fill="%s"/>`, x, y-10, segmentColors[label]))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="price-label">%s</text>`, x+16, y, label))
		x += 110
	}
}
