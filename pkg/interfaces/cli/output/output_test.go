package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/vsinha/patisserie/pkg/application/dto"
	"github.com/vsinha/patisserie/pkg/domain/entities"
	"github.com/vsinha/patisserie/pkg/domain/services/costing"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func brigadeiroRun() *dto.PricingRun {
	return &dto.PricingRun{
		Reports: []*dto.PricingReport{
			{
				RecipeName:      "Brigadeiro",
				Currency:        "BRL",
				HourlyLaborRate: d("25"),
				MarginSuggested: false,
				Breakdown: entities.CostBreakdown{
					IngredientCost:       d("3.95"),
					LaborCost:            d("12.5"),
					OverheadCost:         d("1.8095"),
					TotalCost:            d("18.2595"),
					MarginFraction:       d("0.6"),
					RawPrice:             d("29.2152"),
					FinalPrice:           d("29.5"),
					ProductionMultiplier: d("1"),
					Complexity:           entities.Simple,
					Lines: []entities.LineCost{
						{IngredientName: "Condensed milk", Quantity: d("395"), Cost: d("3.95")},
					},
				},
				PricePerUnit: d("1.475"),
				Band:         costing.CompetitiveBand{MinPrice: d("24"), MaxPrice: d("37"), SuggestedPrice: d("27.5")},
				Profitability: costing.Profitability{
					Profit:                 d("11.2405"),
					MarginOverCostPercent:  d("61.56"),
					MarginOverPricePercent: d("38.1"),
					Classification:         costing.ClassificationExcellent,
				},
				Validation: costing.Validation{
					Valid:    true,
					Errors:   []string{},
					Warnings: []string{"labor cost is disproportionate (more than 2x ingredient cost)"},
				},
				Scale: []costing.ScaleEntry{
					{Quantity: 1, TotalCost: d("18.2595"), TotalPrice: d("29.5"), PricePerUnit: d("1.5"), SavingsPercent: d("0")},
				},
			},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return rows
}

func TestFormatMoney(t *testing.T) {
	g := NewWithT(t)

	g.Expect(FormatMoney(d("29.5"))).To(Equal("29.50"))
	g.Expect(FormatMoney(d("1234567.891"))).To(Equal("1,234,567.89"))
	g.Expect(FormatMoney(d("0"))).To(Equal("0.00"))
	g.Expect(FormatMoney(d("12345678901234.565"))).To(Equal("12,345,678,901,234.57"))
	g.Expect(FormatMoney(d("-1234.5"))).To(Equal("-1,234.50"))
	g.Expect(FormatMoney(d("-0.004"))).To(Equal("0.00"))
}

func TestGenerate_Text(t *testing.T) {
	g := NewWithT(t)
	var buf bytes.Buffer

	err := Generate(brigadeiroRun(), Config{Format: "text", Writer: &buf})
	g.Expect(err).NotTo(HaveOccurred())

	out := buf.String()
	g.Expect(out).To(ContainSubstring("Brigadeiro (simple, x1)"))
	g.Expect(out).To(ContainSubstring("BRL 29.50"))
	g.Expect(out).To(ContainSubstring("Margin:            60%"))
	g.Expect(out).To(ContainSubstring("BRL 24.00 - 37.00 (suggested 27.50)"))
	g.Expect(out).To(ContainSubstring("excellent, 61.56% over cost"))
	g.Expect(out).To(ContainSubstring("labor cost is disproportionate"))
	g.Expect(out).To(ContainSubstring("Batches"))
}

func TestGenerate_JSONToWriter(t *testing.T) {
	g := NewWithT(t)
	var buf bytes.Buffer

	err := Generate(brigadeiroRun(), Config{Format: "json", Writer: &buf})
	g.Expect(err).NotTo(HaveOccurred())

	var decoded struct {
		Reports []struct {
			RecipeName string `json:"recipe_name"`
			Breakdown  struct {
				FinalPrice string `json:"final_price"`
				Complexity string `json:"complexity"`
			} `json:"breakdown"`
		} `json:"reports"`
	}
	g.Expect(json.Unmarshal(buf.Bytes(), &decoded)).To(Succeed())
	g.Expect(decoded.Reports).To(HaveLen(1))
	g.Expect(decoded.Reports[0].RecipeName).To(Equal("Brigadeiro"))
	g.Expect(decoded.Reports[0].Breakdown.FinalPrice).To(Equal("29.5"))
	g.Expect(decoded.Reports[0].Breakdown.Complexity).To(Equal("simple"))
}

func TestGenerate_JSONToFile(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()

	err := Generate(brigadeiroRun(), Config{Format: "json", OutputDir: dir, Writer: &bytes.Buffer{}})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(filepath.Join(dir, JSONFile)).To(BeAnExistingFile())
}

func TestGenerate_CSV(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()

	err := Generate(brigadeiroRun(), Config{Format: "csv", OutputDir: dir, Writer: &bytes.Buffer{}})
	g.Expect(err).NotTo(HaveOccurred())

	summary := readCSV(t, filepath.Join(dir, SummaryCSVFile))
	g.Expect(summary).To(HaveLen(2))
	g.Expect(summary[0][0]).To(Equal("recipe"))
	g.Expect(summary[1][0]).To(Equal("Brigadeiro"))
	g.Expect(summary[1]).To(ContainElement("29.5"))
	g.Expect(summary[1]).To(ContainElement("excellent"))

	lines := readCSV(t, filepath.Join(dir, LinesCSVFile))
	g.Expect(lines).To(Equal([][]string{
		{"recipe", "ingredient", "quantity", "cost"},
		{"Brigadeiro", "Condensed milk", "395", "3.95"},
	}))

	scale := readCSV(t, filepath.Join(dir, ScaleCSVFile))
	g.Expect(scale).To(HaveLen(2))
}

func TestGenerate_RequiresOutputDir(t *testing.T) {
	g := NewWithT(t)

	g.Expect(Generate(brigadeiroRun(), Config{Format: "csv"})).To(MatchError(ContainSubstring("output directory required")))
	g.Expect(Generate(brigadeiroRun(), Config{Format: "html"})).To(MatchError(ContainSubstring("output directory required")))
	g.Expect(Generate(brigadeiroRun(), Config{Format: "xml"})).To(MatchError("unsupported output format: xml"))
}

func TestGenerate_HTML(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()

	err := Generate(brigadeiroRun(), Config{Format: "html", OutputDir: dir, Writer: &bytes.Buffer{}})
	g.Expect(err).NotTo(HaveOccurred())

	page, err := os.ReadFile(filepath.Join(dir, HTMLFile))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(string(page)).To(ContainSubstring("<svg"))
	g.Expect(string(page)).To(ContainSubstring("Brigadeiro"))
	g.Expect(string(page)).To(ContainSubstring("BRL 29.50"))
}

func TestCostChart_SegmentsScaleToPrice(t *testing.T) {
	g := NewWithT(t)
	chart := NewCostChart()

	bars := chart.createBars(brigadeiroRun())
	g.Expect(bars).To(HaveLen(1))
	g.Expect(bars[0].Segments).To(HaveLen(4))

	total := 0
	for _, seg := range bars[0].Segments {
		total += seg.Width
	}
	chartWidth := chart.Width - chart.MarginLeft - chart.MarginRight
	g.Expect(total).To(BeNumerically("<=", chartWidth))
	g.Expect(total).To(BeNumerically(">=", chartWidth-4))

	empty := chart.GenerateSVG(&dto.PricingRun{})
	g.Expect(empty).To(ContainSubstring("No recipes priced"))
}

func TestSummaryLine(t *testing.T) {
	g := NewWithT(t)
	report := brigadeiroRun().Reports[0]

	g.Expect(SummaryLine(report)).To(Equal("Brigadeiro: BRL 29.50"))

	report.Validation.Valid = false
	g.Expect(SummaryLine(report)).To(Equal("Brigadeiro: BRL 29.50 (invalid)"))
}
