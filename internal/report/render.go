package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"playpulse/internal/errors"
)

// Format is an output encoding for a report
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
)

var contentTypes = map[Format]string{
	FormatJSON: "application/json",
	FormatCSV:  "text/csv",
	FormatText: "text/plain; charset=utf-8",
	FormatHTML: "text/html; charset=utf-8",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ParseFormat validates a format name; empty means JSON
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatJSON, nil
	}
	if f == "text" {
		return FormatText, nil
	}
	if _, ok := contentTypes[f]; !ok {
		return "", errors.UnsupportedFormat(s)
	}
	return f, nil
}

// ContentType is the MIME type served for f
func (f Format) ContentType() string {
	return contentTypes[f]
}

// Render encodes r in format f
func Render(r *Report, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.MarshalIndent(r, "", "  ")
	case FormatCSV:
		return renderCSV(r)
	case FormatText:
		return []byte(renderText(r)), nil
	case FormatHTML:
		return renderHTML(r), nil
	case FormatXLSX:
		return renderXLSX(r)
	default:
		return nil, errors.UnsupportedFormat(string(f))
	}
}

// Table is the tabular view of a report shared by CSV and XLSX
func Table(r *Report) [][]string {
	switch r.Type {
	case TypeOverview:
		if r.Summary == nil {
			break
		}
		s := r.Summary
		return [][]string{
			{"Metric", "Value"},
			{"Total Apps", strconv.Itoa(s.TotalApps)},
			{"Total Categories", strconv.Itoa(s.TotalCategories)},
			{"Rated Apps", strconv.Itoa(s.RatedApps)},
			{"Average Rating", fixed(s.AvgRating)},
			{"Total Installs", strconv.FormatInt(s.TotalInstalls, 10)},
			{"Total Reviews", strconv.FormatInt(s.TotalReviews, 10)},
			{"Paid Apps", strconv.Itoa(s.PaidApps)},
			{"Free Apps", strconv.Itoa(s.FreeApps)},
			{"Popular Apps", strconv.Itoa(s.PopularApps)},
			{"Average Price", fixed(s.AvgPrice)},
		}
	case TypeCategory:
		rows := [][]string{{"Category", "App Count", "Average Rating", "Total Installs", "App Market Share", "Install Market Share"}}
		if r.MarketShare != nil {
			for _, c := range r.MarketShare.CategoryBreakdown {
				rows = append(rows, []string{
					c.Category, strconv.Itoa(c.AppCount), fixed(c.AvgRating),
					strconv.FormatInt(c.TotalInstalls, 10), fixed(c.AppMarketShare), fixed(c.InstallMarketShare),
				})
			}
		}
		return rows
	case TypeSentiment:
		if r.Sentiment == nil {
			break
		}
		s := r.Sentiment
		return [][]string{
			{"Sentiment", "Count", "Percentage"},
			{"Positive", strconv.Itoa(s.SentimentCounts.Positive), fixed(s.SentimentPercentages.Positive)},
			{"Neutral", strconv.Itoa(s.SentimentCounts.Neutral), fixed(s.SentimentPercentages.Neutral)},
			{"Negative", strconv.Itoa(s.SentimentCounts.Negative), fixed(s.SentimentPercentages.Negative)},
		}
	case TypeTrends:
		if r.Trend == nil {
			break
		}
		t := r.Trend
		return [][]string{
			{"Metric", "Value"},
			{"Trend", string(t.Trend)},
			{"Slope", strconv.FormatFloat(t.Slope, 'f', 6, 64)},
			{"Intercept", fixed(t.Intercept)},
			{"Correlation", strconv.FormatFloat(t.Correlation, 'f', 4, 64)},
			{"R Squared", strconv.FormatFloat(t.RSquared, 'f', 4, 64)},
			{"Data Points", strconv.Itoa(t.DataPoints)},
			{"Leading Category", r.LeadingCategory},
		}
	}
	return [][]string{{"Metric", "Value"}}
}

func renderCSV(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(Table(r)); err != nil {
		return nil, errors.Wrap(err, "failed to write CSV report")
	}
	return buf.Bytes(), nil
}

// renderText writes the report as plain text that also reads as markdown
func renderText(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "Generated: %s  \n", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Data Range: %s  \n", r.DataRange)
	fmt.Fprintf(&b, "Report ID: %s\n\n", r.ID)

	switch r.Type {
	case TypeOverview:
		if s := r.Summary; s != nil {
			section(&b, "Summary")
			fmt.Fprintf(&b, "- Total Apps: %s\n", thousands(int64(s.TotalApps)))
			fmt.Fprintf(&b, "- Total Categories: %d\n", s.TotalCategories)
			fmt.Fprintf(&b, "- Average Rating: %.2f\n", s.AvgRating)
			fmt.Fprintf(&b, "- Total Installs: %s\n", thousands(s.TotalInstalls))
			fmt.Fprintf(&b, "- Total Reviews: %s\n\n", thousands(s.TotalReviews))
		}
		if len(r.Insights) > 0 {
			section(&b, "Key Insights")
			for i, in := range r.Insights {
				fmt.Fprintf(&b, "%d. %s: %s\n", i+1, in.Title, in.Description)
			}
			b.WriteString("\n")
		}
		writeFrequency(&b, r)
	case TypeCategory:
		section(&b, "Category Performance")
		writeTable(&b, Table(r))
		writeFrequency(&b, r)
	case TypeSentiment:
		if s := r.Sentiment; s != nil {
			section(&b, "Sentiment Distribution")
			fmt.Fprintf(&b, "- Total Reviews: %s\n", thousands(int64(s.TotalReviews)))
			fmt.Fprintf(&b, "- Labelled Reviews: %s\n", thousands(int64(s.LabelledReviews)))
			fmt.Fprintf(&b, "- Positive: %d (%.1f%%)\n", s.SentimentCounts.Positive, s.SentimentPercentages.Positive)
			fmt.Fprintf(&b, "- Neutral: %d (%.1f%%)\n", s.SentimentCounts.Neutral, s.SentimentPercentages.Neutral)
			fmt.Fprintf(&b, "- Negative: %d (%.1f%%)\n", s.SentimentCounts.Negative, s.SentimentPercentages.Negative)
			fmt.Fprintf(&b, "- Mean Polarity: %.3f\n\n", s.PolarityStats.Mean)
			if len(s.TopReviewedApps) > 0 {
				section(&b, "Most Reviewed Apps")
				rows := [][]string{{"App", "Reviews", "Positive %", "Negative %", "Dominant"}}
				for _, a := range s.TopReviewedApps {
					rows = append(rows, []string{a.App, strconv.Itoa(a.ReviewCount), fixed(a.PositiveShare), fixed(a.NegativeShare), string(a.DominantSentiment)})
				}
				writeTable(&b, rows)
			}
		}
	case TypeTrends:
		if t := r.Trend; t != nil {
			section(&b, "Average Rating Trend")
			fmt.Fprintf(&b, "- Direction: %s\n", t.Trend)
			fmt.Fprintf(&b, "- Slope per month: %.4f\n", t.Slope)
			fmt.Fprintf(&b, "- R Squared: %.3f\n", t.RSquared)
			fmt.Fprintf(&b, "- Months observed: %d\n", t.DataPoints)
			if r.LeadingCategory != "" {
				fmt.Fprintf(&b, "- Leading Category: %s\n", r.LeadingCategory)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderHTML(r *Report) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: r.Title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(renderText(r)), p, renderer)
}

func renderXLSX(r *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(r.Type)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, errors.Wrap(err, "failed to name report sheet")
	}

	for i, row := range Table(r) {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = cellValue(v, i == 0)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, errors.Wrap(err, "failed to address report cell")
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, errors.Wrap(err, "failed to write report row")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode XLSX report")
	}
	return buf.Bytes(), nil
}

func sheetName(t Type) string {
	switch t {
	case TypeCategory:
		return "Categories"
	case TypeSentiment:
		return "Sentiment"
	case TypeTrends:
		return "Trends"
	default:
		return "Overview"
	}
}

// cellValue stores numeric text as a number so spreadsheets can sum it
func cellValue(v string, header bool) interface{} {
	if header {
		return v
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	return v
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "## %s\n\n", title)
}

func writeTable(b *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	for i, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
		if i == 0 {
			sep := make([]string, len(row))
			for j := range sep {
				sep[j] = "---"
			}
			b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
		}
	}
	b.WriteString("\n")
}

func writeFrequency(b *strings.Builder, r *Report) {
	if len(r.TopCategories) == 0 {
		return
	}
	section(b, "Top Categories")
	for i, e := range r.TopCategories {
		fmt.Fprintf(b, "%d. %s: %d apps (%.1f%%)\n", i+1, e.Value, e.Count, e.Percentage)
	}
	b.WriteString("\n")
}

func fixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

var englishPrinter = message.NewPrinter(language.English)

// thousands formats 1234567 as "1,234,567"
func thousands(n int64) string {
	return englishPrinter.Sprintf("%d", n)
}
