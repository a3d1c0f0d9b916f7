package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/pricefeed"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// parse parses markdown with tables enabled.
func parse(t *testing.T, markdown string) ast.Node {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	return md.Parser().Parse(text.NewReader([]byte(markdown)))
}

// tableRows returns the cell texts of every body row of the first table in doc.
func tableRows(doc ast.Node, source []byte) [][]string {
	var rows [][]string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != east.KindTableRow {
			return ast.WalkContinue, nil
		}
		var cells []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, string(c.Text(source)))
		}
		rows = append(rows, cells)
		return ast.WalkSkipChildren, nil
	})
	return rows
}

func series(prices ...string) pricefeed.Series {
	dates := []string{"2024-01-31", "2024-02-29", "2024-03-28"}
	var s pricefeed.Series
	for i, p := range prices {
		s = append(s, pricefeed.Observation{Date: pricefeed.MustParse(dates[i]), Price: decimal.RequireFromString(p), Commodity: "NVDA"})
	}
	return s
}

func TestSeriesMarkdown(t *testing.T) {
	out := SeriesMarkdown("NVDA", series("61.53", "79.11", "90.36"), "$", nil)

	if !strings.HasPrefix(out, "# Prices for NVDA\n") {
		t.Errorf("SeriesMarkdown() must start with a title, got:\n%s", out)
	}
	if strings.Contains(out, "Splits") {
		t.Errorf("SeriesMarkdown() without splits must not have a splits section, got:\n%s", out)
	}

	rows := tableRows(parse(t, out), []byte(out))
	want := [][]string{
		{"2024-01-31", "$61.53", ""},
		{"2024-02-29", "$79.11", "+28.57%"},
		{"2024-03-28", "$90.36", "+14.22%"},
	}
	if len(rows) != len(want) {
		t.Fatalf("SeriesMarkdown() table has %d rows, want %d:\n%s", len(rows), len(want), out)
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("row %d col %d = %q, want %q", i, j, rows[i][j], want[i][j])
			}
		}
	}
}

func TestSeriesMarkdown_Splits(t *testing.T) {
	splits := []pricefeed.Split{pricefeed.NewSplit(pricefeed.NewDate(2024, 6, 10), 10, 1)}
	out := SeriesMarkdown("NVDA", series("100", "90"), "€", splits)

	doc := parse(t, out)
	var headings []string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			headings = append(headings, string(h.Text([]byte(out))))
		}
		return ast.WalkContinue, nil
	})
	if len(headings) != 2 || headings[1] != "Splits" {
		t.Errorf("SeriesMarkdown() headings = %v, want a Splits section", headings)
	}
	if !strings.Contains(out, "- 2024-06-10: 10 for 1") {
		t.Errorf("SeriesMarkdown() must list the split, got:\n%s", out)
	}
	if !strings.Contains(out, "€100.00") || !strings.Contains(out, "-10.00%") {
		t.Errorf("SeriesMarkdown() = \n%s", out)
	}
}

func TestSeriesMarkdown_Empty(t *testing.T) {
	out := SeriesMarkdown("NVDA", nil, "$", nil)
	if rows := tableRows(parse(t, out), []byte(out)); len(rows) != 0 {
		t.Errorf("SeriesMarkdown(nil) has rows: %v", rows)
	}
}
