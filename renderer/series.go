// Package renderer formats price series as markdown.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/pricefeed"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// SeriesMarkdown renders a monthly price series of commodity as a markdown
// table, followed by the splits it was adjusted for.
func SeriesMarkdown(commodity string, series pricefeed.Series, currency string, splits []pricefeed.Split) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Prices for %s", commodity))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Price", "Change"},
		Rows:   [][]string{},
	}
	var previous decimal.Decimal
	for i, o := range series {
		change := ""
		if i > 0 && !previous.IsZero() {
			change = formatChange(o.Price.Sub(previous).Div(previous))
		}
		table.Rows = append(table.Rows, []string{
			o.Date.String(),
			currency + o.Price.StringFixed(2),
			change,
		})
		previous = o.Price
	}
	doc.Table(table)
	if len(splits) > 0 {
		items := make([]string, len(splits))
		for i, s := range splits {
			items[i] = fmt.Sprintf("%s: %d for %d", s.Date, s.Numerator, s.Denominator)
		}
		doc.PlainText("").H2("Splits").PlainText("").BulletList(items...)
	}
	if err := doc.Build(); err != nil {
		return fmt.Sprintf("cannot render prices of %s: %v\n", commodity, err)
	}
	return buf.String()
}

// formatChange formats a relative change as a signed percentage.
func formatChange(ratio decimal.Decimal) string {
	pct := ratio.Shift(2).StringFixed(2)
	if ratio.IsPositive() {
		pct = "+" + pct
	}
	return pct + "%"
}
