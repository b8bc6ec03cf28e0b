package renderer

import (
	"math"
	"strings"

	fund "github.com/etnz/communityfund"
)

// dashboardView is the fund projection prepared for rendering.
type dashboardView struct {
	Summary fund.Summary
	Rows    []Row
	Bars    []Bar
	Notices []fund.Notice
}

// Row is a single month of the records table.
type Row struct {
	ID            string
	Month         string
	Contributors  string
	Collected     fund.Money
	Given         fund.Money
	Remaining     fund.Money
	Cumulative    fund.Money
	Deficit       bool
	Distributions []fund.Distribution
	Revision      int64
}

// Bar is a single month of the chart.
type Bar struct {
	Label      string
	Collected  string
	Given      string
	Cumulative string
}

// newDashboardView prepares p for rendering.
func newDashboardView(p fund.Projection, opts DashboardOptions) *dashboardView {
	d := &dashboardView{Summary: p.Summary, Notices: p.Notices}
	for _, r := range p.Records {
		d.Rows = append(d.Rows, newRow(r))
	}
	d.Bars = newBars(p.Records, opts.Width)
	return d
}

func newRow(r fund.Record) Row {
	contributors := strings.Join(r.Contributors, ", ")
	if contributors == "" {
		contributors = "-"
	}
	return Row{
		ID:            r.ID,
		Month:         r.Period.String(),
		Contributors:  contributors,
		Collected:     r.AmountCollected,
		Given:         r.AmountGiven,
		Remaining:     r.RemainingBalance,
		Cumulative:    r.CumulativeBalance,
		Deficit:       r.RemainingBalance.IsNegative(),
		Distributions: r.Distributions,
		Revision:      r.Revision,
	}
}

// newBars scales every amount against the largest one so that it spans width characters.
func newBars(records []fund.Record, width int) []Bar {
	if width <= 0 {
		width = 40
	}
	largest := fund.PKR(0)
	for _, r := range records {
		for _, m := range []fund.Money{r.AmountCollected, r.AmountGiven, r.CumulativeBalance.Abs()} {
			if m.GreaterThan(largest) {
				largest = m
			}
		}
	}
	bar := func(m fund.Money, fill string) string {
		n := int(math.Round(m.Abs().Ratio(largest) * float64(width)))
		if m.IsNegative() {
			fill = "-"
		}
		return strings.Repeat(fill, n)
	}

	bars := make([]Bar, 0, len(records))
	for _, r := range records {
		bars = append(bars, Bar{
			Label:      r.Period.Short(),
			Collected:  bar(r.AmountCollected, "#"),
			Given:      bar(r.AmountGiven, "="),
			Cumulative: bar(r.CumulativeBalance, "~"),
		})
	}
	return bars
}
