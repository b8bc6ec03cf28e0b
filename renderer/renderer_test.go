package renderer

import (
	"io/fs"
	"strings"
	"testing"
	"text/template"

	fund "github.com/etnz/communityfund"
)

func projection() fund.Projection {
	jan := fund.Record{ID: "a", Period: fund.January, Contributors: []string{"Ali", "Sara"}, AmountCollected: fund.PKR(100000), AmountGiven: fund.PKR(40000)}
	feb := fund.Record{ID: "b", Period: fund.February, Contributors: []string{"Ali"}, AmountCollected: fund.PKR(20000), AmountGiven: fund.PKR(1),
		Distributions: []fund.Distribution{{Recipient: "Mosque Repair", Amount: fund.PKR(50000)}, {Recipient: "Medical Bill (Aslam)", Amount: fund.PKR(30000)}}}
	return fund.Reconcile([]fund.Record{feb, jan})
}

func TestTemplatesParse(t *testing.T) {
	files, err := fs.ReadDir(templates, ".")
	if err != nil {
		t.Fatalf("failed to read embedded templates: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no embedded templates")
	}
	for _, f := range files {
		content, err := fs.ReadFile(templates, f.Name())
		if err != nil {
			t.Fatal(err)
		}
		if _, err := template.New(f.Name()).Parse(string(content)); err != nil {
			t.Errorf("template %q does not parse: %v", f.Name(), err)
		}
	}
}

func TestDashboard(t *testing.T) {
	p := projection()
	got := Dashboard(p, DashboardOptions{})

	for _, want := range []string{
		"# Community Fund Dashboard",
		"## Summary",
		p.Summary.TotalCollected.String(),
		p.Summary.FinalBalance.String(),
		"## Monthly Flows",
		"## Records",
		"| January | Ali, Sara |",
		"(deficit)",
		"### February distributions",
		"- Mosque Repair: " + fund.PKR(50000).String(),
		"## Notices",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Dashboard() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "error") {
		t.Errorf("Dashboard() reported a template error:\n%s", got)
	}
	if strings.Index(got, "| January") > strings.Index(got, "| February") {
		t.Errorf("Dashboard() rows are not in calendar order:\n%s", got)
	}
}

func TestDashboard_Options(t *testing.T) {
	got := Dashboard(projection(), DashboardOptions{SkipChart: true, SkipRecords: true})
	if strings.Contains(got, "## Monthly Flows") || strings.Contains(got, "## Records") {
		t.Errorf("Dashboard() rendered skipped sections:\n%s", got)
	}
	if !strings.Contains(got, "## Summary") {
		t.Errorf("Dashboard() does not contain the summary:\n%s", got)
	}
}

func TestDashboard_Empty(t *testing.T) {
	got := Dashboard(fund.Reconcile(nil), DashboardOptions{})
	if !strings.Contains(got, "No records yet.") {
		t.Errorf("Dashboard(empty) does not say there are no records:\n%s", got)
	}
	if strings.Contains(got, "## Notices") {
		t.Errorf("Dashboard(empty) rendered notices:\n%s", got)
	}
}

func TestChart(t *testing.T) {
	got := Chart(projection(), 10)
	lines := strings.Split(got, "\n")

	// January collected is the largest amount and spans the whole width.
	want := "Jan       collected   |" + strings.Repeat("#", 10)
	found := false
	for _, l := range lines {
		if l == want {
			found = true
		}
	}
	if !found {
		t.Errorf("Chart() has no line %q:\n%s", want, got)
	}
	// January closes at 60000, 60% of the largest amount.
	if !strings.Contains(got, "balance     |"+strings.Repeat("~", 6)) {
		t.Errorf("Chart() has no scaled cumulative bar:\n%s", got)
	}
}

func TestChart_Deficit(t *testing.T) {
	p := fund.Reconcile([]fund.Record{{ID: "a", Period: fund.March, AmountCollected: fund.PKR(0), AmountGiven: fund.PKR(100)}})
	got := Chart(p, 4)
	if !strings.Contains(got, "balance     |----") {
		t.Errorf("Chart() does not draw the deficit:\n%s", got)
	}
}

func TestSummaryAndTable(t *testing.T) {
	p := projection()
	if got := Summary(p); !strings.Contains(got, "| 2 |") {
		t.Errorf("Summary() does not count 2 contributors:\n%s", got)
	}
	if got := Table(p); !strings.Contains(got, "- Medical Bill (Aslam): "+fund.PKR(30000).String()) {
		t.Errorf("Table() does not list distributions:\n%s", got)
	}
}

func TestRecord(t *testing.T) {
	p := projection()
	got := Record(p.Records[1])
	for _, want := range []string{"# February", "`b`", "## Distributions", "(deficit)"} {
		if !strings.Contains(got, want) {
			t.Errorf("Record() does not contain %q:\n%s", want, got)
		}
	}
}

func TestNewDashboardView(t *testing.T) {
	p := fund.Reconcile([]fund.Record{
		{ID: "a", Period: fund.January, AmountCollected: fund.PKR(100), AmountGiven: fund.PKR(50)},
		{ID: "b", Period: fund.February, AmountCollected: fund.PKR(0), AmountGiven: fund.PKR(100)},
	})
	d := newDashboardView(p, DashboardOptions{Width: 10})

	if len(d.Rows) != 2 || d.Rows[0].Month != "January" || !d.Rows[1].Deficit {
		t.Errorf("Rows = %+v, want January then a February deficit", d.Rows)
	}
	if got := d.Bars[0].Collected; got != "##########" {
		t.Errorf("January collected bar = %q, want the full width", got)
	}
	if got := d.Bars[1].Cumulative; got != "-----" {
		t.Errorf("February cumulative bar = %q, want a half width deficit", got)
	}
}
