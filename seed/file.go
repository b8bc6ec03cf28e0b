package seed

import (
	"context"
	"fmt"
	"os"

	fund "github.com/etnz/communityfund"
)

// File reads seed records from a JSON file in the persistence format.
type File struct {
	Path string
}

// NewFile creates a seed provider reading path.
func NewFile(path string) *File { return &File{Path: path} }

// FetchSeedRecords reads and decodes the file.
func (f *File) FetchSeedRecords(ctx context.Context) ([]fund.Draft, error) {
	r, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("could not open seed file %q: %w", f.Path, err)
	}
	defer r.Close()
	drafts, err := fund.DecodeRecords(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode seed file %q: %w", f.Path, err)
	}
	return drafts, nil
}

// Static serves a fixed list of drafts.
type Static []fund.Draft

// FetchSeedRecords returns a copy of the list.
func (s Static) FetchSeedRecords(context.Context) ([]fund.Draft, error) {
	return append([]fund.Draft(nil), s...), nil
}

// Sample returns a year of activity of a small fund, for demos and offline use.
func Sample() Static {
	type item struct {
		recipient string
		amount    int64
	}
	rows := []struct {
		contributors []string
		collected    int64
		items        []item
	}{
		{[]string{"Ali", "Sara", "Bilal", "Naseem", "Usman"}, 120000, []item{{"Local School Fee", 45000}, {"Medical Bill (Aslam)", 30000}}},
		{[]string{"Ali", "Sara", "Bilal", "Naseem"}, 90000, []item{{"Widow Support (Naseem)", 40000}}},
		{[]string{"Ali", "Sara", "Bilal", "Naseem", "Usman", "Hina", "Kamran"}, 250000, []item{{"Ramadan Rations", 150000}, {"Mosque Repair", 35000}}},
		{[]string{"Ali", "Sara", "Usman", "Hina", "Kamran"}, 210000, []item{{"Eid Clothes", 120000}, {"Local School Fee", 45000}}},
		{[]string{"Ali", "Bilal", "Naseem"}, 60000, []item{{"Medical Bill (Aslam)", 55000}}},
		{[]string{"Ali", "Sara", "Bilal", "Naseem", "Usman"}, 110000, []item{{"Water Cooler", 38000}}},
		{[]string{"Ali", "Sara", "Bilal", "Naseem", "Usman", "Hina"}, 140000, []item{{"Flood Relief", 180000}}},
		{[]string{"Ali", "Sara", "Bilal"}, 75000, []item{{"Local School Fee", 45000}}},
		{[]string{"Ali", "Sara", "Bilal", "Naseem", "Usman", "Kamran"}, 130000, []item{{"Wedding Support (Rubina)", 100000}}},
		{[]string{"Ali", "Sara", "Naseem", "Usman"}, 95000, []item{{"Widow Support (Naseem)", 40000}, {"Mosque Repair", 20000}}},
		{[]string{"Ali", "Sara", "Bilal", "Naseem", "Usman", "Hina", "Kamran", "Faisal"}, 180000, []item{{"Winter Blankets", 90000}}},
		{[]string{"Ali", "Sara", "Bilal", "Naseem", "Usman", "Hina"}, 160000, []item{{"Local School Fee", 45000}, {"Medical Bill (Aslam)", 60000}}},
	}
	s := make(Static, 0, len(rows))
	for i, row := range rows {
		p := fund.Periods[i]
		collected := fund.PKR(row.collected)
		d := fund.Draft{Period: &p, Contributors: row.contributors, AmountCollected: &collected}
		for _, it := range row.items {
			d.Distributions = append(d.Distributions, fund.Distribution{Recipient: it.recipient, Amount: fund.PKR(it.amount)})
		}
		s = append(s, d)
	}
	return s
}
