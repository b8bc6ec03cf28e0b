package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	fund "github.com/etnz/communityfund"
	"google.golang.org/genai"
)

// fakeGenerator returns a canned response and records the request.
type fakeGenerator struct {
	text   string
	err    error
	model  string
	config *genai.GenerateContentConfig
}

func (g *fakeGenerator) GenerateContent(_ context.Context, model string, _ []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	g.model, g.config = model, config
	if g.err != nil {
		return nil, g.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(g.text, genai.RoleModel)}},
	}, nil
}

const generated = `{"records":[
	{"month":"January","contributorNames":["Ali","Sara"],"amountCollected":120000,
	 "distributions":[{"recipient":"Local School Fee","amount":45000},{"recipient":"Mosque Repair","amount":5000.5}]},
	{"month":"February","contributorNames":["Ali"],"amountCollected":80000,"distributions":[]}
]}`

func TestGemini_FetchSeedRecords(t *testing.T) {
	gen := &fakeGenerator{text: generated}
	g := NewGeminiGenerator(gen, "")

	drafts, err := g.FetchSeedRecords(context.Background())
	if err != nil {
		t.Fatalf("FetchSeedRecords() error = %v", err)
	}
	if gen.model != DefaultModel {
		t.Errorf("model = %q, want %q", gen.model, DefaultModel)
	}
	if gen.config.ResponseMIMEType != "application/json" || gen.config.ResponseSchema == nil {
		t.Errorf("request is not constrained to the JSON schema: %+v", gen.config)
	}
	if len(drafts) != 2 {
		t.Fatalf("FetchSeedRecords() returned %d drafts, want 2", len(drafts))
	}
	jan := drafts[0]
	if *jan.Period != fund.January || len(jan.Contributors) != 2 || !jan.AmountCollected.Equal(fund.PKR(120000)) {
		t.Errorf("drafts[0] = %+v", jan)
	}
	if len(jan.Distributions) != 2 || !jan.Distributions[1].Amount.Equal(fund.PKR(5000.5)) {
		t.Errorf("drafts[0].Distributions = %v", jan.Distributions)
	}
	if jan.AmountGiven != nil {
		t.Errorf("drafts[0].AmountGiven = %v, want it left for reconciliation", jan.AmountGiven)
	}

	// Generated drafts are accepted by the store as they are.
	s := fund.NewStore(fund.SequentialIDs("r"))
	if _, err := s.Load(drafts); err != nil {
		t.Errorf("Load(generated) error = %v", err)
	}
}

func TestGemini_Errors(t *testing.T) {
	testCases := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"unavailable", &fakeGenerator{err: errors.New("quota exceeded")}},
		{"not json", &fakeGenerator{text: "Here are your records:"}},
		{"no records", &fakeGenerator{text: `{"rows":[]}`}},
		{"records is not a list", &fakeGenerator{text: `{"records":{"month":"January"}}`}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewGeminiGenerator(tc.gen, "m").FetchSeedRecords(context.Background()); err == nil {
				t.Errorf("FetchSeedRecords() error = nil, want an error")
			}
		})
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	blob := `[{"id":"a","month":"March","contributorNames":["Ali"],"amountCollected":100,"amountGiven":40}]`
	if err := os.WriteFile(path, []byte(blob), 0644); err != nil {
		t.Fatal(err)
	}

	drafts, err := NewFile(path).FetchSeedRecords(context.Background())
	if err != nil {
		t.Fatalf("FetchSeedRecords() error = %v", err)
	}
	if len(drafts) != 1 || drafts[0].ID != "a" || *drafts[0].Period != fund.March {
		t.Errorf("FetchSeedRecords() = %+v", drafts)
	}

	if _, err := NewFile(filepath.Join(t.TempDir(), "missing.json")).FetchSeedRecords(context.Background()); err == nil {
		t.Errorf("FetchSeedRecords(missing) error = nil, want an error")
	}
}

func TestSample(t *testing.T) {
	p := fund.Reconcile(mustLoad(t, Sample()))
	if len(p.Records) != 12 {
		t.Fatalf("Sample() has %d records, want 12", len(p.Records))
	}
	for i, r := range p.Records {
		if r.Period != fund.Periods[i] {
			t.Errorf("records[%d].Period = %v, want %v", i, r.Period, fund.Periods[i])
		}
	}
	if p.Summary.UniqueContributors != 8 {
		t.Errorf("UniqueContributors = %d, want 8", p.Summary.UniqueContributors)
	}
	if len(p.Notices) != 0 {
		t.Errorf("Notices = %v, want none", p.Notices)
	}
}

func mustLoad(t *testing.T, s Static) []fund.Record {
	t.Helper()
	drafts, err := s.FetchSeedRecords(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	records, err := fund.NewStore(fund.SequentialIDs("r")).Load(drafts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return records
}
