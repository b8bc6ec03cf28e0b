// Package seed provides the generators of initial fund records.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	fund "github.com/etnz/communityfund"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used to generate records.
const DefaultModel = "gemini-2.5-flash"

// DefaultPrompt asks for a year of a community fund's activity.
const DefaultPrompt = `Generate a realistic 12-month financial dataset for a community fund in Pakistan (values in PKR) starting from January.
The fund consists of roughly 5-10 friends.
Monthly contributions should vary between 50,000 and 250,000 PKR.
Monthly distributions should vary between 30,000 and 200,000 PKR.
For each month, provide a list of distributions with specific recipient names (e.g., "Local School Fee", "Widow Support (Naseem)", "Medical Bill (Aslam)", "Mosque Repair").
Ensure some months have higher contributions (like Ramadan/Eid/Wedding seasons) and some months have higher distributions.`

// recordsPath locates the records in the generated document.
const recordsPath = "$.records"

// Generator is the part of the genai client used to generate content, client.Models implements it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini generates seed records with a Gemini model constrained to a JSON schema.
type Gemini struct {
	gen    Generator
	Model  string
	Prompt string
}

// NewGemini creates a seed provider on top of a genai client.
func NewGemini(client *genai.Client, model string) *Gemini {
	return NewGeminiGenerator(client.Models, model)
}

// NewGeminiGenerator creates a seed provider on top of any Generator.
func NewGeminiGenerator(gen Generator, model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{gen: gen, Model: model, Prompt: DefaultPrompt}
}

// FetchSeedRecords asks the model for a year of records.
func (g *Gemini) FetchSeedRecords(ctx context.Context) ([]fund.Draft, error) {
	resp, err := g.gen.GenerateContent(ctx, g.Model, genai.Text(g.Prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("generate records with %s: %w", g.Model, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from %s", g.Model)
	}
	return ParseRecords(resp.Text())
}

// ParseRecords extracts the records of a generated document.
//
// The document is an object holding a "records" array of drafts; the
// records are not validated here, that is the store's job.
func ParseRecords(text string) ([]fund.Draft, error) {
	var jobj any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &jobj); err != nil {
		return nil, fmt.Errorf("generated records are not JSON: %w", err)
	}
	jval, err := jsonpath.Get(recordsPath, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", recordsPath, err)
	}
	if _, ok := jval.([]any); !ok {
		return nil, fmt.Errorf("error parsing %q: not a list: %T", recordsPath, jval)
	}
	raw, err := json.Marshal(jval)
	if err != nil {
		return nil, err
	}
	return fund.UnmarshalRecords(string(raw))
}

func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"records": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"month":            {Type: genai.TypeString},
						"contributorNames": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"amountCollected":  {Type: genai.TypeNumber},
						"distributions": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"recipient": {Type: genai.TypeString},
									"amount":    {Type: genai.TypeNumber},
								},
								Required: []string{"recipient", "amount"},
							},
						},
					},
					Required: []string{"month", "contributorNames", "amountCollected", "distributions"},
				},
			},
		},
		Required: []string{"records"},
	}
}
