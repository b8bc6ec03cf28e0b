package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// DefaultSheetRange is the cell holding the fund in the spreadsheet.
const DefaultSheetRange = "Fund!A1"

// Sheets stores the blob in a single cell of a Google spreadsheet.
type Sheets struct {
	svc           *gsheet.Service
	spreadsheetID string
	rng           string
}

// NewSheets creates a Sheets sink authenticated with the service account
// credentials file. Extra options are passed to the Sheets service.
func NewSheets(ctx context.Context, spreadsheetID, rng, credentialsFile string, opts ...option.ClientOption) (*Sheets, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if rng == "" {
		rng = DefaultSheetRange
	}
	if credentialsFile != "" {
		credentialsJSON, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		opts = append(opts,
			option.WithCredentialsJSON(credentialsJSON),
			option.WithScopes(gsheet.SpreadsheetsScope))
	}
	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Sheets{svc: svc, spreadsheetID: spreadsheetID, rng: rng}, nil
}

func (s *Sheets) ReadBlob(ctx context.Context) (string, bool, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.rng).Context(ctx).Do()
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", s.rng, err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", false, nil
	}
	blob, ok := resp.Values[0][0].(string)
	if !ok || blob == "" {
		return "", false, nil
	}
	return blob, true, nil
}

func (s *Sheets) WriteBlob(ctx context.Context, blob string) error {
	vr := &gsheet.ValueRange{Values: [][]any{{blob}}}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, s.rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", s.rng, err)
	}
	slog.DebugContext(ctx, "fund saved to Google Sheets", "range", s.rng, "bytes", len(blob))
	return nil
}

func (s *Sheets) Clear(ctx context.Context) error {
	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, s.rng, &gsheet.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", s.rng, err)
	}
	return nil
}
