package fund

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The persisted form of the fund is a JSON array of records, in period order,
// including the derived fields of the last reconciliation:
//
//	[{"id":"a1","month":"January","contributorNames":["Ali"],"amountCollected":100000,
//	  "amountGiven":40000,"remainingBalance":60000,"cumulativeBalance":60000,
//	  "distributions":[{"recipient":"School Fee","amount":40000}],"revision":1}]
//
// Derived fields are a cache: DecodeRecords drops them, they are recomputed by Reconcile.

// MarshalJSON writes the record with a stable field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", r.ID)
	w.Append("month", r.Period)
	contributors := r.Contributors
	if contributors == nil {
		contributors = []string{}
	}
	w.Append("contributorNames", contributors)
	w.Append("amountCollected", r.AmountCollected)
	w.Append("amountGiven", r.AmountGiven)
	w.Append("remainingBalance", r.RemainingBalance)
	w.Append("cumulativeBalance", r.CumulativeBalance)
	if r.Distributions != nil {
		w.Append("distributions", r.Distributions)
	}
	w.Optional("revision", r.Revision)
	return w.MarshalJSON()
}

// EncodeRecords writes records as a JSON array.
func EncodeRecords(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("could not encode records: %w", err)
	}
	return nil
}

// MarshalRecords returns the persisted form of records.
func MarshalRecords(records []Record) (string, error) {
	var b bytes.Buffer
	if err := EncodeRecords(&b, records); err != nil {
		return "", err
	}
	return b.String(), nil
}

// DecodeRecords reads a JSON array of records as drafts, ready to be loaded
// into a Store. Derived fields are ignored.
func DecodeRecords(r io.Reader) ([]Draft, error) {
	var drafts []Draft
	if err := json.NewDecoder(r).Decode(&drafts); err != nil {
		return nil, fmt.Errorf("could not decode records: %w", err)
	}
	if drafts == nil {
		drafts = []Draft{}
	}
	return drafts, nil
}

// UnmarshalRecords is DecodeRecords over a string blob.
func UnmarshalRecords(blob string) ([]Draft, error) {
	return DecodeRecords(bytes.NewBufferString(blob))
}
