package fund

import (
	"slices"
)

// Distribution is a single itemized payout of a period.
type Distribution struct {
	Recipient string `json:"recipient" validate:"required"`
	Amount    Money  `json:"amount"`
}

// Record is one period of the fund: who contributed, how much was collected
// and how much was given away.
//
// RemainingBalance and CumulativeBalance are derived by Reconcile, any value
// set by a caller or read from storage is a cache and gets overwritten.
type Record struct {
	ID              string
	Period          Period
	Contributors    []string
	AmountCollected Money
	// AmountGiven is the outflow of the period. When Distributions is not
	// empty it is derived as their sum.
	AmountGiven Money
	// Distributions is nil when the outflow is entered directly.
	Distributions []Distribution

	RemainingBalance  Money
	CumulativeBalance Money

	// Revision is incremented on each update of the record.
	Revision int64
}

// Itemized reports whether the record's outflow is derived from its distributions.
func (r Record) Itemized() bool { return len(r.Distributions) > 0 }

// clone returns a deep copy of r.
func (r Record) clone() Record {
	r.Contributors = slices.Clone(r.Contributors)
	r.Distributions = slices.Clone(r.Distributions)
	return r
}

// Draft is a partially filled record, used to create a record, to patch an
// existing one or to seed the store.
//
// A nil field is "not set". For Distributions, an empty non nil slice is set:
// it clears the itemized distributions of a patched record.
type Draft struct {
	ID              string         `json:"id,omitempty"`
	Period          *Period        `json:"month" validate:"required"`
	Contributors    []string       `json:"contributorNames" validate:"required"`
	AmountCollected *Money         `json:"amountCollected" validate:"required"`
	AmountGiven     *Money         `json:"amountGiven,omitempty"`
	Distributions   []Distribution `json:"distributions,omitempty" validate:"omitempty,dive"`
	// Revision is the revision the caller last saw. 0 skips the conflict check.
	Revision int64 `json:"revision,omitempty"`
}

// DraftOf returns a draft with every field of r set.
func DraftOf(r Record) Draft {
	r = r.clone()
	d := Draft{
		ID:              r.ID,
		Period:          &r.Period,
		Contributors:    r.Contributors,
		AmountCollected: &r.AmountCollected,
		AmountGiven:     &r.AmountGiven,
		Distributions:   r.Distributions,
		Revision:        r.Revision,
	}
	if d.Contributors == nil {
		d.Contributors = []string{}
	}
	return d
}

// apply merges the set fields of d onto r. The ID and the revision are never changed.
func (d Draft) apply(r Record) Record {
	if d.Period != nil {
		r.Period = *d.Period
	}
	if d.Contributors != nil {
		r.Contributors = slices.Clone(d.Contributors)
	}
	if d.AmountCollected != nil {
		r.AmountCollected = *d.AmountCollected
	}
	if d.AmountGiven != nil {
		r.AmountGiven = *d.AmountGiven
	}
	if d.Distributions != nil {
		r.Distributions = slices.Clone(d.Distributions)
	}
	return r
}

// Summary aggregates the whole fund.
type Summary struct {
	TotalCollected     Money `json:"totalCollected"`
	TotalDistributed   Money `json:"totalDistributed"`
	FinalBalance       Money `json:"finalBalance"`
	UniqueContributors int   `json:"uniqueContributors"`
}

// Notice flags a record value that Reconcile accepted but that deserves the
// user's attention.
type Notice struct {
	RecordID string `json:"id"`
	Period   Period `json:"month"`
	Message  string `json:"message"`
}

// Projection is the ordered, balance annotated view of the fund with its summary.
// Records and Summary are always computed from the same snapshot.
type Projection struct {
	Records []Record `json:"records"`
	Summary Summary  `json:"summary"`
	Notices []Notice `json:"notices,omitempty"`
}
