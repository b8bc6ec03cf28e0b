package fund

import (
	"errors"
	"fmt"
	"slices"
)

// Reconcile derives the ordered, balance annotated projection of records.
//
// Records are stable sorted by period: canonical months first in calendar
// order, unknown labels last. Records sharing a label keep their input order.
// The outflow of an itemized record is recomputed as the sum of its
// distributions. Reconcile never modifies records.
func Reconcile(records []Record) Projection {
	p := Projection{Records: make([]Record, 0, len(records))}
	for _, r := range records {
		p.Records = append(p.Records, r.clone())
	}
	slices.SortStableFunc(p.Records, func(a, b Record) int {
		i, _ := a.Period.Index()
		j, _ := b.Period.Index()
		return i - j
	})

	running := PKR(0)
	collected, distributed := PKR(0), PKR(0)
	contributors := make(map[string]struct{})
	for i := range p.Records {
		r := &p.Records[i]
		if r.Itemized() {
			given := PKR(0)
			for _, d := range r.Distributions {
				given = given.Add(d.Amount)
			}
			if !given.Equal(r.AmountGiven) && !r.AmountGiven.IsZero() {
				p.Notices = append(p.Notices, Notice{
					RecordID: r.ID,
					Period:   r.Period,
					Message:  fmt.Sprintf("amount given %s replaced by the sum of distributions %s", r.AmountGiven, given),
				})
			}
			r.AmountGiven = given
		}
		if err := Check(*r); err != nil {
			p.Notices = append(p.Notices, Notice{RecordID: r.ID, Period: r.Period, Message: err.Error()})
		}

		r.RemainingBalance = r.AmountCollected.Sub(r.AmountGiven)
		running = running.Add(r.RemainingBalance)
		r.CumulativeBalance = running

		collected = collected.Add(r.AmountCollected)
		distributed = distributed.Add(r.AmountGiven)
		for _, name := range r.Contributors {
			contributors[name] = struct{}{}
		}
	}

	p.Summary = Summary{
		TotalCollected:     collected,
		TotalDistributed:   distributed,
		FinalBalance:       running,
		UniqueContributors: len(contributors),
	}
	return p
}

// Check reports negative amounts in r. A deficit (negative remaining balance)
// is valid and is not reported.
func Check(r Record) error {
	var errs error
	if r.AmountCollected.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("%w: %s amount collected %s is negative", ErrReconciliationInputInvalid, r.Period, r.AmountCollected))
	}
	if !r.Itemized() && r.AmountGiven.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("%w: %s amount given %s is negative", ErrReconciliationInputInvalid, r.Period, r.AmountGiven))
	}
	for _, d := range r.Distributions {
		if d.Amount.IsNegative() {
			errs = errors.Join(errs, fmt.Errorf("%w: %s distribution to %q of %s is negative", ErrReconciliationInputInvalid, r.Period, d.Recipient, d.Amount))
		}
	}
	return errs
}
