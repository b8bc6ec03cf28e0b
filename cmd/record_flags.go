package cmd

import (
	"flag"
	"fmt"
	"strings"

	fund "github.com/etnz/communityfund"
)

// distributionsFlag collects repeated -d recipient=amount flags.
type distributionsFlag []fund.Distribution

func (d *distributionsFlag) String() string {
	var parts []string
	for _, x := range *d {
		parts = append(parts, x.Recipient+"="+x.Amount.Decimal().String())
	}
	return strings.Join(parts, ",")
}

func (d *distributionsFlag) Set(s string) error {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return fmt.Errorf("invalid distribution %q, want recipient=amount", s)
	}
	recipient := strings.TrimSpace(s[:i])
	if recipient == "" {
		return fmt.Errorf("invalid distribution %q: missing recipient", s)
	}
	amount, err := fund.ParseMoney(s[i+1:])
	if err != nil {
		return fmt.Errorf("invalid distribution %q: %w", s, err)
	}
	*d = append(*d, fund.Distribution{Recipient: recipient, Amount: amount})
	return nil
}

// recordFlags holds the flags describing a record, shared by add and edit.
type recordFlags struct {
	month         string
	contributors  string
	collected     string
	given         string
	distributions distributionsFlag
	clear         bool
}

func (c *recordFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month of the record (e.g. January or jan)")
	f.StringVar(&c.contributors, "c", "", "Comma separated contributor names")
	f.StringVar(&c.collected, "collected", "", "Amount collected in PKR")
	f.StringVar(&c.given, "given", "", "Amount given in PKR, ignored when distributions are set")
	f.Var(&c.distributions, "d", "Itemized distribution as recipient=amount, can be repeated")
}

// draft builds a draft holding only the flags that were set on f.
func (c *recordFlags) draft(f *flag.FlagSet) (fund.Draft, error) {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	var d fund.Draft
	if set["m"] {
		p, err := fund.ParsePeriod(c.month)
		if err != nil {
			return d, err
		}
		d.Period = &p
	}
	if set["c"] {
		d.Contributors = splitContributors(c.contributors)
	}
	if set["collected"] {
		m, err := fund.ParseMoney(c.collected)
		if err != nil {
			return d, fmt.Errorf("invalid amount collected %q: %w", c.collected, err)
		}
		d.AmountCollected = &m
	}
	if set["given"] {
		m, err := fund.ParseMoney(c.given)
		if err != nil {
			return d, fmt.Errorf("invalid amount given %q: %w", c.given, err)
		}
		d.AmountGiven = &m
	}
	if len(c.distributions) > 0 {
		d.Distributions = c.distributions
	} else if c.clear {
		d.Distributions = []fund.Distribution{}
	}
	return d, nil
}
