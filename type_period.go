package fund

import (
	"fmt"
	"strings"
)

// Period is the label of a fund period, one of the twelve month names.
//
// Labels are kept as entered: a record may carry a label that is not one of
// the canonical months, it is then ordered after all canonical periods.
type Period string

const (
	January   Period = "January"
	February  Period = "February"
	March     Period = "March"
	April     Period = "April"
	May       Period = "May"
	June      Period = "June"
	July      Period = "July"
	August    Period = "August"
	September Period = "September"
	October   Period = "October"
	November  Period = "November"
	December  Period = "December"
)

// Periods lists the canonical periods in order.
var Periods = [12]Period{January, February, March, April, May, June, July, August, September, October, November, December}

// Index returns the position of p in the canonical order (0 for January) and
// whether p is a canonical label at all. Matching is exact.
func (p Period) Index() (int, bool) {
	for i, q := range Periods {
		if p == q {
			return i, true
		}
	}
	return len(Periods), false
}

// Short returns the three letters abbreviation of the period, or the label itself.
func (p Period) Short() string {
	if _, ok := p.Index(); ok {
		return string(p)[:3]
	}
	return string(p)
}

func (p Period) String() string { return string(p) }

// ParsePeriod parses user input into a canonical period.
// It accepts full names and three letters abbreviations, in any case.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("empty period")
	}
	for _, p := range Periods {
		name := strings.ToLower(string(p))
		if s == name || s == name[:3] {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q", s)
}
