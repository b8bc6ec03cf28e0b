package fund

import (
	"context"
	"errors"
	"strings"
	"testing"
)

var (
	admin = NewUser(Admin)
	guest = NewUser(Guest)
)

func TestOpen_FromSeeds(t *testing.T) {
	sink := &memSink{}
	seeds := seedFunc(func() ([]Draft, error) {
		return []Draft{draft(February, 80000, "Ali"), draft(January, 100000, "Sara")}, nil
	})

	f := Open(context.Background(), Options{Sink: sink, Seeds: seeds, IDs: SequentialIDs("r")})

	if err := f.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	v := f.View()
	if len(v.Records) != 2 || v.Records[0].Period != January {
		t.Fatalf("View().Records = %+v, want January then February", v.Records)
	}
	if sink.writes != 1 {
		t.Errorf("sink writes = %d, want 1 write-through", sink.writes)
	}
}

func TestOpen_FromBlob(t *testing.T) {
	sink := &memSink{ok: true, blob: `[
		{"id":"x","month":"January","contributorNames":["Ali"],"amountCollected":100,"amountGiven":40,"remainingBalance":999,"cumulativeBalance":999}
	]`}
	seeds := seedFunc(func() ([]Draft, error) {
		t.Error("seeds must not be fetched when a blob is stored")
		return nil, nil
	})

	f := Open(context.Background(), Options{Sink: sink, Seeds: seeds})

	r, ok := f.Get("x")
	if !ok {
		t.Fatalf("Get(%q) not found", "x")
	}
	if !r.RemainingBalance.Equal(PKR(60)) || !r.CumulativeBalance.Equal(PKR(60)) {
		t.Errorf("cached derived fields were trusted: %v %v", r.RemainingBalance, r.CumulativeBalance)
	}
}

func TestOpen_Degraded(t *testing.T) {
	testCases := []struct {
		name  string
		sink  *memSink
		seeds SeedProvider
	}{
		{
			name:  "seed fetch fails",
			sink:  &memSink{},
			seeds: seedFunc(func() ([]Draft, error) { return nil, errUnavailable }),
		},
		{
			name:  "seed is invalid",
			sink:  &memSink{},
			seeds: seedFunc(func() ([]Draft, error) { return []Draft{{ID: "x"}}, nil }),
		},
		{
			name:  "corrupted blob and no generator",
			sink:  &memSink{ok: true, blob: "{not json"},
			seeds: seedFunc(func() ([]Draft, error) { return nil, errUnavailable }),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blob, ok := tc.sink.blob, tc.sink.ok
			f := Open(context.Background(), Options{Sink: tc.sink, Seeds: tc.seeds})
			if f.Err() == nil {
				t.Errorf("Err() = nil, want the load failure")
			}
			if n := len(f.View().Records); n != 0 {
				t.Errorf("View() has %d records, want an empty fund", n)
			}
			if tc.sink.writes != 0 || tc.sink.blob != blob || tc.sink.ok != ok {
				t.Errorf("degraded fund was written through: %d writes, blob %q", tc.sink.writes, tc.sink.blob)
			}
		})
	}
}

func TestOpen_RetriesSeedsAfterFailure(t *testing.T) {
	ctx := context.Background()
	sink := &memSink{}
	failing := seedFunc(func() ([]Draft, error) { return nil, errUnavailable })
	if f := Open(ctx, Options{Sink: sink, Seeds: failing}); f.Err() == nil {
		t.Fatalf("Err() = nil, want the seed failure")
	}

	working := seedFunc(func() ([]Draft, error) { return []Draft{draft(January, 100, "Ali")}, nil })
	f := Open(ctx, Options{Sink: sink, Seeds: working})
	if err := f.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if n := len(f.View().Records); n != 1 {
		t.Errorf("View() has %d records, want the seed fetched again", n)
	}
}

func TestFund_Mutations(t *testing.T) {
	ctx := context.Background()
	sink := &memSink{}
	f := Open(ctx, Options{Sink: sink, IDs: SequentialIDs("r")})

	jan, err := f.Create(ctx, admin, draft(January, 100000, "Ali"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := f.Create(ctx, admin, draft(February, 80000, "Sara")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := f.Update(ctx, admin, jan.ID, Draft{AmountGiven: ptr(PKR(40000))}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := f.View().Summary.FinalBalance; !got.Equal(PKR(140000)) {
		t.Errorf("FinalBalance = %v, want 140000", got)
	}
	if feb := f.View().Records[1]; !feb.CumulativeBalance.Equal(PKR(140000)) {
		t.Errorf("February CumulativeBalance = %v, want 140000", feb.CumulativeBalance)
	}

	if err := f.Delete(ctx, admin, jan.ID, 0); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	v := f.View()
	if len(v.Records) != 1 {
		t.Fatalf("View() has %d records after delete, want 1", len(v.Records))
	}
	if !v.Records[0].CumulativeBalance.Equal(PKR(80000)) {
		t.Errorf("February CumulativeBalance = %v, want 80000 after delete", v.Records[0].CumulativeBalance)
	}
	if sink.writes != 5 {
		t.Errorf("sink writes = %d, want 5 (open + 4 mutations)", sink.writes)
	}
	if !strings.Contains(sink.blob, `"month": "February"`) || strings.Contains(sink.blob, "January") {
		t.Errorf("stored blob does not reflect the last projection:\n%s", sink.blob)
	}

	if err := f.Delete(ctx, admin, "r2", 0); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(sink.blob) != "[]" {
		t.Errorf("stored blob = %q, want an empty array", sink.blob)
	}
}

func TestFund_Guest(t *testing.T) {
	ctx := context.Background()
	f := Open(ctx, Options{Sink: &memSink{}, IDs: SequentialIDs("r")})
	r, _ := f.Create(ctx, admin, draft(January, 100))

	if _, err := f.Create(ctx, guest, draft(January, 100)); !errors.Is(err, ErrForbidden) {
		t.Errorf("Create() error = %v, want ErrForbidden", err)
	}
	if _, err := f.Update(ctx, guest, r.ID, Draft{}); !errors.Is(err, ErrForbidden) {
		t.Errorf("Update() error = %v, want ErrForbidden", err)
	}
	if err := f.Delete(ctx, guest, r.ID, 0); !errors.Is(err, ErrForbidden) {
		t.Errorf("Delete() error = %v, want ErrForbidden", err)
	}
	if err := f.Reset(ctx, guest); !errors.Is(err, ErrForbidden) {
		t.Errorf("Reset() error = %v, want ErrForbidden", err)
	}
	if n := len(f.View().Records); n != 1 {
		t.Errorf("View() has %d records, want 1", n)
	}
}

func TestFund_Strict(t *testing.T) {
	ctx := context.Background()
	f := Open(ctx, Options{Sink: &memSink{}, IDs: SequentialIDs("r"), Strict: true})
	r, err := f.Create(ctx, admin, draft(January, 100))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.Create(ctx, admin, draft(January, -1)); !errors.Is(err, ErrReconciliationInputInvalid) {
		t.Errorf("Create(negative) error = %v, want ErrReconciliationInputInvalid", err)
	}
	patch := Draft{Distributions: []Distribution{{"A", PKR(10)}, {"B", PKR(-10)}}}
	if _, err := f.Update(ctx, admin, r.ID, patch); !errors.Is(err, ErrReconciliationInputInvalid) {
		t.Errorf("Update(negative distribution) error = %v, want ErrReconciliationInputInvalid", err)
	}
	got, _ := f.Get(r.ID)
	if got.Itemized() || got.Revision != 1 {
		t.Errorf("rejected update was committed: %+v", got)
	}
}

func TestFund_Lenient(t *testing.T) {
	ctx := context.Background()
	f := Open(ctx, Options{Sink: &memSink{}, IDs: SequentialIDs("r")})
	if _, err := f.Create(ctx, admin, draft(January, -1)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if n := len(f.View().Notices); n != 1 {
		t.Errorf("View().Notices has %d notices, want the negative amount flagged", n)
	}
}

func TestFund_Reset(t *testing.T) {
	ctx := context.Background()
	calls := 0
	seeds := seedFunc(func() ([]Draft, error) {
		calls++
		return []Draft{draft(March, int64(calls))}, nil
	})
	sink := &memSink{}
	f := Open(ctx, Options{Sink: sink, Seeds: seeds})
	f.Create(ctx, admin, draft(January, 5))

	if err := f.Reset(ctx, admin); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	v := f.View()
	if len(v.Records) != 1 || !v.Records[0].AmountCollected.Equal(PKR(2)) {
		t.Errorf("View() after reset = %+v, want the fresh seed", v.Records)
	}
	if !sink.ok {
		t.Errorf("reset fund was not written through")
	}
}

func TestOpen_ReopenKeepsExactAmounts(t *testing.T) {
	ctx := context.Background()
	sink := &memSink{}
	f := Open(ctx, Options{Sink: sink, IDs: SequentialIDs("r")})
	collected, _ := ParseMoney("10.005")
	if _, err := f.Create(ctx, admin, Draft{Period: ptr(January), Contributors: []string{}, AmountCollected: &collected}); err != nil {
		t.Fatal(err)
	}
	before := f.View().Summary.FinalBalance

	after := Open(ctx, Options{Sink: sink}).View().Summary.FinalBalance
	if !after.Equal(before) {
		t.Errorf("FinalBalance after reopen = %v, want %v", after.Decimal(), before.Decimal())
	}
}

func TestFund_ResetFailureKeepsRecords(t *testing.T) {
	ctx := context.Background()
	calls := 0
	seeds := seedFunc(func() ([]Draft, error) {
		calls++
		if calls > 1 {
			return nil, errUnavailable
		}
		return []Draft{draft(March, 100, "Ali"), draft(April, 200, "Sara")}, nil
	})
	sink := &memSink{}
	f := Open(ctx, Options{Sink: sink, Seeds: seeds})
	blob, writes := sink.blob, sink.writes

	if err := f.Reset(ctx, admin); !errors.Is(err, errUnavailable) {
		t.Fatalf("Reset() error = %v, want the seed failure", err)
	}
	if n := len(f.View().Records); n != 2 {
		t.Errorf("View() has %d records after a failed reset, want 2", n)
	}
	if sink.blob != blob || sink.writes != writes || !sink.ok {
		t.Errorf("failed reset changed the stored fund: %q", sink.blob)
	}
	if err := f.Err(); err != nil {
		t.Errorf("Err() = %v, the fund is not degraded", err)
	}
}
