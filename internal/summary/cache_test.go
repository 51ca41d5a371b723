package summary

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

type fakeFetcher struct {
	value core.FinanceSummary
	err   error
	calls int
}

func (f *fakeFetcher) FinanceSummary(context.Context) (core.FinanceSummary, error) {
	f.calls++
	return f.value, f.err
}

func TestGetBeforeFirstFetch(t *testing.T) {
	c := NewCache(&fakeFetcher{})

	got := c.Get()
	if !got.TotalIncome.IsZero() || !got.TotalExpense.IsZero() || !got.NetBalance.IsZero() {
		t.Errorf("Get before fetch = %+v, want zero summary", got)
	}
	if c.FetchCount() != 0 {
		t.Errorf("FetchCount = %d, want 0", c.FetchCount())
	}
}

func TestRefreshReplacesValue(t *testing.T) {
	fetcher := &fakeFetcher{value: core.FinanceSummary{
		TotalIncome:  decimal.NewFromInt(500),
		TotalExpense: decimal.NewFromInt(125),
		NetBalance:   decimal.NewFromInt(375),
	}}
	c := NewCache(fetcher)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if c.FetchCount() != 1 {
		t.Errorf("FetchCount = %d, want 1", c.FetchCount())
	}
	if got := c.Get(); !got.NetBalance.Equal(decimal.NewFromInt(375)) {
		t.Errorf("NetBalance = %s, want 375", got.NetBalance)
	}

	fetcher.value.NetBalance = decimal.NewFromInt(400)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("second Refresh: %v", err)
	}
	if got := c.Get(); !got.NetBalance.Equal(decimal.NewFromInt(400)) {
		t.Errorf("NetBalance after second refresh = %s, want 400", got.NetBalance)
	}
	if c.FetchCount() != 2 {
		t.Errorf("FetchCount = %d, want 2", c.FetchCount())
	}
}

func TestRefreshFailureKeepsPreviousValue(t *testing.T) {
	fetcher := &fakeFetcher{value: core.FinanceSummary{NetBalance: decimal.NewFromInt(42)}}
	c := NewCache(fetcher)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	fetcher.err = errors.New("network down")
	if err := c.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if got := c.Get(); !got.NetBalance.Equal(decimal.NewFromInt(42)) {
		t.Errorf("failed refresh changed cached value: %s", got.NetBalance)
	}
	if c.FetchCount() != 1 {
		t.Errorf("FetchCount after failed refresh = %d, want 1", c.FetchCount())
	}
}

func TestReset(t *testing.T) {
	c := NewCache(&fakeFetcher{value: core.FinanceSummary{NetBalance: decimal.NewFromInt(9)}})

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	c.Reset()

	if got := c.Get(); !got.NetBalance.IsZero() {
		t.Errorf("Get after Reset = %+v, want zero summary", got)
	}
	if c.FetchCount() != 0 {
		t.Errorf("FetchCount after Reset = %d, want 0", c.FetchCount())
	}
}
