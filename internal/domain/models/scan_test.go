package models

import (
	"reflect"
	"testing"
)

func TestBatchJoin(t *testing.T) {
	items := []string{"A", "B", "C", "D", "E"}
	got := BatchJoin(items, 2)
	want := []string{"A,B", "C,D", "E"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBatchJoinNoSize(t *testing.T) {
	got := BatchJoin([]string{"A", "B"}, 0)
	if !reflect.DeepEqual(got, []string{"A,B"}) {
		t.Fatalf("size 0 should yield a single batch, got %v", got)
	}
}

func TestBatchJoinEmpty(t *testing.T) {
	if got := BatchJoin(nil, 3); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestPriceSeriesTail(t *testing.T) {
	s := &PriceSeries{Points: []PricePoint{{Close: 1}, {Close: 2}, {Close: 3}}}
	if got := s.Tail(2); len(got) != 2 || got[0].Close != 2 {
		t.Fatalf("unexpected tail %v", got)
	}
	if got := s.Tail(10); len(got) != 3 {
		t.Fatalf("tail beyond length must return all points, got %v", got)
	}
}

func TestScanRequestWithFilters(t *testing.T) {
	var r ScanRequest
	if !r.WithFilters() {
		t.Fatalf("absent flag defaults to true")
	}
	f := false
	r.Filters = &f
	if r.WithFilters() {
		t.Fatalf("explicit false must disable filters")
	}
}
