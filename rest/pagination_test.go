package rest

import (
	"context"
	"errors"
	"testing"
)

func pagedFetcher(items []string, pageSize int, fetches *int) PageFetcher[string] {
	return func(ctx context.Context, startAt int) ([]string, int, error) {
		*fetches++
		if startAt >= len(items) {
			return nil, len(items), nil
		}
		end := min(startAt+pageSize, len(items))
		return items[startAt:end], len(items), nil
	}
}

func TestPageIteratorAll(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	fetches := 0
	it := NewPageIterator(pagedFetcher(items, 2, &fetches))

	got, err := it.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("got %d items, want 5", len(got))
	}
	for i, want := range items {
		if got[i] != want {
			t.Errorf("item %d = %q, want %q", i, got[i], want)
		}
	}
	if fetches != 3 {
		t.Errorf("fetches = %d, want 3", fetches)
	}
	if it.Total() != 5 {
		t.Errorf("Total = %d, want 5", it.Total())
	}
}

func TestPageIteratorTake(t *testing.T) {
	fetches := 0
	it := NewPageIterator(pagedFetcher([]string{"a", "b", "c", "d"}, 2, &fetches))

	got, err := it.Take(context.Background(), 3)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d items, want 3", len(got))
	}
	if fetches != 2 {
		t.Errorf("fetches = %d, want 2", fetches)
	}
}

func TestPageIteratorEmpty(t *testing.T) {
	fetches := 0
	it := NewPageIterator(pagedFetcher(nil, 10, &fetches))

	got, err := it.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d items, want 0", len(got))
	}
	if fetches != 1 {
		t.Errorf("fetches = %d, want 1", fetches)
	}
}

func TestPageIteratorPropagatesErrors(t *testing.T) {
	fetchErr := errors.New("boom")
	it := NewPageIterator(func(ctx context.Context, startAt int) ([]string, int, error) {
		if startAt == 0 {
			return []string{"a"}, 2, nil
		}
		return nil, -1, fetchErr
	})

	ctx := context.Background()
	if _, ok, err := it.Next(ctx); !ok || err != nil {
		t.Fatalf("first Next: ok=%v err=%v", ok, err)
	}
	if _, ok, err := it.Next(ctx); ok || !errors.Is(err, fetchErr) {
		t.Fatalf("second Next: ok=%v err=%v", ok, err)
	}
	if !errors.Is(it.Err(), fetchErr) {
		t.Errorf("Err = %v", it.Err())
	}

	// Error is sticky.
	if _, ok, err := it.Next(ctx); ok || !errors.Is(err, fetchErr) {
		t.Errorf("third Next: ok=%v err=%v", ok, err)
	}
}
