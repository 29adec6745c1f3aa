package rest

import "context"

// PageFetcher fetches one page of items starting at the given offset.
// It returns the items, the total result count if the server reported one
// (-1 otherwise), and any error.
type PageFetcher[T any] func(ctx context.Context, startAt int) (items []T, total int, err error)

// PageIterator lazily walks a startAt-paginated Jira endpoint.
type PageIterator[T any] struct {
	fetch   PageFetcher[T]
	buffer  []T
	startAt int
	total   int
	done    bool
	err     error
}

// NewPageIterator creates an iterator over fetch.
func NewPageIterator[T any](fetch PageFetcher[T]) *PageIterator[T] {
	return &PageIterator[T]{fetch: fetch, total: -1}
}

// Next returns the next item. The second return is false when iteration is
// complete or an error occurred.
func (p *PageIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	if p.err != nil {
		return zero, false, p.err
	}

	if len(p.buffer) == 0 && !p.done {
		items, total, err := p.fetch(ctx, p.startAt)
		if err != nil {
			p.err = err
			return zero, false, err
		}
		p.buffer = items
		p.total = total
		p.startAt += len(items)
		p.done = len(items) == 0 || (total >= 0 && p.startAt >= total)
	}

	if len(p.buffer) == 0 {
		return zero, false, nil
	}

	item := p.buffer[0]
	p.buffer = p.buffer[1:]
	return item, true, nil
}

// Take returns up to n items.
func (p *PageIterator[T]) Take(ctx context.Context, n int) ([]T, error) {
	var items []T
	for len(items) < n {
		item, ok, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		items = append(items, item)
	}
	return items, nil
}

// All collects every remaining item. Slow for large result sets.
func (p *PageIterator[T]) All(ctx context.Context) ([]T, error) {
	var all []T
	for {
		item, ok, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return all, nil
		}
		all = append(all, item)
	}
}

// Total returns the server-reported result count, or -1 before the first
// fetch (or when the server did not report one).
func (p *PageIterator[T]) Total() int {
	return p.total
}

// Err returns the first error encountered during iteration.
func (p *PageIterator[T]) Err() error {
	return p.err
}
