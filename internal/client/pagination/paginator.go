package pagination

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/recipes/internal/client/kvstore"
)

// Paginator is the stateful page cursor for one collection view. The page is
// read from the kvstore at construction and written back on every change.
//
// Until the first SetTotal the persisted page is taken as is; from then on it
// is kept within [1, max(PageCount, 1)].
type Paginator struct {
	kv   *kvstore.Store
	size int

	mu        sync.Mutex
	page      int
	total     int
	knowTotal bool
	filter    string
	tab       string
}

func New(ctx context.Context, kv *kvstore.Store, size int) (*Paginator, error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	page, err := kv.Int(ctx, kvstore.KeyCurrentPage, 1)
	if err != nil {
		page = 1
	}
	p := &Paginator{kv: kv, size: size, page: max(page, 1)}
	if err != nil {
		return p, fmt.Errorf("read current page: %w", err)
	}
	return p, nil
}

func (p *Paginator) PageSize() int { return p.size }

func (p *Paginator) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

func (p *Paginator) PageCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PageCount(p.total, p.size)
}

// SetFilter resets to the first page when key differs from the last filter.
func (p *Paginator) SetFilter(ctx context.Context, key string) error {
	return p.update(ctx, func() int {
		if key == p.filter {
			return p.page
		}
		p.filter = key
		return 1
	})
}

// SetTab resets to the first page when the active tab changes.
func (p *Paginator) SetTab(ctx context.Context, tab string) error {
	return p.update(ctx, func() int {
		if tab == p.tab {
			return p.page
		}
		p.tab = tab
		return 1
	})
}

// SetTotal records the collection size. An empty collection resets to the
// first page; otherwise the current page is clamped.
func (p *Paginator) SetTotal(ctx context.Context, total int) error {
	return p.update(ctx, func() int {
		p.total = max(total, 0)
		p.knowTotal = true
		if p.total == 0 {
			return 1
		}
		return Clamp(p.page, p.total, p.size)
	})
}

// Next advances one page; a no-op on the last page.
func (p *Paginator) Next(ctx context.Context) error {
	return p.update(ctx, func() int {
		if p.page >= max(PageCount(p.total, p.size), 1) {
			return p.page
		}
		return p.page + 1
	})
}

// Prev goes back one page; a no-op on the first page.
func (p *Paginator) Prev(ctx context.Context) error {
	return p.update(ctx, func() int {
		if p.page <= 1 {
			return p.page
		}
		return p.page - 1
	})
}

// GoTo jumps to page, clamped.
func (p *Paginator) GoTo(ctx context.Context, page int) error {
	return p.update(ctx, func() int {
		if !p.knowTotal {
			return max(page, 1)
		}
		return Clamp(page, p.total, p.size)
	})
}

func (p *Paginator) update(ctx context.Context, next func() int) error {
	p.mu.Lock()
	prev := p.page
	p.page = next()
	page := p.page
	p.mu.Unlock()

	if page == prev {
		return nil
	}
	if err := p.kv.SetInt(ctx, kvstore.KeyCurrentPage, page); err != nil {
		return fmt.Errorf("persist current page: %w", err)
	}
	return nil
}

// Paginate syncs the total with items and returns the current page of them.
func Paginate[T any](ctx context.Context, p *Paginator, items []T) ([]T, error) {
	err := p.SetTotal(ctx, len(items))
	return Window(items, p.size, p.Page()), err
}
