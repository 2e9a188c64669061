package decor

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"edenstone/internal/logger"
	"edenstone/internal/metrics"

	"go.uber.org/zap"
)

// Controller drives catalog browsing for one view: it turns filters, sort
// and page size into API requests, keeps the paginated result window and
// discards responses that were superseded by a newer request.
//
// State is guarded by mu, which is never held across a network call. Every
// fetch takes a generation from seq when issued and its result is applied
// only if that generation is still the latest one.
type Controller struct {
	src Source
	seq atomic.Uint64

	mu      sync.Mutex
	filters FiltersState
	sort    SortMode
	limit   int
	key     QueryKey
	started bool

	items   []DecorItem
	total   int
	offset  int
	facets  Facets
	loading bool
	errMsg  string
}

// View is a read-only snapshot of the controller state.
type View struct {
	Items   []DecorItem  `json:"items"`
	Loaded  int          `json:"loaded"`
	Total   int          `json:"total"`
	Offset  int          `json:"offset"`
	Limit   int          `json:"limit"`
	HasMore bool         `json:"hasMore"`
	Loading bool         `json:"loading"`
	Error   string       `json:"error,omitempty"`
	Facets  Facets       `json:"facets"`
	Filters FiltersState `json:"filters"`
	Sort    SortMode     `json:"sort"`
}

func NewController(src Source) *Controller {
	c := &Controller{
		src:   src,
		sort:  SortNewest,
		limit: DefaultPageSize,
		facets: Facets{
			StoneTypes: []StoneType{},
			Surfaces:   []SurfaceType{},
			Brands:     []string{},
		},
	}
	c.key = NewQueryKey(c.filters, c.sort, c.limit)
	return c
}

// ---------- parameters ----------

func (c *Controller) SetFilters(ctx context.Context, f FiltersState) error {
	f = f.Normalize()
	return c.update(ctx, func() { c.filters = f })
}

func (c *Controller) Toggle(ctx context.Context, dim Dimension, value string) error {
	return c.update(ctx, func() { c.filters = c.filters.Toggle(dim, value) })
}

func (c *Controller) ClearFilters(ctx context.Context) error {
	return c.update(ctx, func() { c.filters = c.filters.Clear() })
}

func (c *Controller) SetSort(ctx context.Context, mode SortMode) error {
	if _, err := ParseSortMode(string(mode)); err != nil {
		return err
	}
	return c.update(ctx, func() { c.sort = mode })
}

func (c *Controller) SetPageSize(ctx context.Context, n int) error {
	if !ValidPageSize(n) {
		return ErrInvalidPageSize
	}
	return c.update(ctx, func() { c.limit = n })
}

// Apply replaces filters, sort and page size at once, fetching at most one
// page.
func (c *Controller) Apply(ctx context.Context, f FiltersState, mode SortMode, n int) error {
	if _, err := ParseSortMode(string(mode)); err != nil {
		return err
	}
	if !ValidPageSize(n) {
		return ErrInvalidPageSize
	}
	f = f.Normalize()
	return c.update(ctx, func() {
		c.filters = f
		c.sort = mode
		c.limit = n
	})
}

// update applies mutate and runs a reset fetch when the query key changed
// or nothing was loaded yet. Filter changes that only touch the second and
// later values of a dimension keep the loaded window.
func (c *Controller) update(ctx context.Context, mutate func()) error {
	c.mu.Lock()
	mutate()
	key := NewQueryKey(c.filters, c.sort, c.limit)
	changed := key != c.key || !c.started
	c.key = key
	c.mu.Unlock()

	if !changed {
		return nil
	}
	return c.Reset(ctx)
}

// EnsureLoaded runs the initial reset fetch once.
func (c *Controller) EnsureLoaded(ctx context.Context) error {
	c.mu.Lock()
	started := c.started
	c.mu.Unlock()

	if started {
		return nil
	}
	return c.Reset(ctx)
}

// ---------- fetching ----------

// Reset drops the loaded window and fetches the first page for the current
// query key. On failure the list stays empty.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	c.started = true
	c.items = nil
	c.offset = 0
	c.total = 0
	q := c.key.ListQuery(0)
	gen := c.beginLocked()
	c.mu.Unlock()

	resp, err := c.src.ListDecors(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isLatest(gen) {
		c.discard(ctx, gen, "reset")
		return nil
	}
	c.loading = false

	if err != nil {
		c.errMsg = err.Error()
		return err
	}

	page := MapAPIDecors(resp.Items)
	c.items = page
	c.offset = len(page)
	c.total = resp.TotalOr(len(page))
	c.facets = aggregateFacets(resp.Facets, page)

	logger.FromCtx(ctx).Debug("catalog reset",
		zap.Uint64("generation", gen),
		zap.Int("count", len(page)),
		zap.Int("total", c.total),
	)
	return nil
}

// LoadMore appends the next page. It does nothing while a request is in
// flight or when everything reported by the server is already loaded.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.loading || c.offset >= c.total {
		c.mu.Unlock()
		return nil
	}
	offset := c.offset
	q := c.key.ListQuery(offset)
	gen := c.beginLocked()
	c.mu.Unlock()

	resp, err := c.src.ListDecors(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isLatest(gen) {
		c.discard(ctx, gen, "append")
		return nil
	}
	c.loading = false

	if err != nil {
		c.errMsg = err.Error()
		return err
	}

	page := MapAPIDecors(resp.Items)
	c.items = slices.Concat(c.items, page)
	c.offset = offset + len(page)
	c.total = resp.TotalOr(c.total)

	logger.FromCtx(ctx).Debug("catalog page appended",
		zap.Uint64("generation", gen),
		zap.Int("count", len(page)),
		zap.Int("offset", c.offset),
		zap.Int("total", c.total),
	)
	return nil
}

func (c *Controller) beginLocked() uint64 {
	c.loading = true
	c.errMsg = ""
	return c.seq.Add(1)
}

func (c *Controller) isLatest(gen uint64) bool {
	return gen == c.seq.Load()
}

func (c *Controller) discard(ctx context.Context, gen uint64, kind string) {
	metrics.StaleResponses.Inc()
	logger.FromCtx(ctx).Debug("stale catalog response discarded",
		zap.String("kind", kind),
		zap.Uint64("generation", gen),
		zap.Uint64("latest", c.seq.Load()),
	)
}

// ---------- reading ----------

func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset < c.total
}

func (c *Controller) Filters() FiltersState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters.Clone()
}

func (c *Controller) QueryKey() QueryKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return View{
		Items:   PostFilter(c.items, c.filters),
		Loaded:  len(c.items),
		Total:   c.total,
		Offset:  c.offset,
		Limit:   c.limit,
		HasMore: c.offset < c.total,
		Loading: c.loading,
		Error:   c.errMsg,
		Facets: Facets{
			StoneTypes: slices.Clone(c.facets.StoneTypes),
			Surfaces:   slices.Clone(c.facets.Surfaces),
			Brands:     slices.Clone(c.facets.Brands),
		},
		Filters: nonNilFilters(c.filters),
		Sort:    c.sort,
	}
}

func nonNilFilters(f FiltersState) FiltersState {
	out := f.Clone()
	if out.StoneTypes == nil {
		out.StoneTypes = []StoneType{}
	}
	if out.Surfaces == nil {
		out.Surfaces = []SurfaceType{}
	}
	if out.Brands == nil {
		out.Brands = []string{}
	}
	return out
}
