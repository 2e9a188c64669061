package decor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"edenstone/internal/logger"
	"edenstone/internal/metrics"

	"go.uber.org/zap"
)

const (
	DefaultDetailTimeout = 12 * time.Second
	detailSearchLimit    = 24
)

// DetailFetcher resolves a single decor by slug through the search endpoint.
type DetailFetcher struct {
	src     Source
	timeout time.Duration
}

func NewDetailFetcher(src Source, timeout time.Duration) *DetailFetcher {
	if timeout <= 0 {
		timeout = DefaultDetailTimeout
	}
	return &DetailFetcher{src: src, timeout: timeout}
}

// FetchBySlug searches by slug and returns the item whose slug matches
// exactly; the search itself may return partial matches. Cancelling ctx
// aborts the request.
func (d *DetailFetcher) FetchBySlug(ctx context.Context, slug string) (*DecorItem, error) {
	log := logger.FromCtx(ctx).With(zap.String("slug", slug))

	if strings.TrimSpace(slug) == "" {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	resp, err := d.src.ListDecors(ctx, ListQuery{
		Limit:  detailSearchLimit,
		Offset: 0,
		Q:      slug,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Warn("decor detail request timed out", zap.Duration("timeout", d.timeout))
			return nil, fmt.Errorf("%w after %s: %w", ErrDetailTimeout, d.timeout, err)
		}
		log.Error("decor detail request failed", zap.Error(err))
		return nil, err
	}

	for _, it := range resp.Items {
		if it.Slug == slug {
			item := MapAPIDecor(it)
			return &item, nil
		}
	}

	metrics.DetailNotFound.Inc()
	log.Info("decor not found", zap.Int("candidates", len(resp.Items)))
	return nil, ErrNotFound
}
