// Package nav builds the site navigation from vehicle classifications.
package nav

import (
	"context"
	"strconv"
	"time"

	"github.com/cse340/motors/internal/inventory"
	"github.com/cse340/motors/internal/web"
	"github.com/cse340/motors/pkg/cache"
)

// CacheKey is the cache entry holding the rendered navigation.
const CacheKey = "nav:classifications"

// DefaultTTL bounds how stale the cached navigation may get.
const DefaultTTL = 5 * time.Minute

// Lister returns the classifications in display order.
type Lister interface {
	Classifications(ctx context.Context) ([]inventory.Classification, error)
}

// Builder produces the navigation links. Safe for concurrent use.
type Builder struct {
	list  Lister
	cache cache.Cache[[]web.NavLink]
	ttl   time.Duration
}

// Option configures a Builder.
type Option func(*Builder)

// WithCache caches built links in c for ttl.
func WithCache(c cache.Cache[[]web.NavLink], ttl time.Duration) Option {
	return func(b *Builder) {
		b.cache = c
		if ttl > 0 {
			b.ttl = ttl
		}
	}
}

// New creates a Builder reading from list. Without WithCache every call queries list.
func New(list Lister, opts ...Option) *Builder {
	b := &Builder{list: list, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Links returns Home followed by one link per classification.
func (b *Builder) Links(ctx context.Context) ([]web.NavLink, error) {
	if b.cache == nil {
		return b.build(ctx)
	}
	return cache.GetOrSet(ctx, b.cache, CacheKey, b.ttl, b.build)
}

// Invalidate drops the cached links, e.g. after a classification is added.
func (b *Builder) Invalidate(ctx context.Context) error {
	if b.cache == nil {
		return nil
	}
	return b.cache.Delete(ctx, CacheKey)
}

func (b *Builder) build(ctx context.Context) ([]web.NavLink, error) {
	classes, err := b.list.Classifications(ctx)
	if err != nil {
		return nil, err
	}

	links := make([]web.NavLink, 0, len(classes)+1)
	links = append(links, web.NavLink{Href: "/", Label: "Home", Title: "Home page"})
	for _, c := range classes {
		links = append(links, web.NavLink{
			Href:  "/inv/type/" + strconv.Itoa(c.ID),
			Label: c.Name,
			Title: "See our inventory of " + c.Name + " vehicles",
		})
	}
	return links, nil
}
