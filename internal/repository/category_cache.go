package repository

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// CategoryLookup resolves a category name to its id
type CategoryLookup interface {
	FindCategoryIDByName(ctx context.Context, name string) (string, error)
}

// CategoryCache memoizes successful category lookups. Misses are not cached so a
// newly created category becomes visible on the next request.
type CategoryCache struct {
	lookup CategoryLookup
	cache  *cache.Cache
}

func NewCategoryCache(lookup CategoryLookup, ttl time.Duration) *CategoryCache {
	return &CategoryCache{
		lookup: lookup,
		cache:  cache.New(ttl, 2*ttl),
	}
}

func (c *CategoryCache) FindCategoryIDByName(ctx context.Context, name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := c.cache.Get(key); ok {
		return id.(string), nil
	}

	id, err := c.lookup.FindCategoryIDByName(ctx, name)
	if err != nil {
		return "", err
	}

	c.cache.SetDefault(key, id)
	return id, nil
}
