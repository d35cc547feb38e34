package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yoga28042005/carekart-server/internal/catalog/application"
	"github.com/yoga28042005/carekart-server/internal/catalog/domain"
)

const (
	categoriesKey   = "catalog:categories"
	categoryKeyFmt  = "catalog:category:%s"
	productKeyFmt   = "catalog:product:%d"
	missingSentinel = "__missing__"

	listTTL    = 5 * time.Minute
	productTTL = 10 * time.Minute
	missTTL    = 30 * time.Second
)

// CachedProductRepository is a cache-aside wrapper around the Postgres
// repository. Known-missing products are negatively cached so a storefront
// hammering a dead link does not hammer the database with it.
type CachedProductRepository struct {
	inner application.ProductRepository
	rdb   *redis.Client
	log   *slog.Logger
}

func NewCachedProductRepository(inner application.ProductRepository, rdb *redis.Client, log *slog.Logger) *CachedProductRepository {
	return &CachedProductRepository{inner: inner, rdb: rdb, log: log}
}

func (c *CachedProductRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if c.lookup(ctx, categoriesKey, &categories) {
		return categories, nil
	}
	categories, err := c.inner.Categories(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, categoriesKey, categories, listTTL)
	return categories, nil
}

func (c *CachedProductRepository) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	key := fmt.Sprintf(categoryKeyFmt, category)
	var products []domain.Product
	if c.lookup(ctx, key, &products) {
		return products, nil
	}
	products, err := c.inner.ByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, products, listTTL)
	return products, nil
}

func (c *CachedProductRepository) ByID(ctx context.Context, id int) (domain.Product, error) {
	key := fmt.Sprintf(productKeyFmt, id)

	raw, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		if raw == missingSentinel {
			return domain.Product{}, domain.ErrProductNotFound
		}
		var p domain.Product
		if uerr := json.Unmarshal([]byte(raw), &p); uerr == nil {
			return p, nil
		}
	case !errors.Is(err, redis.Nil):
		c.log.Warn("product cache read failed", "key", key, "error", err)
	}

	p, err := c.inner.ByID(ctx, id)
	if errors.Is(err, domain.ErrProductNotFound) {
		c.rdb.Set(ctx, key, missingSentinel, missTTL)
		return domain.Product{}, err
	}
	if err != nil {
		return domain.Product{}, err
	}
	c.store(ctx, key, p, productTTL)
	return p, nil
}

// lookup reports whether the key was found and decoded. Cache failures only
// log, the caller always has the database to fall back on.
func (c *CachedProductRepository) lookup(ctx context.Context, key string, out any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.log.Warn("catalog cache read failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warn("catalog cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CachedProductRepository) store(ctx context.Context, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.log.Warn("catalog cache write failed", "key", key, "error", err)
	}
}
