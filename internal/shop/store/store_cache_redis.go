package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"passprove/internal/shop/metrics"
	"passprove/internal/shop/models"
	"passprove/pkg/domain"
)

const (
	apiKeyCachePrefix = "shop:key:"
	idCachePrefix     = "shop:id:"
)

// Source is the authoritative store the cache reads through to.
type Source interface {
	FindActiveByAPIKey(ctx context.Context, apiKey string) (*models.Shop, error)
	FindByID(ctx context.Context, id domain.ShopID) (*models.Shop, error)
}

// CachedStore fronts a Source with Redis. Only hits are cached; not-found and
// errors always go to the source. Redis failures degrade to the source.
type CachedStore struct {
	source  Source
	client  *redis.Client
	ttl     time.Duration
	group   singleflight.Group
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type CacheOption func(*CachedStore)

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *CachedStore) { c.logger = logger }
}

func WithCacheMetrics(m *metrics.Metrics) CacheOption {
	return func(c *CachedStore) { c.metrics = m }
}

func NewCached(source Source, client *redis.Client, ttl time.Duration, opts ...CacheOption) *CachedStore {
	c := &CachedStore{source: source, client: client, ttl: ttl, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// cachedShop is the Redis payload. It carries no API key: the key only
// appears hashed, as part of the cache key.
type cachedShop struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain"`
	Status    string    `json:"status"`
	Methods   []string  `json:"methods"`
	LogoURL   string    `json:"logo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FindActiveByAPIKey keys the cache by a digest so raw API keys never sit in Redis.
func (c *CachedStore) FindActiveByAPIKey(ctx context.Context, apiKey string) (*models.Shop, error) {
	sum := sha256.Sum256([]byte(apiKey))
	key := apiKeyCachePrefix + hex.EncodeToString(sum[:])
	return c.readThrough(ctx, key, func(ctx context.Context) (*models.Shop, error) {
		return c.source.FindActiveByAPIKey(ctx, apiKey)
	})
}

func (c *CachedStore) FindByID(ctx context.Context, id domain.ShopID) (*models.Shop, error) {
	return c.readThrough(ctx, idCachePrefix+id.String(), func(ctx context.Context) (*models.Shop, error) {
		return c.source.FindByID(ctx, id)
	})
}

func (c *CachedStore) readThrough(ctx context.Context, key string, load func(context.Context) (*models.Shop, error)) (*models.Shop, error) {
	if shop, ok := c.get(ctx, key); ok {
		c.incHit()
		return shop, nil
	}
	c.incMiss()

	v, err, _ := c.group.Do(key, func() (any, error) {
		shop, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, shop)
		return shop, nil
	})
	if err != nil {
		return nil, err
	}
	// Callers may mutate the result; never share the singleflight value.
	// Hits and misses look the same: no API key either way.
	cp := *v.(*models.Shop)
	cp.APIKey = ""
	return &cp, nil
}

func (c *CachedStore) get(ctx context.Context, key string) (*models.Shop, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.cacheFailure(ctx, "read", key, err)
		return nil, false
	}
	shop, err := decodeShop(raw)
	if err != nil {
		c.cacheFailure(ctx, "decode", key, err)
		return nil, false
	}
	return shop, true
}

func (c *CachedStore) set(ctx context.Context, key string, shop *models.Shop) {
	raw, err := encodeShop(shop)
	if err != nil {
		c.cacheFailure(ctx, "encode", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.cacheFailure(ctx, "write", key, err)
	}
}

func (c *CachedStore) cacheFailure(ctx context.Context, op, key string, err error) {
	if c.metrics != nil {
		c.metrics.IncCacheError()
	}
	c.logger.WarnContext(ctx, "shop cache "+op+" failed", "key", key, "error", err)
}

func (c *CachedStore) incHit() {
	if c.metrics != nil {
		c.metrics.IncCacheHit()
	}
}

func (c *CachedStore) incMiss() {
	if c.metrics != nil {
		c.metrics.IncCacheMiss()
	}
}

func encodeShop(shop *models.Shop) ([]byte, error) {
	methods := make([]string, 0, len(shop.Methods))
	for _, m := range shop.Methods {
		methods = append(methods, m.String())
	}
	return json.Marshal(cachedShop{
		ID:        shop.ID.String(),
		Name:      shop.Name,
		Domain:    shop.Domain,
		Status:    string(shop.Status),
		Methods:   methods,
		LogoURL:   shop.LogoURL,
		CreatedAt: shop.CreatedAt,
		UpdatedAt: shop.UpdatedAt,
	})
}

func decodeShop(raw []byte) (*models.Shop, error) {
	var cs cachedShop
	if err := json.Unmarshal(raw, &cs); err != nil {
		return nil, err
	}
	id, err := domain.ParseShopID(cs.ID)
	if err != nil {
		return nil, fmt.Errorf("cached shop id: %w", err)
	}
	methods, err := domain.ParseMethods(cs.Methods)
	if err != nil {
		return nil, fmt.Errorf("cached shop methods: %w", err)
	}
	return &models.Shop{
		ID:        id,
		Name:      cs.Name,
		Domain:    cs.Domain,
		Status:    models.ShopStatus(cs.Status),
		Methods:   methods,
		LogoURL:   cs.LogoURL,
		CreatedAt: cs.CreatedAt,
		UpdatedAt: cs.UpdatedAt,
	}, nil
}
