// README: Redis-backed cache of geocoding result sets.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const searchKeyPrefix = "geocode:search:%s"

// Cache stores whole result sets keyed by query text with a TTL. Lookups
// are best effort: any Redis failure behaves like a miss.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(redis *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Cache{redis: redis, ttl: ttl}
}

func searchKey(text string) string {
	return fmt.Sprintf(searchKeyPrefix, text)
}

func (c *Cache) Get(ctx context.Context, text string) ([]Candidate, bool) {
	raw, err := c.redis.Get(ctx, searchKey(text)).Bytes()
	if err != nil {
		return nil, false
	}
	var candidates []Candidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, false
	}
	return candidates, true
}

func (c *Cache) Put(ctx context.Context, text string, candidates []Candidate) {
	raw, err := json.Marshal(candidates)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, searchKey(text), raw, c.ttl).Err()
}

// CachedGeocoder layers a Cache over another Geocoder. Only successful
// searches are cached; errors always come from the live client.
type CachedGeocoder struct {
	client Geocoder
	cache  *Cache
}

func NewCachedGeocoder(client Geocoder, cache *Cache) *CachedGeocoder {
	return &CachedGeocoder{client: client, cache: cache}
}

func (g *CachedGeocoder) Search(ctx context.Context, text string) ([]Candidate, error) {
	if candidates, ok := g.cache.Get(ctx, text); ok {
		return candidates, nil
	}
	candidates, err := g.client.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(candidates) > 0 {
		g.cache.Put(ctx, text, candidates)
	}
	return candidates, nil
}
