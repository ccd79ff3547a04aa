package cache_fx

import (
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"healthkeeper/internal/cache"
	"healthkeeper/internal/infra"
)

var Module = fx.Provide(
	provideCache)

// provideCache prefers Redis when REDIS_URL is set, falling back to the
// in-memory cache (with a logged warning) so a missing Redis never blocks
// startup.
func provideCache(cfg *infra.Config) cache.Cache {
	if cfg.RedisURL != "" {
		c, err := cache.NewRedisCache(cfg.RedisURL)
		if err == nil {
			return c
		}
		log.Warn().Err(err).Msg("redis unavailable, using in-memory cache")
	}
	return cache.NewMemoryCache()
}
