package config

import (
    "time"
)

// CacheConfig defines settings for the response cache middleware.  When
// Enabled is false or no Redis client is configured, caching is disabled
// and the middleware becomes a passthrough.  Only GET responses are cached;
// mutations never touch the cache, so entries simply age out after TTL.
type CacheConfig struct {
    Enabled      bool          // master switch for the middleware
    TTL          time.Duration // lifetime of a cache entry
    Prefix       string        // Redis key namespace
    MaxBodyBytes int           // responses larger than this are not cached
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      getenv("CACHE_ENABLED", "true") == "true",
        TTL:          parseDur(getenv("CACHE_TTL", "30s")),
        Prefix:       getenv("CACHE_PREFIX", "cache"),
        MaxBodyBytes: getenvInt("CACHE_MAX_BODY_BYTES", 1048576),
    }
}

func parseDur(s string) time.Duration {
    d, err := time.ParseDuration(s)
    if err != nil {
        return time.Second
    }
    return d
}
