package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/json"
    "fmt"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/lost-and-found/internal/config"
)

// cachedResponse is the envelope stored in Redis for one cached response.
// The body round-trips through base64 by virtue of being a []byte in JSON.
type cachedResponse struct {
    Status      int    `json:"status"`
    ContentType string `json:"content_type"`
    Body        []byte `json:"body"`
}

// captureWriter captures the response body while forwarding to the client,
// so a successful response can be stored after the handler ran.  Once the
// body exceeds the capture limit the buffer is dropped entirely; a partial
// body must never reach the cache.
type captureWriter struct {
    http.ResponseWriter
    status   int
    buf      bytes.Buffer
    limit    int
    overflow bool
}

func (cw *captureWriter) WriteHeader(code int) {
    cw.status = code
    cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
    if !cw.overflow {
        if cw.buf.Len()+len(b) > cw.limit {
            cw.overflow = true
            cw.buf.Reset()
        } else {
            cw.buf.Write(b)
        }
    }
    return cw.ResponseWriter.Write(b)
}

// cacheKey derives a stable Redis key from the route and raw query string.
func cacheKey(prefix string, c echo.Context) string {
    sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
    return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// ResponseCache returns an Echo middleware that caches successful GET
// responses in Redis for cfg.TTL.  With caching disabled or no Redis
// client available it degrades to a passthrough.  Mutating routes should
// not be wrapped; entries are never invalidated, only expired.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 30 * time.Second
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }

            ctx := c.Request().Context()
            key := cacheKey(cfg.Prefix, c)

            // Serve from cache on hit.
            if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
                var cr cachedResponse
                if json.Unmarshal(raw, &cr) == nil {
                    c.Response().Header().Set(echo.HeaderContentType, cr.ContentType)
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(cr.Status)
                    _, _ = c.Response().Write(cr.Body)
                    return nil
                }
            }

            // Miss: run the handler while capturing its output.
            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }

            if cw.status == http.StatusOK && !cw.overflow {
                payload, err := json.Marshal(cachedResponse{
                    Status:      cw.status,
                    ContentType: c.Response().Header().Get(echo.HeaderContentType),
                    Body:        cw.buf.Bytes(),
                })
                if err == nil {
                    // Detached context: the client response is already
                    // written, the store must not be cancelled with it.
                    _ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
                }
            }
            return nil
        }
    }
}
