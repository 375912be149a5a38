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

	"github.com/iliyamo/conference-registration/internal/config"
)

// cachedResponse is the redis payload: enough to replay the response with
// the same status, content type and body bytes.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// captureWriter tees the response body while forwarding it to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	limit  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 || cw.buf.Len()+len(b) <= cw.limit {
		cw.buf.Write(b)
	} else {
		cw.buf.Reset() // over limit: do not cache a truncated body
		cw.limit = -1
	}
	return cw.ResponseWriter.Write(b)
}

// NewRedisCache caches successful GET responses of the routes it wraps.
// Only the public content endpoints are registered behind it; fee and
// early-bird reads are deliberately never cached because the early-bird
// window is a live predicate the form must observe fresh on every request.
// With no redis client the middleware is a no-op.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r := c.Request()
			if r.Method != http.MethodGet {
				return next(c)
			}

			sum := sha1.Sum([]byte(c.Path() + "?" + r.URL.RawQuery))
			key := fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])

			ctx := r.Context()
			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cached cachedResponse
				if json.Unmarshal(bs, &cached) == nil {
					c.Response().Header().Set(echo.HeaderContentType, cached.ContentType)
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(cached.Status)
					_, werr := c.Response().Write(cached.Body)
					return werr
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if cw.status == http.StatusOK && cw.limit >= 0 {
				payload, err := json.Marshal(cachedResponse{
					Status:      cw.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        cw.buf.Bytes(),
				})
				if err == nil {
					// Detached context: the client may be gone, the cache write still counts.
					_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
				}
			}
			return nil
		}
	}
}
