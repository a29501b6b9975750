package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/observability"
)

const responseCachePrefix = "http:cache:"

// DefaultCacheRoutes covers the public lookup endpoints
var DefaultCacheRoutes = map[string]time.Duration{
	"/api/specializations": 10 * time.Minute,
	"/api/cities":          10 * time.Minute,
	"/api/news":            time.Minute,
}

// ResponseCache caches anonymous GET responses of the configured route prefixes
type ResponseCache struct {
	cache   providers.CacheProvider
	routes  map[string]time.Duration
	metrics *observability.Metrics
}

// NewResponseCache creates a response cache. A nil cache disables it.
func NewResponseCache(cache providers.CacheProvider, routes map[string]time.Duration, metrics *observability.Metrics) *ResponseCache {
	return &ResponseCache{cache: cache, routes: routes, metrics: metrics}
}

// Middleware returns the cache middleware handler
func (m *ResponseCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Responses for signed-in callers depend on their role
		if m.cache == nil || r.Method != http.MethodGet || r.Header.Get("Authorization") != "" {
			next.ServeHTTP(w, r)
			return
		}
		ttl, ok := routeTTL(m.routes, r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		key := cacheKey(r)
		logger := observability.LoggerFromContext(ctx)

		cached, err := m.cache.Get(ctx, key)
		if err == nil {
			observability.RecordCacheHit(ctx, m.metrics, r.URL.Path)
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
		if !errors.Is(err, providers.ErrCacheMiss) {
			logger.Warn().Err(err).Str("key", key).Msg("response cache read failed")
		}
		observability.RecordCacheMiss(ctx, m.metrics, r.URL.Path)
		w.Header().Set("X-Cache", "MISS")

		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK, body: &bytes.Buffer{}}
		next.ServeHTTP(rec, r)

		if rec.statusCode == http.StatusOK && rec.body.Len() > 0 {
			if err := m.cache.Set(ctx, key, rec.body.Bytes(), ttl); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("failed to cache response")
			}
		}
	})
}

// Invalidate drops every cached response
func (m *ResponseCache) Invalidate(ctx context.Context) error {
	if m.cache == nil {
		return nil
	}
	return m.cache.DeletePrefix(ctx, responseCachePrefix)
}

// routeTTL returns the TTL of the longest prefix in routes matching path
func routeTTL(routes map[string]time.Duration, path string) (time.Duration, bool) {
	var (
		best    string
		ttl     time.Duration
		matched bool
	)
	for prefix, d := range routes {
		if (path == prefix || strings.HasPrefix(path, prefix+"/")) && len(prefix) > len(best) {
			best, ttl, matched = prefix, d, true
		}
	}
	return ttl, matched
}

func cacheKey(r *http.Request) string {
	key := r.URL.Path
	if r.URL.RawQuery != "" {
		key += "?" + r.URL.Query().Encode()
	}
	hash := sha256.Sum256([]byte(key))
	return responseCachePrefix + hex.EncodeToString(hash[:])
}

// responseRecorder writes through to the client and keeps a copy of the body
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
	written    bool
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if !r.written {
		r.statusCode = statusCode
		r.ResponseWriter.WriteHeader(statusCode)
		r.written = true
	}
}

func (r *responseRecorder) Write(data []byte) (int, error) {
	if !r.written {
		r.WriteHeader(http.StatusOK)
	}
	r.body.Write(data)
	return r.ResponseWriter.Write(data)
}
