package middleware

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// BrowserCacheRoutes are the public route prefixes browsers may keep, and for how long.
// Upload names are random so stored images never change.
var BrowserCacheRoutes = map[string]time.Duration{
	"/api/specializations": 10 * time.Minute,
	"/api/cities":          10 * time.Minute,
	"/api/news":            time.Minute,
	"/api/doctors":         time.Minute,
	"/uploads":             24 * time.Hour,
}

const revalidate = "private, no-cache, must-revalidate"

// CacheControl sets Cache-Control from routes. Signed-in and non-GET requests
// are never cached by shared caches.
func CacheControl(routes map[string]time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value := revalidate
			if readOnly(r) && r.Header.Get("Authorization") == "" {
				if ttl, ok := routeTTL(routes, r.URL.Path); ok {
					value = fmt.Sprintf("public, max-age=%d", int(ttl.Seconds()))
				}
			}
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}

// ETag answers If-None-Match with 304 for unchanged 200 responses
func ETag(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !readOnly(r) {
			next.ServeHTTP(w, r)
			return
		}

		buf := &bufferedResponse{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(buf, r)

		if buf.status != http.StatusOK {
			buf.flush()
			return
		}

		sum := sha256.Sum256(buf.body.Bytes())
		tag := `"` + hex.EncodeToString(sum[:16]) + `"`
		w.Header().Set("ETag", tag)
		if matchesETag(r.Header.Get("If-None-Match"), tag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		buf.flush()
	})
}

// matchesETag reports whether an If-None-Match header lists tag. Weak
// validators compare equal to their strong form.
func matchesETag(header, tag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == tag {
			return true
		}
	}
	return false
}

// bufferedResponse holds the body and status until the handler returns
type bufferedResponse struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (b *bufferedResponse) WriteHeader(status int) { b.status = status }

func (b *bufferedResponse) Write(p []byte) (int, error) { return b.body.Write(p) }

func (b *bufferedResponse) flush() {
	b.ResponseWriter.WriteHeader(b.status)
	b.ResponseWriter.Write(b.body.Bytes())
}

var gzipPool = sync.Pool{
	New: func() any {
		gz, _ := gzip.NewWriterLevel(io.Discard, gzip.DefaultCompression)
		return gz
	},
}

// Compression gzips JSON responses for clients that accept it. Uploaded
// images are already compressed and pass through.
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") || strings.HasPrefix(r.URL.Path, "/uploads/") {
			next.ServeHTTP(w, r)
			return
		}

		gz := gzipPool.Get().(*gzip.Writer)
		defer gzipPool.Put(gz)
		gz.Reset(w)
		defer gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")
		w.Header().Del("Content-Length")

		next.ServeHTTP(&gzipResponse{ResponseWriter: w, gz: gz}, r)
	})
}

type gzipResponse struct {
	http.ResponseWriter
	gz *gzip.Writer
}

func (g *gzipResponse) Write(p []byte) (int, error) { return g.gz.Write(p) }

func (g *gzipResponse) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := g.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hj.Hijack()
}

func readOnly(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}

// ResponseOptimization applies cache headers, ETags and compression, in that order
func ResponseOptimization(next http.Handler) http.Handler {
	return CacheControl(BrowserCacheRoutes)(ETag(Compression(next)))
}
