package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type cacheEntry struct {
	Content    []byte
	Expiration time.Time
}

// ResponseCache keeps 200 responses of GET routes in memory
type ResponseCache struct {
	mu         sync.RWMutex
	items      map[string]cacheEntry
	expiration time.Duration
	now        func() time.Time
}

// NewResponseCache creates a cache whose entries live for expiration
func NewResponseCache(expiration time.Duration) *ResponseCache {
	if expiration <= 0 {
		expiration = 5 * time.Minute
	}
	return &ResponseCache{
		items:      make(map[string]cacheEntry),
		expiration: expiration,
		now:        time.Now,
	}
}

// cacheKey hashes the path with its sorted query parameters
func cacheKey(c *gin.Context) string {
	query := c.Request.URL.Query()
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(c.Request.URL.Path)
	b.WriteByte('?')
	for _, k := range keys {
		values := query[k]
		sort.Strings(values)
		for _, v := range values {
			b.WriteString(k + "=" + v + "&")
		}
	}

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Cache serves GET requests from the cache and stores 200 responses
func (rc *ResponseCache) Cache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c)
		rc.mu.RLock()
		entry, found := rc.items[key]
		rc.mu.RUnlock()

		if found && entry.Expiration.After(rc.now()) {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", entry.Content)
			c.Abort()
			return
		}

		writer := &responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Next()

		if writer.Status() == http.StatusOK {
			rc.mu.Lock()
			rc.items[key] = cacheEntry{
				Content:    writer.body.Bytes(),
				Expiration: rc.now().Add(rc.expiration),
			}
			rc.mu.Unlock()
		}
	}
}

// Invalidate purges the cache after a successful request
func (rc *ResponseCache) Invalidate() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if status := c.Writer.Status(); status >= 200 && status < 300 {
			rc.Purge()
		}
	}
}

// Purge drops every entry
func (rc *ResponseCache) Purge() {
	rc.mu.Lock()
	rc.items = make(map[string]cacheEntry)
	rc.mu.Unlock()
}

// Stats reports entry counts
func (rc *ResponseCache) Stats() map[string]interface{} {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	now := rc.now()
	expired := 0
	size := 0
	for _, entry := range rc.items {
		if entry.Expiration.Before(now) {
			expired++
		}
		size += len(entry.Content)
	}
	return map[string]interface{}{
		"total_items":   len(rc.items),
		"expired_items": expired,
		"total_bytes":   size,
	}
}

// responseWriter copies the body while writing it
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
