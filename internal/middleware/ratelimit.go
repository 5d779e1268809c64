// Package middleware holds gin middleware specific to the City Insight API.
package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type window struct {
	count     int
	expiresAt time.Time
}

// RateLimiter allows maxRequests per client IP within each window. Expired
// entries are swept every window until done is closed. maxRequests <= 0
// disables limiting.
func RateLimiter(maxRequests int, period time.Duration, done <-chan struct{}) gin.HandlerFunc {
	if maxRequests <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	var mu sync.Mutex
	entries := make(map[string]*window)

	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				mu.Lock()
				for ip, w := range entries {
					if now.After(w.expiresAt) {
						delete(entries, ip)
					}
				}
				mu.Unlock()
			}
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		w, ok := entries[ip]
		if !ok || now.After(w.expiresAt) {
			entries[ip] = &window{count: 1, expiresAt: now.Add(period)}
			mu.Unlock()
			c.Next()
			return
		}
		w.count++
		over := w.count > maxRequests
		retryAfter := w.expiresAt.Sub(now)
		mu.Unlock()

		if over {
			c.Header("Retry-After", formatSeconds(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many messages. Please slow down.",
			})
			return
		}
		c.Next()
	}
}

func formatSeconds(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
