package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// RateLimiter creates a per-IP rate limiting middleware allowing the
// given number of requests per window.
func RateLimiter(requests int, window time.Duration) fiber.Handler {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		clients = make(map[string]*client)
		mu      sync.Mutex
	)

	// Stale entries are pruned inline once the map grows; no background
	// goroutine to leak.
	prune := func(now time.Time) {
		if len(clients) < 1024 {
			return
		}
		for ip, c := range clients {
			if now.Sub(c.lastSeen) > 10*time.Minute {
				delete(clients, ip)
			}
		}
	}

	return func(c *fiber.Ctx) error {
		ip := c.IP()
		now := time.Now()

		mu.Lock()
		prune(now)
		cl, exists := clients[ip]
		if !exists {
			cl = &client{limiter: rate.NewLimiter(rate.Every(window/time.Duration(requests)), requests)}
			clients[ip] = cl
		}
		cl.lastSeen = now
		mu.Unlock()

		if !cl.limiter.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		}

		return c.Next()
	}
}
