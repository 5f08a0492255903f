// Package memkv is an in-memory fake of the Redis commands linkstore
// needs, for unit tests that don't require a real server.
package memkv

import (
	"context"
	"sync"
	"time"

	"github.com/gobwas/glob"
)

type entry struct {
	value     string
	expiresAt time.Time // zero means no TTL
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Client is a mutex-guarded in-memory key/value store implementing
// the subset of Redis commands linkstore.Store needs.
type Client struct {
	mu   sync.Mutex
	data map[string]entry
}

// New returns an empty Client.
func New() *Client {
	return &Client{data: make(map[string]entry)}
}

func (c *Client) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.getInt(key) + 1
	c.data[key] = entry{value: itoa(n)}
	return n, nil
}

func (c *Client) Decr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.getInt(key) - 1
	c.data[key] = entry{value: itoa(n)}
	return n, nil
}

func (c *Client) getInt(key string) int64 {
	e, ok := c.data[key]
	if !ok || e.expired(time.Now()) {
		return 0
	}
	return atoi(e.value)
}

func (c *Client) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.data[key]
	if !ok || e.expired(time.Now()) {
		return "", false, nil
	}
	return e.value, true, nil
}

func (c *Client) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.data[key]; ok && !e.expired(time.Now()) {
		return false, nil
	}
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.data[key] = entry{value: value, expiresAt: exp}
	return true, nil
}

func (c *Client) Del(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.data[key]
	if !ok || e.expired(time.Now()) {
		return 0, nil
	}
	delete(c.data, key)
	return 1, nil
}

func (c *Client) ScanMatch(_ context.Context, pattern string) ([]string, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	var keys []string
	for k, e := range c.data {
		if e.expired(now) {
			continue
		}
		if g.Match(k) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (c *Client) MGet(_ context.Context, keys []string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	out := make([]string, len(keys))
	for i, k := range keys {
		if e, ok := c.data[k]; ok && !e.expired(now) {
			out[i] = e.value
		}
	}
	return out, nil
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func atoi(s string) int64 {
	var n int64
	neg := false
	i := 0
	if len(s) > 0 && s[0] == '-' {
		neg = true
		i = 1
	}
	for ; i < len(s); i++ {
		n = n*10 + int64(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n
}
