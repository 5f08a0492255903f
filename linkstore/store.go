// Package linkstore implements short-link CRUD over a Redis-shaped
// key/value backend: collision-avoiding id generation on create, and
// cursor-based listing.
package linkstore

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"go.uber.org/multierr"

	"github.com/harrybrwn/geocore/apierr"
	"github.com/harrybrwn/geocore/nanoid"
)

const (
	linkPrefix     = "link:"
	countKey       = "meta:count"
	defaultTTL     = 7 * 24 * time.Hour
	maxIDCollision = 32
	collisionTgt   = 1e-9
)

// CreateRequest is the client-supplied payload for Store.Create.
type CreateRequest struct {
	URL         string `json:"url"`
	Expires     *int64 `json:"expires,omitempty"`
	AccessLimit *int32 `json:"access_limit,omitempty"`
}

// Link is the persisted record behind a short id.
type Link struct {
	URL      string `json:"url"`
	Accesses *int32 `json:"accesses,omitempty"`
}

// ListItem pairs a persisted Link with the key it was stored under.
type ListItem struct {
	Link    Link   `json:"link"`
	Key     string `json:"key"`
	Expires *int64 `json:"expires"`
}

// kv is the minimal key/value surface Store is built on, so it can
// run against either a real Redis client or an in-memory fake.
type kv interface {
	Incr(ctx context.Context, key string) (int64, error)
	Decr(ctx context.Context, key string) (int64, error)
	Get(ctx context.Context, key string) (string, bool, error)
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) (int64, error)
	ScanMatch(ctx context.Context, pattern string) ([]string, error)
	MGet(ctx context.Context, keys []string) ([]string, error)
}

// Store implements link create/read/delete/list over a kv backend.
type Store struct {
	backend kv
	domain  string
}

func newStore(backend kv, domain string) *Store {
	return &Store{backend: backend, domain: domain}
}

// Create validates req.URL, reserves an id sized by the current
// population, and persists the link with NX/EX semantics, retrying on
// id collision.
func (s *Store) Create(ctx context.Context, req CreateRequest) (string, error) {
	u, err := url.Parse(req.URL)
	if err != nil || u.Host == "" {
		return "", apierr.BadRequestf("unparseable url")
	}
	if u.Hostname() == s.domain {
		return "", apierr.Conflictf("cannot self link")
	}

	n, err := s.backend.Incr(ctx, countKey)
	if err != nil {
		return "", apierr.Internalf(err.Error())
	}
	size := nanoid.CalcIDSize(n, collisionTgt)

	ttl := defaultTTL
	if req.Expires != nil {
		ttl = time.Duration(*req.Expires) * time.Second
	}

	link := Link{URL: req.URL, Accesses: req.AccessLimit}
	body, err := json.Marshal(link)
	if err != nil {
		return "", apierr.Internalf(err.Error())
	}

	for i := 0; i < maxIDCollision; i++ {
		id, err := nanoid.Gen(size)
		if err != nil {
			return "", apierr.Internalf(err.Error())
		}
		ok, err := s.backend.SetNX(ctx, linkPrefix+id, string(body), ttl)
		if err != nil {
			return "", apierr.Internalf(err.Error())
		}
		if ok {
			return id, nil
		}
	}
	return "", apierr.Internalf("exhausted id collision retries")
}

// Get fetches and decodes the link stored under id.
func (s *Store) Get(ctx context.Context, id string) (*Link, error) {
	raw, ok, err := s.backend.Get(ctx, linkPrefix+id)
	if err != nil {
		return nil, apierr.Internalf(err.Error())
	}
	if !ok {
		return nil, apierr.NotFoundf("link not found for id")
	}
	var link Link
	if err := json.Unmarshal([]byte(raw), &link); err != nil {
		return nil, apierr.Internalf(err.Error())
	}
	return &link, nil
}

// Del removes id's link, decrementing the population counter on
// success.
func (s *Store) Del(ctx context.Context, id string) error {
	n, err := s.backend.Del(ctx, linkPrefix+id)
	if err != nil {
		return apierr.Internalf(err.Error())
	}
	switch n {
	case 1:
		if _, err := s.backend.Decr(ctx, countKey); err != nil {
			return apierr.Internalf(err.Error())
		}
		return nil
	case 0:
		return apierr.NotFoundf("link not found for id")
	default:
		return apierr.Internalf("unexpected delete reply")
	}
}

// List scans all link keys and returns their decoded records. TTLs
// are not fetched. Ordering is scan order, not guaranteed stable.
func (s *Store) List(ctx context.Context) ([]ListItem, error) {
	keys, err := s.backend.ScanMatch(ctx, linkPrefix+"*")
	if err != nil {
		return nil, apierr.Internalf(err.Error())
	}
	if len(keys) == 0 {
		return nil, nil
	}
	values, err := s.backend.MGet(ctx, keys)
	if err != nil {
		return nil, apierr.Internalf(err.Error())
	}
	var errs error
	items := make([]ListItem, 0, len(keys))
	for i, key := range keys {
		if i >= len(values) || values[i] == "" {
			continue
		}
		var link Link
		if err := json.Unmarshal([]byte(values[i]), &link); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		items = append(items, ListItem{Link: link, Key: key})
	}
	if errs != nil {
		return items, apierr.Internalf(errs.Error())
	}
	return items, nil
}
