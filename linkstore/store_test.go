package linkstore

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrybrwn/geocore/apierr"
	"github.com/harrybrwn/geocore/linkstore/memkv"
)

func newTestStore() *Store {
	return NewMemStore(memkv.New(), "geo.example")
}

func TestCreateGetDelRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	url := gofakeit.URL()

	id, err := s.Create(ctx, CreateRequest{URL: url})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	link, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, url, link.URL)

	require.NoError(t, s.Del(ctx, id))

	_, err = s.Get(ctx, id)
	require.Error(t, err)
	assert.Equal(t, apierr.NotFound, apierr.From(err).Code)
}

func TestCreateRejectsSelfLink(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	_, err := s.Create(ctx, CreateRequest{URL: "https://geo.example/x"})
	require.Error(t, err)
	assert.Equal(t, apierr.Conflict, apierr.From(err).Code)
}

func TestCreateRejectsUnparseableURL(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	_, err := s.Create(ctx, CreateRequest{URL: "not a url"})
	require.Error(t, err)
	assert.Equal(t, apierr.BadRequest, apierr.From(err).Code)
}

func TestDelMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	err := s.Del(ctx, "doesnotexist")
	require.Error(t, err)
	assert.Equal(t, apierr.NotFound, apierr.From(err).Code)
}

func TestGetMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	_, err := s.Get(ctx, "doesnotexist")
	require.Error(t, err)
	assert.Equal(t, apierr.NotFound, apierr.From(err).Code)
}

func TestListReturnsAllCreated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	urls := []string{gofakeit.URL(), gofakeit.URL(), gofakeit.URL()}
	for _, u := range urls {
		_, err := s.Create(ctx, CreateRequest{URL: u})
		require.NoError(t, err)
	}
	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(urls))
	got := make(map[string]bool, len(items))
	for _, it := range items {
		got[it.Link.URL] = true
	}
	for _, u := range urls {
		assert.True(t, got[u], "missing %s in list", u)
	}
}

func TestCreateIDMeetsMinimumSize(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	id, err := s.Create(ctx, CreateRequest{URL: gofakeit.URL()})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(id), 3)
}
