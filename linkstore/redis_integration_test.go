//go:build integration

package linkstore

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startRedis boots a throwaway Redis container for the duration of
// the test.
func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})
}

func TestRedisStoreCreateGetDelRoundTrip(t *testing.T) {
	rdb := startRedis(t)
	defer rdb.Close()
	s := NewRedisStore(rdb, "geo.example")
	ctx := context.Background()
	url := gofakeit.URL()

	id, err := s.Create(ctx, CreateRequest{URL: url})
	require.NoError(t, err)

	link, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, url, link.URL)

	require.NoError(t, s.Del(ctx, id))

	_, err = s.Get(ctx, id)
	require.Error(t, err)
}
