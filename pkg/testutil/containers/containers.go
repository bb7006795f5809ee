//go:build integration

// Package containers provides testcontainers-based fixtures for integration tests.
package containers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RedisContainer wraps a throwaway Redis instance.
type RedisContainer struct {
	Container testcontainers.Container
	Addr      string
}

var (
	redisOnce     sync.Once
	sharedRedis   *RedisContainer
	redisStartErr error
)

// GetRedis starts one Redis container per test binary and reuses it.
// Ryuk removes the container when the process exits.
func GetRedis(t *testing.T) *RedisContainer {
	t.Helper()

	redisOnce.Do(func() {
		ctx := context.Background()
		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7-alpine",
				ExposedPorts: []string{"6379/tcp"},
				WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
			},
			Started: true,
		})
		if err != nil {
			redisStartErr = err
			return
		}
		endpoint, err := container.Endpoint(ctx, "")
		if err != nil {
			_ = container.Terminate(ctx)
			redisStartErr = err
			return
		}
		sharedRedis = &RedisContainer{Container: container, Addr: endpoint}
	})

	if redisStartErr != nil {
		t.Fatalf("failed to start redis container: %v", redisStartErr)
	}
	return sharedRedis
}
