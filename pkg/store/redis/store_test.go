package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/store/redis"
)

func TestStore(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := redis.Connect(ctx, redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  5,
		RetryInterval:  100 * time.Millisecond,
		ConnectTimeout: 30 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, redis.Healthcheck(client)(ctx))

	s := redis.New(client, "test:accounts")

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	accounts := []account.Account{
		{Name: "alice", Secret: "JBSWY3DPEHPK3PXP", Note: "Example"},
		{Name: "bob", Secret: "MZXW6"},
	}
	require.NoError(t, s.Save(ctx, accounts))

	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, accounts, got)

	require.NoError(t, s.Save(ctx, accounts[1:]))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, accounts[1:], got)

	require.NoError(t, s.Save(ctx, nil))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConnectInvalidURL(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "not a url",
		ConnectTimeout: time.Second,
	})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
}
