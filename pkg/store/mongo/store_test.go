package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/store/mongo"
)

func TestStore(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, mongo.Config{
		ConnectionURL:  uri,
		ConnectTimeout: 10 * time.Second,
		MaxPoolSize:    5,
		RetryAttempts:  5,
		RetryInterval:  200 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	require.NoError(t, mongo.Healthcheck(client)(ctx))

	s := mongo.New(client.Database("otpvault_test").Collection("accounts"))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	accounts := []account.Account{
		{Name: "zed", Secret: "JBSWY3DPEHPK3PXP", Note: "Example"},
		{Name: "alice", Secret: "MZXW6"},
	}
	require.NoError(t, s.Save(ctx, accounts))

	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, accounts, got)

	require.NoError(t, s.Save(ctx, nil))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
