package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/geocheckin/internal/client/api"
	"github.com/iudanet/geocheckin/internal/client/storage"
	"github.com/iudanet/geocheckin/internal/models"
	pkgapi "github.com/iudanet/geocheckin/pkg/api"
)

func TestLogin_SavesSession(t *testing.T) {
	t.Setenv(TokenEnv, "")
	client := &api.ClientAPIMock{
		WhoAmIFunc: func(ctx context.Context) (*pkgapi.WhoAmIResponse, error) {
			return &pkgapi.WhoAmIResponse{ShipperID: "shipper-7", ExpiresAt: 4102444800}, nil
		},
	}
	env := setupCli(t, client, Tokens{FromArgs: "good-token"})

	require.NoError(t, env.cli.Run(context.Background(), "login", nil))

	authData, err := env.store.GetAuth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "shipper-7", authData.ShipperID)
	assert.Equal(t, testServerURL, authData.ServerURL)
	assert.Equal(t, "good-token", authData.AccessToken)
	assert.Equal(t, int64(4102444800), authData.ExpiresAt)

	assert.Equal(t, []string{"good-token"}, env.usedTokens())
	assert.Contains(t, env.out.String(), "Login successful")
	assert.Contains(t, env.out.String(), "Shipper: shipper-7")
}

func TestLogin_Rejected(t *testing.T) {
	t.Setenv(TokenEnv, "")
	client := &api.ClientAPIMock{
		WhoAmIFunc: func(ctx context.Context) (*pkgapi.WhoAmIResponse, error) {
			return nil, &api.StatusError{StatusCode: 401, Message: "invalid token"}
		},
	}
	env := setupCli(t, client, Tokens{FromArgs: "bad-token"})

	err := env.cli.Run(context.Background(), "login", nil)
	require.Error(t, err)
	assert.True(t, api.IsClientError(err))

	_, err = env.store.GetAuth(context.Background())
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}

func TestLogout(t *testing.T) {
	t.Run("not logged in", func(t *testing.T) {
		env := setupCli(t, &api.ClientAPIMock{}, Tokens{})
		require.NoError(t, env.cli.Run(context.Background(), "logout", nil))
		assert.Contains(t, env.out.String(), "Not logged in.")
	})

	t.Run("keeps queue", func(t *testing.T) {
		env := setupCli(t, &api.ClientAPIMock{}, Tokens{})
		env.login(t)
		enqueueRecord(t, env, "A-1")

		require.NoError(t, env.cli.Run(context.Background(), "logout", nil))

		_, err := env.store.GetAuth(context.Background())
		assert.ErrorIs(t, err, storage.ErrAuthNotFound)
		assert.Contains(t, env.out.String(), "1 check-in(s) stay queued")

		counts, err := env.store.CountByStatus(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, counts[models.StatusPending])
	})
}

func TestStatus(t *testing.T) {
	t.Run("not authenticated", func(t *testing.T) {
		env := setupCli(t, &api.ClientAPIMock{}, Tokens{})
		require.NoError(t, env.cli.Run(context.Background(), "status", nil))

		out := env.out.String()
		assert.Contains(t, out, "Status: Not authenticated")
		assert.Contains(t, out, "Last sync: never")
	})

	t.Run("authenticated with failed record", func(t *testing.T) {
		client := &api.ClientAPIMock{
			HealthFunc: func(ctx context.Context) error { return errOffline },
		}
		env := setupCli(t, client, Tokens{})
		env.login(t)
		enqueueRecord(t, env, "A-1")
		failRecord(t, env, enqueueRecord(t, env, "A-2"))

		require.NoError(t, env.cli.Run(context.Background(), "status", nil))

		out := env.out.String()
		assert.Contains(t, out, "Shipper: shipper-1")
		assert.Contains(t, out, "Connection: offline")
		assert.Contains(t, out, "pending  1")
		assert.Contains(t, out, "failed   1")
		assert.Contains(t, out, "geocheckin retry <id>")
		assert.Equal(t, []string{"stored-token"}, env.usedTokens())
	})

	t.Run("expired token is not probed", func(t *testing.T) {
		env := setupCli(t, &api.ClientAPIMock{}, Tokens{})
		require.NoError(t, env.store.SaveAuth(context.Background(), &storage.AuthData{
			ShipperID:   "shipper-1",
			ServerURL:   testServerURL,
			AccessToken: "old",
			ExpiresAt:   1,
		}))

		require.NoError(t, env.cli.Run(context.Background(), "status", nil))
		assert.Contains(t, env.out.String(), "Token has expired")
		assert.Empty(t, env.client.HealthCalls())
	})
}
