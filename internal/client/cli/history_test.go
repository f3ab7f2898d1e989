package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/geocheckin/internal/client/api"
	pkgapi "github.com/iudanet/geocheckin/pkg/api"
)

func historyClient(total, limit int) *api.ClientAPIMock {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &api.ClientAPIMock{
		ListCheckinsFunc: func(ctx context.Context, page, l int) (*pkgapi.HistoryResponse, error) {
			totalPages := (total + limit - 1) / limit
			resp := &pkgapi.HistoryResponse{
				Checkins: []pkgapi.CheckinResponse{},
				Pagination: pkgapi.Pagination{
					Page: page, Limit: limit, Total: total, TotalPages: totalPages,
					HasNextPage: page < totalPages, HasPrevPage: page > 1,
				},
			}
			for i := (page - 1) * limit; i < min(page*limit, total); i++ {
				resp.Checkins = append(resp.Checkins, pkgapi.CheckinResponse{
					ID:           fmt.Sprintf("srv-%02d", total-i),
					OrderID:      fmt.Sprintf("A-%d", total-i),
					Latitude:     10.8231,
					Longitude:    106.6297,
					CapturedAt:   base.Add(-time.Duration(i) * time.Hour).UnixMilli(),
					PhotoIDs:     []string{"p1"},
					AddressLabel: "12 Le Loi",
				})
			}
			return resp, nil
		},
	}
}

func TestHistory_FirstPage(t *testing.T) {
	client := historyClient(23, 20)
	env := setupCli(t, client, Tokens{})
	env.login(t)

	require.NoError(t, env.cli.Run(context.Background(), "history", nil))

	require.Len(t, client.ListCheckinsCalls(), 1)
	assert.Equal(t, 1, client.ListCheckinsCalls()[0].Page)
	assert.Equal(t, 20, client.ListCheckinsCalls()[0].Limit)

	out := env.out.String()
	assert.Contains(t, out, "=== Check-in History ===")
	assert.Contains(t, out, "srv-23")
	assert.Contains(t, out, "12 Le Loi")
	assert.Contains(t, out, "Page 1 of 2 (23 check-in(s) total)")
	assert.Contains(t, out, "Next: geocheckin history --page 2")
}

func TestHistory_LastPage(t *testing.T) {
	client := historyClient(23, 20)
	env := setupCli(t, client, Tokens{})
	env.login(t)

	require.NoError(t, env.cli.Run(context.Background(), "history", []string{"--page", "2"}))

	out := env.out.String()
	assert.Contains(t, out, "srv-01")
	assert.NotContains(t, out, "srv-04")
	assert.Contains(t, out, "Page 2 of 2")
	assert.NotContains(t, out, "Next:")
}

func TestHistory_EmptyAndBeyond(t *testing.T) {
	env := setupCli(t, historyClient(0, 20), Tokens{})
	env.login(t)
	require.NoError(t, env.cli.Run(context.Background(), "history", nil))
	assert.Contains(t, env.out.String(), "No check-ins yet.")

	env = setupCli(t, historyClient(5, 20), Tokens{})
	env.login(t)
	require.NoError(t, env.cli.Run(context.Background(), "history", []string{"--page", "4"}))
	assert.Contains(t, env.out.String(), "Page 4 is empty, history has 1 page(s).")
}

func TestHistory_Errors(t *testing.T) {
	client := &api.ClientAPIMock{
		ListCheckinsFunc: func(ctx context.Context, page, limit int) (*pkgapi.HistoryResponse, error) {
			return nil, errors.New("connection refused")
		},
	}
	env := setupCli(t, client, Tokens{})
	env.login(t)

	err := env.cli.Run(context.Background(), "history", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load history")

	for _, args := range [][]string{{"--page", "0"}, {"--limit", "-1"}, {"--page", "x"}} {
		assert.Error(t, env.cli.Run(context.Background(), "history", args))
	}
	assert.Len(t, client.ListCheckinsCalls(), 1)
}
