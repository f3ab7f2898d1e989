package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/geocheckin/internal/client/connectivity"
	"github.com/iudanet/geocheckin/internal/client/storage"
	"github.com/iudanet/geocheckin/internal/models"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	authData, err := c.store.GetAuth(ctx)
	switch {
	case errors.Is(err, storage.ErrAuthNotFound):
		c.io.Println("Status: Not authenticated")
		c.io.Println("Run 'geocheckin login' to authenticate.")
	case err != nil:
		return fmt.Errorf("failed to get auth data: %w", err)
	default:
		c.printSession(ctx, authData)
	}

	q := c.queueService(nil)
	counts, err := q.Stats(ctx)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Queue:")
	for _, status := range []models.CheckinStatus{models.StatusPending, models.StatusSyncing, models.StatusFailed} {
		c.io.Printf("  %-8s %d\n", status, counts[status])
	}
	if counts[models.StatusFailed] > 0 {
		c.io.Println("⚠️  Failed check-ins need 'geocheckin retry <id>' or 'geocheckin remove <id>'.")
	}

	state, err := q.LastSync(ctx)
	if err != nil {
		c.logger.Warn("Failed to get sync state", "error", err)
		return nil
	}
	c.io.Println()
	if state.LastSyncAtMs == 0 {
		c.io.Println("Last sync: never")
		return nil
	}
	c.io.Printf("Last sync: %s (sent %d, failed %d, skipped %d)\n",
		time.UnixMilli(state.LastSyncAtMs).Format(time.RFC3339), state.Succeeded, state.Failed, state.Skipped)
	if state.LastError != "" {
		c.io.Printf("Last error: %s\n", state.LastError)
	}
	return nil
}

func (c *Cli) printSession(ctx context.Context, authData *storage.AuthData) {
	expired := authData.ExpiresAt > 0 && time.Now().Unix() >= authData.ExpiresAt

	c.io.Println("Status: Authenticated")
	c.io.Printf("Shipper: %s\n", authData.ShipperID)
	c.io.Printf("Server:  %s\n", authData.ServerURL)
	if authData.ExpiresAt > 0 {
		expiresAt := time.Unix(authData.ExpiresAt, 0)
		c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
	}
	if expired {
		c.io.Println("⚠️  Token has expired. Please login again.")
		return
	}

	monitor := connectivity.NewMonitor(c.newClient(authData.ServerURL, authData.AccessToken), 0, c.logger)
	if monitor.Check(ctx) {
		c.io.Println("Connection: online")
	} else {
		c.io.Println("Connection: offline")
	}
}
