package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/geocheckin/internal/client/storage"
)

func (c *Cli) runLogout(ctx context.Context) error {
	authData, err := c.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			c.io.Println("Not logged in.")
			return nil
		}
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	// очередь не очищается: записи будут отправлены после следующего login
	pending, err := c.queueService(nil).PendingCount(ctx)
	if err != nil {
		c.logger.Warn("Failed to count pending check-ins", "error", err)
	} else if pending > 0 {
		c.io.Printf("⚠️  %d check-in(s) stay queued and will be sent after the next login.\n", pending)
	}

	if err := c.store.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to delete auth data: %w", err)
	}

	c.io.Printf("✓ Logged out (shipper %s)\n", authData.ShipperID)
	return nil
}
