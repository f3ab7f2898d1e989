package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/geocheckin/internal/client/storage"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	token, err := c.getToken(c.cfg.Tokens)
	if err != nil {
		return err
	}

	c.io.Printf("Verifying token with %s...\n", c.cfg.ServerURL)

	who, err := c.newClient(c.cfg.ServerURL, token).WhoAmI(ctx)
	if err != nil {
		return fmt.Errorf("token rejected: %w", err)
	}

	authData := &storage.AuthData{
		ShipperID:   who.ShipperID,
		ServerURL:   c.cfg.ServerURL,
		AccessToken: token,
		ExpiresAt:   who.ExpiresAt,
	}
	if err := c.store.SaveAuth(ctx, authData); err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Shipper: %s\n", who.ShipperID)
	if who.ExpiresAt > 0 {
		c.io.Printf("Token expires: %s\n", time.Unix(who.ExpiresAt, 0).Format(time.RFC3339))
	} else {
		c.io.Println("Token expires: never")
	}
	return nil
}
