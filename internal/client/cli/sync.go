package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")

	_, client, err := c.session(ctx)
	if err != nil {
		return err
	}

	q := c.queueService(client)
	if n, err := q.Recover(ctx); err != nil {
		return err
	} else if n > 0 {
		c.io.Printf("Recovered %d interrupted check-in(s)\n", n)
	}

	c.io.Println()
	c.io.Println("Sending queued check-ins...")

	report, err := q.Sync(ctx)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	c.io.Println()
	c.io.Printf("Sent:    %d\n", len(report.Succeeded))
	c.io.Printf("Failed:  %d\n", len(report.Failed))
	if report.Skipped > 0 {
		c.io.Printf("Skipped: %d (need 'geocheckin retry <id>')\n", report.Skipped)
	}
	for _, id := range report.Failed {
		rec, err := q.Get(ctx, id)
		if err != nil {
			continue
		}
		c.io.Printf("  %s: %s (%s)\n", id, rec.LastError, rec.Status)
	}

	if len(report.Failed) == 0 {
		c.io.Println()
		c.io.Println("✓ Synchronization completed successfully!")
	}
	return nil
}
