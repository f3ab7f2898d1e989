package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"
)

func (c *Cli) runQueue(ctx context.Context) error {
	c.io.Println("=== Offline Queue ===")
	c.io.Println()

	records, err := c.queueService(nil).List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		c.io.Println("Queue is empty.")
		return nil
	}

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LOCAL ID\tSTATUS\tRETRIES\tORDER\tPHOTOS\tCREATED\tLAST ERROR")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%s\t%s\n",
			rec.LocalID,
			rec.Status,
			rec.RetryCount,
			rec.OrderID,
			len(rec.Photos),
			time.UnixMilli(rec.CreatedAtMs).Format(time.DateTime),
			rec.LastError,
		)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to print queue: %w", err)
	}

	c.io.Println()
	c.io.Printf("Total: %d check-in(s)\n", len(records))
	return nil
}

func (c *Cli) runRetry(ctx context.Context, args []string) error {
	localID, err := singleArg(args, "retry <local-id>")
	if err != nil {
		return err
	}

	rec, err := c.queueService(nil).Retry(ctx, localID)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Check-in %s is pending again (order %s)\n", rec.LocalID, rec.OrderID)
	c.io.Println("Run 'geocheckin sync' to send it now.")
	return nil
}

func (c *Cli) runRemove(ctx context.Context, args []string) error {
	localID, err := singleArg(args, "remove <local-id>")
	if err != nil {
		return err
	}

	if err := c.queueService(nil).Remove(ctx, localID); err != nil {
		return err
	}

	c.io.Printf("✓ Check-in %s removed from queue\n", localID)
	return nil
}
