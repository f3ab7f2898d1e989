package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"
	"time"
)

// runHistory выводит страницу истории check-in курьера с сервера
func (c *Cli) runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(c.io)
	page := fs.Int("page", 1, "Page number, starting at 1")
	limit := fs.Int("limit", 20, "Check-ins per page (server caps it at 100)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *page < 1 {
		return fmt.Errorf("invalid --page %d: must be 1 or greater", *page)
	}
	if *limit < 1 {
		return fmt.Errorf("invalid --limit %d: must be 1 or greater", *limit)
	}

	_, client, err := c.session(ctx)
	if err != nil {
		return err
	}

	resp, err := client.ListCheckins(ctx, *page, *limit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	c.io.Println("=== Check-in History ===")
	c.io.Println()
	if len(resp.Checkins) == 0 {
		if resp.Pagination.Total == 0 {
			c.io.Println("No check-ins yet.")
		} else {
			c.io.Printf("Page %d is empty, history has %d page(s).\n", resp.Pagination.Page, resp.Pagination.TotalPages)
		}
		return nil
	}

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tORDER\tCAPTURED\tPOSITION\tPHOTOS\tADDRESS")
	for _, ch := range resp.Checkins {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.5f, %.5f\t%d\t%s\n",
			ch.ID,
			ch.OrderID,
			time.UnixMilli(ch.CapturedAt).Format(time.DateTime),
			ch.Latitude, ch.Longitude,
			len(ch.PhotoIDs),
			ch.AddressLabel,
		)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to print history: %w", err)
	}

	p := resp.Pagination
	c.io.Println()
	c.io.Printf("Page %d of %d (%d check-in(s) total)\n", p.Page, p.TotalPages, p.Total)
	if p.HasNextPage {
		c.io.Printf("Next: geocheckin history --page %d\n", p.Page+1)
	}
	return nil
}
