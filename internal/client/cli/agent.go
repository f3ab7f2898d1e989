package cli

import (
	"context"
	"flag"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/geocheckin/internal/client/connectivity"
	"github.com/iudanet/geocheckin/internal/client/queue"
)

// runAgent держит очередь в фоне: проверяет доступность сервера и отправляет
// записи при восстановлении сети и по таймеру. Завершается при отмене ctx.
func (c *Cli) runAgent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("agent", flag.ContinueOnError)
	fs.SetOutput(c.io)
	interval := fs.Duration("interval", queue.DefaultSyncInterval, "Sync interval while online")
	probe := fs.Duration("probe", connectivity.DefaultInterval, "Server health probe interval")
	if err := fs.Parse(args); err != nil {
		return err
	}

	authData, client, err := c.session(ctx)
	if err != nil {
		return err
	}

	q := c.queueService(client)
	monitor := connectivity.NewMonitor(client, *probe, c.logger)
	worker := queue.NewWorker(q, *interval, c.logger)

	c.io.Printf("Agent started for shipper %s (sync every %s, probe every %s)\n", authData.ShipperID, *interval, *probe)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return monitor.Run(gctx)
	})
	g.Go(func() error {
		return worker.Run(gctx, monitor.Changes())
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-worker.Done():
				pending, err := q.PendingCount(gctx)
				if err != nil {
					c.logger.Warn("Failed to count pending check-ins", "error", err)
					continue
				}
				c.io.Printf("Sync pass finished, %d check-in(s) pending\n", pending)
			}
		}
	})

	err = g.Wait()
	c.io.Println("Agent stopped")
	return err
}
