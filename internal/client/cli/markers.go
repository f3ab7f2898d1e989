package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/geocheckin/internal/cluster"
	"github.com/iudanet/geocheckin/internal/models"
	"github.com/iudanet/geocheckin/internal/viewport"
)

func (c *Cli) runMarkers(ctx context.Context, args []string) error {
	var bbox, from, to string
	var zoom float64
	var watch time.Duration
	fs := flag.NewFlagSet("markers", flag.ContinueOnError)
	fs.SetOutput(c.io)
	fs.StringVar(&bbox, "bbox", "", "Visible area MIN_LNG,MIN_LAT,MAX_LNG,MAX_LAT (required)")
	fs.StringVar(&from, "from", "", "Only check-ins at or after this time (RFC3339 or YYYY-MM-DD)")
	fs.StringVar(&to, "to", "", "Only check-ins at or before this time (RFC3339 or YYYY-MM-DD)")
	fs.Float64Var(&zoom, "zoom", 15, "Map zoom level; markers are clustered below the threshold")
	fs.DurationVar(&watch, "watch", 0, "Redraw the area at this interval until interrupted (0 draws once)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bounds, err := parseBBox(bbox)
	if err != nil {
		return err
	}
	var dates models.DateRange
	if dates.From, err = parseDate(from, false); err != nil {
		return err
	}
	if dates.To, err = parseDate(to, true); err != nil {
		return err
	}
	if !dates.From.IsZero() && !dates.To.IsZero() && dates.From.After(dates.To) {
		return errors.New("--from is after --to")
	}

	authData, client, err := c.session(ctx)
	if err != nil {
		return err
	}
	svc := c.markerService(authData, client)

	if watch <= 0 {
		return c.renderMarkers(ctx, svc, bounds, dates, zoom)
	}

	// повторные перерисовки в пределах TTL обслуживаются из кэша
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return svc.Run(gctx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(watch)
		defer ticker.Stop()
		for {
			if err := c.renderMarkers(gctx, svc, bounds, dates, zoom); err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return err
			}
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})
	return g.Wait()
}

func (c *Cli) renderMarkers(ctx context.Context, svc *viewport.MarkerService, bounds models.Bounds, dates models.DateRange, zoom float64) error {
	markers, err := svc.Markers(ctx, bounds, dates)
	if err != nil {
		return fmt.Errorf("failed to load markers: %w", err)
	}

	c.io.Printf("=== Check-ins in %s ===\n", viewport.BoundsKey(bounds))
	c.io.Println()
	if len(markers) == 0 {
		c.io.Println("No check-ins in this area.")
		return nil
	}

	res := cluster.Cluster(markers, zoom, c.cfg.Cluster)
	for _, cl := range res.Clusters {
		c.io.Printf("[cluster] %d check-ins around %.5f, %.5f\n", cl.Count, cl.Latitude, cl.Longitude)
	}
	for _, m := range res.Unclustered {
		c.io.Printf("%s  %.5f, %.5f  order %s  %s  %s\n",
			m.ID, m.Latitude, m.Longitude, m.OrderNumber, m.Timestamp.Format(time.DateTime), m.AddressLabel)
	}
	c.io.Println()
	c.io.Printf("Total: %d check-in(s)", len(markers))
	if len(res.Clusters) > 0 {
		c.io.Printf(", %d cluster(s) at zoom %g", len(res.Clusters), zoom)
	}
	c.io.Println()
	return nil
}

// parseBBox разбирает MIN_LNG,MIN_LAT,MAX_LNG,MAX_LAT
func parseBBox(v string) (models.Bounds, error) {
	if v == "" {
		return models.Bounds{}, errors.New("missing area. Usage: geocheckin markers --bbox MIN_LNG,MIN_LAT,MAX_LNG,MAX_LAT")
	}
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return models.Bounds{}, fmt.Errorf("invalid --bbox %q: expected 4 comma separated numbers", v)
	}
	values := make([]float64, 4)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return models.Bounds{}, fmt.Errorf("invalid --bbox %q: %w", v, err)
		}
		values[i] = f
	}
	b := models.Bounds{MinLng: values[0], MinLat: values[1], MaxLng: values[2], MaxLat: values[3]}
	if err := b.Validate(); err != nil {
		return models.Bounds{}, err
	}
	return b, nil
}

// parseDate принимает RFC3339 или дату; для верхней границы дата означает конец дня
func parseDate(v string, endOfDay bool) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, v, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use RFC3339 or YYYY-MM-DD", v)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
