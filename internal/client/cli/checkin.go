package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iudanet/geocheckin/internal/client/capture"
	"github.com/iudanet/geocheckin/internal/client/connectivity"
	"github.com/iudanet/geocheckin/internal/client/queue"
	"github.com/iudanet/geocheckin/internal/gps"
	"github.com/iudanet/geocheckin/internal/models"
	"github.com/iudanet/geocheckin/internal/validation"
)

// photoFiles повторяемый флаг --photo
type photoFiles []string

func (p *photoFiles) String() string {
	return strings.Join(*p, ",")
}

func (p *photoFiles) Set(v string) error {
	*p = append(*p, v)
	return nil
}

type checkinFlags struct {
	orderID  string
	notes    string
	address  string
	gpsFeed  string
	target   string
	photos   photoFiles
	lat      float64
	lng      float64
	accuracy float64
	manual   bool
	offline  bool
}

func (c *Cli) parseCheckinFlags(args []string) (*checkinFlags, error) {
	f := &checkinFlags{}
	fs := flag.NewFlagSet("checkin", flag.ContinueOnError)
	fs.SetOutput(c.io)
	fs.StringVar(&f.orderID, "order", "", "Order number (required)")
	fs.StringVar(&f.notes, "notes", "", "Delivery note")
	fs.StringVar(&f.address, "address", "", "Delivery address label")
	fs.StringVar(&f.gpsFeed, "gps-feed", "", "JSON lines file with GPS fixes")
	fs.StringVar(&f.target, "target", "", "Delivery point LAT,LNG for the geofence check")
	fs.Var(&f.photos, "photo", "Photo file (repeatable)")
	fs.Float64Var(&f.lat, "lat", 0, "Manual latitude")
	fs.Float64Var(&f.lng, "lng", 0, "Manual longitude")
	fs.Float64Var(&f.accuracy, "accuracy", 0, "Manual position accuracy in meters")
	fs.BoolVar(&f.offline, "offline", false, "Queue without trying to submit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if set["lat"] != set["lng"] {
		return nil, errors.New("--lat and --lng must be given together")
	}
	f.manual = set["lat"]

	if f.orderID == "" {
		return nil, errors.New("missing order number. Usage: geocheckin checkin --order <number> --photo <file> [--lat <lat> --lng <lng>]")
	}
	if len(f.photos) == 0 {
		return nil, errors.New("at least one --photo is required")
	}
	return f, nil
}

func (c *Cli) runCheckin(ctx context.Context, args []string) error {
	f, err := c.parseCheckinFlags(args)
	if err != nil {
		return err
	}

	_, client, err := c.session(ctx)
	if err != nil {
		return err
	}

	photos, err := readPhotos(f.photos)
	if err != nil {
		return err
	}

	req := capture.Request{
		OrderID:      f.orderID,
		Notes:        f.notes,
		AddressLabel: f.address,
		Photos:       photos,
	}
	if f.manual {
		req.Manual = &models.GeoPosition{
			Latitude:       f.lat,
			Longitude:      f.lng,
			AccuracyMeters: f.accuracy,
			Source:         models.SourceManual,
		}
	}

	var locator capture.Locator
	var controller *gps.Controller
	if f.gpsFeed != "" {
		gpsCfg := c.cfg.GPS
		if f.target != "" {
			target, err := parseTarget(f.target)
			if err != nil {
				return err
			}
			gpsCfg.Target = target
		}
		controller = gps.NewController(gps.NewFeedProvider(f.gpsFeed, 0), gpsCfg, c.logger)
		locator = controller
	}

	monitor := connectivity.NewMonitor(client, 0, c.logger)
	online := func() bool {
		return !f.offline && monitor.Check(ctx)
	}

	svc := capture.NewService(locator, client, c.queueService(client), online, queue.Prepare, c.logger)
	res, err := svc.Checkin(ctx, req)
	if err != nil {
		return fmt.Errorf("check-in failed: %w", err)
	}

	c.io.Printf("Position: %.6f, %.6f (±%.0f m, %s)\n",
		res.Position.Latitude, res.Position.Longitude, res.Position.AccuracyMeters, res.Position.Source)
	if controller != nil && res.Position.Source == models.SourceDeviceSensor {
		c.io.Printf("GPS accuracy: %s\n", controller.AccuracyLevel())
		if dist, ok := controller.DistanceToTarget(); ok {
			c.io.Printf("Distance to delivery point: %.0f m (within geofence: %t)\n", dist, controller.WithinGeofence())
		}
	}

	switch res.Outcome {
	case capture.OutcomeSubmitted:
		if res.Response.Duplicate {
			c.io.Printf("✓ Check-in already accepted (server id %s)\n", res.Response.ID)
		} else {
			c.io.Printf("✓ Check-in submitted (server id %s)\n", res.Response.ID)
		}
	case capture.OutcomeQueued:
		c.io.Printf("Check-in queued offline (local id %s)\n", res.LocalID)
		if res.SubmitError != nil {
			c.io.Printf("Reason: %v\n", res.SubmitError)
		}
		c.io.Println("Run 'geocheckin sync' when the connection is back.")
	}
	return nil
}

// readPhotos читает файлы фото; тип определяется по содержимому
func readPhotos(paths []string) ([]models.PhotoBlob, error) {
	photos := make([]models.PhotoBlob, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read photo: %w", err)
		}
		if info.Size() > validation.MaxPhotoBytes {
			return nil, fmt.Errorf("photo %s is larger than %d MB", path, validation.MaxPhotoBytes>>20)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read photo: %w", err)
		}
		photos = append(photos, models.PhotoBlob{
			Filename: filepath.Base(path),
			MimeType: detectPhotoType(path, data),
			Data:     data,
		})
	}
	return photos, nil
}

func detectPhotoType(path string, data []byte) string {
	mimeType := http.DetectContentType(data)
	if mimeType == "application/octet-stream" {
		// HEIC не распознается по сигнатуре
		switch strings.ToLower(filepath.Ext(path)) {
		case ".heic", ".heif":
			return "image/heic"
		}
	}
	return mimeType
}

func parseTarget(v string) (*gps.Target, error) {
	lat, lng, ok := strings.Cut(v, ",")
	if !ok {
		return nil, fmt.Errorf("invalid --target %q: expected LAT,LNG", v)
	}
	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid --target latitude: %w", err)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid --target longitude: %w", err)
	}
	pos := models.GeoPosition{Latitude: latitude, Longitude: longitude, Source: models.SourceManual}
	if err := pos.Validate(); err != nil {
		return nil, fmt.Errorf("invalid --target: %w", err)
	}
	return &gps.Target{Latitude: latitude, Longitude: longitude}, nil
}
