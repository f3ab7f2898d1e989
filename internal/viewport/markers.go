package viewport

import (
	"fmt"
	"math"
	"time"

	"github.com/iudanet/geocheckin/internal/models"
	"github.com/iudanet/geocheckin/pkg/api"
)

// Config политика кэша карты
type Config struct {
	ViewportTTL      time.Duration
	DetailTTL        time.Duration
	ViewportCapacity int
	DetailCapacity   int
	// SimilarityDegrees допуск сравнения границ (строго меньше)
	SimilarityDegrees float64
	CleanupInterval   time.Duration
}

// DefaultConfig returns the production cache policy.
func DefaultConfig() Config {
	return Config{
		ViewportTTL:       time.Minute,
		DetailTTL:         5 * time.Minute,
		ViewportCapacity:  20,
		DetailCapacity:    500,
		SimilarityDegrees: 0.001,
		CleanupInterval:   5 * time.Minute,
	}
}

// BoundsKey rounds every coordinate to 3 decimals so near-identical viewports share a key.
func BoundsKey(b models.Bounds) string {
	return fmt.Sprintf("%s:%s:%s:%s", round3(b.MinLng), round3(b.MinLat), round3(b.MaxLng), round3(b.MaxLat))
}

func round3(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		// -0 и 0 дают один ключ
		r = 0
	}
	return fmt.Sprintf("%.3f", r)
}

// Similar reports whether every edge of a and b differs by less than tolerance degrees.
func Similar(a, b models.Bounds, tolerance float64) bool {
	return math.Abs(a.MinLng-b.MinLng) < tolerance &&
		math.Abs(a.MinLat-b.MinLat) < tolerance &&
		math.Abs(a.MaxLng-b.MaxLng) < tolerance &&
		math.Abs(a.MaxLat-b.MaxLat) < tolerance
}

type viewportEntry struct {
	dates   models.DateRange
	markers []models.CheckinMarker
	bounds  models.Bounds
}

// MarkerCache кэш маркеров по видимой области и деталей отдельных check-in
type MarkerCache struct {
	viewports *Cache[viewportEntry]
	details   *Cache[*api.CheckinResponse]
	cfg       Config
}

// NewMarkerCache creates the map cache
func NewMarkerCache(cfg Config) *MarkerCache {
	return &MarkerCache{
		viewports: NewCache[viewportEntry](cfg.ViewportCapacity),
		details:   NewCache[*api.CheckinResponse](cfg.DetailCapacity),
		cfg:       cfg,
	}
}

func viewportKey(b models.Bounds, dates models.DateRange) string {
	return BoundsKey(b) + "|" + dateKey(dates)
}

func dateKey(d models.DateRange) string {
	var from, to int64
	if !d.From.IsZero() {
		from = d.From.UnixMilli()
	}
	if !d.To.IsZero() {
		to = d.To.UnixMilli()
	}
	return fmt.Sprintf("%d-%d", from, to)
}

// Markers returns cached markers for the exact rounded bounds or, failing that,
// for the closest stored viewport within the similarity tolerance.
func (c *MarkerCache) Markers(b models.Bounds, dates models.DateRange) ([]models.CheckinMarker, bool) {
	if e, ok := c.viewports.Get(viewportKey(b, dates)); ok {
		return e.markers, true
	}

	dk := dateKey(dates)
	var (
		found    []models.CheckinMarker
		hit      bool
		bestKey  string
		bestDist = math.Inf(1)
	)
	c.viewports.Range(func(key string, e viewportEntry) bool {
		if dateKey(e.dates) != dk || !Similar(b, e.bounds, c.cfg.SimilarityDegrees) {
			return true
		}
		// ближайший по сумме смещений границ; при равенстве - меньший ключ
		d := edgeDelta(b, e.bounds)
		if d < bestDist || (d == bestDist && key < bestKey) {
			found, bestKey, bestDist, hit = e.markers, key, d, true
		}
		return true
	})
	return found, hit
}

// edgeDelta сумма отклонений четырех границ в градусах
func edgeDelta(a, b models.Bounds) float64 {
	return math.Abs(a.MinLng-b.MinLng) + math.Abs(a.MinLat-b.MinLat) +
		math.Abs(a.MaxLng-b.MaxLng) + math.Abs(a.MaxLat-b.MaxLat)
}

// SetMarkers stores the query result for the viewport.
func (c *MarkerCache) SetMarkers(b models.Bounds, dates models.DateRange, markers []models.CheckinMarker) {
	c.viewports.Set(viewportKey(b, dates), viewportEntry{bounds: b, dates: dates, markers: markers}, c.cfg.ViewportTTL)
}

// Detail returns a cached check-in detail
func (c *MarkerCache) Detail(id string) (*api.CheckinResponse, bool) {
	return c.details.Get("checkin:" + id)
}

// SetDetail caches a check-in detail
func (c *MarkerCache) SetDetail(resp *api.CheckinResponse) {
	c.details.Set("checkin:"+resp.ID, resp, c.cfg.DetailTTL)
}

// InvalidateDetail drops one cached detail
func (c *MarkerCache) InvalidateDetail(id string) {
	c.details.Delete("checkin:" + id)
}

// InvalidateMarkers drops every cached viewport, e.g. after a new check-in was accepted.
func (c *MarkerCache) InvalidateMarkers() {
	c.viewports.Clear()
}

// Cleanup drops expired entries of both caches
func (c *MarkerCache) Cleanup() int {
	return c.viewports.Cleanup() + c.details.Cleanup()
}

// Stats количество записей в кэшах
type Stats struct {
	Viewports int `json:"viewports"`
	Details   int `json:"details"`
}

// Stats returns the current cache sizes.
func (c *MarkerCache) Stats() Stats {
	return Stats{Viewports: c.viewports.Len(), Details: c.details.Len()}
}
