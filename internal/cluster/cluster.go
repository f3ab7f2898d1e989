// Package cluster группирует близкие маркеры карты для отрисовки на мелком масштабе.
package cluster

import (
	"math"

	"github.com/iudanet/geocheckin/internal/models"
)

// максимальная широта проекции Web Mercator
const maxMercatorLat = 85.05112878

// Options параметры кластеризации
type Options struct {
	// ThresholdZoom кластеризация выполняется только при zoom строго меньше порога
	ThresholdZoom float64
	// RadiusPixels радиус объединения в пикселях экрана
	RadiusPixels float64
	// TileSize размер тайла в пикселях
	TileSize float64
}

// DefaultOptions returns the standard map clustering parameters.
func DefaultOptions() Options {
	return Options{
		ThresholdZoom: 14,
		RadiusPixels:  60,
		TileSize:      256,
	}
}

// Result разбиение маркеров: группы и одиночные маркеры, оба в порядке входа
type Result struct {
	Clusters    []models.ClusteredMarker `json:"clusters"`
	Unclustered []models.CheckinMarker   `json:"unclustered"`
}

// ShouldCluster reports whether markers are grouped at zoom.
func (o Options) ShouldCluster(zoom float64) bool {
	return zoom < o.ThresholdZoom
}

// Cluster partitions markers with a single greedy pass in input order: every
// unprocessed marker absorbs all unprocessed markers within the pixel radius.
// The result depends only on the input order and zoom.
func Cluster(markers []models.CheckinMarker, zoom float64, opts Options) Result {
	res := Result{
		Clusters:    []models.ClusteredMarker{},
		Unclustered: []models.CheckinMarker{},
	}
	if !opts.ShouldCluster(zoom) {
		res.Unclustered = append(res.Unclustered, markers...)
		return res
	}

	points := make([]Point, len(markers))
	for i, m := range markers {
		points[i] = Project(m.Latitude, m.Longitude, zoom, opts.TileSize)
	}

	radiusSq := opts.RadiusPixels * opts.RadiusPixels
	processed := make([]bool, len(markers))

	for i := range markers {
		if processed[i] {
			continue
		}
		processed[i] = true

		members := []int{i}
		for j := i + 1; j < len(markers); j++ {
			if processed[j] {
				continue
			}
			if points[i].distSq(points[j]) <= radiusSq {
				processed[j] = true
				members = append(members, j)
			}
		}

		if len(members) == 1 {
			res.Unclustered = append(res.Unclustered, markers[i])
			continue
		}
		res.Clusters = append(res.Clusters, newCluster(markers, members))
	}

	return res
}

func newCluster(markers []models.CheckinMarker, members []int) models.ClusteredMarker {
	c := models.ClusteredMarker{
		ID:        "cluster-" + markers[members[0]].ID,
		Count:     len(members),
		MemberIDs: make([]string, 0, len(members)),
	}
	var sumLat, sumLng float64
	for _, idx := range members {
		m := markers[idx]
		sumLat += m.Latitude
		sumLng += m.Longitude
		c.MemberIDs = append(c.MemberIDs, m.ID)
	}
	c.Latitude = sumLat / float64(len(members))
	c.Longitude = sumLng / float64(len(members))
	return c
}

// Point пиксельные координаты в мировой системе Web Mercator
type Point struct {
	X, Y float64
}

func (p Point) distSq(o Point) float64 {
	dx, dy := p.X-o.X, p.Y-o.Y
	return dx*dx + dy*dy
}

// Project converts lat/lng to world pixel coordinates at zoom.
func Project(lat, lng, zoom, tileSize float64) Point {
	lat = math.Max(-maxMercatorLat, math.Min(maxMercatorLat, lat))
	scale := tileSize * math.Exp2(zoom)

	x := (lng + 180) / 360 * scale
	sinLat := math.Sin(lat * math.Pi / 180)
	y := (0.5 - math.Log((1+sinLat)/(1-sinLat))/(4*math.Pi)) * scale

	return Point{X: x, Y: y}
}
