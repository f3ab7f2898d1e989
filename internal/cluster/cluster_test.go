package cluster

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/geocheckin/internal/geo"
	"github.com/iudanet/geocheckin/internal/models"
)

func marker(id string, lat, lng float64) models.CheckinMarker {
	return models.CheckinMarker{ID: id, Latitude: lat, Longitude: lng}
}

func TestCluster_TwoNearbyMarkers(t *testing.T) {
	// ~10 м друг от друга
	a := marker("a", 10.82310, 106.62970)
	b := marker("b", 10.82319, 106.62970)
	require.InDelta(t, 10, geo.Haversine(a.Latitude, a.Longitude, b.Latitude, b.Longitude), 0.5)

	res := Cluster([]models.CheckinMarker{a, b}, 10, DefaultOptions())
	require.Len(t, res.Clusters, 1)
	assert.Empty(t, res.Unclustered)

	c := res.Clusters[0]
	assert.Equal(t, 2, c.Count)
	assert.Equal(t, "cluster-a", c.ID)
	assert.Equal(t, []string{"a", "b"}, c.MemberIDs)
	assert.InDelta(t, (a.Latitude+b.Latitude)/2, c.Latitude, 1e-12)
	assert.InDelta(t, a.Longitude, c.Longitude, 1e-12)

	res = Cluster([]models.CheckinMarker{a, b}, 18, DefaultOptions())
	assert.Empty(t, res.Clusters)
	assert.Equal(t, []models.CheckinMarker{a, b}, res.Unclustered)
}

func TestCluster_ThresholdIsExclusive(t *testing.T) {
	opts := DefaultOptions()
	ms := []models.CheckinMarker{marker("a", 0, 0), marker("b", 0, 0.00001)}

	assert.Len(t, Cluster(ms, 13.99, opts).Clusters, 1)
	assert.Empty(t, Cluster(ms, 14, opts).Clusters)
}

func TestCluster_IsolatedMarkerStaysUnclustered(t *testing.T) {
	ms := []models.CheckinMarker{
		marker("hcm-1", 10.8231, 106.6297),
		marker("hanoi", 21.0285, 105.8542),
		marker("hcm-2", 10.8232, 106.6298),
	}
	res := Cluster(ms, 8, DefaultOptions())

	require.Len(t, res.Clusters, 1)
	assert.Equal(t, []string{"hcm-1", "hcm-2"}, res.Clusters[0].MemberIDs)
	require.Len(t, res.Unclustered, 1)
	assert.Equal(t, "hanoi", res.Unclustered[0].ID)
}

func TestCluster_GreedyUsesSeedRadius(t *testing.T) {
	// b в радиусе a, c в радиусе b, но не a: c не присоединяется к группе a
	opts := Options{ThresholdZoom: 14, RadiusPixels: 10, TileSize: 256}
	zoom := 10.0
	step := 8.0 / (256 * 1024) * 360 // 8 px по долготе

	ms := []models.CheckinMarker{
		marker("a", 0, 0),
		marker("b", 0, step),
		marker("c", 0, 2*step),
	}
	res := Cluster(ms, zoom, opts)
	require.Len(t, res.Clusters, 1)
	assert.Equal(t, []string{"a", "b"}, res.Clusters[0].MemberIDs)
	require.Len(t, res.Unclustered, 1)
	assert.Equal(t, "c", res.Unclustered[0].ID)
}

func TestCluster_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ms := make([]models.CheckinMarker, 200)
	for i := range ms {
		ms[i] = marker(fmt.Sprintf("m%03d", i), 10.7+rng.Float64()*0.2, 106.6+rng.Float64()*0.2)
	}

	first := Cluster(ms, 11, DefaultOptions())
	for range 5 {
		assert.Equal(t, first, Cluster(ms, 11, DefaultOptions()))
	}

	total := len(first.Unclustered)
	for _, c := range first.Clusters {
		total += c.Count
	}
	assert.Equal(t, len(ms), total, "every marker belongs to exactly one group")
}

func TestCluster_Empty(t *testing.T) {
	res := Cluster(nil, 5, DefaultOptions())
	assert.Empty(t, res.Clusters)
	assert.Empty(t, res.Unclustered)
}

func TestProject(t *testing.T) {
	p := Project(0, 0, 0, 256)
	assert.InDelta(t, 128, p.X, 1e-9)
	assert.InDelta(t, 128, p.Y, 1e-9)

	p = Project(90, 180, 1, 256)
	assert.InDelta(t, 512, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-3, "latitude is clamped to the mercator limit")
}
