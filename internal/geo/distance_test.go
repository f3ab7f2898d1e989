package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lng1 float64
		lat2, lng2 float64
		want       float64
		delta      float64
	}{
		{name: "same point", lat1: 10.8231, lng1: 106.6297, lat2: 10.8231, lng2: 106.6297, want: 0, delta: 1e-9},
		{name: "one degree of latitude", lat1: 0, lng1: 0, lat2: 1, lng2: 0, want: 111195, delta: 5},
		{name: "Paris to London", lat1: 48.8566, lng1: 2.3522, lat2: 51.5074, lng2: -0.1278, want: 343556, delta: 500},
		{name: "symmetric", lat1: 51.5074, lng1: -0.1278, lat2: 48.8566, lng2: 2.3522, want: 343556, delta: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Haversine(tt.lat1, tt.lng1, tt.lat2, tt.lng2), tt.delta)
		})
	}
}

func TestWithinRadius(t *testing.T) {
	// ~0.0009 градуса широты ≈ 100 м
	assert.True(t, WithinRadius(10.0, 106.0, 10.0008, 106.0, 100))
	assert.False(t, WithinRadius(10.0, 106.0, 10.002, 106.0, 100))
}
