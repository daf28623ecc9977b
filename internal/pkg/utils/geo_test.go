package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHaversineDistance(t *testing.T) {
	// Dallas shop to Houston shop, roughly 300 km.
	d := CalculateHaversineDistance(32.5372008, -96.7493993, 29.835264, -95.5383808)
	assert.InDelta(t, 320000, d, 15000)

	assert.Zero(t, CalculateHaversineDistance(38.535168, -121.3661184, 38.535168, -121.3661184))
}

func TestWithinRadius(t *testing.T) {
	shop := Point{Lat: 38.535168, Lng: -121.3661184}

	// 0.001 degrees of latitude is about 111 m.
	near := Point{Lat: shop.Lat + 0.001, Lng: shop.Lng}
	far := Point{Lat: shop.Lat + 0.003, Lng: shop.Lng}

	assert.True(t, WithinRadius(near, shop, 200))
	assert.False(t, WithinRadius(far, shop, 200))
	assert.True(t, WithinRadius(shop, shop, 0))
}
