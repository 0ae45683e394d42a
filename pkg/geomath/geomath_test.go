package geomath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistanceMeters(t *testing.T) {
	t.Run("same point is zero", func(t *testing.T) {
		p := Point{Lat: 55.7558, Lng: 37.6173}
		assert.Equal(t, 0.0, HaversineDistanceMeters(p, p))
	})

	t.Run("moscow to saint petersburg", func(t *testing.T) {
		moscow := Point{Lat: 55.7558, Lng: 37.6173}
		spb := Point{Lat: 59.9343, Lng: 30.3351}

		dist := HaversineDistanceMeters(moscow, spb)

		// Справочное расстояние ~634 км
		assert.InDelta(t, 634000, dist, 5000)
	})

	t.Run("one degree of latitude at equator", func(t *testing.T) {
		dist := HaversineDistanceMeters(Point{Lat: 0, Lng: 0}, Point{Lat: 1, Lng: 0})

		// 1 градус широты ~ 111.19 км
		assert.InDelta(t, 111195, dist, 100)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Point{Lat: 55.75, Lng: 37.61}
		b := Point{Lat: 55.80, Lng: 37.70}
		assert.Equal(t, HaversineDistanceMeters(a, b), HaversineDistanceMeters(b, a))
	})
}

func TestPointInCircle(t *testing.T) {
	center := Point{Lat: 55.7558, Lng: 37.6173}

	t.Run("point strictly inside", func(t *testing.T) {
		near := Point{Lat: 55.7560, Lng: 37.6175}
		assert.True(t, PointInCircle(near, center, 1000))
	})

	t.Run("point strictly outside", func(t *testing.T) {
		far := Point{Lat: 55.8558, Lng: 37.6173}
		assert.False(t, PointInCircle(far, center, 1000))
	})

	t.Run("center is always inside", func(t *testing.T) {
		assert.True(t, PointInCircle(center, center, 0))
	})

	t.Run("boundary distance equals radius is inside", func(t *testing.T) {
		point := Point{Lat: 55.8558, Lng: 37.6173}
		radius := HaversineDistanceMeters(point, center)
		assert.True(t, PointInCircle(point, center, radius))
	})
}

func TestPointInPolygon(t *testing.T) {
	// Единичный квадрат в координатах (lat, lng)
	square := []Point{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 1},
		{Lat: 1, Lng: 1},
		{Lat: 1, Lng: 0},
	}

	t.Run("interior points", func(t *testing.T) {
		assert.True(t, PointInPolygon(Point{Lat: 0.5, Lng: 0.5}, square))
		assert.True(t, PointInPolygon(Point{Lat: 0.1, Lng: 0.9}, square))
	})

	t.Run("exterior points", func(t *testing.T) {
		assert.False(t, PointInPolygon(Point{Lat: 1.5, Lng: 0.5}, square))
		assert.False(t, PointInPolygon(Point{Lat: -0.1, Lng: 0.5}, square))
		assert.False(t, PointInPolygon(Point{Lat: 0.5, Lng: 2}, square))
	})

	t.Run("edge convention west and south inside, east and north outside", func(t *testing.T) {
		assert.True(t, PointInPolygon(Point{Lat: 0.5, Lng: 0}, square), "west edge")
		assert.True(t, PointInPolygon(Point{Lat: 0, Lng: 0.5}, square), "south edge")
		assert.False(t, PointInPolygon(Point{Lat: 0.5, Lng: 1}, square), "east edge")
		assert.False(t, PointInPolygon(Point{Lat: 1, Lng: 0.5}, square), "north edge")
	})

	t.Run("ring is closed implicitly", func(t *testing.T) {
		// Треугольник без повторения первой вершины в конце
		triangle := []Point{
			{Lat: 0, Lng: 0},
			{Lat: 0, Lng: 2},
			{Lat: 2, Lng: 1},
		}

		assert.True(t, PointInPolygon(Point{Lat: 0.5, Lng: 1}, triangle))
		assert.False(t, PointInPolygon(Point{Lat: 1.5, Lng: 0.1}, triangle))
	})

	t.Run("concave polygon", func(t *testing.T) {
		// П-образный полигон с выемкой снизу
		concave := []Point{
			{Lat: 0, Lng: 0},
			{Lat: 0, Lng: 1},
			{Lat: 2, Lng: 1},
			{Lat: 2, Lng: 4},
			{Lat: 0, Lng: 4},
			{Lat: 0, Lng: 5},
			{Lat: 3, Lng: 5},
			{Lat: 3, Lng: 0},
		}

		assert.True(t, PointInPolygon(Point{Lat: 2.5, Lng: 2.5}, concave), "above the notch")
		assert.False(t, PointInPolygon(Point{Lat: 1, Lng: 2.5}, concave), "inside the notch")
		assert.True(t, PointInPolygon(Point{Lat: 1, Lng: 0.5}, concave), "left leg")
		assert.True(t, PointInPolygon(Point{Lat: 1, Lng: 4.5}, concave), "right leg")
	})

	t.Run("degenerate rings return false", func(t *testing.T) {
		assert.False(t, PointInPolygon(Point{Lat: 0, Lng: 0}, nil))
		assert.False(t, PointInPolygon(Point{Lat: 0, Lng: 0}, []Point{{Lat: 0, Lng: 0}}))
		assert.False(t, PointInPolygon(Point{Lat: 0, Lng: 0}, []Point{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}))
	})
}
