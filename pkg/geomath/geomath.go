// Package geomath содержит чистые геометрические примитивы для геозон:
// расстояние по большому кругу и проверки принадлежности точки зоне
package geomath

import "math"

// EarthRadiusMeters средний радиус Земли в метрах
const EarthRadiusMeters = 6371000.0

// Point географическая точка в градусах
type Point struct {
	Lat float64
	Lng float64
}

// HaversineDistanceMeters возвращает расстояние по большому кругу между
// двумя точками в метрах (формула гаверсинусов)
func HaversineDistanceMeters(p1, p2 Point) float64 {
	lat1 := degreesToRadians(p1.Lat)
	lat2 := degreesToRadians(p2.Lat)
	dLat := degreesToRadians(p2.Lat - p1.Lat)
	dLng := degreesToRadians(p2.Lng - p1.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// PointInCircle возвращает true, если точка находится внутри окружности
// Точка ровно на границе (расстояние == радиус) считается внутри
func PointInCircle(point, center Point, radiusMeters float64) bool {
	return HaversineDistanceMeters(point, center) <= radiusMeters
}

// PointInPolygon проверяет принадлежность точки полигону методом
// трассировки луча (чётность пересечений). Кольцо замыкается неявно -
// повторять первую вершину в конце не нужно.
//
// Граничное поведение определяется правилом чётности пересечений:
// у выпуклого полигона точка на западной/южной границе считается внутри,
// на восточной/северной - снаружи. Вырожденное кольцо (< 3 вершин) - всегда false.
func PointInPolygon(point Point, ring []Point) bool {
	if len(ring) < 3 {
		return false
	}

	inside := false
	j := len(ring) - 1

	for i := 0; i < len(ring); i++ {
		vi := ring[i]
		vj := ring[j]

		if (vi.Lat > point.Lat) != (vj.Lat > point.Lat) {
			intersectLng := (vj.Lng-vi.Lng)*(point.Lat-vi.Lat)/(vj.Lat-vi.Lat) + vi.Lng
			if point.Lng < intersectLng {
				inside = !inside
			}
		}

		j = i
	}

	return inside
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
