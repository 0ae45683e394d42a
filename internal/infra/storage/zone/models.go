package zone

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-GeoBookingService/internal/domain"
	"github.com/m04kA/SMC-GeoBookingService/pkg/geomath"
)

// geometryDoc JSONB представление геометрии зоны
//
// circle:  {"center": {"lat": 55.75, "lng": 37.61}, "radius_m": 5000}
// polygon: {"ring": [[37.50, 55.70], [37.70, 55.70], [37.70, 55.80]]}
//
// Вершины полигона хранятся парами [lng, lat] (порядок GeoJSON)
type geometryDoc struct {
	Center   *pointDoc   `json:"center,omitempty"`
	RadiusM  *float64    `json:"radius_m,omitempty"`
	Ring     [][]float64 `json:"ring,omitempty"`
}

type pointDoc struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// parseGeometry разбирает JSONB геометрию в tagged-вариант домена
// Валидация выполняется один раз здесь; дальше алгоритмы работают
// только с типизированной геометрией
func parseGeometry(zoneType domain.ZoneType, raw []byte) (domain.ZoneGeometry, error) {
	var doc geometryDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.ZoneGeometry{}, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}

	switch zoneType {
	case domain.ZoneTypeCircle:
		if doc.Center == nil || doc.RadiusM == nil {
			return domain.ZoneGeometry{}, fmt.Errorf("%w: circle requires center and radius_m", ErrInvalidGeometry)
		}
		return domain.NewCircleGeometry(geomath.Point{Lat: doc.Center.Lat, Lng: doc.Center.Lng}, *doc.RadiusM)

	case domain.ZoneTypePolygon:
		ring := make([]geomath.Point, 0, len(doc.Ring))
		for _, vertex := range doc.Ring {
			if len(vertex) != 2 {
				return domain.ZoneGeometry{}, fmt.Errorf("%w: polygon vertex must be a [lng, lat] pair", ErrInvalidGeometry)
			}
			ring = append(ring, geomath.Point{Lng: vertex[0], Lat: vertex[1]})
		}
		return domain.NewPolygonGeometry(ring)

	default:
		return domain.ZoneGeometry{}, fmt.Errorf("%w: unknown zone_type %q", ErrInvalidGeometry, zoneType)
	}
}
