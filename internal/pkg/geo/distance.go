package geo

import (
	"math"

	"agritrack/internal/entities"
)

const earthRadiusMeters = 6371000

// Distance - расстояние по большому кругу в метрах.
func Distance(a, b entities.Coordinates) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// BoundsOf возвращает прямоугольник, вмещающий все точки. Для пустого набора ok=false.
func BoundsOf(points []entities.Coordinates) (entities.Bounds, bool) {
	if len(points) == 0 {
		return entities.Bounds{}, false
	}

	b := entities.Bounds{
		South: points[0].Lat,
		North: points[0].Lat,
		West:  points[0].Lon,
		East:  points[0].Lon,
	}
	for _, p := range points[1:] {
		b.South = math.Min(b.South, p.Lat)
		b.North = math.Max(b.North, p.Lat)
		b.West = math.Min(b.West, p.Lon)
		b.East = math.Max(b.East, p.Lon)
	}
	return b, true
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
