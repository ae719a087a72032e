package radar

import (
	"math"

	"github.com/fernandomartin18/UbicAir/airports"
	"github.com/fernandomartin18/UbicAir/models"
)

// Marker colors by route progress.
const (
	colorEarly = "#667eea" // progress < 30
	colorMid   = "#3351d5ff"
	colorLate  = "#0724a3ff"
)

const baseIconSize = 36

// Bearing computes the visual heading of a flight toward its destination
// airport, in degrees normalized to [0, 360). This is a planar
// approximation rather than a great-circle bearing, which is fine because
// the simulator interpolates positions along straight lines. Unknown
// destinations point north.
func Bearing(f models.TelemetryFlight) float64 {
	dest, ok := airports.Lookup(f.Destination)
	if !ok {
		return 0
	}

	dLat := dest.Lat - f.Latitude
	dLng := dest.Lng - f.Longitude
	angle := math.Atan2(dLng, dLat) * (180 / math.Pi)
	return math.Mod(angle+360, 360)
}

// IconSize returns the marker size for a map zoom level.
func IconSize(zoom int) int {
	switch {
	case zoom <= 4:
		return 28
	case zoom >= 8:
		return 48
	default:
		return baseIconSize
	}
}

// ProgressColor maps route progress to a marker color. Values outside
// [0, 100] should not occur; they fall through to the early-flight color.
func ProgressColor(progress float64) string {
	switch {
	case progress >= 0 && progress < 30:
		return colorEarly
	case progress >= 30 && progress < 70:
		return colorMid
	case progress >= 70 && progress <= 100:
		return colorLate
	default:
		return colorEarly
	}
}

// Phase labels the flight's stage for the status badge.
func Phase(progress float64) string {
	switch {
	case progress < 10:
		return "takeoff"
	case progress < 90:
		return "cruise"
	default:
		return "landing"
	}
}
