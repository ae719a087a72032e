package radar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fernandomartin18/UbicAir/models"
)

func TestBearingPointsTowardDestination(t *testing.T) {
	// Due south of Madrid, heading straight north.
	north := models.TelemetryFlight{Destination: "MAD", Latitude: 39.0, Longitude: -3.5626}
	assert.InDelta(t, 0, Bearing(north), 0.01)

	// Due north of Madrid, heading straight south.
	south := models.TelemetryFlight{Destination: "MAD", Latitude: 42.0, Longitude: -3.5626}
	assert.InDelta(t, 180, Bearing(south), 0.01)

	// Due west of Madrid, heading east.
	east := models.TelemetryFlight{Destination: "MAD", Latitude: 40.4719, Longitude: -5.0}
	assert.InDelta(t, 90, Bearing(east), 0.01)
}

func TestBearingUnknownDestinationPointsNorth(t *testing.T) {
	f := models.TelemetryFlight{Destination: "XXX", Latitude: 40.0, Longitude: -3.0}
	assert.Equal(t, 0.0, Bearing(f))
}

func TestBearingIsNormalized(t *testing.T) {
	// South-west of Madrid: the raw atan2 angle is positive already, but a
	// flight north-east of it produces a negative angle that must wrap.
	f := models.TelemetryFlight{Destination: "MAD", Latitude: 41.0, Longitude: -2.0}
	b := Bearing(f)
	assert.GreaterOrEqual(t, b, 0.0)
	assert.Less(t, b, 360.0)
	assert.InDelta(t, 251.3, b, 1.0)
}

func TestIconSizeByZoom(t *testing.T) {
	assert.Equal(t, 28, IconSize(2))
	assert.Equal(t, 28, IconSize(4))
	assert.Equal(t, 36, IconSize(5))
	assert.Equal(t, 36, IconSize(7))
	assert.Equal(t, 48, IconSize(8))
	assert.Equal(t, 48, IconSize(12))
}

func TestProgressColorBoundaries(t *testing.T) {
	assert.Equal(t, colorEarly, ProgressColor(0))
	assert.Equal(t, colorEarly, ProgressColor(29.9))
	assert.Equal(t, colorMid, ProgressColor(30))
	assert.Equal(t, colorMid, ProgressColor(69.9))
	assert.Equal(t, colorLate, ProgressColor(70))
	assert.Equal(t, colorLate, ProgressColor(100))

	// Out of range falls back to the early color.
	assert.Equal(t, colorEarly, ProgressColor(-5))
	assert.Equal(t, colorEarly, ProgressColor(101))
}

func TestPhaseBoundaries(t *testing.T) {
	assert.Equal(t, "takeoff", Phase(0))
	assert.Equal(t, "takeoff", Phase(9.9))
	assert.Equal(t, "cruise", Phase(10))
	assert.Equal(t, "cruise", Phase(89.9))
	assert.Equal(t, "landing", Phase(90))
	assert.Equal(t, "landing", Phase(100))
}
