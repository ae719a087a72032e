package favorites

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernandomartin18/UbicAir/backend"
	"github.com/fernandomartin18/UbicAir/models"
)

type fakeTokens struct{}

func (fakeTokens) Token() string  { return "tok-1" }
func (fakeTokens) UserID() string { return "user-1" }

func setupBackend(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Cleanup(Reset)
	Init(backend.NewClient(
		backend.WithBaseURL(server.URL),
		backend.WithTokenSource(fakeTokens{}),
	))
}

func TestSameFlightComparesCalendarDay(t *testing.T) {
	morning := models.ScheduleFlight{Origin: "MAD", Dest: "BCN", Airline: "IB", FlightDate: "2024-01-05T10:00:00Z"}
	evening := models.ScheduleFlight{Origin: "MAD", Dest: "BCN", Airline: "IB", FlightDate: "2024-01-05T23:00:00Z"}
	nextDay := models.ScheduleFlight{Origin: "MAD", Dest: "BCN", Airline: "IB", FlightDate: "2024-01-06T10:00:00Z"}

	assert.True(t, SameFlight(morning, evening))
	assert.False(t, SameFlight(morning, nextDay))
}

func TestSameFlightKeysOnRouteAndAirline(t *testing.T) {
	base := models.ScheduleFlight{Origin: "MAD", Dest: "BCN", Airline: "IB", FlightDate: "2024-01-05"}

	otherAirline := base
	otherAirline.Airline = "VY"
	assert.False(t, SameFlight(base, otherAirline))

	otherTimes := base
	otherTimes.DepTime = 9.5
	otherTimes.ArrTime = 11.25
	assert.True(t, SameFlight(base, otherTimes), "departure times do not participate in identity")
}

func TestKeyHandlesDateFormats(t *testing.T) {
	iso := models.ScheduleFlight{Origin: "MAD", Dest: "BCN", Airline: "IB", FlightDate: "2024-01-05T10:00:00.000Z"}
	plain := models.ScheduleFlight{Origin: "MAD", Dest: "BCN", Airline: "IB", FlightDate: "2024-01-05"}
	assert.Equal(t, Key(iso), Key(plain))

	// Unparseable dates fall back to the raw string.
	garbled := models.ScheduleFlight{Origin: "MAD", Dest: "BCN", Airline: "IB", FlightDate: "someday"}
	assert.Contains(t, Key(garbled), "someday")
}

func TestLoadPopulatesCache(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/user-1/favorites", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"favorites":[{"ORIGIN":"MAD","DEST":"BCN","AIRLINE":"IB","FL_DATE":"2024-01-05"}]}}`))
	})

	ctx := context.Background()
	favs := Load(ctx)
	require.Len(t, favs, 1)

	match := models.ScheduleFlight{Origin: "MAD", Dest: "BCN", Airline: "IB", FlightDate: "2024-01-05T08:00:00Z"}
	assert.True(t, IsFavorite(ctx, match))

	other := models.ScheduleFlight{Origin: "MAD", Dest: "LHR", Airline: "IB", FlightDate: "2024-01-05"}
	assert.False(t, IsFavorite(ctx, other))
}

func TestLoadFailureDegradesToEmpty(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.Empty(t, Load(context.Background()))
}

func TestResetForgetsCache(t *testing.T) {
	var requests int
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"favorites":[]}}`))
	})

	ctx := context.Background()
	All(ctx)
	All(ctx)
	assert.Equal(t, 1, requests, "second All must hit the cache")

	Reset()
	All(ctx)
	assert.Equal(t, 2, requests, "Reset must force a reload")
}
