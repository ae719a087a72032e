package events

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetEvents() {
	mutex.Lock()
	defer mutex.Unlock()
	events = nil
}

func TestLogEventAppends(t *testing.T) {
	resetEvents()

	LogEvent(Event{Type: TypeLogin, Source: "users", Detail: "ana@example.com", Timestamp: time.Now()})
	LogEvent(Event{Type: TypeFavoriteAdded, Source: "favorites", Timestamp: time.Now()})

	got := GetEvents()
	require.Len(t, got, 2)
	assert.Equal(t, TypeLogin, got[0].Type)
	assert.Equal(t, TypeFavoriteAdded, got[1].Type)
}

func TestGetEventsCapsAtFifty(t *testing.T) {
	resetEvents()

	for i := 0; i < 55; i++ {
		LogEvent(Event{Type: TypeExport, Source: "stats", Detail: fmt.Sprintf("csv-%d", i), Timestamp: time.Now()})
	}

	got := GetEvents()
	require.Len(t, got, 50)
	assert.Equal(t, "csv-5", got[0].Detail)
	assert.Equal(t, "csv-54", got[49].Detail)
}

func TestRingIsBoundedOnAppend(t *testing.T) {
	resetEvents()

	for i := 0; i < 500; i++ {
		LogEvent(Event{Type: TypePollError, Source: "radar", Timestamp: time.Now()})
	}

	mutex.Lock()
	held := len(events)
	mutex.Unlock()
	assert.Equal(t, maxEvents, held, "the ring must never hold more than its cap")
}

func TestGetEventsReturnsCopy(t *testing.T) {
	resetEvents()

	LogEvent(Event{Type: TypeLogout, Source: "users", Timestamp: time.Now()})

	got := GetEvents()
	got[0].Detail = "mutated"
	assert.Empty(t, GetEvents()[0].Detail)
}
