package airports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownAirport(t *testing.T) {
	coord, ok := Lookup("MAD")
	require.True(t, ok)
	assert.InDelta(t, 40.4719, coord.Lat, 1e-6)
	assert.InDelta(t, -3.5626, coord.Lng, 1e-6)
}

func TestLookupUnknownAirport(t *testing.T) {
	_, ok := Lookup("XXX")
	assert.False(t, ok)

	// Lookup is case sensitive; codes are upper case on the wire.
	_, ok = Lookup("mad")
	assert.False(t, ok)
}

func TestCodesCoversCatalog(t *testing.T) {
	codes := Codes()
	assert.Len(t, codes, 10)
	assert.Contains(t, codes, "MAD")
	assert.Contains(t, codes, "LAX")
}
