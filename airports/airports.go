// Package airports is the static coordinate reference for the airports the
// telemetry simulator flies between. Loaded once, immutable for the process
// lifetime.
package airports

// Coord is a WGS84 position in decimal degrees.
type Coord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

var reference = map[string]Coord{
	"MAD": {40.4719, -3.5626},
	"BCN": {41.2971, 2.0785},
	"LHR": {51.4700, -0.4543},
	"CDG": {49.0097, 2.5479},
	"JFK": {40.6413, -73.7781},
	"FRA": {50.0379, 8.5622},
	"AMS": {52.3105, 4.7683},
	"FCO": {41.8003, 12.2389},
	"DXB": {25.2532, 55.3657},
	"LAX": {33.9416, -118.4085},
}

// Lookup returns the coordinates for a 3-letter airport code.
func Lookup(code string) (Coord, bool) {
	c, ok := reference[code]
	return c, ok
}

// Codes returns all known airport codes.
func Codes() []string {
	codes := make([]string, 0, len(reference))
	for code := range reference {
		codes = append(codes, code)
	}
	return codes
}
