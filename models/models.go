package models

import "time"

// TelemetryFlight is a live snapshot of an in-progress simulated flight,
// as delivered by the backend telemetry endpoint.
type TelemetryFlight struct {
	ID          string    `json:"_id,omitempty"`
	FlightID    string    `json:"flightId"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Altitude    float64   `json:"altitude"` // feet
	Speed       float64   `json:"speed"`    // km/h
	Fuel        float64   `json:"fuel"`     // liters
	Progress    float64   `json:"progress"` // 0-100, percentage of route complete
	Timestamp   time.Time `json:"timestamp"`
}

// TelemetryStats carries the simulator's summary counters.
type TelemetryStats struct {
	ActiveFlights    int `json:"vuelosActivos"`
	CompletedFlights int `json:"vuelosCompletados"`
	TotalFlights     int `json:"vuelosTotales"`
}

// ScheduleFlight is a static flight definition used for search and
// favoriting, distinct from telemetry. Field names match the backend wire
// format (US DOT-style column names).
type ScheduleFlight struct {
	Origin     string  `json:"ORIGIN"`
	Dest       string  `json:"DEST"`
	Airline    string  `json:"AIRLINE"`
	FlightDate string  `json:"FL_DATE"`
	DepTime    float64 `json:"DEP_TIME"` // decimal hours, e.g. 13.5 == 13:30
	ArrTime    float64 `json:"ARR_TIME"`
	AirTime    float64 `json:"AIR_TIME"` // minutes
	Distance   float64 `json:"DISTANCE"` // km
	DepDelay   float64 `json:"DEP_DELAY"` // minutes, negative means early
	ArrDelay   float64 `json:"ARR_DELAY"`
}

// User is the profile record held by the backend.
type User struct {
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Photo string `json:"fotoPerfil,omitempty"` // data URI
}

// UserUpdate carries only the profile fields being changed.
type UserUpdate struct {
	Name     string `json:"nombre,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Photo    string `json:"foto,omitempty"` // data URI
}

// AuthResult is returned by the backend on successful login or registration.
type AuthResult struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// GeneralStats is the pre-aggregated overview from /api/vuelos/estadisticas.
type GeneralStats struct {
	TotalFlights     int     `json:"totalFlights"`
	AvgDepDelay      float64 `json:"avgDepDelay"`
	AvgArrDelay      float64 `json:"avgArrDelay"`
	AvgAirTime       float64 `json:"avgAirTime"`
	AvgDistance      float64 `json:"avgDistance"`
	OnTimePercentage float64 `json:"onTimePercentage"`
}

// MonthlyDelay is one row of the delay analysis series.
type MonthlyDelay struct {
	Month    string  `json:"month"`
	DepDelay float64 `json:"depDelay"`
	ArrDelay float64 `json:"arrDelay"`
}

// DelayBucket is one row of the delay distribution histogram.
type DelayBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// DelayAnalysis is the pre-aggregated payload from /api/vuelos/analisis-retrasos.
type DelayAnalysis struct {
	Monthly      []MonthlyDelay `json:"monthly"`
	Distribution []DelayBucket  `json:"distribution"`
}

// AirlineStats is one airline's row from /api/vuelos/comparacion-aerolineas.
type AirlineStats struct {
	Airline     string  `json:"airline"`
	Flights     int     `json:"flights"`
	OnTime      float64 `json:"onTime"`
	AvgDelay    float64 `json:"avgDelay"`
	AvgDistance float64 `json:"avgDistance"`
}
