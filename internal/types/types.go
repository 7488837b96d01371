// README: Shared value types used across modules.
package types

// ID identifies stations, connectors, vehicles, batteries and sessions.
// Station and battery identifiers are DIDs in the demo fixtures.
type ID string

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
