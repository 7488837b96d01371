// README: Charging station registry aggregates: stations own their connectors.
package registry

import "gridpass/internal/types"

type ConnectorStatus string

const (
	StatusAvailable ConnectorStatus = "available"
	StatusOccupied  ConnectorStatus = "occupied"
)

type ConnectorType string

const (
	TypeCCS2    ConnectorType = "CCS2"
	TypeCHAdeMO ConnectorType = "CHAdeMO"
	TypeType2   ConnectorType = "Type2"
)

type Connector struct {
	ID      types.ID        `json:"connector_id"`
	Type    ConnectorType   `json:"type"`
	PowerKw float64         `json:"power_kw"`
	Status  ConnectorStatus `json:"status"`
}

type Location struct {
	City     string      `json:"city"`
	Country  string      `json:"country"`
	Address  string      `json:"address"`
	Position types.Point `json:"position"`
}

// Station is immutable registry data apart from connector status, which the
// store mutates through Occupy/Release.
type Station struct {
	ID         types.ID    `json:"station_id"`
	Name       string      `json:"name"`
	Operator   string      `json:"operator"`
	Location   Location    `json:"location"`
	Connectors []Connector `json:"connectors"`
}

// Snapshot is a point-in-time copy of a station with an availability summary.
type Snapshot struct {
	Station
	TotalConnectors     int `json:"total_connectors"`
	AvailableConnectors int `json:"available_connectors"`
	OccupiedConnectors  int `json:"occupied_connectors"`
}
