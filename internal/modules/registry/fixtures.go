// README: Demo station fixtures (Nordic/Baltic charging hubs).
package registry

import "gridpass/internal/types"

// Seed returns the demo station set. Connector status here is the boot state;
// occupy/release mutate the store copies, never these literals.
func Seed() []Station {
	return []Station{
		{
			ID:       "did:itn:charger:espoo-west",
			Name:     "Espoo West Mobility Hub",
			Operator: "Nordic Charge",
			Location: Location{
				City:     "Espoo",
				Country:  "FI",
				Address:  "Vanha Jorvaksentie 3",
				Position: types.Point{Lat: 60.1609, Lng: 24.6388},
			},
			Connectors: []Connector{
				{ID: "connector-ccs-a", Type: TypeCCS2, PowerKw: 200, Status: StatusAvailable},
				{ID: "connector-ccs-b", Type: TypeCCS2, PowerKw: 200, Status: StatusOccupied},
				{ID: "connector-type2-a", Type: TypeType2, PowerKw: 22, Status: StatusAvailable},
			},
		},
		{
			ID:       "did:itn:charger:fleet-01",
			Name:     "GridPass Demo Station",
			Operator: "GridPass Demo Ops",
			Location: Location{
				City:     "Helsinki",
				Country:  "FI",
				Address:  "Examplekatu 1",
				Position: types.Point{Lat: 60.1699, Lng: 24.9384},
			},
			Connectors: []Connector{
				{ID: "connector-1", Type: TypeCCS2, PowerKw: 150, Status: StatusAvailable},
				{ID: "connector-2", Type: TypeCHAdeMO, PowerKw: 50, Status: StatusAvailable},
			},
		},
		{
			ID:       "did:itn:charger:fleet-02",
			Name:     "Harbor Fast Charge",
			Operator: "Baltic Charge",
			Location: Location{
				City:     "Tallinn",
				Country:  "EE",
				Address:  "Port Road 12",
				Position: types.Point{Lat: 59.447, Lng: 24.7536},
			},
			Connectors: []Connector{
				{ID: "connector-a", Type: TypeCCS2, PowerKw: 300, Status: StatusAvailable},
				{ID: "connector-b", Type: TypeCCS2, PowerKw: 300, Status: StatusOccupied},
			},
		},
	}
}
