// README: Drive-time estimates via Google Maps, used to enrich plans.
package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"gridpass/internal/types"
)

// TravelService handles interactions with Google Maps API.
type TravelService struct {
	client *maps.Client
}

// NewTravelService creates a new TravelService with the given API Key.
func NewTravelService(apiKey string) (*TravelService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &TravelService{client: client}, nil
}

// DriveEstimate returns the driving duration and distance string from origin
// to destination.
func (s *TravelService) DriveEstimate(ctx context.Context, origin, destination types.Point) (time.Duration, string, error) {
	r := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", origin.Lat, origin.Lng),
		Destination: fmt.Sprintf("%f,%f", destination.Lat, destination.Lng),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, "", fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, "", fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	return leg.Duration, leg.Distance.HumanReadable, nil
}
