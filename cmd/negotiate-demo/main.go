// README: CLI demo; runs one negotiation against the fixture data and prints the plan.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"gridpass/internal/logging"
	"gridpass/internal/metrics"
	"gridpass/internal/modules/battery"
	"gridpass/internal/modules/negotiator"
	"gridpass/internal/modules/pricing"
	"gridpass/internal/modules/registry"
	"gridpass/internal/modules/telemetry"
	"gridpass/internal/types"
)

func main() {
	var (
		lat      = flag.Float64("lat", 60.1699, "driver latitude")
		lng      = flag.Float64("lng", 24.9384, "driver longitude")
		target   = flag.Float64("target", 80, "target state of charge in percent")
		strategy = flag.String("strategy", "balanced", "cost | speed | balanced")
		vin      = flag.String("vin", "W1KAH5EB2PF093797", "vehicle VIN")
		hours    = flag.Float64("hours", 2, "hours until departure")
	)
	flag.Parse()

	log := logging.New("negotiate-demo")

	parsed, err := negotiator.ParseStrategy(*strategy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid strategy")
	}

	store := telemetry.NewMemoryStore()
	svc := negotiator.NewService(
		registry.NewStore(registry.Seed()),
		battery.NewService(store, logging.Nop()),
		pricing.NewService(store, logging.Nop()),
		negotiator.BaselineSelector{},
		metrics.NewNegotiationMetrics(prometheus.NewRegistry()),
		logging.Nop(),
	)

	deadline := time.Now().UTC().Add(time.Duration(*hours * float64(time.Hour)))
	resp, err := svc.Negotiate(context.Background(), negotiator.Request{
		Origin:    types.Point{Lat: *lat, Lng: *lng},
		TargetSoC: *target / 100.0,
		Deadline:  &deadline,
		Strategy:  parsed,
		VIN:       types.ID(*vin),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("negotiation failed")
	}

	fmt.Printf("battery: soc %.0f%% -> %.0f%%, deficit %.2f kWh, ceiling %.0f kW\n",
		resp.Battery.CurrentSoC*100, resp.Battery.TargetSoC*100,
		resp.Battery.EnergyDeficitKwh, resp.Battery.MaxSafePowerKw)
	fmt.Printf("candidates: %d\n", resp.CandidateCount)
	for _, c := range resp.Candidates {
		fmt.Printf("  %-28s %-18s %6.0f kW  %5.2f h  %6.2f EUR  feasible=%v\n",
			c.StationName, c.ConnectorID, c.ConnectorPowerKw,
			c.SessionDurationH, c.TotalCostEur, c.CanMeetReadyBy)
	}

	if resp.Plan == nil {
		fmt.Printf("no plan: %s\n", resp.Reason)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(resp.Plan, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode plan")
	}
	fmt.Println(string(out))
}
