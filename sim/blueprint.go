package sim

import (
	"errors"
	"fmt"
)

// ErrUnknownBlueprint reports a spawn request for a vehicle type the catalog
// does not carry.
var ErrUnknownBlueprint = errors.New("unknown blueprint")

// Blueprint is a catalog entry actors are spawned from: a vehicle type with
// its kinematic limits and footprint.
type Blueprint struct {
	Name           string
	MaxSpeed       float64 // m/s, commanded target speeds are clamped to this
	Accel          float64 // m/s^2 default rate when ramping up to a target speed
	BrakeDecel     float64 // m/s^2 at full brake
	HandBrakeDecel float64 // m/s^2 with the hand brake locked
	// Radius bounds the footprint for overlap checks. It tracks vehicle
	// half-width rather than half-length so that traffic in adjacent lanes
	// passes without phantom contact.
	Radius float64
}

// catalog mirrors the simulator's blueprint library for the vehicle types the
// built-in scenarios use.
var catalog = map[string]Blueprint{
	"vehicle.lincoln.mkz2017": {
		Name: "vehicle.lincoln.mkz2017", MaxSpeed: 60, Accel: 4.0,
		BrakeDecel: 8.0, HandBrakeDecel: 10.0, Radius: 1.1,
	},
	"vehicle.tesla.model3": {
		Name: "vehicle.tesla.model3", MaxSpeed: 70, Accel: 4.5,
		BrakeDecel: 8.0, HandBrakeDecel: 10.0, Radius: 1.0,
	},
	"vehicle.audi.tt": {
		Name: "vehicle.audi.tt", MaxSpeed: 65, Accel: 4.0,
		BrakeDecel: 8.0, HandBrakeDecel: 10.0, Radius: 0.95,
	},
	"vehicle.diamondback.century": {
		Name: "vehicle.diamondback.century", MaxSpeed: 15, Accel: 3.0,
		BrakeDecel: 6.0, HandBrakeDecel: 8.0, Radius: 0.4,
	},
}

// LookupBlueprint resolves a catalog name.
func LookupBlueprint(name string) (Blueprint, error) {
	bp, ok := catalog[name]
	if !ok {
		return Blueprint{}, fmt.Errorf("%w: %q", ErrUnknownBlueprint, name)
	}
	return bp, nil
}

// BlueprintNames lists the catalog in no particular order.
func BlueprintNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	return names
}
