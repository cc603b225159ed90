package toll

import "fmt"

// VehicleClass identifies the registered type of a vehicle crossing a toll point.
type VehicleClass string

const (
	VehicleCar       VehicleClass = "Car"
	VehicleMotorbike VehicleClass = "Motorbike"
	VehicleTractor   VehicleClass = "Tractor"
	VehicleEmergency VehicleClass = "Emergency"
	VehicleDiplomat  VehicleClass = "Diplomat"
	VehicleForeign   VehicleClass = "Foreign"
	VehicleMilitary  VehicleClass = "Military"
)

// tollFreeVehicles is the fixed set of exempt vehicle classes. Car and any
// class added in the future without an entry here is chargeable.
var tollFreeVehicles = map[VehicleClass]struct{}{
	VehicleMotorbike: {},
	VehicleTractor:   {},
	VehicleEmergency: {},
	VehicleDiplomat:  {},
	VehicleForeign:   {},
	VehicleMilitary:  {},
}

var knownVehicles = map[VehicleClass]struct{}{
	VehicleCar:       {},
	VehicleMotorbike: {},
	VehicleTractor:   {},
	VehicleEmergency: {},
	VehicleDiplomat:  {},
	VehicleForeign:   {},
	VehicleMilitary:  {},
}

// IsTollFreeVehicle reports whether the vehicle class is exempt from tolls.
func IsTollFreeVehicle(v VehicleClass) bool {
	_, exempt := tollFreeVehicles[v]
	return exempt
}

// ParseVehicleClass validates a raw vehicle type string against the known set.
func ParseVehicleClass(s string) (VehicleClass, error) {
	v := VehicleClass(s)
	if _, ok := knownVehicles[v]; !ok {
		return "", fmt.Errorf("unknown vehicle type %q", s)
	}
	return v, nil
}
