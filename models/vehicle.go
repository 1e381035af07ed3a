package models

// VehicleClass buckets a customer vehicle for pricing purposes.
type VehicleClass string

const (
	ClassSedan  VehicleClass = "sedan"
	ClassSUV    VehicleClass = "suv"
	ClassVan    VehicleClass = "van"
	ClassTruck  VehicleClass = "truck"
	ClassExotic VehicleClass = "exotic"
)

// vehicleClassModifiers are flat additions applied on top of a service's base
// price, keyed by vehicle class. Sedan is the baseline.
var vehicleClassModifiers = map[VehicleClass]float64{
	ClassSedan:  0,
	ClassSUV:    25,
	ClassVan:    35,
	ClassTruck:  40,
	ClassExotic: 100,
}

// Modifier returns the flat price addition for the class. Unknown classes
// price as sedan.
func (c VehicleClass) Modifier() float64 {
	return vehicleClassModifiers[c]
}

// ValidVehicleClass reports whether c is a known class.
func ValidVehicleClass(c VehicleClass) bool {
	_, ok := vehicleClassModifiers[c]
	return ok
}

// Vehicle is a customer vehicle captured during the booking funnel.
type Vehicle struct {
	Year  string       `bson:"year" json:"year"`
	Make  string       `bson:"make" json:"make"`
	Model string       `bson:"model" json:"model"`
	Class VehicleClass `bson:"class" json:"class"`
}
