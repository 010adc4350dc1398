package kernel

import (
	"errors"
	"fmt"
	"math"

	"fieldops/internal/pkg/errs"
	"fieldops/internal/pkg/guard"
)

const (
	// EarthRadiusKM is the mean Earth radius used by the haversine formula.
	EarthRadiusKM = 6371.0

	latitudeMin  = -90.0
	latitudeMax  = 90.0
	longitudeMin = -180.0
	longitudeMax = 180.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an
// improperly initialized GeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via the NewGeoPoint constructor")

// GeoPoint is an immutable WGS84 coordinate pair. Site registrations and
// courier position pings both carry one. The zero value is invalid and
// fails validation; use NewGeoPoint.
//
// A (0,0) pair is rejected on purpose: the fleet operates nowhere near the
// Gulf of Guinea and unregistered site coordinates arrive as zeros.
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint, validating latitude ∈ [-90, 90] and
// longitude ∈ [-180, 180] and rejecting the (0,0) placeholder pair.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}
	if latitude == 0 && longitude == 0 {
		return GeoPoint{}, errs.NewValueIsInvalidError("coordinates (0,0) are a placeholder, not a position")
	}

	return p, nil
}

// Validate returns ErrGeoPointIsNotConstructed for the zero value.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// DistanceKM returns the great-circle (haversine) distance to other in
// kilometers. The value is unrounded; selection logic must compare these
// raw values and only round for display via RoundKM.
func (p GeoPoint) DistanceKM(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := toRadians(other.latitude - p.latitude)
	dLon := toRadians(other.longitude - p.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(p.latitude))*math.Cos(toRadians(other.latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKM * c, nil
}

// RoundKM rounds a distance to two decimal places for display.
func RoundKM(distanceKM float64) float64 {
	return math.Round(distanceKM*100) / 100
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < latitudeMin || latitude > latitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, latitudeMin, latitudeMax)
	}
	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < longitudeMin || longitude > longitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, longitudeMin, longitudeMax)
	}
	p.longitude = longitude
	return nil
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
