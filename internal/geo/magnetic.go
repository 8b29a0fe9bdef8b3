package geo

import (
	"math"

	"github.com/nazarpelekh/legit-wearher-bot/internal/models"
)

// Geomagnetic north pole reference used for the dipole approximation.
const (
	magPoleLatitude  = 86.5
	magPoleLongitude = -164.04
)

// ovalBaseLatitude anchors the quiet-time auroral oval; the boundary moves
// equatorward by two degrees of magnetic latitude per Kp unit.
const ovalBaseLatitude = 67.0

// MagneticLatitude converts a geographic coordinate to magnetic latitude by
// rotating the sphere toward the magnetic pole:
//
//	sin(maglat) = sin(Φp)·sin(φ) + cos(Φp)·cos(φ)·cos(λ−λp)
func MagneticLatitude(lat, lon float64) float64 {
	latRad := lat * math.Pi / 180
	lonRad := lon * math.Pi / 180
	poleLatRad := magPoleLatitude * math.Pi / 180
	poleLonRad := magPoleLongitude * math.Pi / 180

	sinMagLat := math.Sin(poleLatRad)*math.Sin(latRad) +
		math.Cos(poleLatRad)*math.Cos(latRad)*math.Cos(lonRad-poleLonRad)

	return math.Asin(sinMagLat) * 180 / math.Pi
}

// AuroralBoundary returns the magnetic latitude of the equatorward oval edge
// for the given Kp.
func AuroralBoundary(kp float64) float64 {
	return ovalBaseLatitude - 2*kp
}

// AssessVisibility evaluates aurora visibility for a location at the given
// Kp. A NaN from the rotation (out-of-range input) is recovered with the
// rough offset approximation maglat ≈ lat − 11 instead of propagating.
func AssessVisibility(lat, lon, kp float64) models.AuroraVisibilityAssessment {
	magLat := MagneticLatitude(lat, lon)
	approximate := false
	if math.IsNaN(magLat) {
		magLat = lat - 11
		approximate = true
	}

	boundary := AuroralBoundary(kp)
	absMagLat := math.Abs(magLat)
	visible := absMagLat >= boundary

	assessment := models.AuroraVisibilityAssessment{
		Latitude:          lat,
		Longitude:         lon,
		MagneticLatitude:  magLat,
		AuroralBoundary:   boundary,
		Visible:           visible,
		DistanceToOval:    math.Abs(absMagLat - boundary),
		ApproximateMagLat: approximate,
	}
	if !visible {
		// Reported as computed, without clamping to the 0-9 Kp scale.
		assessment.RequiredKp = int(math.Ceil((ovalBaseLatitude - absMagLat) / 2))
	}
	return assessment
}
