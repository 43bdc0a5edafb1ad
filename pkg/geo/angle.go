package geo

import (
	"math"

	"github.com/lintang-b-s/maneuverx/pkg/util"
)

/*
BearingTo. menghitung sudut initial bearing untuk edge (p1,p2).
https://www.movable-type.co.uk/scripts/latlong.html
*/
func BearingTo(p1Lat, p1Lon, p2Lat, p2Lon float64) float64 {

	dLon := util.DegreeToRadians(p2Lon - p1Lon)

	lat1 := util.DegreeToRadians(p1Lat)
	lat2 := util.DegreeToRadians(p2Lat)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	brng := math.Mod(util.RadiansToDegree(math.Atan2(y, x))+360, 360.0)

	return brng
}

// AngularDeviation. absolute difference between two angles, folded into [0,180].
func AngularDeviation(angle, from float64) float64 {
	d := math.Abs(angle - from)
	d = math.Mod(d, 360)
	if d > 180 {
		return 360 - d
	}
	return d
}

// AngleBetweenBearings. smallest rotation between two compass bearings, [0,180].
func AngleBetweenBearings(a, b float64) float64 {
	return AngularDeviation(a, b)
}

// NormalizeBearing folds a bearing into [0,360).
func NormalizeBearing(bearing float64) float64 {
	b := math.Mod(bearing, 360)
	if b < 0 {
		b += 360
	}
	return b
}

/*
ComputeTurnAngle. sudut belok kandidat relatif terhadap arrival edge, [0,360).
0/360 = U-turn (putar balik ke arah datang), 180 = lurus, < 180 belok kanan,
> 180 belok kiri.

	 from ---- at ---- candidate   => 180
	 from ---- at
	              \ candidate      => 90 (right)
*/
func ComputeTurnAngle(fromLat, fromLon, atLat, atLon, candLat, candLon float64) float64 {
	backBearing := BearingTo(atLat, atLon, fromLat, fromLon)
	candBearing := BearingTo(atLat, atLon, candLat, candLon)
	return NormalizeBearing(backBearing - candBearing)
}

// TurnAngleFromBearings derives the relative turn angle from the arrival edge
// bearing (pointing into the junction) and the candidate bearing (pointing
// out). right turns land below 180, left turns above.
func TurnAngleFromBearings(inBearing, outBearing float64) float64 {
	backBearing := NormalizeBearing(inBearing + 180)
	return NormalizeBearing(backBearing - outBearing)
}
