package geo

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	earthRadiusKM = 6371.0
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

// CalculateHaversineDistance returns the great circle distance in km.
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degreeToRadians(latOne)
	longOne = degreeToRadians(longOne)
	latTwo = degreeToRadians(latTwo)
	longTwo = degreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// PointDistance in meter. orb points are (lon, lat).
func PointDistance(a, b orb.Point) float64 {
	return CalculateHaversineDistance(a.Lat(), a.Lon(), b.Lat(), b.Lon()) * 1000
}

// LineStringLength in meter.
func LineStringLength(ls orb.LineString) float64 {
	length := 0.0
	for i := 1; i < len(ls); i++ {
		length += PointDistance(ls[i-1], ls[i])
	}
	return length
}

// PointAlong returns the point distAlong meters from the start of ls, clamped to its ends.
func PointAlong(ls orb.LineString, distAlong float64) orb.Point {
	if len(ls) == 0 {
		return orb.Point{}
	}
	if distAlong <= 0 {
		return ls[0]
	}
	for i := 1; i < len(ls); i++ {
		seg := PointDistance(ls[i-1], ls[i])
		if distAlong <= seg && seg > 0 {
			t := distAlong / seg
			return orb.Point{
				ls[i-1][0] + t*(ls[i][0]-ls[i-1][0]),
				ls[i-1][1] + t*(ls[i][1]-ls[i-1][1]),
			}
		}
		distAlong -= seg
	}
	return ls[len(ls)-1]
}

func Reverse(ls orb.LineString) orb.LineString {
	reversed := make(orb.LineString, len(ls))
	for i := range ls {
		reversed[len(ls)-1-i] = ls[i]
	}
	return reversed
}
