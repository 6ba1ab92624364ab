package profile

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"datasense/domain/profile"
)

// shapeMarkers computes skewness and excess kurtosis for a numeric
// column. Shape is only meaningful with at least a few observations and
// nonzero spread; otherwise no markers are attached.
func shapeMarkers(numbers []float64) *profile.DistributionMarkers {
	if len(numbers) < 3 {
		return nil
	}

	skew := stat.Skew(numbers, nil)
	kurt := stat.ExKurtosis(numbers, nil)
	if math.IsNaN(skew) || math.IsInf(skew, 0) || math.IsNaN(kurt) || math.IsInf(kurt, 0) {
		return nil
	}

	return &profile.DistributionMarkers{
		Skewness: skew,
		Kurtosis: kurt,
	}
}
