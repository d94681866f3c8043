package analytics

import (
	"playpulse/domain/stats"
	"playpulse/internal/sample"
)

const (
	// tukeyK scales the IQR into the fence distance
	tukeyK = 1.5
	// minOutlierSample is the smallest clean sample with a meaningful IQR
	minOutlierSample = 4
)

// DetectOutliers flags the values outside [Q1 - 1.5*IQR, Q3 + 1.5*IQR].
// Samples with fewer than four clean values produce an empty result.
func DetectOutliers(values []float64) (result stats.OutlierResult) {
	defer guard("DetectOutliers", &result, emptyOutliers)

	clean := sample.Clean(values)
	if len(clean) < minOutlierSample {
		return emptyOutliers()
	}

	summary := Summarize(clean)
	lower := summary.Q1 - tukeyK*summary.IQR
	upper := summary.Q3 + tukeyK*summary.IQR

	outliers := make([]float64, 0)
	for _, v := range clean {
		if v < lower || v > upper {
			outliers = append(outliers, v)
		}
	}

	return stats.OutlierResult{
		Outliers:          outliers,
		LowerBound:        lower,
		UpperBound:        upper,
		OutlierCount:      len(outliers),
		OutlierPercentage: sample.Percent(float64(len(outliers)), float64(len(clean))),
	}
}

func emptyOutliers() stats.OutlierResult {
	return stats.OutlierResult{Outliers: []float64{}}
}
