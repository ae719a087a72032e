package stats

import (
	"math"
	"sort"

	"github.com/fernandomartin18/UbicAir/models"
)

// Summary holds statistical measures for a data series.
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"stdDev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Range    float64 `json:"range"`
	Median   float64 `json:"median"`
}

// Summarize computes the summary for a data series. Returns nil for an
// empty series.
func Summarize(data []float64) *Summary {
	if len(data) == 0 {
		return nil
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	count := len(data)
	min := sorted[0]
	max := sorted[count-1]

	sum := 0.0
	for _, value := range data {
		sum += value
	}
	mean := sum / float64(count)

	sumSquaredDiff := 0.0
	for _, value := range data {
		diff := value - mean
		sumSquaredDiff += diff * diff
	}
	variance := sumSquaredDiff / float64(count)

	var median float64
	if count%2 == 0 {
		median = (sorted[count/2-1] + sorted[count/2]) / 2
	} else {
		median = sorted[count/2]
	}

	return &Summary{
		Count:    count,
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Min:      min,
		Max:      max,
		Range:    max - min,
		Median:   median,
	}
}

// DelaySummaries computes departure and arrival summaries over the monthly
// delay series.
func DelaySummaries(monthly []models.MonthlyDelay) (dep, arr *Summary) {
	depSeries := make([]float64, 0, len(monthly))
	arrSeries := make([]float64, 0, len(monthly))
	for _, m := range monthly {
		depSeries = append(depSeries, m.DepDelay)
		arrSeries = append(arrSeries, m.ArrDelay)
	}
	return Summarize(depSeries), Summarize(arrSeries)
}
