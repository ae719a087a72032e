package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernandomartin18/UbicAir/models"
)

func TestSummarizeEmptySeries(t *testing.T) {
	assert.Nil(t, Summarize(nil))
	assert.Nil(t, Summarize([]float64{}))
}

func TestSummarizeEvenSeries(t *testing.T) {
	s := Summarize([]float64{4, 1, 3, 2})
	require.NotNil(t, s)

	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-9)
	assert.InDelta(t, 1.25, s.Variance, 1e-9)
	assert.InDelta(t, 1.1180339887, s.StdDev, 1e-9)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)
	assert.Equal(t, 3.0, s.Range)
	assert.InDelta(t, 2.5, s.Median, 1e-9)
}

func TestSummarizeOddSeries(t *testing.T) {
	s := Summarize([]float64{10, -5, 3})
	require.NotNil(t, s)

	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 3.0, s.Median, 1e-9)
	assert.Equal(t, -5.0, s.Min)
	assert.Equal(t, 10.0, s.Max)
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	data := []float64{3, 1, 2}
	Summarize(data)
	assert.Equal(t, []float64{3, 1, 2}, data)
}

func TestDelaySummaries(t *testing.T) {
	monthly := []models.MonthlyDelay{
		{Month: "2024-01", DepDelay: 10, ArrDelay: 5},
		{Month: "2024-02", DepDelay: 20, ArrDelay: 15},
	}

	dep, arr := DelaySummaries(monthly)
	require.NotNil(t, dep)
	require.NotNil(t, arr)
	assert.InDelta(t, 15.0, dep.Mean, 1e-9)
	assert.InDelta(t, 10.0, arr.Mean, 1e-9)

	dep, arr = DelaySummaries(nil)
	assert.Nil(t, dep)
	assert.Nil(t, arr)
}
