// SPDX-License-Identifier: MIT
package metrics_test

import (
	"testing"
	"time"

	"github.com/katalvlaran/lvlgrid/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := metrics.NewRegistry()
	require.NotNil(t, r.SetFlagsTotal)
	require.NotNil(t, r.RecomputeTotal)
	require.NotNil(t, r.RecomputeDuration)
	require.NotNil(t, r.FlaggedQuantities)
	require.NotNil(t, r.Prometheus())
}

func TestObserveSetFlags(t *testing.T) {
	r := metrics.NewRegistry()
	r.ObserveSetFlags("bus", metrics.ResultOK)
	r.ObserveSetFlags("bus", metrics.ResultOK)
	r.ObserveSetFlags("load", metrics.ResultRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.SetFlagsTotal.WithLabelValues("bus", metrics.ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SetFlagsTotal.WithLabelValues("load", metrics.ResultRejected)))
}

func TestObserveRecompute(t *testing.T) {
	r := metrics.NewRegistry()
	r.ObserveRecompute(3*time.Millisecond, 10, 4, 2, 1)
	r.ObserveRecompute(time.Millisecond, 12, 4, 2, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.RecomputeTotal))
	assert.Equal(t, 12.0, testutil.ToFloat64(r.FlaggedQuantities.WithLabelValues("vars")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.FlaggedQuantities.WithLabelValues("sparse")))

	families, err := r.Prometheus().Gather()
	require.NoError(t, err)
	var hist *dto.MetricFamily
	for _, mf := range families {
		if mf.GetName() == "lvlgrid_recompute_duration_seconds" {
			hist = mf
		}
	}
	require.NotNil(t, hist)
	assert.Equal(t, uint64(2), hist.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *metrics.Registry
	assert.NotPanics(t, func() {
		r.ObserveSetFlags("bus", metrics.ResultOK)
		r.ObserveRecompute(time.Second, 1, 1, 1, 1)
	})
}
