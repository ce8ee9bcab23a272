/*
Copyright 2025 Planfeed Contributors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planfeed/planfeed/pkg/catalog"
	"github.com/planfeed/planfeed/pkg/pricing"
	"github.com/planfeed/planfeed/pkg/workload"
)

func perfFixture() (*pricing.Table, []*catalog.Entry, []Application) {
	table := pricing.NewTable([]pricing.OfferRecord{
		{InstanceType: "c5.large", Region: "eu-1", ComputeUnits: 8},
		{InstanceType: "m5.large", Region: "eu-1", ComputeUnits: 10},
	})
	entries := []*catalog.Entry{
		{ID: "c5.large_eu-1", Name: "c5.large"},
		{ID: "m5.large_eu-1", Name: "m5.large"},
		{ID: "priv", Name: "onprem-host"},
	}
	apps := []Application{
		{ID: "app0", Name: "app0"},
		{ID: "app1", Name: "app1"},
	}
	return table, entries, apps
}

func TestBuildPerformanceTable(t *testing.T) {
	table, entries, apps := perfFixture()

	perfs, err := BuildPerformanceTable(table, entries, apps, []int64{1000, 500}, 1, 1)

	require.NoError(t, err)
	assert.Equal(t, 6, perfs.Len())

	// cell = baseline * compute units * factor
	v, ok := perfs.Get(entries[0], apps[0])
	require.True(t, ok)
	assert.Equal(t, int64(8000), v)

	v, ok = perfs.Get(entries[1], apps[1])
	require.True(t, ok)
	assert.Equal(t, int64(5000), v)
}

func TestBuildPerformanceTableDefaultComputeUnits(t *testing.T) {
	table, entries, apps := perfFixture()

	// "onprem-host" is absent from the price table; its cells use the
	// default compute-unit count.
	perfs, err := BuildPerformanceTable(table, entries, apps, []int64{1000, 500}, 1, 4)

	require.NoError(t, err)
	v, ok := perfs.Get(entries[2], apps[0])
	require.True(t, ok)
	assert.Equal(t, int64(4000), v)
}

func TestBuildPerformanceTableScalesByFactor(t *testing.T) {
	table, entries, apps := perfFixture()

	perfs, err := BuildPerformanceTable(table, entries, apps, []int64{1000, 500}, 3, 1)

	require.NoError(t, err)
	v, ok := perfs.Get(entries[0], apps[0])
	require.True(t, ok)
	assert.Equal(t, int64(24000), v)
}

func TestBuildPerformanceTableBaselineShapeMismatch(t *testing.T) {
	table, entries, apps := perfFixture()

	_, err := BuildPerformanceTable(table, entries, apps, []int64{1000}, 1, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, workload.ErrShapeMismatch)
}

func TestPerformanceTableForApp(t *testing.T) {
	table, entries, apps := perfFixture()
	perfs, err := BuildPerformanceTable(table, entries, apps, []int64{1000, 500}, 1, 1)
	require.NoError(t, err)

	list := perfs.ForApp(apps[0], entries)

	assert.Equal(t, []int64{8000, 10000, 1000}, list)
}

func TestRotated(t *testing.T) {
	assert.Equal(t, []int64{3, 4, 1, 2}, Rotated([]int64{1, 2, 3, 4}, 2))
	assert.Equal(t, []int64{1, 2, 3, 4}, Rotated([]int64{1, 2, 3, 4}, 0))
	assert.Equal(t, []int64{2, 3, 4, 1}, Rotated([]int64{1, 2, 3, 4}, 5))
	assert.Empty(t, Rotated([]int64{}, 3))
}

func TestRotatedNegativeIndex(t *testing.T) {
	// Negative rotation wraps the other way instead of panicking on Go's
	// sign-preserving modulo.
	assert.Equal(t, []int64{4, 1, 2, 3}, Rotated([]int64{1, 2, 3, 4}, -1))
	assert.Equal(t, []int64{3, 4, 1, 2}, Rotated([]int64{1, 2, 3, 4}, -6))
}

func TestCycle(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "a", "b", "a"}, Cycle([]string{"a", "b"}, 5))
	assert.Equal(t, []string{"a"}, Cycle([]string{"a", "b", "c"}, 1))
	assert.Empty(t, Cycle([]string{"a"}, 0))
}

func TestCycleEmptyList(t *testing.T) {
	// Cycling an empty list must not panic even when elements are
	// requested; the empty result surfaces downstream as a shape mismatch.
	var out []int64
	assert.NotPanics(t, func() { out = Cycle([]int64{}, 5) })
	assert.Empty(t, out)
}
