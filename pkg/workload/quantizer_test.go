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

package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantaGCD(t *testing.T) {
	quanta, err := Quanta([][]int64{{1000, 500, 2000}}, 1)

	require.NoError(t, err)
	assert.Equal(t, []int64{500}, quanta)
}

func TestQuantaScalesByFactor(t *testing.T) {
	quanta, err := Quanta([][]int64{{1000, 500, 2000}, {300, 450}}, 10)

	require.NoError(t, err)
	assert.Equal(t, []int64{5000, 1500}, quanta)
}

func TestQuantaSingleValue(t *testing.T) {
	quanta, err := Quanta([][]int64{{700}}, 1)

	require.NoError(t, err)
	assert.Equal(t, []int64{700}, quanta)
}

func TestQuantaEmptyPerformanceListFails(t *testing.T) {
	_, err := Quanta([][]int64{{1000}, {}}, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestDiscretizeRoundsUp(t *testing.T) {
	out := Discretize(Series{0, 499, 500, 501}, 500)

	assert.Equal(t, Series{0, 500, 500, 1000}, out)
}

func TestDiscretizeExactMultiplesUnchanged(t *testing.T) {
	in := Series{0, 500, 1500, 10000}
	out := Discretize(in, 500)

	assert.Equal(t, in, out)
}

func TestDiscretizeNeverUnderProvisions(t *testing.T) {
	in := Series{1, 7, 13, 999, 1000, 1001}
	out := Discretize(in, 7)

	require.Len(t, out, len(in))
	for i := range in {
		assert.GreaterOrEqual(t, out[i], in[i], "index %d", i)
		assert.Zero(t, out[i]%7, "index %d not on grid", i)
		assert.Less(t, out[i]-in[i], int64(7), "index %d rounded past the next grid point", i)
	}
}

func TestDiscretizeNonPositiveValuesMapToZero(t *testing.T) {
	out := Discretize(Series{-5, 0, 5}, 10)

	assert.Equal(t, Series{0, 0, 10}, out)
}

func TestQuantizeAllFactorZeroIsPassthrough(t *testing.T) {
	in := []Series{{1, 2, 3}, {999}}

	out, err := QuantizeAll(in, nil, 0)

	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestQuantizeAllLengthMismatchFails(t *testing.T) {
	_, err := QuantizeAll([]Series{{1}, {2}}, []int64{500}, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestQuantizeAllNonPositiveQuantumFails(t *testing.T) {
	_, err := QuantizeAll([]Series{{1}}, []int64{0}, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestQuantizeAllPerApplicationQuantum(t *testing.T) {
	out, err := QuantizeAll([]Series{{499, 501}, {499, 501}}, []int64{500, 100}, 1)

	require.NoError(t, err)
	assert.Equal(t, Series{500, 1000}, out[0])
	assert.Equal(t, Series{500, 600}, out[1])
}

func TestQuantizeAllPreservesLength(t *testing.T) {
	in := []Series{{1, 2, 3, 4, 5}}

	out, err := QuantizeAll(in, []int64{3}, 1)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Len(t, out[0], 5)
}

func TestSeriesMax(t *testing.T) {
	assert.Equal(t, int64(9), Series{3, 9, 1}.Max())
	assert.Equal(t, int64(0), Series{}.Max())
}

func TestSeriesTruncated(t *testing.T) {
	s := Series{1, 2, 3, 4}

	assert.Equal(t, Series{1, 2}, s.Truncated(2))
	assert.Equal(t, s, s.Truncated(10))
}
