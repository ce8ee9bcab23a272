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

import "fmt"

// Quanta computes one quantum per application: the greatest common divisor
// of the application's performance values across every catalog entry,
// multiplied by factor.
//
// The GCD is the finest granularity at which demand can be expressed as an
// integer number of instance-equivalents without rounding error on any
// entry; the factor coarsens the grid to trade model size for solve speed.
// A factor of 0 yields all-zero quanta, which Discretize rejects — callers
// disabling quantization skip discretization entirely (see QuantizeAll).
//
// An empty performance list is a fatal ErrShapeMismatch: no quantum can be
// derived for an application that runs on nothing.
func Quanta(perfLists [][]int64, factor int64) ([]int64, error) {
	quanta := make([]int64, len(perfLists))
	for i, perfs := range perfLists {
		if len(perfs) == 0 {
			return nil, fmt.Errorf("%w: application %d has no performance values", ErrShapeMismatch, i)
		}
		q := perfs[0]
		for _, p := range perfs[1:] {
			q = gcd(q, p)
		}
		quanta[i] = q * factor
	}
	return quanta, nil
}

// Discretize maps each demand value onto the ascending grid
// 0, quantum, 2*quantum, … by rounding up to the smallest grid point that is
// greater than or equal to it. Rounding is always upward so quantized demand
// never under-provisions the raw demand. The returned series has the same
// length as the input.
//
// The quantum must be positive; Quanta only produces zero quanta for a zero
// factor, and that case never reaches Discretize.
func Discretize(s Series, quantum int64) Series {
	out := make(Series, len(s))
	for i, v := range s {
		if v <= 0 {
			out[i] = 0
			continue
		}
		out[i] = ((v + quantum - 1) / quantum) * quantum
	}
	return out
}

// QuantizeAll discretizes every application's series with its own quantum.
// A factor of 0 disables quantization: the input series are returned
// unchanged. Otherwise the number of quanta must equal the number of series
// (ErrShapeMismatch) and every quantum must be positive.
func QuantizeAll(series []Series, quanta []int64, factor int64) ([]Series, error) {
	if factor == 0 {
		return series, nil
	}
	if len(series) != len(quanta) {
		return nil, fmt.Errorf("%w: %d quanta for %d applications", ErrShapeMismatch, len(quanta), len(series))
	}
	out := make([]Series, len(series))
	for i, s := range series {
		if quanta[i] <= 0 {
			return nil, fmt.Errorf("%w: quantum for application %d is %d, must be positive", ErrShapeMismatch, i, quanta[i])
		}
		out[i] = Discretize(s, quanta[i])
	}
	return out, nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
