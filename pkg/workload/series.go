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

// Package workload turns continuous demand curves into the discrete levels a
// capacity-planning optimizer can enumerate. It computes one quantum per
// application (a scaled GCD of the application's per-entry performance
// values) and rounds each hourly demand value up to the next quantum
// boundary, so provisioned capacity never falls below observed demand. It
// also resamples raw per-second request series into the hourly series the
// planner consumes.
package workload

import "errors"

// HorizonHours is the planning horizon: one year of hourly demand values.
const HorizonHours = 24 * 365

// ErrShapeMismatch reports inputs whose shapes disagree: a quanta list whose
// length differs from the number of applications, or an empty performance
// list where a GCD is required. These are fatal; no partial result is
// returned.
var ErrShapeMismatch = errors.New("shape mismatch")

// Series is one application's demand, one non-negative value per hour.
// Quantization changes values, never length.
type Series []int64

// Max returns the largest value of the series, 0 when empty.
func (s Series) Max() int64 {
	var max int64
	for _, v := range s {
		if v > max {
			max = v
		}
	}
	return max
}

// Truncated returns the first n values of the series, or the series itself
// when it is already no longer than n.
func (s Series) Truncated(n int) Series {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
