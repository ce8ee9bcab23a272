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
	"fmt"
	"sort"
)

// SecondsPerHour is the default resampling bucket width.
const SecondsPerHour = 3600

// ResampleSum collapses a per-second request series into one value per
// bucket by summing each bucket. The last bucket may be partial. This is the
// default way to derive requests-per-hour from a per-second trace.
func ResampleSum(perSecond []int64, bucketSeconds int) (Series, error) {
	if bucketSeconds <= 0 {
		return nil, fmt.Errorf("bucket width must be positive, got %d", bucketSeconds)
	}

	out := make(Series, 0, (len(perSecond)+bucketSeconds-1)/bucketSeconds)
	for start := 0; start < len(perSecond); start += bucketSeconds {
		end := start + bucketSeconds
		if end > len(perSecond) {
			end = len(perSecond)
		}
		var sum int64
		for _, v := range perSecond[start:end] {
			sum += v
		}
		out = append(out, sum)
	}
	return out, nil
}

// ResamplePercentile collapses a per-second series into one value per bucket
// by taking the given per-second percentile of the bucket and scaling it to
// the bucket width, i.e. treating the percentile rate as sustained for the
// whole bucket. pct must be in (0, 1]; pct = 1.0 uses the bucket's peak
// second.
//
// The boolean result reports whether any bucket's percentile-derived value
// fell below the bucket's plain sum — a percentile low enough to guarantee
// less capacity than the hour actually needed. Callers typically log a
// warning when it is set.
func ResamplePercentile(perSecond []int64, bucketSeconds int, pct float64) (Series, bool, error) {
	if bucketSeconds <= 0 {
		return nil, false, fmt.Errorf("bucket width must be positive, got %d", bucketSeconds)
	}
	if pct <= 0 || pct > 1 {
		return nil, false, fmt.Errorf("percentile must be in (0, 1], got %g", pct)
	}

	underSum := false
	out := make(Series, 0, (len(perSecond)+bucketSeconds-1)/bucketSeconds)
	for start := 0; start < len(perSecond); start += bucketSeconds {
		end := start + bucketSeconds
		if end > len(perSecond) {
			end = len(perSecond)
		}
		bucket := perSecond[start:end]

		var sum int64
		for _, v := range bucket {
			sum += v
		}

		scaled := int64(percentile(bucket, pct) * float64(bucketSeconds))
		if scaled < sum {
			underSum = true
		}
		out = append(out, scaled)
	}
	return out, underSum, nil
}

// percentile computes the pct-th percentile of values with linear
// interpolation between closest ranks.
func percentile(values []int64, pct float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]int64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	pos := pct * float64(len(sorted)-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if lo >= len(sorted)-1 {
		return float64(sorted[len(sorted)-1])
	}
	return float64(sorted[lo]) + frac*float64(sorted[lo+1]-sorted[lo])
}
