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
	"fmt"

	"github.com/planfeed/planfeed/pkg/catalog"
	"github.com/planfeed/planfeed/pkg/pricing"
	"github.com/planfeed/planfeed/pkg/workload"
)

// BuildPerformanceTable derives the full (entry, application) throughput
// table. Each cell is the application's baseline throughput per compute unit
// multiplied by the entry type's compute-unit count and a global scaling
// factor.
//
// The compute-unit count comes from the raw price table's ECU column (first
// usable row for the type); types absent from the table — private-cloud
// machines, typically — fall back to defaultComputeUnits, whose sanity is
// the caller's responsibility.
//
// baselines is parallel to apps (one per-compute-unit throughput per
// application); a length mismatch is a fatal ErrShapeMismatch.
func BuildPerformanceTable(
	table *pricing.Table,
	entries []*catalog.Entry,
	apps []Application,
	baselines []int64,
	perfFactor int64,
	defaultComputeUnits int64,
) (*PerformanceTable, error) {
	if len(baselines) != len(apps) {
		return nil, fmt.Errorf("%w: %d baselines for %d applications",
			workload.ErrShapeMismatch, len(baselines), len(apps))
	}

	perfs := NewPerformanceTable()
	for _, entry := range entries {
		units, ok := table.ComputeUnits(entry.Name)
		if !ok {
			units = defaultComputeUnits
		}
		for i, app := range apps {
			perfs.Set(entry, app, baselines[i]*units*perfFactor)
		}
	}
	return perfs, nil
}

// Rotated returns list rotated so that the element at index first comes
// first and the elements before it wrap around to the end. A negative first
// rotates the other way. Experiment harnesses use it to vary which
// application receives which baseline and demand trace.
func Rotated[T any](list []T, first int) []T {
	if len(list) == 0 {
		return list
	}
	first = first % len(list)
	if first < 0 {
		first += len(list)
	}
	out := make([]T, 0, len(list))
	out = append(out, list[first:]...)
	out = append(out, list[:first]...)
	return out
}

// Cycle returns n elements drawn from list in order, wrapping around as
// needed. It synthesizes inputs for more applications than there are source
// workloads. An empty list yields an empty result regardless of n; callers
// relying on a parallel-to-applications output catch that downstream as a
// shape mismatch.
func Cycle[T any](list []T, n int) []T {
	if len(list) == 0 {
		return nil
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = list[i%len(list)]
	}
	return out
}
