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

// Package problem packages the prepared catalog, quantized demand, and
// performance table into the input structure of the external optimization
// solver, and defines the collaborator contract for reading its results
// back. The solver's algorithm is out of scope here; this package only
// shapes its inputs and interprets its result status.
package problem

import (
	"github.com/planfeed/planfeed/pkg/catalog"
	"github.com/planfeed/planfeed/pkg/workload"
)

// Application is an opaque named workload the planner provisions for.
type Application struct {
	ID   string
	Name string
}

// perfKey identifies one (catalog entry, application) performance cell.
type perfKey struct {
	entryID string
	appID   string
}

// PerformanceTable maps (catalog entry, application) to the throughput per
// hour the application achieves on one unit of that entry.
type PerformanceTable struct {
	// TimeUnit is the throughput time base, always "h" here.
	TimeUnit string

	values map[perfKey]int64
}

// NewPerformanceTable creates an empty table with an hourly time base.
func NewPerformanceTable() *PerformanceTable {
	return &PerformanceTable{
		TimeUnit: catalog.TimeUnitHour,
		values:   make(map[perfKey]int64),
	}
}

// Set records the throughput of app on one unit of entry.
func (t *PerformanceTable) Set(entry *catalog.Entry, app Application, throughput int64) {
	t.values[perfKey{entryID: entry.ID, appID: app.ID}] = throughput
}

// Get returns the throughput of app on one unit of entry, with false when
// the pair was never recorded.
func (t *PerformanceTable) Get(entry *catalog.Entry, app Application) (int64, bool) {
	v, ok := t.values[perfKey{entryID: entry.ID, appID: app.ID}]
	return v, ok
}

// Len returns the number of recorded cells.
func (t *PerformanceTable) Len() int {
	return len(t.values)
}

// ForApp returns app's performance values across the given entries, in entry
// order. Entries without a recorded value are skipped. This is the per-app
// list the quantizer derives its GCD from.
func (t *PerformanceTable) ForApp(app Application, entries []*catalog.Entry) []int64 {
	perfs := make([]int64, 0, len(entries))
	for _, entry := range entries {
		if v, ok := t.Get(entry, app); ok {
			perfs = append(perfs, v)
		}
	}
	return perfs
}

// Problem is the complete input bundle handed to the external solver: the
// purchasable catalog, the per-application demand series (quantized or raw),
// and the performance table relating the two. Demand is parallel to Apps.
type Problem struct {
	ID   string
	Name string

	Entries      []*catalog.Entry
	Apps         []Application
	Demand       []workload.Series
	Performances *PerformanceTable
}
