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

	"github.com/go-logr/logr"

	"github.com/planfeed/planfeed/pkg/catalog"
	"github.com/planfeed/planfeed/pkg/workload"
)

// Assembler validates and packages the prepared inputs into a Problem.
// Shape failures abort assembly with no partial result; the caller gets
// either a complete, consistent Problem or an error.
type Assembler struct {
	// Log receives assembly summaries. Optional.
	Log logr.Logger
}

// Assemble bundles the catalog, applications, demand series, and
// performance table into a Problem for the external solver.
//
// Demand must be parallel to apps, and every (entry, app) pair must have a
// recorded performance value; either failure is a fatal ErrShapeMismatch.
func (a *Assembler) Assemble(
	id, name string,
	entries []*catalog.Entry,
	apps []Application,
	demand []workload.Series,
	perfs *PerformanceTable,
) (*Problem, error) {
	if len(demand) != len(apps) {
		return nil, fmt.Errorf("%w: %d demand series for %d applications",
			workload.ErrShapeMismatch, len(demand), len(apps))
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog is empty, nothing to plan over")
	}
	for _, entry := range entries {
		for _, app := range apps {
			if _, ok := perfs.Get(entry, app); !ok {
				return nil, fmt.Errorf("%w: no performance value for entry %q and application %q",
					workload.ErrShapeMismatch, entry.ID, app.ID)
			}
		}
	}

	a.Log.Info("assembled problem",
		"id", id,
		"entries", len(entries),
		"applications", len(apps),
		"performanceValues", perfs.Len())

	return &Problem{
		ID:           id,
		Name:         name,
		Entries:      entries,
		Apps:         apps,
		Demand:       demand,
		Performances: perfs,
	}, nil
}
