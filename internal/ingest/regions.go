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

package ingest

import (
	"sort"

	"github.com/planfeed/planfeed/pkg/pricing"
)

// nonPlannableRegions lists region names present in price feeds that the
// planner must never provision in: the blank-location sentinel and the
// restricted GovCloud partitions.
var nonPlannableRegions = map[string]bool{
	"N/A":                    true,
	"AWS GovCloud (US-East)": true,
	"AWS GovCloud (US-West)": true,
}

// Regions returns the distinct region names appearing in a price table,
// sorted. Rows with a blank location are reported under the "N/A" sentinel.
func Regions(table *pricing.Table) []string {
	seen := make(map[string]bool)
	for _, rec := range table.Records() {
		name := rec.Region
		if name == "" {
			name = "N/A"
		}
		seen[name] = true
	}

	regions := make([]string, 0, len(seen))
	for name := range seen {
		regions = append(regions, name)
	}
	sort.Strings(regions)
	return regions
}

// PlannableRegions filters a region list down to the ones the planner may
// actually provision in, preserving order.
func PlannableRegions(regions []string) []string {
	out := make([]string, 0, len(regions))
	for _, region := range regions {
		if nonPlannableRegions[region] {
			continue
		}
		out = append(out, region)
	}
	return out
}
