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

package catalog

import (
	"fmt"
	"sort"

	"github.com/go-logr/logr"

	"github.com/planfeed/planfeed/pkg/pricing"
)

// Topology describes the quota structure of one region.
type Topology struct {
	// MaxOnDemandPerType is the local cap applied to each on-demand entry
	// individually (the provider's per-type launch limit).
	MaxOnDemandPerType int64

	// MaxOnDemandPerRegion caps all on-demand instances of the region
	// combined, across every instance type.
	MaxOnDemandPerRegion int64

	// MaxReservedPerZone caps the reserved instances of one availability
	// zone combined, across every instance type.
	MaxReservedPerZone int64

	// AvailabilityZones is the number of availability zones in the region.
	AvailabilityZones int
}

// Builder generates catalog entries from normalized prices and a region's
// quota topology. It is stateless across calls; each Build* call reads its
// inputs and returns fresh entries.
type Builder struct {
	// Log receives per-region build progress. Optional; the zero logger
	// discards everything.
	Log logr.Logger
}

// BuildRegion emits the full list of catalog entries for one region.
//
// Instance types are processed in sorted order so repeated runs over the
// same inputs produce identical output. For each type with an on-demand
// price in the region, one on-demand entry is emitted, capped locally by
// MaxOnDemandPerType and jointly by a single region-wide constraint shared
// by reference across all on-demand entries. For each type with a reserved
// price, one reserved entry is emitted per availability zone, capped only by
// that zone's constraint (reserved purchases have no per-type limit).
//
// Types not offered in the region under one purchase mode are skipped for
// that mode only; a type may yield a reserved entry but no on-demand entry,
// or vice versa. On-demand and reserved entries never share a constraint.
func (b *Builder) BuildRegion(
	table *pricing.Table,
	region string,
	instanceTypes []string,
	osFilter string,
	topo Topology,
) []*Entry {
	names := make([]string, len(instanceTypes))
	copy(names, instanceTypes)
	sort.Strings(names)

	// Normalize prices once per type; both loops below read from here.
	simplified := make(map[string]pricing.SimplifiedPrices, len(names))
	for _, name := range names {
		simplified[name] = pricing.Simplified(table, name, osFilter)
	}

	var entries []*Entry

	// One shared constraint caps every on-demand entry of the region.
	regionConstraint := &CapacityConstraint{
		ID:       region,
		Name:     region,
		MaxUnits: topo.MaxOnDemandPerRegion,
	}
	for _, name := range names {
		price, offered := simplified[name].OnDemand[region]
		if !offered {
			continue // not all regions offer all instance types
		}
		entries = append(entries, &Entry{
			ID:           fmt.Sprintf("%s_%s", name, region),
			Name:         name,
			PricePerHour: price,
			Constraints:  []*CapacityConstraint{regionConstraint},
			MaxUnits:     topo.MaxOnDemandPerType,
			Reserved:     false,
			TimeUnit:     TimeUnitHour,
		})
	}

	// One independent constraint per availability zone caps the zone's
	// reserved entries.
	zones := make([]*CapacityConstraint, 0, topo.AvailabilityZones)
	for z := 1; z <= topo.AvailabilityZones; z++ {
		id := fmt.Sprintf("%s_AZ%d", region, z)
		zones = append(zones, &CapacityConstraint{
			ID:       id,
			Name:     id,
			MaxUnits: topo.MaxReservedPerZone,
		})
	}
	for _, name := range names {
		price, offered := simplified[name].Reserved[region]
		if !offered {
			continue
		}
		for _, zone := range zones {
			entries = append(entries, &Entry{
				ID:           fmt.Sprintf("%s_%s_%s", name, region, zone.Name),
				Name:         name,
				PricePerHour: price,
				Constraints:  []*CapacityConstraint{zone},
				MaxUnits:     0, // reserved purchases have no per-type limit
				Reserved:     true,
				TimeUnit:     TimeUnitHour,
			})
		}
	}

	b.Log.V(1).Info("built region catalog",
		"region", region,
		"instanceTypes", len(names),
		"entries", len(entries))

	return entries
}

// Build concatenates per-region catalogs across the given regions, in the
// order given. Constraint identities are region/zone qualified inside
// BuildRegion, so entries from different regions never alias each other's
// quotas.
func (b *Builder) Build(
	table *pricing.Table,
	regions []string,
	instanceTypes []string,
	osFilter string,
	topo Topology,
) []*Entry {
	var entries []*Entry
	for _, region := range regions {
		entries = append(entries, b.BuildRegion(table, region, instanceTypes, osFilter, topo)...)
	}

	b.Log.Info("built catalog",
		"regions", len(regions),
		"entries", len(entries))

	return entries
}
