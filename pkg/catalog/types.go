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

// Package catalog builds the purchasable-instance catalog consumed by the
// capacity-planning optimizer: one entry per (instance type, region,
// purchase mode), each annotated with the shared quota constraints that cap
// how many of it may run together.
package catalog

// TimeUnitHour is the billing time unit for every entry this builder emits.
const TimeUnitHour = "h"

// CapacityConstraint is a named quota shared by a group of catalog entries
// (a "limiting set"): a region's on-demand instance cap, an availability
// zone's reserved-instance cap, and so on. Every entry referencing a
// constraint counts against MaxUnits jointly with all the others.
//
// Entries share a constraint by holding the same *CapacityConstraint; the
// downstream solver relies on pointer identity to account for the quota
// jointly, so constraints must never be duplicated by value.
type CapacityConstraint struct {
	// ID uniquely identifies the constraint. IDs are region/zone qualified
	// so constraints from different regions never collide when per-region
	// catalogs are concatenated.
	ID string

	// Name is the display name, typically equal to ID.
	Name string

	// MaxUnits caps the combined count of instances across every entry
	// referencing this constraint. 0 means unlimited.
	MaxUnits int64
}

// Entry is one purchasable compute option (an "instance class"): a machine
// type in a region under one purchase mode, with a cost and capacity limits.
type Entry struct {
	// ID uniquely identifies the entry across the whole catalog,
	// e.g. "c5.xlarge_EU (Ireland)" or "c5.xlarge_EU (Ireland)_AZ2".
	ID string

	// Name is the instance type name, shared by the on-demand and reserved
	// entries of the same type.
	Name string

	// PricePerHour is the normalized hourly cost of one unit.
	PricePerHour float64

	// Constraints are the shared quotas this entry is subject to. May be
	// empty: privately owned machines are unconstrained.
	Constraints []*CapacityConstraint

	// MaxUnits is the local cap for this entry alone, enforced in addition
	// to every shared constraint. 0 means unlimited.
	MaxUnits int64

	// Reserved marks entries paid upfront and amortized; on-demand entries
	// have it false.
	Reserved bool

	// TimeUnit is the billing time unit, always TimeUnitHour here.
	TimeUnit string
}

// NewPrivateEntry builds an unconstrained catalog entry for machines the
// planner already owns (or may buy) outside any provider quota. Private
// machines behave like reserved capacity: their cost accrues whether or not
// they are used.
func NewPrivateEntry(id, name string, pricePerHour float64, maxUnits int64) *Entry {
	return &Entry{
		ID:           id,
		Name:         name,
		PricePerHour: pricePerHour,
		Constraints:  nil,
		MaxUnits:     maxUnits,
		Reserved:     true,
		TimeUnit:     TimeUnitHour,
	}
}
