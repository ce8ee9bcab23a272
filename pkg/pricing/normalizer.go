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

package pricing

import (
	"strings"
)

// priceComponents accumulates the two billing-unit rows of one
// (region, tenancy, term, option) group. A group usually has an hourly row,
// an upfront row, or both; a missing component stays zero.
type priceComponents struct {
	hourly  float64
	upfront float64
}

// HourlyPrices filters the table down to comparable offers for one instance
// type and operating system, then reduces each (region, tenancy, term,
// purchase-option) group to a single blended price per hour.
//
// Filtering drops, in order:
//   - rows for other instance types, or whose OS does not contain osFilter
//   - database-bundled SKUs (software bundle containing "SQL")
//   - "No Upfront" and "Partial Upfront" purchase options, so the
//     amortization formula below stays exact
//   - "Unused" reserved-capacity SKUs that carry a price while idle
//   - zero-priced rows
//   - non-Shared tenancy
//   - convertible offering classes
//
// After grouping, the hourly price is derived from the two components:
//
//	1yr reserved:  hourly + upfront/8760
//	3yr reserved:  hourly + upfront/26280
//	on-demand:     hourly
//
// A (region, option) combination with no surviving rows is simply absent
// from the result; absence means "not offered there", never an error.
func HourlyPrices(table *Table, instanceType, osFilter string) map[PriceKey]float64 {
	groups := make(map[PriceKey]*priceComponents)

	for _, rec := range table.Records() {
		if !offerComparable(rec, instanceType, osFilter) {
			continue
		}

		key := PriceKey{
			Region:  rec.Region,
			Tenancy: rec.Tenancy,
			Term:    rec.Term,
			Option:  rec.PurchaseOption,
		}
		comp := groups[key]
		if comp == nil {
			comp = &priceComponents{}
			groups[key] = comp
		}

		switch rec.Unit {
		case UnitHours:
			comp.hourly = rec.Price
		case UnitQuantity:
			comp.upfront = rec.Price
		}
	}

	prices := make(map[PriceKey]float64, len(groups))
	for key, comp := range groups {
		switch key.Term {
		case Term1Yr:
			prices[key] = comp.hourly + comp.upfront/HoursPerYear
		case Term3Yr:
			prices[key] = comp.hourly + comp.upfront/HoursPer3Years
		case TermNone:
			// The upfront component does not exist for on-demand offers;
			// if a malformed row produced one it is ignored.
			prices[key] = comp.hourly
		}
	}
	return prices
}

// offerComparable reports whether a raw row survives every exclusion rule
// for the requested instance type and OS. Each rule is a hard exclusion.
func offerComparable(rec OfferRecord, instanceType, osFilter string) bool {
	if rec.InstanceType != instanceType {
		return false
	}
	if !strings.Contains(rec.OperatingSystem, osFilter) {
		return false
	}
	if strings.Contains(rec.Software, "SQL") {
		return false
	}
	if strings.Contains(rec.PurchaseOption, "No Upfront") ||
		strings.Contains(rec.PurchaseOption, "Partial Upfront") {
		return false
	}
	if strings.Contains(rec.Description, "Unused") {
		return false
	}
	if rec.Price == 0 {
		return false
	}
	if rec.Tenancy != TenancyShared {
		return false
	}
	if rec.OfferingClass == "convertible" {
		return false
	}
	return true
}

// SimplifiedPrices narrows the full price mapping down to the two points the
// catalog builder consumes per region: the on-demand rate and the cheapest
// exactly-amortizable reserved rate (one year, all upfront).
type SimplifiedPrices struct {
	// OnDemand maps region to the shared-tenancy on-demand hourly price.
	OnDemand map[string]float64

	// Reserved maps region to the shared-tenancy, 1yr, all-upfront blended
	// hourly price.
	Reserved map[string]float64
}

// Simplified computes the two-point per-region view for one instance type.
// A region missing from either map is not offered in that purchase mode
// there; callers must check presence before use.
func Simplified(table *Table, instanceType, osFilter string) SimplifiedPrices {
	prices := HourlyPrices(table, instanceType, osFilter)

	simplified := SimplifiedPrices{
		OnDemand: make(map[string]float64),
		Reserved: make(map[string]float64),
	}
	for key, price := range prices {
		if key.Tenancy != TenancyShared {
			continue
		}
		switch {
		case key.Term == TermNone && key.Option == OptionNone:
			simplified.OnDemand[key.Region] = price
		case key.Term == Term1Yr && key.Option == OptionAllUpfront:
			simplified.Reserved[key.Region] = price
		}
	}
	return simplified
}
