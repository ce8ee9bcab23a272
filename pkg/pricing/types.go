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

// Package pricing normalizes raw cloud-provider offer records into a single
// comparable unit: cost per hour per purchase option.
//
// The input is a bulk pricing table already parsed into OfferRecord rows
// (ingestion of the provider dump lives in internal/ingest; this package
// never performs I/O). The output is a mapping from
// (region, tenancy, term, purchase option) to an hourly price, plus a
// simplified two-point view (on-demand and best-reserved) per region.
//
// Reserved offers are amortized into a blended hourly rate: the upfront
// component is divided across the hours of the lease term and added to the
// post-upfront hourly component. On-demand offers pass through unchanged.
package pricing

// Reservation terms as they appear in the provider feed. Rows with no lease
// contract length are sentinel-filled to TermNone at ingestion time, so the
// normalizer never sees an empty term.
type Term string

const (
	// TermNone marks on-demand offers (no reservation).
	TermNone Term = "No"

	// Term1Yr marks one-year reserved offers.
	Term1Yr Term = "1yr"

	// Term3Yr marks three-year reserved offers.
	Term3Yr Term = "3yr"
)

// Purchase options for reserved offers. On-demand rows carry OptionNone,
// filled in at ingestion when the feed omits the field.
const (
	OptionNone       = "N/A"
	OptionAllUpfront = "All Upfront"
)

// Billing units for the price column. An offer's price is either a rate per
// hour or a one-time upfront quantity; reserved offers contribute one row of
// each to the same (region, tenancy, term, option) group.
const (
	UnitHours    = "Hrs"
	UnitQuantity = "Quantity"
)

// TenancyShared is the only tenancy retained by the normalizer. Dedicated
// and host tenancy carry different quota semantics and are excluded.
const TenancyShared = "Shared"

// Amortization horizons for reserved terms.
const (
	// HoursPerYear is the number of hours the upfront component of a
	// one-year reservation is spread across (365 * 24).
	HoursPerYear = 8760

	// HoursPer3Years is the equivalent for three-year reservations.
	HoursPer3Years = 26280
)

// OfferRecord is one row of the raw price table: a single priced offer for
// an instance type in a region under a specific purchase mode. Records are
// immutable once loaded; the normalizer only reads them.
type OfferRecord struct {
	// InstanceType is the purchasable machine type, e.g. "c5.xlarge".
	InstanceType string

	// Region is the provider's location name, e.g. "EU (Ireland)".
	Region string

	// Price is the numeric price in the unit given by Unit.
	Price float64

	// Unit is the billing unit: UnitHours for hourly rates,
	// UnitQuantity for one-time upfront amounts.
	Unit string

	// OperatingSystem is the offer's OS description, matched by substring.
	OperatingSystem string

	// Term is the reservation term (TermNone for on-demand).
	Term Term

	// PurchaseOption qualifies reserved offers ("All Upfront",
	// "Partial Upfront", "No Upfront"); OptionNone for on-demand.
	PurchaseOption string

	// Tenancy is "Shared", "Dedicated" or "Host".
	Tenancy string

	// OfferingClass distinguishes standard from convertible reservations.
	OfferingClass string

	// Software is the pre-installed software bundle ("N/A" when absent).
	Software string

	// Description is the provider's free-text price description.
	Description string

	// ComputeUnits is the normalized compute-unit count (ECU) for the
	// instance type, 0 when the feed column was empty or non-numeric.
	ComputeUnits int64
}

// PriceKey identifies one normalized price point.
type PriceKey struct {
	Region  string
	Tenancy string
	Term    Term
	Option  string
}

// Table is the raw price table for one provider service, read once per run
// and treated as read-only afterwards.
type Table struct {
	records []OfferRecord
}

// NewTable wraps a slice of offer records. The slice is retained, not
// copied; callers hand over ownership.
func NewTable(records []OfferRecord) *Table {
	return &Table{records: records}
}

// Records returns the underlying rows for read-only iteration.
func (t *Table) Records() []OfferRecord {
	return t.records
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.records)
}

// ComputeUnits returns the compute-unit count for an instance type, taken
// from the first row of that type carrying a usable value. Returns
// (0, false) when the type is absent or no row has a numeric count; callers
// supply their own default in that case.
func (t *Table) ComputeUnits(instanceType string) (int64, bool) {
	for _, rec := range t.records {
		if rec.InstanceType != instanceType {
			continue
		}
		if rec.ComputeUnits > 0 {
			return rec.ComputeUnits, true
		}
	}
	return 0, false
}
