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

// Package ingest parses the raw input files the planner consumes: AWS bulk
// price-list CSV dumps and per-application demand traces. It converts the
// vendor formats into the typed records the pricing and workload packages
// operate on, applying the sentinel fills that make heterogeneous offer rows
// comparable.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/planfeed/planfeed/pkg/pricing"
)

// metadataRecords is the number of preamble records before the header row in
// an AWS bulk price-list CSV (format version, disclaimer, publication date,
// version, offer code).
const metadataRecords = 5

// sentinel values substituted for blank offer fields so that grouping and
// comparison treat "absent" as a first-class value. On-demand rows carry no
// lease term, purchase option, or pre-installed software.
const (
	sentinelTerm     = "No"
	sentinelOption   = "N/A"
	sentinelSoftware = "N/A"
)

// column names in the bulk CSV header. The header's column order varies
// between dump versions, so rows are addressed by name.
const (
	colInstanceType  = "Instance Type"
	colLocation      = "Location"
	colPricePerUnit  = "PricePerUnit"
	colUnit          = "Unit"
	colOS            = "Operating System"
	colTerm          = "LeaseContractLength"
	colOption        = "PurchaseOption"
	colTenancy       = "Tenancy"
	colOfferingClass = "OfferingClass"
	colDescription   = "PriceDescription"
	colSoftware      = "Pre Installed S/W"
	colECU           = "ECU"
)

// LoadEC2Offers reads an AWS EC2 bulk price-list CSV and returns a price
// table of its offer rows. The five metadata records preceding the header
// are skipped; malformed numeric fields abort the load.
func LoadEC2Offers(r io.Reader) (*pricing.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	for i := 0; i < metadataRecords; i++ {
		if _, err := cr.Read(); err != nil {
			return nil, fmt.Errorf("reading price list metadata record %d: %w", i+1, err)
		}
	}

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading price list header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{colInstanceType, colLocation, colPricePerUnit, colUnit} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("price list header is missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var records []pricing.OfferRecord
	for line := metadataRecords + 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading price list row at line %d: %w", line, err)
		}

		price, err := strconv.ParseFloat(field(row, colPricePerUnit), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing price at line %d: %w", line, err)
		}

		// The ECU column holds "Variable" or "NA" for burstable and
		// storage-optimized families; those parse to zero and the
		// performance table falls back to its default.
		ecu, err := strconv.ParseInt(field(row, colECU), 10, 64)
		if err != nil {
			ecu = 0
		}

		rec := pricing.OfferRecord{
			InstanceType:    field(row, colInstanceType),
			Region:          field(row, colLocation),
			Price:           price,
			Unit:            field(row, colUnit),
			OperatingSystem: field(row, colOS),
			Term:            pricing.Term(field(row, colTerm)),
			PurchaseOption:  field(row, colOption),
			Tenancy:         field(row, colTenancy),
			OfferingClass:   field(row, colOfferingClass),
			Software:        field(row, colSoftware),
			Description:     field(row, colDescription),
			ComputeUnits:    ecu,
		}
		if rec.Term == "" {
			rec.Term = sentinelTerm
		}
		if rec.PurchaseOption == "" {
			rec.PurchaseOption = sentinelOption
		}
		if rec.Software == "" {
			rec.Software = sentinelSoftware
		}
		records = append(records, rec)
	}

	return pricing.NewTable(records), nil
}
