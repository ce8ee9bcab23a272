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

package integration

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/planfeed/planfeed/internal/ingest"
	"github.com/planfeed/planfeed/pkg/catalog"
	"github.com/planfeed/planfeed/pkg/problem"
	"github.com/planfeed/planfeed/pkg/workload"
)

// priceListCSV is a minimal bulk dump: two instance types in one region,
// each with an on-demand rate and a 1yr all-upfront reservation, plus a
// GovCloud row that region discovery must drop.
const priceListCSV = `"FormatVersion","v1.0"
"Disclaimer","This pricing list is for informational purposes only"
"Publication Date","2025-06-01T00:00:00Z"
"Version","20250601000000"
"OfferCode","AmazonEC2"
"SKU","Instance Type","Location","PricePerUnit","Unit","Operating System","LeaseContractLength","PurchaseOption","Tenancy","OfferingClass","PriceDescription","Pre Installed S/W","ECU"
"SKU1","c5.large","EU (Ireland)","0.096","Hrs","Linux","","","Shared","","$0.096 per On Demand Linux c5.large Instance Hour","","8"
"SKU2","c5.large","EU (Ireland)","438","Quantity","Linux","1yr","All Upfront","Shared","standard","Upfront Fee","","8"
"SKU3","m5.large","EU (Ireland)","0.107","Hrs","Linux","","","Shared","","$0.107 per On Demand Linux m5.large Instance Hour","","10"
"SKU4","m5.large","EU (Ireland)","482","Quantity","Linux","1yr","All Upfront","Shared","standard","Upfront Fee","","10"
"SKU5","c5.large","AWS GovCloud (US-East)","0.112","Hrs","Linux","","","Shared","","$0.112 per On Demand Linux c5.large Instance Hour","","8"
`

const demandTraces = `100,2400,9999
50,50,50
`

// optimalSolver pretends to solve any problem optimally with a fixed cost.
type optimalSolver struct{}

func (optimalSolver) Solve(_ context.Context, _ *problem.Problem) (problem.Solution, error) {
	return problem.Solution{OptimalCost: 42.0, Status: problem.StatusOptimal}, nil
}

var _ = Describe("pipeline", func() {
	var (
		entries []*catalog.Entry
		apps    []problem.Application
		perfs   *problem.PerformanceTable
		demand  []workload.Series
	)

	BeforeEach(func() {
		table, err := ingest.LoadEC2Offers(strings.NewReader(priceListCSV))
		Expect(err).NotTo(HaveOccurred())
		Expect(table.Len()).To(Equal(5))

		regions := ingest.PlannableRegions(ingest.Regions(table))
		Expect(regions).To(Equal([]string{"EU (Ireland)"}))

		builder := &catalog.Builder{}
		entries = builder.Build(table, regions, []string{"c5.large", "m5.large"}, "Linux",
			catalog.Topology{
				MaxOnDemandPerType:   20,
				MaxOnDemandPerRegion: 20,
				MaxReservedPerZone:   20,
				AvailabilityZones:    3,
			})

		apps = []problem.Application{
			{ID: "app0", Name: "app0"},
			{ID: "app1", Name: "app1"},
		}
		perfs, err = problem.BuildPerformanceTable(table, entries, apps, []int64{1000, 500}, 1, 1)
		Expect(err).NotTo(HaveOccurred())

		traces, err := ingest.LoadDemand(strings.NewReader(demandTraces))
		Expect(err).NotTo(HaveOccurred())
		demand = problem.Cycle(traces, len(apps))
	})

	It("builds the full constrained catalog", func() {
		// 2 types * (1 on-demand + 3 reserved zones) in one region.
		Expect(entries).To(HaveLen(8))

		var onDemand []*catalog.Entry
		for _, e := range entries {
			if !e.Reserved {
				onDemand = append(onDemand, e)
			}
		}
		Expect(onDemand).To(HaveLen(2))
		Expect(onDemand[0].Constraints[0]).To(BeIdenticalTo(onDemand[1].Constraints[0]))
	})

	It("quantizes demand onto the performance grid", func() {
		perfLists := make([][]int64, len(apps))
		for i, app := range apps {
			perfLists[i] = perfs.ForApp(app, entries)
		}

		quanta, err := workload.Quanta(perfLists, 1)
		Expect(err).NotTo(HaveOccurred())
		// app0 perfs are 8000 and 10000 repeated across entries: GCD 2000.
		Expect(quanta[0]).To(Equal(int64(2000)))
		// app1 perfs are 4000 and 5000: GCD 1000.
		Expect(quanta[1]).To(Equal(int64(1000)))

		quantized, err := workload.QuantizeAll(demand, quanta, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(quantized[0]).To(Equal(workload.Series{2000, 4000, 10000}))
		Expect(quantized[1]).To(Equal(workload.Series{1000, 1000, 1000}))

		for i := range quantized {
			for j := range quantized[i] {
				Expect(quantized[i][j]).To(BeNumerically(">=", demand[i][j]))
			}
		}
	})

	It("assembles and solves the problem", func() {
		assembler := &problem.Assembler{}
		p, err := assembler.Assemble("it", "integration", entries, apps, demand, perfs)
		Expect(err).NotTo(HaveOccurred())

		sol, err := problem.Solve(context.Background(), optimalSolver{}, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(sol.Status).To(Equal(problem.StatusOptimal))
		Expect(sol.OptimalCost).To(Equal(42.0))
	})

	It("treats a non-optimal solver result as a hard failure", func() {
		assembler := &problem.Assembler{}
		p, err := assembler.Assemble("it", "integration", entries, apps, demand, perfs)
		Expect(err).NotTo(HaveOccurred())

		_, err = problem.Solve(context.Background(), infeasibleSolver{}, p)
		Expect(err).To(MatchError(problem.ErrNonOptimal))
	})
})

type infeasibleSolver struct{}

func (infeasibleSolver) Solve(_ context.Context, _ *problem.Problem) (problem.Solution, error) {
	return problem.Solution{Status: problem.StatusInfeasible}, nil
}
