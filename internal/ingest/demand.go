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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/planfeed/planfeed/pkg/workload"
)

// LoadDemand reads demand traces, one trace per line, each line a
// comma-separated list of request counts. Blank lines are skipped. A
// non-numeric or fractional value aborts the load.
func LoadDemand(r io.Reader) ([]workload.Series, error) {
	var traces []workload.Series

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		fields := strings.Split(text, ",")
		series := make(workload.Series, 0, len(fields))
		for col, field := range fields {
			v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing demand value at line %d, column %d: %w",
					line, col+1, err)
			}
			series = append(series, v)
		}
		traces = append(traces, series)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading demand traces: %w", err)
	}
	return traces, nil
}
