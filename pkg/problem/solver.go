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
	"context"
	"errors"
	"fmt"
	"time"
)

// Status is the external solver's terminal state for one solve.
type Status string

const (
	// StatusOptimal means the solver proved its solution optimal.
	StatusOptimal Status = "optimal"

	// StatusInfeasible means no allocation satisfies the constraints.
	StatusInfeasible Status = "infeasible"

	// StatusAborted means the solver stopped early (time or node limit).
	StatusAborted Status = "aborted"

	// StatusUnknown covers any other terminal state.
	StatusUnknown Status = "unknown"
)

// ErrNonOptimal is returned by Solve when the solver terminates with any
// status other than optimal. It is a hard failure: no retry happens here,
// and no partial solution is returned. Re-solving with different model
// parameters is a caller decision.
var ErrNonOptimal = errors.New("solver did not reach an optimal solution")

// Solution is the result shape read back from the external solver.
type Solution struct {
	// OptimalCost is the total cost of the optimal allocation. Only
	// meaningful when Status is StatusOptimal.
	OptimalCost float64

	// Status is the solver's terminal state.
	Status Status

	// CreationTime is how long the solver spent building its internal
	// model from the Problem.
	CreationTime time.Duration

	// SolvingTime is how long the search itself ran.
	SolvingTime time.Duration
}

// Solver is the external optimization collaborator. Implementations receive
// a fully assembled Problem and return their result; this package never
// inspects how they search.
type Solver interface {
	Solve(ctx context.Context, p *Problem) (Solution, error)
}

// Solve runs the external solver on a problem and enforces the result
// contract: solver errors propagate unmodified, and a non-optimal terminal
// status surfaces as ErrNonOptimal alongside the raw solution so callers can
// still log its status and timings.
func Solve(ctx context.Context, s Solver, p *Problem) (Solution, error) {
	sol, err := s.Solve(ctx, p)
	if err != nil {
		return sol, fmt.Errorf("solver failed: %w", err)
	}
	if sol.Status != StatusOptimal {
		return sol, fmt.Errorf("%w: status %q", ErrNonOptimal, sol.Status)
	}
	return sol, nil
}
