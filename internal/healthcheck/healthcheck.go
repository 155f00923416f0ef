// Package healthcheck verifies that a configuration wires a working graph
// and reports how it behaves at the edges of the int32 range.
package healthcheck

import (
	"errors"
	"fmt"
	"math"

	"github.com/l3aro/pantry/internal/config"
	"github.com/l3aro/pantry/pkg/apple"
	"github.com/l3aro/pantry/pkg/arith"
	"github.com/l3aro/pantry/pkg/banana"
	"github.com/l3aro/pantry/pkg/carrot"
	"github.com/l3aro/pantry/pkg/durian"
	"github.com/l3aro/pantry/pkg/egg"
	"github.com/l3aro/pantry/pkg/graph"
)

// Probe statuses
const (
	StatusOK       = "ok"
	StatusOverflow = "overflow"
	StatusError    = "error"
)

// ProbeInputs are the inputs every health check evaluates.
var ProbeInputs = []int32{math.MinInt32, -1, 0, 1, apple.DefaultInput, math.MaxInt32}

// Probe is the outcome of evaluating apple at one input.
type Probe struct {
	Input  int32  `json:"input"`
	Answer int32  `json:"answer"`
	Status string `json:"status"` // "ok", "overflow" or "error"
	Error  string `json:"error,omitempty"`
}

// HealthCheckResult contains the full health check output for display.
type HealthCheckResult struct {
	EffectivePath  string  `json:"effective_path,omitempty"`
	EffectiveScope string  `json:"effective_scope"`
	Policy         string  `json:"policy"`
	Egg            string  `json:"egg"`
	Durian         string  `json:"durian"`
	Fingerprint    string  `json:"fingerprint"`
	Probes         []Probe `json:"probes"`
}

// Healthy reports whether no probe ended in StatusError. Overflow under the
// checked policy is expected behavior, not a failure.
func (r *HealthCheckResult) Healthy() bool {
	for _, p := range r.Probes {
		if p.Status == StatusError {
			return false
		}
	}
	return true
}

// Check builds the graph described by cfg and probes it.
func Check(cfg *config.Config, src config.Source) (*HealthCheckResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	recipe := cfg.Recipe()
	g, err := graph.Build(recipe)
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}
	fp, err := recipe.Fingerprint()
	if err != nil {
		return nil, err
	}

	result := &HealthCheckResult{
		EffectivePath:  src.Path,
		EffectiveScope: src.Scope,
		Policy:         string(g.Policy()),
		Egg:            cfg.Egg.String(),
		Durian:         cfg.Durian.String(),
		Fingerprint:    fp,
	}

	for _, x := range ProbeInputs {
		result.Probes = append(result.Probes, probe(g, x))
	}
	return result, nil
}

func probe(g *graph.Graph, x int32) Probe {
	p := Probe{Input: x}

	res, err := g.Evaluate(x)
	if err != nil {
		p.Error = err.Error()
		if errors.Is(err, arith.ErrOverflow) {
			p.Status = StatusOverflow
		} else {
			p.Status = StatusError
		}
		return p
	}
	p.Answer = res.Answer

	if err := checkIdentities(res); err != nil {
		p.Status = StatusError
		p.Error = err.Error()
		return p
	}
	p.Status = StatusOK
	return p
}

// checkIdentities verifies the composition rules against the values seen in
// a trace. Without an error the checked policy computed exact values, so
// int32 arithmetic reproduces both policies.
func checkIdentities(res *graph.Result) error {
	seen := make(map[string]int32)
	for _, s := range res.Steps {
		if _, ok := seen[s.Module]; !ok {
			seen[s.Module] = s.Output
		}
	}
	for _, name := range []string{egg.Name, durian.Name, carrot.Name, banana.Name, apple.Name} {
		if _, ok := seen[name]; !ok {
			return fmt.Errorf("%s was not evaluated", name)
		}
	}

	e, d, c, b, a := seen[egg.Name], seen[durian.Name], seen[carrot.Name], seen[banana.Name], seen[apple.Name]
	if c != d-e {
		return fmt.Errorf("carrot(%d) = %d, want durian - egg = %d", res.Input, c, d-e)
	}
	if b != c*d {
		return fmt.Errorf("banana(%d) = %d, want carrot * durian = %d", res.Input, b, c*d)
	}
	if a != b+e {
		return fmt.Errorf("apple(%d) = %d, want banana + egg = %d", res.Input, a, b+e)
	}
	if a != res.Answer {
		return fmt.Errorf("apple(%d) traced %d but answered %d", res.Input, a, res.Answer)
	}
	return nil
}
