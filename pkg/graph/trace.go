package graph

import (
	"github.com/l3aro/pantry/pkg/apple"
	"github.com/l3aro/pantry/pkg/arith"
	"github.com/l3aro/pantry/pkg/pantry"
)

// Step is one module call. Steps are recorded in call order; Depth is 0 for apple.
type Step struct {
	Module string `json:"module" yaml:"module" msgpack:"module"`
	Depth  int    `json:"depth" yaml:"depth" msgpack:"depth"`
	Input  int32  `json:"input" yaml:"input" msgpack:"input"`
	Output int32  `json:"output" yaml:"output" msgpack:"output"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty" msgpack:"error,omitempty"`
}

// Result is the outcome of Graph.Evaluate.
type Result struct {
	Input  int32        `json:"input" yaml:"input" msgpack:"input"`
	Answer int32        `json:"answer" yaml:"answer" msgpack:"answer"`
	Policy arith.Policy `json:"policy" yaml:"policy" msgpack:"policy"`
	Steps  []Step       `json:"steps,omitempty" yaml:"steps,omitempty" msgpack:"steps,omitempty"`
}

// Line returns the program's output line, without the trailing newline.
func (r *Result) Line() string {
	return apple.Answer(r.Answer)
}

// tracer records calls made through wrapped Appliers. Evaluation is
// single-threaded so no locking is needed.
type tracer struct {
	depth int
	steps []Step
}

func (t *tracer) wrap(name string, a pantry.Applier) pantry.Applier {
	return pantry.ApplyFunc(func(x int32) (int32, error) {
		i := len(t.steps)
		t.steps = append(t.steps, Step{Module: name, Depth: t.depth, Input: x})

		t.depth++
		v, err := a.Apply(x)
		t.depth--

		if err != nil {
			t.steps[i].Error = err.Error()
			return 0, err
		}
		t.steps[i].Output = v
		return v, nil
	})
}
