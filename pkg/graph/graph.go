// Package graph wires egg, durian, carrot, banana and apple into one
// evaluation graph and records call traces.
package graph

import (
	"github.com/l3aro/pantry/pkg/apple"
	"github.com/l3aro/pantry/pkg/arith"
	"github.com/l3aro/pantry/pkg/banana"
	"github.com/l3aro/pantry/pkg/carrot"
	"github.com/l3aro/pantry/pkg/durian"
	"github.com/l3aro/pantry/pkg/egg"
	"github.com/l3aro/pantry/pkg/pantry"
)

// Option customizes Build.
type Option func(*Graph)

// WithEgg replaces the egg leaf built from the recipe.
func WithEgg(a pantry.Applier) Option {
	return func(g *Graph) { g.egg = a }
}

// WithDurian replaces the durian leaf built from the recipe.
func WithDurian(a pantry.Applier) Option {
	return func(g *Graph) { g.durian = a }
}

// Graph is the wired call graph. It holds no mutable state.
type Graph struct {
	recipe Recipe
	ops    arith.Ops
	egg    pantry.Applier
	durian pantry.Applier
	apple  pantry.Applier
}

// Build validates r and wires the graph.
func Build(r Recipe, opts ...Option) (*Graph, error) {
	r, err := r.normalize()
	if err != nil {
		return nil, err
	}

	ops := arith.New(r.Policy)
	g := &Graph{
		recipe: r,
		ops:    ops,
		egg:    egg.New(r.Egg, ops),
		durian: durian.New(r.Durian, ops),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.apple = g.wire(nil)
	return g, nil
}

// Recipe returns the recipe the graph was built from.
func (g *Graph) Recipe() Recipe {
	return g.recipe
}

// Policy returns the active overflow policy.
func (g *Graph) Policy() arith.Policy {
	return g.ops.Policy()
}

// Answer returns apple(x).
func (g *Graph) Answer(x int32) (int32, error) {
	return g.apple.Apply(x)
}

// Evaluate computes apple(x) and records every module call in order.
// On error the partial trace is returned along with it.
func (g *Graph) Evaluate(x int32) (*Result, error) {
	t := &tracer{}
	top := g.wire(t)

	res := &Result{Input: x, Policy: g.ops.Policy()}
	v, err := top.Apply(x)
	res.Steps = t.steps
	if err != nil {
		return res, err
	}
	res.Answer = v
	return res, nil
}

// wire builds the non-leaf nodes on top of the leaves. When t is non-nil
// every node, leaves included, is wrapped so its calls are recorded.
func (g *Graph) wire(t *tracer) pantry.Applier {
	wrap := func(name string, a pantry.Applier) pantry.Applier {
		if t == nil {
			return a
		}
		return t.wrap(name, a)
	}

	e := wrap(egg.Name, g.egg)
	d := wrap(durian.Name, g.durian)
	c := wrap(carrot.Name, carrot.New(d, e, g.ops))
	b := wrap(banana.Name, banana.New(c, d, g.ops))
	return wrap(apple.Name, apple.New(b, e, g.ops))
}
