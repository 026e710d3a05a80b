package bsp

import "github.com/mycok/webrank/bsp/message"

// Aggregator is implemented by types that provide concurrent-safe aggregation
// primitives (e.g. counters, min/max, topN).
type Aggregator interface {
	// Type returns the type of this aggregator.
	Type() string

	// Set the aggregator to the specified value.
	Set(val interface{})

	// Get the current aggregator value.
	Get() interface{}

	// Aggregate updates the aggregator's value based on the provided value.
	Aggregate(val interface{})
}

// ComputeFunc should be invoked on each vertex when executing a superStep.
type ComputeFunc func(g *Graph, v *Vertex, msgIt message.Iterator) error
