package bsp_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	check "gopkg.in/check.v1"

	"github.com/mycok/webrank/bsp"
	"github.com/mycok/webrank/bsp/aggregator"
	"github.com/mycok/webrank/bsp/message"
)

var _ = check.Suite(new(bspGraphTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type bspGraphTestSuite struct{}

func (s *bspGraphTestSuite) TestMessageExchange(c *check.C) {
	g, err := bsp.NewGraph(bsp.GraphConfig{
		ComputeFn: func(g *bsp.Graph, v *bsp.Vertex, msgIt message.Iterator) error {
			v.Freeze()
			if g.SuperStep() == 0 {
				var dest string

				switch v.ID() {
				case "0":
					dest = "1"
				case "1":
					dest = "0"
				}

				return g.SendMessage(dest, intMsg{value: 11})
			}

			for msgIt.Next() {
				v.SetValue(msgIt.Message().(intMsg).value)
			}

			return nil
		},
	})
	c.Assert(err, check.IsNil)
	defer func() { c.Assert(g.Close(), check.IsNil) }()

	g.AddVertex("0", 0)
	g.AddVertex("1", 1)

	err = executeFixedSteps(g, 2)
	c.Assert(err, check.IsNil)

	// Assert that the vertex values were updated with the message value.
	for id, vtx := range g.Vertices() {
		c.Assert(vtx.Value(), check.Equals, 11, check.Commentf("vertex %v", id))
	}
}

func (s *bspGraphTestSuite) TestMessageBroadcasting(c *check.C) {
	g, err := bsp.NewGraph(bsp.GraphConfig{
		ComputeFn: func(g *bsp.Graph, v *bsp.Vertex, msgIt message.Iterator) error {
			if err := g.BroadcastToNeighbors(v, intMsg{value: 11}); err != nil {
				return err
			}

			for msgIt.Next() {
				v.SetValue(msgIt.Message().(intMsg).value)
			}

			return nil
		},
	})
	c.Assert(err, check.IsNil)
	defer func() { c.Assert(g.Close(), check.IsNil) }()

	g.AddVertex("0", 11)
	g.AddVertex("1", 0)
	g.AddVertex("2", 0)
	g.AddVertex("3", 0)

	// Add edges to a single vertex.
	c.Assert(g.AddEdge("0", "1", nil), check.IsNil)
	c.Assert(g.AddEdge("0", "2", nil), check.IsNil)
	c.Assert(g.AddEdge("0", "3", nil), check.IsNil)

	err = executeFixedSteps(g, 2)
	c.Assert(err, check.IsNil)

	for id, vtx := range g.Vertices() {
		c.Assert(vtx.Value(), check.Equals, 11, check.Commentf("vertex %v", id))
	}
}

func (s *bspGraphTestSuite) TestAggregationWithComputeFunc(c *check.C) {
	g, err := bsp.NewGraph(bsp.GraphConfig{
		ComputeWorkers: 4,
		ComputeFn: func(g *bsp.Graph, v *bsp.Vertex, msgIt message.Iterator) error {
			g.Aggregator("counter").Aggregate(1)

			return nil
		},
	})
	c.Assert(err, check.IsNil)
	defer func() { c.Assert(g.Close(), check.IsNil) }()

	offset := 5
	g.RegisterAggregator("counter", new(aggregator.IntAccumulator))
	g.Aggregator("counter").Aggregate(offset)

	numOfVertices := 1000
	for i := 0; i < numOfVertices; i++ {
		g.AddVertex(fmt.Sprint(i), nil)
	}

	err = executeFixedSteps(g, 1)
	c.Assert(err, check.IsNil)

	aggregatorMap := g.Aggregators()
	c.Assert(aggregatorMap["counter"].Get(), check.Equals, offset+numOfVertices)
}

func (s *bspGraphTestSuite) TestSendMessageToUnknownVertex(c *check.C) {
	g, err := bsp.NewGraph(bsp.GraphConfig{
		ComputeFn: func(g *bsp.Graph, v *bsp.Vertex, msgIt message.Iterator) error {
			return g.SendMessage("unknown", intMsg{value: 11})
		},
	})
	c.Assert(err, check.IsNil)
	defer func() { c.Assert(g.Close(), check.IsNil) }()

	g.AddVertex("0", nil)

	err = executeFixedSteps(g, 1)
	c.Assert(
		errors.Is(err, bsp.ErrInvalidMessageDestination),
		check.Equals,
		true,
		check.Commentf("got: %v", err),
	)
}

func (s *bspGraphTestSuite) TestAddEdgeWithUnknownSource(c *check.C) {
	g, err := bsp.NewGraph(bsp.GraphConfig{
		ComputeFn: func(g *bsp.Graph, v *bsp.Vertex, msgIt message.Iterator) error {
			return nil
		},
	})
	c.Assert(err, check.IsNil)
	defer func() { c.Assert(g.Close(), check.IsNil) }()

	err = g.AddEdge("unknown", "0", nil)
	c.Assert(errors.Is(err, bsp.ErrUnknownEdgeSource), check.Equals, true)
}

func (s *bspGraphTestSuite) TestComputeFuncErrorHandling(c *check.C) {
	g, err := bsp.NewGraph(bsp.GraphConfig{
		ComputeWorkers: 4,
		ComputeFn: func(g *bsp.Graph, v *bsp.Vertex, msgIt message.Iterator) error {
			if v.ID() == "50" {
				return errors.New("something went wrong")
			}
			return nil
		},
	})
	c.Assert(err, check.IsNil)
	defer func() { c.Assert(g.Close(), check.IsNil) }()

	numOfVertices := 1000
	for i := 0; i < numOfVertices; i++ {
		g.AddVertex(fmt.Sprint(i), nil)
	}

	err = executeFixedSteps(g, 1)
	c.Assert(err, check.ErrorMatches, `running compute function for vertex "50" failed: something went wrong`)
}

type intMsg struct {
	value int
}

func (m intMsg) Type() string { return "intMsg" }

func executeFixedSteps(g *bsp.Graph, numOfSteps int) error {
	exec := bsp.NewExecutor(g, bsp.ExecutorCallbacks{})

	return exec.RunSteps(context.TODO(), numOfSteps)
}
