/*
	graphtest package contains a re-usable test suite that can be imported
	and run against any concrete type that implements the graph.Graph
	interface.
*/

package graphtest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	"github.com/mycok/webrank/linkgraph/graph"
)

var maxUUID = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

// BaseSuite defines a set of re-usable graph-related tests that can be
// executed against any concrete type that implements the graph.Graph
// interface.
type BaseSuite struct {
	g graph.Graph
}

// SetGraph configures the test-suite to run all tests against an
// instance of graph.Graph.
func (s *BaseSuite) SetGraph(g graph.Graph) {
	s.g = g
}

// TestUpsertLink verifies the link upsert logic.
func (s *BaseSuite) TestUpsertLink(c *check.C) {
	newLink := &graph.Link{
		URL:         "https://example.com",
		RetrievedAt: time.Now().Add(-10 * time.Hour),
	}

	err := s.g.UpsertLink(newLink)
	c.Assert(err, check.IsNil)
	c.Assert(
		newLink.ID, check.Not(check.Equals), uuid.Nil,
		check.Commentf("expected an ID to be assigned to the new link"),
	)

	// Update the newly created link with a more recent RetrievedAt
	// timestamp.
	retrievedAt := time.Now().Truncate(time.Second).UTC()
	updatedLink := &graph.Link{
		URL:         "https://example.com",
		RetrievedAt: retrievedAt,
	}

	err = s.g.UpsertLink(updatedLink)
	c.Assert(err, check.IsNil)
	c.Assert(
		updatedLink.ID, check.Equals, newLink.ID,
		check.Commentf("upserting a link with an existing URL must retain the assigned ID"),
	)

	stored, err := s.g.FindLink(updatedLink.ID)
	c.Assert(err, check.IsNil)
	c.Assert(stored.RetrievedAt.UTC(), check.Equals, retrievedAt)

	// Attempt to insert a link whose URL matches the existing link while
	// providing an older RetrievedAt value.
	sameURL := &graph.Link{
		URL:         updatedLink.URL,
		RetrievedAt: time.Now().Add(-10 * time.Hour),
	}
	err = s.g.UpsertLink(sameURL)
	c.Assert(err, check.IsNil)
	c.Assert(sameURL.ID, check.Equals, updatedLink.ID)

	stored, err = s.g.FindLink(updatedLink.ID)
	c.Assert(err, check.IsNil)
	c.Assert(
		stored.RetrievedAt.UTC(), check.Equals, retrievedAt,
		check.Commentf("RetrievedAt timestamp was overwritten with an older value"),
	)
}

// TestFindLink verifies the link lookup logic.
func (s *BaseSuite) TestFindLink(c *check.C) {
	link := &graph.Link{
		URL:         "https://example.com",
		RetrievedAt: time.Now().Truncate(time.Second).UTC(),
	}

	err := s.g.UpsertLink(link)
	c.Assert(err, check.IsNil)

	stored, err := s.g.FindLink(link.ID)
	c.Assert(err, check.IsNil)
	c.Assert(stored.ID, check.Equals, link.ID)
	c.Assert(stored.URL, check.Equals, link.URL)

	// Lookup by an unknown ID.
	_, err = s.g.FindLink(uuid.Nil)
	c.Assert(errors.Is(err, graph.ErrNotFound), check.Equals, true)
}

// TestUpsertEdge verifies the edge upsert logic.
func (s *BaseSuite) TestUpsertEdge(c *check.C) {
	linkUUIDs := make([]uuid.UUID, 3)
	for i := 0; i < 3; i++ {
		link := &graph.Link{URL: fmt.Sprint(i)}
		c.Assert(s.g.UpsertLink(link), check.IsNil)
		linkUUIDs[i] = link.ID
	}

	edge := &graph.Edge{
		Src:  linkUUIDs[0],
		Dest: linkUUIDs[1],
	}

	err := s.g.UpsertEdge(edge)
	c.Assert(err, check.IsNil)
	c.Assert(
		edge.ID, check.Not(check.Equals), uuid.Nil,
		check.Commentf("expected an ID to be assigned to the new edge"),
	)
	c.Assert(edge.UpdatedAt.IsZero(), check.Equals, false)

	// Re-upserting the same (Src, Dest) pair must not create a second
	// edge.
	other := &graph.Edge{
		Src:  linkUUIDs[0],
		Dest: linkUUIDs[1],
	}
	err = s.g.UpsertEdge(other)
	c.Assert(err, check.IsNil)
	c.Assert(other.ID, check.Equals, edge.ID, check.Commentf("edge ID changed while upserting"))

	edges := s.collectEdges(c, time.Now())
	c.Assert(edges, check.HasLen, 1)

	// Create an edge that refers to unknown links.
	bogus := &graph.Edge{
		Src:  linkUUIDs[0],
		Dest: uuid.New(),
	}
	err = s.g.UpsertEdge(bogus)
	c.Assert(errors.Is(err, graph.ErrUnknownEdgeLinks), check.Equals, true)
}

// TestUpdateLinkScore verifies that PageRank scores can be persisted for
// stored links.
func (s *BaseSuite) TestUpdateLinkScore(c *check.C) {
	link := &graph.Link{URL: "https://example.com"}
	c.Assert(s.g.UpsertLink(link), check.IsNil)

	c.Assert(s.g.UpdateLinkScore(link.ID, 0.5), check.IsNil)

	stored, err := s.g.FindLink(link.ID)
	c.Assert(err, check.IsNil)
	c.Assert(stored.Score, check.Equals, 0.5)

	// A later upsert of the same URL must not reset the stored score.
	c.Assert(s.g.UpsertLink(&graph.Link{URL: link.URL}), check.IsNil)
	stored, err = s.g.FindLink(link.ID)
	c.Assert(err, check.IsNil)
	c.Assert(stored.Score, check.Equals, 0.5)

	err = s.g.UpdateLinkScore(uuid.New(), 0.5)
	c.Assert(errors.Is(err, graph.ErrNotFound), check.Equals, true)
}

// TestUpdateEdgeWeight verifies that edge weights can be persisted for
// stored edges.
func (s *BaseSuite) TestUpdateEdgeWeight(c *check.C) {
	src := &graph.Link{URL: "https://example.com"}
	dest := &graph.Link{URL: "https://example.com/about"}
	c.Assert(s.g.UpsertLink(src), check.IsNil)
	c.Assert(s.g.UpsertLink(dest), check.IsNil)

	edge := &graph.Edge{Src: src.ID, Dest: dest.ID}
	c.Assert(s.g.UpsertEdge(edge), check.IsNil)

	c.Assert(s.g.UpdateEdgeWeight(edge.ID, 0.25), check.IsNil)

	edges := s.collectEdges(c, time.Now())
	c.Assert(edges, check.HasLen, 1)
	c.Assert(edges[0].Weight, check.Equals, 0.25)

	// Refreshing the edge must not reset the stored weight.
	c.Assert(s.g.UpsertEdge(&graph.Edge{Src: src.ID, Dest: dest.ID}), check.IsNil)
	edges = s.collectEdges(c, time.Now())
	c.Assert(edges, check.HasLen, 1)
	c.Assert(edges[0].Weight, check.Equals, 0.25)

	err := s.g.UpdateEdgeWeight(uuid.New(), 0.25)
	c.Assert(errors.Is(err, graph.ErrNotFound), check.Equals, true)
}

// TestLinkIteratorTimeFilter verifies the time-based filtering of the
// link iterator.
func (s *BaseSuite) TestLinkIteratorTimeFilter(c *check.C) {
	linkUUIDs := make([]uuid.UUID, 3)
	linkInsertTimes := make([]time.Time, len(linkUUIDs))
	for i := 0; i < len(linkUUIDs); i++ {
		link := &graph.Link{URL: fmt.Sprint(i), RetrievedAt: time.Now()}
		c.Assert(s.g.UpsertLink(link), check.IsNil)
		linkUUIDs[i] = link.ID
		linkInsertTimes[i] = time.Now()
	}

	for i, ts := range linkInsertTimes {
		links := s.collectLinks(c, ts)
		c.Assert(
			links, check.HasLen, i+1,
			check.Commentf("fetching links retrieved before link %d", i),
		)
	}
}

// TestEdgeIteratorTimeFilter verifies the time-based filtering of the
// edge iterator.
func (s *BaseSuite) TestEdgeIteratorTimeFilter(c *check.C) {
	linkUUIDs := make([]uuid.UUID, 3)
	for i := 0; i < len(linkUUIDs); i++ {
		link := &graph.Link{URL: fmt.Sprint(i)}
		c.Assert(s.g.UpsertLink(link), check.IsNil)
		linkUUIDs[i] = link.ID
	}

	edgeInsertTimes := make([]time.Time, len(linkUUIDs))
	for i := 0; i < len(linkUUIDs); i++ {
		edge := &graph.Edge{Src: linkUUIDs[0], Dest: linkUUIDs[i]}
		c.Assert(s.g.UpsertEdge(edge), check.IsNil)
		edgeInsertTimes[i] = time.Now()
	}

	for i, ts := range edgeInsertTimes {
		edges := s.collectEdges(c, ts)
		c.Assert(
			edges, check.HasLen, i+1,
			check.Commentf("fetching edges updated before edge %d", i),
		)
	}
}

// TestConcurrentLinkIterators verifies that multiple clients can
// concurrently iterate the store.
func (s *BaseSuite) TestConcurrentLinkIterators(c *check.C) {
	var (
		wg           sync.WaitGroup
		numIterators = 10
		numLinks     = 100
	)

	for i := 0; i < numLinks; i++ {
		link := &graph.Link{URL: fmt.Sprint(i)}
		c.Assert(s.g.UpsertLink(link), check.IsNil)
	}

	wg.Add(numIterators)
	for i := 0; i < numIterators; i++ {
		go func(id int) {
			defer wg.Done()

			cc := check.Commentf("iterator %d", id)
			seen := make(map[string]bool)
			it, err := s.g.Links(uuid.Nil, maxUUID, time.Now())
			c.Assert(err, check.IsNil, cc)

			for it.Next() {
				linkID := it.Link().ID.String()
				c.Assert(
					seen[linkID], check.Equals, false,
					check.Commentf("iterator %d saw same link twice", id),
				)
				seen[linkID] = true
			}

			c.Assert(seen, check.HasLen, numLinks, cc)
			c.Assert(it.Error(), check.IsNil, cc)
			c.Assert(it.Close(), check.IsNil, cc)
		}(i)
	}

	doneCh := make(chan struct{})
	go func() {
		wg.Wait()
		close(doneCh)
	}()

	select {
	case <-doneCh:
	// test completed successfully
	case <-time.After(10 * time.Second):
		c.Fatal("timed out waiting for test to complete")
	}
}

// TestRemoveStaleEdges verifies the edge deletion logic.
func (s *BaseSuite) TestRemoveStaleEdges(c *check.C) {
	numEdges := 100
	linkUUIDs := make([]uuid.UUID, numEdges*4)
	goneUUIDs := make(map[uuid.UUID]struct{})
	for i := 0; i < numEdges*4; i++ {
		link := &graph.Link{URL: fmt.Sprint(i)}
		c.Assert(s.g.UpsertLink(link), check.IsNil)
		linkUUIDs[i] = link.ID
	}

	var lastTs time.Time
	for i := 0; i < numEdges; i++ {
		e1 := &graph.Edge{
			Src:  linkUUIDs[0],
			Dest: linkUUIDs[i],
		}
		c.Assert(s.g.UpsertEdge(e1), check.IsNil)
		goneUUIDs[e1.ID] = struct{}{}
		lastTs = e1.UpdatedAt
	}

	deleteBefore := lastTs.Add(time.Millisecond)
	time.Sleep(250 * time.Millisecond)

	// The following edges will have an UpdatedAt value > lastTs.
	for i := 0; i < numEdges; i++ {
		e2 := &graph.Edge{
			Src:  linkUUIDs[0],
			Dest: linkUUIDs[numEdges+i+1],
		}
		c.Assert(s.g.UpsertEdge(e2), check.IsNil)
	}
	c.Assert(s.g.RemoveStaleEdges(linkUUIDs[0], deleteBefore), check.IsNil)

	edges := s.collectEdges(c, time.Now())
	for _, edge := range edges {
		_, found := goneUUIDs[edge.ID]
		c.Assert(
			found, check.Equals, false,
			check.Commentf("expected edge %s to be removed from the edge list", edge.ID),
		)
	}

	c.Assert(edges, check.HasLen, numEdges)
}

func (s *BaseSuite) collectLinks(c *check.C, retrievedBefore time.Time) []*graph.Link {
	it, err := s.g.Links(uuid.Nil, maxUUID, retrievedBefore)
	c.Assert(err, check.IsNil)

	var links []*graph.Link
	for it.Next() {
		links = append(links, it.Link())
	}
	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)

	return links
}

func (s *BaseSuite) collectEdges(c *check.C, updatedBefore time.Time) []*graph.Edge {
	it, err := s.g.Edges(uuid.Nil, maxUUID, updatedBefore)
	c.Assert(err, check.IsNil)

	var edges []*graph.Edge
	for it.Next() {
		edges = append(edges, it.Edge())
	}
	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)

	return edges
}
