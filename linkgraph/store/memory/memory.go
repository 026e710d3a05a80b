package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mycok/webrank/linkgraph/graph"
)

// Static and compile-time check to ensure InMemoryGraph implements
// graph.Graph interface.
var _ graph.Graph = (*InMemoryGraph)(nil)

// edgeList contains the slice of edge UUIDs that originate from a link in
// the graph.
type edgeList []uuid.UUID

// InMemoryGraph implements an in-memory link and edge graph that can be
// concurrently accessed by multiple clients.
type InMemoryGraph struct {
	mu            sync.RWMutex
	links         map[uuid.UUID]*graph.Link
	edges         map[uuid.UUID]*graph.Edge
	linkURLIndex  map[string]*graph.Link
	linkToEdgeMap map[uuid.UUID]edgeList // Maps links to edges originating from them.
}

// NewInMemoryGraph creates a new in-memory link graph.
func NewInMemoryGraph() *InMemoryGraph {
	return &InMemoryGraph{
		links:         make(map[uuid.UUID]*graph.Link),
		edges:         make(map[uuid.UUID]*graph.Edge),
		linkURLIndex:  make(map[string]*graph.Link),
		linkToEdgeMap: make(map[uuid.UUID]edgeList),
	}
}

// UpsertLink creates a new or updates an existing link. Links are keyed
// by their canonical URL: upserting a link whose URL is already present
// turns the operation into an update of the existing link.
func (s *InMemoryGraph) UpsertLink(link *graph.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// If a link with the same URL already exists, convert the operation
	// into an update. The existing link keeps the most recent RetrievedAt
	// timestamp of the two and its already-assigned score.
	if existing, exists := s.linkURLIndex[link.URL]; exists {
		link.ID = existing.ID
		link.Score = existing.Score

		existingRetrievedAt := existing.RetrievedAt
		*existing = *link

		if existingRetrievedAt.After(link.RetrievedAt) {
			existing.RetrievedAt = existingRetrievedAt
			link.RetrievedAt = existingRetrievedAt
		}

		return nil
	}

	// Assign a random ID to the new link. In case the generated ID is
	// already in use, run the ID generator until a unique ID is found.
	for {
		link.ID = uuid.New()
		if _, exists := s.links[link.ID]; !exists {
			break
		}
	}

	// Store a private copy so that later mutations of the caller's link
	// value cannot corrupt the graph contents.
	lCopy := new(graph.Link)
	*lCopy = *link

	s.links[lCopy.ID] = lCopy
	s.linkURLIndex[lCopy.URL] = lCopy

	return nil
}

// FindLink performs a link lookup by id.
func (s *InMemoryGraph) FindLink(id uuid.UUID) (*graph.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, exists := s.links[id]
	if !exists {
		return nil, fmt.Errorf("find link: %w", graph.ErrNotFound)
	}

	lCopy := new(graph.Link)
	*lCopy = *link

	return lCopy, nil
}

// Links returns an iterator for a set of links whose id's belong to the
// [fromID, toID) range and were retrieved before the [retrievedBefore]
// time.
func (s *InMemoryGraph) Links(
	fromID, toID uuid.UUID, retrievedBefore time.Time,
) (graph.LinkIterator, error) {

	from := fromID.String()
	to := toID.String()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*graph.Link
	for id, link := range s.links {
		idString := id.String()
		if idString >= from && idString < to && link.RetrievedAt.Before(retrievedBefore) {
			list = append(list, link)
		}
	}

	return &linkIterator{store: s, links: list}, nil
}

// UpsertEdge creates a new or updates an existing edge. Edges are unique
// per (Src, Dest) pair: re-upserting an existing edge only refreshes its
// UpdatedAt timestamp.
func (s *InMemoryGraph) UpsertEdge(edge *graph.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, srcExists := s.links[edge.Src]
	_, destExists := s.links[edge.Dest]
	if !srcExists || !destExists {
		return fmt.Errorf("upsert edge: %w", graph.ErrUnknownEdgeLinks)
	}

	// Scan the edge list of the source link for an edge with the same
	// destination.
	for _, edgeID := range s.linkToEdgeMap[edge.Src] {
		existingEdge := s.edges[edgeID]
		if existingEdge.Src == edge.Src && existingEdge.Dest == edge.Dest {
			existingEdge.UpdatedAt = time.Now()
			// Copy the refreshed contents of the matching edge back into
			// the provided edge so the caller observes the assigned ID,
			// weight and timestamp.
			*edge = *existingEdge

			return nil
		}
	}

	// Assign a random ID to the new edge. In case the generated ID is
	// already in use, run the ID generator until a unique ID is found.
	for {
		edge.ID = uuid.New()
		if _, exists := s.edges[edge.ID]; !exists {
			break
		}
	}

	edge.UpdatedAt = time.Now()
	eCopy := new(graph.Edge)
	*eCopy = *edge

	s.edges[eCopy.ID] = eCopy
	s.linkToEdgeMap[eCopy.Src] = append(s.linkToEdgeMap[eCopy.Src], eCopy.ID)

	return nil
}

// RemoveStaleEdges removes any edge that originates from a specific link
// ID and was updated before the specified [updatedBefore] time.
func (s *InMemoryGraph) RemoveStaleEdges(
	fromID uuid.UUID, updatedBefore time.Time,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	var newEdgeList edgeList

	for _, id := range s.linkToEdgeMap[fromID] {
		edge := s.edges[id]
		if edge.UpdatedAt.Before(updatedBefore) {
			delete(s.edges, id)

			continue
		}

		newEdgeList = append(newEdgeList, id)
	}

	s.linkToEdgeMap[fromID] = newEdgeList

	return nil
}

// Edges returns an iterator for a set of edges whose source link id's
// belong to the [fromID, toID) range and were updated before the
// [updatedBefore] time.
func (s *InMemoryGraph) Edges(
	fromID, toID uuid.UUID, updatedBefore time.Time,
) (graph.EdgeIterator, error) {

	from := fromID.String()
	to := toID.String()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*graph.Edge

	for id := range s.links {
		linkID := id.String()
		if linkID < from || linkID >= to {
			continue
		}

		for _, edgeID := range s.linkToEdgeMap[id] {
			if edge := s.edges[edgeID]; edge.UpdatedAt.Before(updatedBefore) {
				list = append(list, edge)
			}
		}
	}

	return &edgeIterator{store: s, edges: list}, nil
}

// UpdateLinkScore sets the PageRank score for the link with the specified
// ID.
func (s *InMemoryGraph) UpdateLinkScore(linkID uuid.UUID, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, exists := s.links[linkID]
	if !exists {
		return fmt.Errorf("update link score: %w", graph.ErrNotFound)
	}

	link.Score = score

	return nil
}

// UpdateEdgeWeight sets the weight for the edge with the specified ID.
func (s *InMemoryGraph) UpdateEdgeWeight(edgeID uuid.UUID, weight float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	edge, exists := s.edges[edgeID]
	if !exists {
		return fmt.Errorf("update edge weight: %w", graph.ErrNotFound)
	}

	edge.Weight = weight

	return nil
}
