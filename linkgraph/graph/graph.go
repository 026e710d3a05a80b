/*
	graph package defines the link graph data model together with the
	behavior expected of link graph data stores.

	Nodes are web pages identified by their canonical URL; edges are the
	directed page-to-page links discovered by the crawler. Each link
	additionally carries the PageRank score computed for it and each edge
	the weight derived from its source link's score.
*/

package graph

import (
	"time"

	"github.com/google/uuid"
)

// Graph should be implemented by link graph data stores.
type Graph interface {
	// UpsertLink creates a new or updates an existing link.
	UpsertLink(link *Link) error

	// FindLink performs a link lookup by id.
	FindLink(id uuid.UUID) (*Link, error)

	// Links returns an iterator for a set of links whose id's belong
	// to the [fromID, toID) range and were retrieved before the
	// [retrievedBefore] time.
	Links(fromID, toID uuid.UUID, retrievedBefore time.Time) (LinkIterator, error)

	// UpsertEdge creates a new or updates an existing edge. Edges are
	// unique per (Src, Dest) pair; re-upserting an existing edge only
	// refreshes its UpdatedAt timestamp.
	UpsertEdge(edge *Edge) error

	// RemoveStaleEdges removes any edge that originates from a specific
	// link ID and was updated before the specified [updatedBefore] time.
	RemoveStaleEdges(fromID uuid.UUID, updatedBefore time.Time) error

	// Edges returns an iterator for a set of edges whose source link id's
	// belong to the [fromID, toID) range and were updated before the
	// [updatedBefore] time.
	Edges(fromID, toID uuid.UUID, updatedBefore time.Time) (EdgeIterator, error)

	// UpdateLinkScore sets the PageRank score for the link with the
	// specified ID.
	UpdateLinkScore(linkID uuid.UUID, score float64) error

	// UpdateEdgeWeight sets the weight for the edge with the specified ID.
	UpdateEdgeWeight(edgeID uuid.UUID, weight float64) error
}

// LinkIterator is implemented by types that iterate graph links.
type LinkIterator interface {
	Iterator

	// Link returns the currently fetched link object.
	Link() *Link
}

// EdgeIterator is implemented by types that iterate graph edges.
type EdgeIterator interface {
	Iterator

	// Edge returns the currently fetched edge object.
	Edge() *Edge
}

// Iterator should be embedded / implemented by types that require
// iteration functionality.
type Iterator interface {
	// Next loads the next item, returns false when no more items
	// are available or when an error occurs.
	Next() bool

	// Error returns the last error encountered by the iterator.
	Error() error

	// Close releases any resources allocated to the iterator.
	Close() error
}

// Link represents a crawled or discovered web page. The URL field holds
// the canonical form of the page URL and serves as the node identity key.
type Link struct {
	ID          uuid.UUID // Link unique identifier
	URL         string    // Canonical page URL
	RetrievedAt time.Time // Last retrieved / crawled timestamp
	Score       float64   // PageRank score assigned to the page
}

// Edge represents a directed graph edge that originates from Src and
// terminates at Dest.
type Edge struct {
	ID        uuid.UUID // Edge unique identifier
	Src       uuid.UUID // ID of the link the edge originates from
	Dest      uuid.UUID // ID of the link the edge points to
	Weight    float64   // PageRank score of the source link
	UpdatedAt time.Time // Last updated timestamp
}
