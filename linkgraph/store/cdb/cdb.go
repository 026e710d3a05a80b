/*
	cdb package provides a persistent link graph store backed by a
	CockroachDB (or any Postgres wire-compatible) instance.

	Expected schema:

		CREATE TABLE IF NOT EXISTS links (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			url STRING UNIQUE,
			retrieved_at TIMESTAMPTZ,
			score FLOAT NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS edges (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			src UUID NOT NULL REFERENCES links(id) ON DELETE CASCADE,
			dest UUID NOT NULL REFERENCES links(id) ON DELETE CASCADE,
			weight FLOAT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ,
			CONSTRAINT edge_links UNIQUE(src, dest)
		);
*/

package cdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mycok/webrank/linkgraph/graph"
)

var (
	upsertLinkQuery = `
					INSERT INTO links (url, retrieved_at)
					VALUES ($1, $2)
					ON CONFLICT (url)
					DO UPDATE SET retrieved_at=GREATEST(links.retrieved_at, $2)
					RETURNING id, retrieved_at
					`
	findLinkQuery = "SELECT id, url, retrieved_at, score FROM links WHERE id=$1"

	partitionedLinksQuery = `
							SELECT id, url, retrieved_at, score FROM links
							WHERE id >= $1 AND id < $2 AND retrieved_at < $3
							`

	upsertEdgeQuery = `
					INSERT INTO edges (src, dest, updated_at)
					VALUES ($1, $2, NOW())
					ON CONFLICT (src, dest)
					DO UPDATE SET updated_at=NOW()
					RETURNING id, updated_at
					`
	partitionedEdgesQuery = `
							SELECT id, src, dest, weight, updated_at FROM edges
							WHERE src >= $1 AND src < $2 AND updated_at < $3
							`

	removeStaleEdgesQuery = "DELETE FROM edges WHERE src=$1 AND updated_at < $2"

	updateLinkScoreQuery = "UPDATE links SET score=$2 WHERE id=$1"

	updateEdgeWeightQuery = "UPDATE edges SET weight=$2 WHERE id=$1"
)

// Static and compile-time check to ensure CockroachDBGraph implements
// graph.Graph interface.
var _ graph.Graph = (*CockroachDBGraph)(nil)

// CockroachDBGraph implements a persistent link and edge graph backed by
// a CockroachDB instance.
type CockroachDBGraph struct {
	db *sql.DB
}

// NewCockroachDBGraph returns a CockroachDBGraph instance.
func NewCockroachDBGraph(dsn string) (*CockroachDBGraph, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return &CockroachDBGraph{db}, nil
}

// Close terminates the connection to the CockroachDB instance.
func (s *CockroachDBGraph) Close() error {
	return s.db.Close()
}

// UpsertLink creates a new or updates an existing link.
func (s *CockroachDBGraph) UpsertLink(link *graph.Link) error {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := s.db.QueryRowContext(
		ctx, upsertLinkQuery, link.URL, link.RetrievedAt.UTC(),
	).Scan(&link.ID, &link.RetrievedAt)
	if err != nil {
		return fmt.Errorf("upsert link: %w", err)
	}

	link.RetrievedAt = link.RetrievedAt.UTC()

	return nil
}

// FindLink performs a link lookup by id.
func (s *CockroachDBGraph) FindLink(id uuid.UUID) (*graph.Link, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	l := new(graph.Link)

	err := s.db.QueryRowContext(ctx, findLinkQuery, id).Scan(
		&l.ID, &l.URL, &l.RetrievedAt, &l.Score,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("find link: %w", graph.ErrNotFound)
		}

		return nil, fmt.Errorf("find link: %w", err)
	}

	l.RetrievedAt = l.RetrievedAt.UTC()

	return l, nil
}

// Links returns an iterator for a set of links whose id's belong to the
// [fromID, toID) range and were retrieved before the [retrievedBefore]
// time.
func (s *CockroachDBGraph) Links(
	fromID, toID uuid.UUID, retrievedBefore time.Time,
) (graph.LinkIterator, error) {

	rows, err := s.db.Query(
		partitionedLinksQuery, fromID, toID, retrievedBefore.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("links: %w", err)
	}

	return &linkIterator{rows: rows}, nil
}

// UpsertEdge creates a new or updates an existing edge.
func (s *CockroachDBGraph) UpsertEdge(edge *graph.Edge) error {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := s.db.QueryRowContext(
		ctx, upsertEdgeQuery, edge.Src, edge.Dest,
	).Scan(&edge.ID, &edge.UpdatedAt)
	if err != nil {
		if isForeignKeyViolationError(err) {
			err = graph.ErrUnknownEdgeLinks
		}

		return fmt.Errorf("upsert edge: %w", err)
	}

	edge.UpdatedAt = edge.UpdatedAt.UTC()

	return nil
}

// RemoveStaleEdges removes any edge that originates from a specific link
// ID and was updated before the specified [updatedBefore] time.
func (s *CockroachDBGraph) RemoveStaleEdges(
	fromID uuid.UUID, updatedBefore time.Time,
) error {

	_, err := s.db.Exec(removeStaleEdgesQuery, fromID, updatedBefore.UTC())
	if err != nil {
		return fmt.Errorf("remove stale edges: %w", err)
	}

	return nil
}

// Edges returns an iterator for a set of edges whose source link id's
// belong to the [fromID, toID) range and were updated before the
// [updatedBefore] time.
func (s *CockroachDBGraph) Edges(
	fromID, toID uuid.UUID, updatedBefore time.Time,
) (graph.EdgeIterator, error) {

	rows, err := s.db.Query(
		partitionedEdgesQuery, fromID, toID, updatedBefore.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("edges: %w", err)
	}

	return &edgeIterator{rows: rows}, nil
}

// UpdateLinkScore sets the PageRank score for the link with the
// specified ID.
func (s *CockroachDBGraph) UpdateLinkScore(linkID uuid.UUID, score float64) error {
	res, err := s.db.Exec(updateLinkScoreQuery, linkID, score)
	if err != nil {
		return fmt.Errorf("update link score: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update link score: %w", graph.ErrNotFound)
	}

	return nil
}

// UpdateEdgeWeight sets the weight for the edge with the specified ID.
func (s *CockroachDBGraph) UpdateEdgeWeight(edgeID uuid.UUID, weight float64) error {
	res, err := s.db.Exec(updateEdgeWeightQuery, edgeID, weight)
	if err != nil {
		return fmt.Errorf("update edge weight: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update edge weight: %w", graph.ErrNotFound)
	}

	return nil
}

// isForeignKeyViolationError returns true if err is a foreign key
// constraint violation error.
func isForeignKeyViolationError(err error) bool {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return false
	}

	return pqErr.Code.Name() == "foreign_key_violation"
}
