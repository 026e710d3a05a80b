package graph

import "errors"

var (
	// ErrNotFound is returned when a link or edge lookup fails to match.
	ErrNotFound = errors.New("not found")

	// ErrUnknownEdgeLinks is returned when an edge insertion refers to a
	// source or destination link that is not part of the graph.
	ErrUnknownEdgeLinks = errors.New("unknown source and / or destination for edge")
)
