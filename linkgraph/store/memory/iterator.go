package memory

import "github.com/mycok/webrank/linkgraph/graph"

// Static and compile-time checks to ensure both iterator types implement
// graph.Iterator interface.
var (
	_ graph.LinkIterator = (*linkIterator)(nil)
	_ graph.EdgeIterator = (*edgeIterator)(nil)
)

// linkIterator is a graph.LinkIterator implementation for the in-memory
// graph store.
type linkIterator struct {
	// Pointer to the owning store. Used to access the store's mutex.
	store        *InMemoryGraph
	links        []*graph.Link
	currentIndex int
}

// Next loads the next item, returns false when no more links are
// available or when an error occurs.
func (i *linkIterator) Next() bool {
	if i.currentIndex >= len(i.links) {
		return false
	}

	i.currentIndex++

	return true
}

// Error returns the last error encountered by the iterator.
func (i *linkIterator) Error() error {
	return nil
}

// Close releases any resources allocated to the iterator.
func (i *linkIterator) Close() error {
	return nil
}

// Link returns the currently fetched link object.
func (i *linkIterator) Link() *graph.Link {
	// The link pointer contents may be overwritten by a graph update
	// outside this method. To avoid data races, we acquire the read lock
	// first and return a copy of the queried link.
	i.store.mu.RLock()
	defer i.store.mu.RUnlock()

	link := new(graph.Link)
	*link = *i.links[i.currentIndex-1]

	return link
}

// edgeIterator is a graph.EdgeIterator implementation for the in-memory
// graph store.
type edgeIterator struct {
	store        *InMemoryGraph // Provides access to the store mutex.
	edges        []*graph.Edge
	currentIndex int
}

// Next advances the iterator. When no edges are available or when an
// error occurs, calls to Next() return false.
func (i *edgeIterator) Next() bool {
	if i.currentIndex >= len(i.edges) {
		return false
	}

	i.currentIndex++

	return true
}

// Error returns the last error recorded by the iterator.
func (i *edgeIterator) Error() error {
	return nil
}

// Close releases any resources linked to the iterator.
func (i *edgeIterator) Close() error {
	return nil
}

// Edge returns the currently fetched edge object.
func (i *edgeIterator) Edge() *graph.Edge {
	// The edge pointer contents may be overwritten by a graph update
	// outside this method. To avoid data races, we acquire the read lock
	// first and return a copy of the queried edge.
	i.store.mu.RLock()
	defer i.store.mu.RUnlock()

	edge := new(graph.Edge)
	*edge = *i.edges[i.currentIndex-1]

	return edge
}
