package crawler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mycok/webrank/linkgraph/graph"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/mycok/webrank/crawler URLGetter,PrivateNetworkDetector,LinkExtractor,MiniGraph

// URLGetter should be implemented by objects that perform
// HTTP GET requests to fetch link data.
type URLGetter interface {
	Get(url string) (*http.Response, error)
}

// PrivateNetworkDetector should be implemented by objects that can detect
// whether a host resolves to a private network address.
type PrivateNetworkDetector interface {
	IsNetworkPrivate(address string) (bool, error)
}

// LinkExtractor should be implemented by objects that can extract the set of
// outgoing links from the contents of a retrieved HTML page.
type LinkExtractor interface {
	// ExtractLinks returns the list of unique, absolute URLs that the page
	// located at pageURL links to.
	ExtractLinks(pageURL string, content []byte) ([]string, error)
}

// MiniGraph should be implemented by objects that can upsert links and edges
// into a link graph instance.
type MiniGraph interface {
	// UpsertLink creates a new or updates an existing link.
	UpsertLink(link *graph.Link) error

	// UpsertEdge creates a new or updates an existing edge.
	UpsertEdge(edge *graph.Edge) error

	// RemoveStaleEdges removes any edge that originates from a specific link
	// ID and was updated before the specified [updatedBefore] time.
	RemoveStaleEdges(fromID uuid.UUID, updatedBefore time.Time) error
}
