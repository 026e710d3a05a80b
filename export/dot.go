/*
	export renders the contents of a link graph store into formats that can
	be consumed by external visualization tools.
*/

package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mycok/webrank/linkgraph/graph"
)

var maxUUID = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

type dotEdge struct {
	src, dest string
	weight    float64
}

// WriteDOT renders all links and edges that were recorded in the graph
// before the provided cut-off time as a GraphViz DOT document. Nodes carry
// their PageRank score and edges carry their assigned weight. The output is
// deterministic: nodes and edges are emitted in URL order.
func WriteDOT(w io.Writer, g graph.Graph, before time.Time) error {
	urlsByID := make(map[uuid.UUID]string)

	linkIt, err := g.Links(uuid.Nil, maxUUID, before)
	if err != nil {
		return fmt.Errorf("dot export: %w", err)
	}

	scoresByURL := make(map[string]float64)
	for linkIt.Next() {
		link := linkIt.Link()
		urlsByID[link.ID] = link.URL
		scoresByURL[link.URL] = link.Score
	}
	if err := linkIt.Error(); err != nil {
		_ = linkIt.Close()

		return fmt.Errorf("dot export: %w", err)
	}
	if err := linkIt.Close(); err != nil {
		return fmt.Errorf("dot export: %w", err)
	}

	var edges []dotEdge

	edgeIt, err := g.Edges(uuid.Nil, maxUUID, before)
	if err != nil {
		return fmt.Errorf("dot export: %w", err)
	}
	for edgeIt.Next() {
		edge := edgeIt.Edge()
		edges = append(edges, dotEdge{
			src:    urlsByID[edge.Src],
			dest:   urlsByID[edge.Dest],
			weight: edge.Weight,
		})
	}
	if err := edgeIt.Error(); err != nil {
		_ = edgeIt.Close()

		return fmt.Errorf("dot export: %w", err)
	}
	if err := edgeIt.Close(); err != nil {
		return fmt.Errorf("dot export: %w", err)
	}

	urls := make([]string, 0, len(scoresByURL))
	for url := range scoresByURL {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].src != edges[j].src {
			return edges[i].src < edges[j].src
		}
		return edges[i].dest < edges[j].dest
	})

	if _, err := fmt.Fprintln(w, "digraph linkgraph {"); err != nil {
		return fmt.Errorf("dot export: %w", err)
	}

	for _, url := range urls {
		_, err := fmt.Fprintf(
			w, "\t%s [score=%.4f];\n", strconv.Quote(url), scoresByURL[url],
		)
		if err != nil {
			return fmt.Errorf("dot export: %w", err)
		}
	}

	for _, edge := range edges {
		_, err := fmt.Fprintf(
			w, "\t%s -> %s [weight=%.4f];\n",
			strconv.Quote(edge.src), strconv.Quote(edge.dest), edge.weight,
		)
		if err != nil {
			return fmt.Errorf("dot export: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w, "}"); err != nil {
		return fmt.Errorf("dot export: %w", err)
	}

	return nil
}
