/*
	app wires the crawler, the PageRank calculator and the export layer
	into a single crawl-and-rank pass over a site.
*/

package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mycok/webrank/bsp"
	"github.com/mycok/webrank/crawler"
	"github.com/mycok/webrank/export"
	"github.com/mycok/webrank/pagerank"
)

var maxUUID = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

// Service executes a single crawl-and-rank pass: it maps the same-domain
// link structure of the configured site into the graph store, computes a
// PageRank score for every discovered page, assigns each edge the score of
// its source page and optionally renders the result as a DOT document.
type Service struct {
	config     Config
	crawler    *crawler.Crawler
	calculator *pagerank.Calculator
}

// New creates and returns a fully configured service instance.
func New(config Config) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("webrank service: config validation failed: %w", err)
	}

	crawlerInstance, err := crawler.New(crawler.Config{
		Graph:                  config.Graph,
		URLGetter:              config.URLGetter,
		PrivateNetworkDetector: config.PrivateNetworkDetector,
		Clock:                  config.Clock,
		MaxPages:               config.MaxPages,
		Logger:                 config.Logger.WithField("component", "crawler"),
	})
	if err != nil {
		return nil, fmt.Errorf("webrank service: %w", err)
	}

	calc, err := pagerank.NewCalculator(pagerank.Config{
		DampingFactor:        config.DampingFactor,
		MinSADForConvergence: config.MinSADForConvergence,
		MaxIterations:        config.MaxIterations,
		ComputeWorkers:       config.NumOfComputeWorkers,
	})
	if err != nil {
		return nil, fmt.Errorf("webrank service: %w", err)
	}

	return &Service{
		config:     config,
		crawler:    crawlerInstance,
		calculator: calc,
	}, nil
}

// Name returns the name of the service.
func (svc *Service) Name() string { return "webrank" }

// Close frees up any resources allocated to the service.
func (svc *Service) Close() error {
	return svc.calculator.Close()
}

// Run executes a single crawl-and-rank pass and blocks until it completes,
// the context gets cancelled or an error occurs.
func (svc *Service) Run(ctx context.Context) error {
	svc.config.Logger.WithFields(logrus.Fields{
		"root":      svc.config.RootURL,
		"max_pages": svc.config.MaxPages,
	}).Info("started crawl-and-rank pass")

	startedAt := svc.config.Clock.Now()

	stats, err := svc.crawler.Crawl(ctx, svc.config.RootURL)
	if err != nil {
		return err
	}
	crawlDuration := svc.config.Clock.Now().Sub(startedAt)

	// Links and edges recorded after this point belong to a future pass.
	cutoff := svc.config.Clock.Now()

	tick := svc.config.Clock.Now()
	if err := svc.calculator.Graph().Reset(); err != nil {
		return err
	}

	if err := svc.loadLinks(uuid.Nil, maxUUID, cutoff); err != nil {
		return err
	}

	// An empty link graph has no scores to calculate, persist or render.
	// Skip the remaining phases instead of running the score calculation
	// against zero pages.
	if len(svc.calculator.Graph().Vertices()) == 0 {
		svc.config.Logger.WithFields(logrus.Fields{
			"pages_visited": stats.PagesVisited,
			"pages_failed":  stats.PagesFailed,
		}).Info("skipping score calculation: link graph is empty")

		return nil
	}

	if err := svc.loadEdges(uuid.Nil, maxUUID, cutoff); err != nil {
		return err
	}
	graphPopulationDuration := svc.config.Clock.Now().Sub(tick)

	tick = svc.config.Clock.Now()
	if err := svc.calculator.CalculatePageRanks(ctx); err != nil {
		return err
	}
	scoreCalculationDuration := svc.config.Clock.Now().Sub(tick)

	tick = svc.config.Clock.Now()
	scores := make(map[uuid.UUID]float64)
	err = svc.calculator.Scores(func(vertexID string, score float64) error {
		linkID, err := uuid.Parse(vertexID)
		if err != nil {
			return err
		}

		scores[linkID] = score

		return svc.config.Graph.UpdateLinkScore(linkID, score)
	})
	if err != nil {
		return err
	}

	weightedEdges, err := svc.updateEdgeWeights(cutoff, scores)
	if err != nil {
		return err
	}
	scorePersistenceDuration := svc.config.Clock.Now().Sub(tick)

	svc.config.Logger.WithFields(logrus.Fields{
		"pages_visited":              stats.PagesVisited,
		"pages_failed":               stats.PagesFailed,
		"ranked_links":               len(scores),
		"weighted_edges":             weightedEdges,
		"crawl_duration":             crawlDuration,
		"graph_population_duration":  graphPopulationDuration,
		"score_calculation_duration": scoreCalculationDuration,
		"score_persistence_duration": scorePersistenceDuration,
		"total_processing_time":      svc.config.Clock.Now().Sub(startedAt),
	}).Info("completed crawl-and-rank pass")

	if svc.config.Output != nil {
		return export.WriteDOT(svc.config.Output, svc.config.Graph, svc.config.Clock.Now())
	}

	return nil
}

func (svc *Service) loadLinks(fromID, toID uuid.UUID, retrievedBefore time.Time) error {
	linkIt, err := svc.config.Graph.Links(fromID, toID, retrievedBefore)
	if err != nil {
		return err
	}

	// Load the links into the graph associated with the service's
	// calculator instance.
	for linkIt.Next() {
		svc.calculator.AddVertex(linkIt.Link().ID.String())
	}

	if err := linkIt.Error(); err != nil {
		_ = linkIt.Close()

		return err
	}

	return linkIt.Close()
}

func (svc *Service) loadEdges(fromID, toID uuid.UUID, updatedBefore time.Time) error {
	edgeIt, err := svc.config.Graph.Edges(fromID, toID, updatedBefore)
	if err != nil {
		return err
	}

	// Load the edges into the graph associated with the service's
	// calculator instance.
	for edgeIt.Next() {
		e := edgeIt.Edge()

		err := svc.calculator.AddEdge(e.Src.String(), e.Dest.String())
		if err != nil {
			if !errors.Is(err, bsp.ErrUnknownEdgeSource) {
				_ = edgeIt.Close()

				return err
			}
		}
	}

	if err := edgeIt.Error(); err != nil {
		_ = edgeIt.Close()

		return err
	}

	return edgeIt.Close()
}

// updateEdgeWeights assigns each edge the score of the page it originates
// from and returns the number of edges that were updated.
func (svc *Service) updateEdgeWeights(
	updatedBefore time.Time, scores map[uuid.UUID]float64,
) (int, error) {

	edgeIt, err := svc.config.Graph.Edges(uuid.Nil, maxUUID, updatedBefore)
	if err != nil {
		return 0, err
	}

	var weightedEdges int

	for edgeIt.Next() {
		e := edgeIt.Edge()

		score, exists := scores[e.Src]
		if !exists {
			continue
		}

		if err := svc.config.Graph.UpdateEdgeWeight(e.ID, score); err != nil {
			_ = edgeIt.Close()

			return weightedEdges, err
		}

		weightedEdges++
	}

	if err := edgeIt.Error(); err != nil {
		_ = edgeIt.Close()

		return weightedEdges, err
	}

	return weightedEdges, edgeIt.Close()
}
