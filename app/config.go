package app

import (
	"fmt"
	"io"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/mycok/webrank/crawler"
	"github.com/mycok/webrank/linkgraph/graph"
)

// Config defines the configuration options for a full crawl-and-rank pass.
type Config struct {
	// The link graph store that the pass reads from and writes to.
	Graph graph.Graph

	// The URL whose site is to be crawled and ranked.
	RootURL string

	// An API for performing HTTP requests. If not specified,
	// http.DefaultClient will be used instead.
	URLGetter crawler.URLGetter

	// An API for detecting private network addresses. If not specified,
	// a default implementation that handles the private network ranges
	// defined in RFC1918 will be used instead.
	PrivateNetworkDetector crawler.PrivateNetworkDetector

	// The maximum number of pages that the crawl may visit. If not
	// specified, a default value of 100 will be used instead.
	MaxPages int

	// The damping factor to use when calculating PageRank scores. If not
	// specified, a default value of 0.85 will be used instead.
	DampingFactor float64

	// The minimum sum of absolute score differences between consecutive
	// iterations for the score calculation to be considered converged.
	// If not specified, a default value of 1e-6 will be used instead.
	MinSADForConvergence float64

	// The maximum number of score update iterations to run before giving
	// up on convergence. If not specified, a default value of 100 will be
	// used instead.
	MaxIterations int

	// The number of workers to spin up for computing PageRank scores. If
	// not specified, the number of available CPUs will be used instead.
	NumOfComputeWorkers int

	// An optional destination for rendering the ranked graph in GraphViz
	// DOT format once the pass completes. If not specified, rendering is
	// skipped.
	Output io.Writer

	// A clock instance for generating time-related events. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.Graph == nil {
		err = multierror.Append(err, fmt.Errorf("link graph store not provided"))
	}

	if config.RootURL == "" {
		err = multierror.Append(err, fmt.Errorf("root URL not provided"))
	}

	if config.NumOfComputeWorkers <= 0 {
		config.NumOfComputeWorkers = runtime.NumCPU()
	}

	if config.Clock == nil {
		config.Clock = clock.WallClock
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
