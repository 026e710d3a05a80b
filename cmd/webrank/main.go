package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/mycok/webrank/app"
	"github.com/mycok/webrank/linkgraph/graph"
	"github.com/mycok/webrank/linkgraph/store/cdb"
	memgraph "github.com/mycok/webrank/linkgraph/store/memory"
)

const (
	appName = "webrank"
	appSHA  = "compiled-and-deployed-at"
)

func main() {
	host, _ := os.Hostname()
	// Instantiate a root logger that will be passed to all components.
	rootLogger := logrus.New()
	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"SHA":  appSHA,
		"host": host,
	})

	svc, cleanup, err := configureService(logger)
	if err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")
		os.Exit(1)
	}
	defer cleanup()

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	// Launch a separate process to listen and respond to os signals
	// and trigger a graceful shutdown.
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGHUP)

		select {
		case s := <-signalChan:
			logger.WithField("signal", s.String()).Info("shutting down due to os signal")
			// Cancel context, this signals the running pass to return.
			cancelFn()
		case <-ctx.Done():
		}
	}()

	if err := svc.Run(ctx); err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")
		_ = svc.Close()
		os.Exit(1)
	}

	if err := svc.Close(); err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}

func configureService(logger *logrus.Entry) (*app.Service, func(), error) {
	var config app.Config

	// Values from a local .env file act as defaults for the env-backed
	// flags below.
	_ = godotenv.Load()

	flag.StringVar(
		&config.RootURL, "root", "",
		"URL of the site to crawl and rank",
	)
	flag.IntVar(
		&config.MaxPages, "max-pages", 100,
		"Maximum number of pages to crawl. [failed fetches count against the budget]",
	)
	flag.Float64Var(
		&config.DampingFactor, "damping-factor", 0.85,
		"Damping factor for the PageRank calculation",
	)
	flag.Float64Var(
		&config.MinSADForConvergence, "convergence-tolerance", 1e-6,
		"Minimum sum of absolute score differences between consecutive"+
			" iterations for the calculation to be considered converged",
	)
	flag.IntVar(
		&config.MaxIterations, "max-iterations", 100,
		"Maximum number of score update iterations",
	)
	flag.IntVar(
		&config.NumOfComputeWorkers, "compute-workers",
		runtime.NumCPU(),
		"Number of workers for computing PageRank scores.[defaults to number of CPU's]",
	)

	fetchTimeout := flag.Duration(
		"fetch-timeout", 8*time.Second,
		"Timeout for each page fetch",
	)
	outputPath := flag.String(
		"output", "",
		"Path to write the ranked graph in GraphViz DOT format."+
			" [if empty, rendering is skipped]",
	)
	linkGraphURI := flag.String(
		"link-graph-uri", defaultLinkGraphURI(),
		"URI for connecting to a link-graph data store."+
			" [supported URI's: in-memory://, postgresql://user@host:26257/linkgraph?sslmode=disable]",
	)

	flag.Parse()

	// Retrieve a suitable link graph implementation and plug it into the
	// service configuration.
	linkGraph, err := getLinkGraph(*linkGraphURI, logger)
	if err != nil {
		return nil, nil, err
	}

	config.Graph = linkGraph
	config.URLGetter = &http.Client{Timeout: *fetchTimeout}
	config.Logger = logger.WithField("service", "webrank")

	cleanup := func() {}
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}

		config.Output = f
		cleanup = func() { _ = f.Close() }
	}

	svc, err := app.New(config)
	if err != nil {
		cleanup()

		return nil, nil, err
	}

	return svc, cleanup, nil
}

// defaultLinkGraphURI returns the link graph URI from the process
// environment or the in-memory store URI if none is set.
func defaultLinkGraphURI() string {
	if uri := os.Getenv("WEBRANK_LINK_GRAPH_URI"); uri != "" {
		return uri
	}

	return "in-memory://"
}

func getLinkGraph(linkGraphURI string, logger *logrus.Entry) (graph.Graph, error) {
	if linkGraphURI == "" {
		return nil, fmt.Errorf("link graph URI must be specified with --link-graph-uri")
	}

	url, err := url.Parse(linkGraphURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse link graph URI: %w", err)
	}

	switch url.Scheme {
	case "in-memory":
		logger.Info("using in-memory link graph store")

		return memgraph.NewInMemoryGraph(), nil
	case "postgresql":
		logger.Info("using CDB link graph store")

		return cdb.NewCockroachDBGraph(linkGraphURI)
	default:
		return nil, fmt.Errorf("unsupported link graph URI scheme: %q", url.Scheme)
	}
}
