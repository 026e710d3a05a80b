package crawler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/mycok/webrank/crawler/privnet"
)

// Config defines the configuration options for the crawler.
type Config struct {
	// API for interacting with the links and edges data store.
	Graph MiniGraph

	// An API for performing HTTP requests. If not specified,
	// http.DefaultClient will be used instead.
	URLGetter URLGetter

	// An API for detecting private network addresses. If not specified,
	// a default implementation that handles the private network ranges
	// defined in RFC1918 will be used instead.
	PrivateNetworkDetector PrivateNetworkDetector

	// An API for extracting outgoing links from retrieved pages. If not
	// specified, a default regex-based HTML extractor will be used instead.
	LinkExtractor LinkExtractor

	// A clock instance for generating time-related events. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The maximum number of pages that a single crawl pass may visit.
	// Failed page fetches count against this budget. If not specified,
	// a default value of 100 will be used instead.
	MaxPages int

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.Graph == nil {
		err = multierror.Append(err, fmt.Errorf("graph API not provided"))
	}

	if config.URLGetter == nil {
		config.URLGetter = http.DefaultClient
	}

	if config.PrivateNetworkDetector == nil {
		var detectorErr error

		config.PrivateNetworkDetector, detectorErr = privnet.NewDetector()
		if detectorErr != nil {
			err = multierror.Append(err, detectorErr)
		}
	}

	if config.LinkExtractor == nil {
		config.LinkExtractor = NewHTMLLinkExtractor()
	}

	if config.Clock == nil {
		config.Clock = clock.WallClock
	}

	if config.MaxPages < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for max pages, must be >= 0"))
	} else if config.MaxPages == 0 {
		config.MaxPages = 100
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
