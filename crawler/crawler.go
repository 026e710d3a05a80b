/*
	crawler implements a breadth-first web crawler that maps the internal
	link structure of a single site into a link graph store.

	Starting from a root URL, the crawler visits pages in FIFO order up to
	a configurable page budget. Every outgoing link that resolves to the
	same domain as the root is recorded as a directed edge in the graph
	and queued for a future visit.
*/

package crawler

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mycok/webrank/crawler/urlutil"
	"github.com/mycok/webrank/linkgraph/graph"
)

// Locate links that point to web pages that don't serve html content.
var exclusionRegex = regexp.MustCompile(`(?i)\.(?:jpg|jpeg|png|gif|ico|css|js)$`)

// Stats summarizes the outcome of a single crawl pass.
type Stats struct {
	// PagesVisited is the number of pages that consumed crawl budget,
	// including pages whose fetch attempt failed.
	PagesVisited int

	// PagesFailed is the number of visited pages that could not be
	// retrieved or did not serve HTML content.
	PagesFailed int

	// EdgesUpserted is the number of same-domain edges recorded in the
	// graph during the pass.
	EdgesUpserted int
}

// Crawler maps the same-domain link structure of a site into a link graph
// store.
type Crawler struct {
	cfg Config
}

// New creates a new crawler instance using the provided config options.
func New(cfg Config) (*Crawler, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("crawler config validation failed: %w", err)
	}

	return &Crawler{cfg: cfg}, nil
}

// Crawl performs a breadth-first traversal of the site rooted at rootURL and
// records the discovered pages and same-domain links in the configured graph
// store. The traversal stops when the frontier is exhausted, when the page
// budget runs out or when the provided context expires.
func (c *Crawler) Crawl(ctx context.Context, rootURL string) (Stats, error) {
	var stats Stats

	root := urlutil.Normalize(rootURL)

	rootHost, err := urlutil.Host(root)
	if err != nil || rootHost == "" {
		return stats, fmt.Errorf("crawl: invalid root URL %q", rootURL)
	}

	// The enqueued set covers both pages that were already visited and
	// pages still waiting in the frontier so that each page is queued at
	// most once.
	var (
		frontier = []string{root}
		enqueued = map[string]struct{}{root: {}}
	)

	for len(frontier) > 0 && stats.PagesVisited < c.cfg.MaxPages {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		pageURL := frontier[0]
		frontier = frontier[1:]

		// Each dequeued page consumes crawl budget exactly once, whether
		// or not its fetch succeeds.
		stats.PagesVisited++

		content, err := c.fetchPage(pageURL)
		if err != nil {
			stats.PagesFailed++
			c.cfg.Logger.WithFields(logrus.Fields{
				"url": pageURL,
				"err": err,
			}).Warn("skipping page: fetch failed")

			continue
		}

		srcLink := &graph.Link{URL: pageURL, RetrievedAt: c.cfg.Clock.Now()}
		if err := c.cfg.Graph.UpsertLink(srcLink); err != nil {
			return stats, fmt.Errorf("crawl: upsert link %q: %w", pageURL, err)
		}

		// Any edge of this page that is not refreshed below belongs to a
		// link that has since been removed from the page contents.
		removeEdgesOlderThan := c.cfg.Clock.Now()

		links, err := c.cfg.LinkExtractor.ExtractLinks(pageURL, content)
		if err != nil {
			stats.PagesFailed++
			c.cfg.Logger.WithFields(logrus.Fields{
				"url": pageURL,
				"err": err,
			}).Warn("skipping page: link extraction failed")

			continue
		}

		for _, link := range links {
			dest := urlutil.Normalize(link)
			if !urlutil.SameDomain(root, dest) {
				continue
			}

			destLink := &graph.Link{URL: dest}
			if err := c.cfg.Graph.UpsertLink(destLink); err != nil {
				return stats, fmt.Errorf("crawl: upsert link %q: %w", dest, err)
			}

			edge := &graph.Edge{Src: srcLink.ID, Dest: destLink.ID}
			if err := c.cfg.Graph.UpsertEdge(edge); err != nil {
				return stats, fmt.Errorf(
					"crawl: upsert edge %q -> %q: %w", pageURL, dest, err,
				)
			}

			stats.EdgesUpserted++

			if _, seen := enqueued[dest]; !seen {
				enqueued[dest] = struct{}{}
				frontier = append(frontier, dest)
			}
		}

		if err := c.cfg.Graph.RemoveStaleEdges(srcLink.ID, removeEdgesOlderThan); err != nil {
			return stats, fmt.Errorf(
				"crawl: remove stale edges for %q: %w", pageURL, err,
			)
		}
	}

	c.cfg.Logger.WithFields(logrus.Fields{
		"root":           root,
		"pages_visited":  stats.PagesVisited,
		"pages_failed":   stats.PagesFailed,
		"edges_upserted": stats.EdgesUpserted,
	}).Info("crawl pass completed")

	return stats, nil
}

// fetchPage retrieves the HTML contents of the page with the specified URL.
func (c *Crawler) fetchPage(pageURL string) ([]byte, error) {
	// Skip links that point to files that don't contain html content.
	if exclusionRegex.MatchString(pageURL) {
		return nil, fmt.Errorf("url points to non html content")
	}

	// Skip links to private networks, since crawling such links is a
	// security risk.
	isPrivate, err := c.isNetworkPrivate(pageURL)
	if err != nil {
		return nil, err
	} else if isPrivate {
		return nil, fmt.Errorf("url resolves to a private network address")
	}

	resp, err := c.cfg.URLGetter.Get(pageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Skip pages with non success response status codes (only allow 2xx).
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected response status %d", resp.StatusCode)
	}

	// Skip non html pages.
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "html") {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return content, nil
}

func (c *Crawler) isNetworkPrivate(urlStr string) (bool, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return false, err
	}

	return c.cfg.PrivateNetworkDetector.IsNetworkPrivate(parsedURL.Hostname())
}
