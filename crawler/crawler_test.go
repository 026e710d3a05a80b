package crawler

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	mock_crawler "github.com/mycok/webrank/crawler/mocks"
	"github.com/mycok/webrank/linkgraph/store/memory"
)

// Initialize and register pointer instances of test suites to be
// executed by check testing package.
var (
	_ = check.Suite(new(crawlerConfigTestSuite))
	_ = check.Suite(new(crawlerTestSuite))
)

func Test(t *testing.T) {
	check.TestingT(t)
}

type crawlerConfigTestSuite struct{}

func (s *crawlerConfigTestSuite) TestConfigValidation(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	originalConfig := Config{
		Graph: mock_crawler.NewMockMiniGraph(ctrl),
	}

	config := originalConfig
	c.Assert(config.validate(), check.IsNil)
	c.Assert(config.URLGetter, check.Not(check.IsNil), check.Commentf("default URL getter was not assigned"))
	c.Assert(config.PrivateNetworkDetector, check.Not(check.IsNil), check.Commentf("default private network detector was not assigned"))
	c.Assert(config.LinkExtractor, check.Not(check.IsNil), check.Commentf("default link extractor was not assigned"))
	c.Assert(config.Clock, check.Not(check.IsNil), check.Commentf("default clock was not assigned"))
	c.Assert(config.Logger, check.Not(check.IsNil), check.Commentf("default logger was not assigned"))
	c.Assert(config.MaxPages, check.Equals, 100)

	config = originalConfig
	config.Graph = nil
	c.Assert(config.validate(), check.ErrorMatches, "(?ms).*graph API not provided.*")

	config = originalConfig
	config.MaxPages = -1
	c.Assert(config.validate(), check.ErrorMatches, "(?ms).*invalid value for max pages.*")
}

type crawlerTestSuite struct {
	urlGetter   *mock_crawler.MockURLGetter
	netDetector *mock_crawler.MockPrivateNetworkDetector
	store       *memory.InMemoryGraph
}

func (s *crawlerTestSuite) SetUpTest(c *check.C) {
	ctrl := gomock.NewController(c)

	s.urlGetter = mock_crawler.NewMockURLGetter(ctrl)
	s.netDetector = mock_crawler.NewMockPrivateNetworkDetector(ctrl)
	s.store = memory.NewInMemoryGraph()
}

func (s *crawlerTestSuite) TestCrawlBuildsSameDomainGraph(c *check.C) {
	s.netDetector.EXPECT().IsNetworkPrivate("site.com").Return(false, nil).AnyTimes()
	s.serve("http://site.com", `
<a href="/about">about us</a>
<a href="/contact">contact</a>
<a href="https://other.com/page">partner site</a>
`)
	s.serve("http://site.com/about", `
<a href="/">home</a>
<a href="/contact">contact</a>
`)
	s.serve("http://site.com/contact", `<a href="/">home</a>`)

	stats := s.crawl(c, "http://site.com", 100)
	c.Assert(stats.PagesVisited, check.Equals, 3)
	c.Assert(stats.PagesFailed, check.Equals, 0)
	c.Assert(stats.EdgesUpserted, check.Equals, 5)

	linkURLs, edges := s.graphContents(c)
	c.Assert(linkURLs, check.DeepEquals, []string{
		"http://site.com",
		"http://site.com/about",
		"http://site.com/contact",
	})
	c.Assert(edges, check.DeepEquals, []string{
		"http://site.com -> http://site.com/about",
		"http://site.com -> http://site.com/contact",
		"http://site.com/about -> http://site.com",
		"http://site.com/about -> http://site.com/contact",
		"http://site.com/contact -> http://site.com",
	})
}

func (s *crawlerTestSuite) TestCrawlHonorsPageBudget(c *check.C) {
	s.netDetector.EXPECT().IsNetworkPrivate("site.com").Return(false, nil).AnyTimes()
	// Only the first two pages of the chain may be fetched.
	s.serve("http://site.com", `<a href="/a">a</a>`)
	s.serve("http://site.com/a", `<a href="/b">b</a>`)

	stats := s.crawl(c, "http://site.com", 2)
	c.Assert(stats.PagesVisited, check.Equals, 2)

	// The last discovered page stays in the graph as a dangling node.
	linkURLs, _ := s.graphContents(c)
	c.Assert(linkURLs, check.DeepEquals, []string{
		"http://site.com",
		"http://site.com/a",
		"http://site.com/b",
	})
}

func (s *crawlerTestSuite) TestCrawlSkipsFailedFetches(c *check.C) {
	s.netDetector.EXPECT().IsNetworkPrivate("site.com").Return(false, nil).AnyTimes()
	s.serve("http://site.com", `
<a href="/missing">gone</a>
<a href="/ok">ok</a>
`)
	s.urlGetter.EXPECT().Get("http://site.com/missing").Return(makeResponse(
		404, "text/html", "not found",
	), nil)
	s.serve("http://site.com/ok", `<a href="/">home</a>`)

	stats := s.crawl(c, "http://site.com", 100)
	c.Assert(stats.PagesVisited, check.Equals, 3)
	c.Assert(stats.PagesFailed, check.Equals, 1)

	// The failed page is retained as a link but contributes no outgoing
	// edges.
	linkURLs, edges := s.graphContents(c)
	c.Assert(linkURLs, check.DeepEquals, []string{
		"http://site.com",
		"http://site.com/missing",
		"http://site.com/ok",
	})
	c.Assert(edges, check.DeepEquals, []string{
		"http://site.com -> http://site.com/missing",
		"http://site.com -> http://site.com/ok",
		"http://site.com/ok -> http://site.com",
	})
}

func (s *crawlerTestSuite) TestCrawlDeduplicatesNormalizedLinks(c *check.C) {
	s.netDetector.EXPECT().IsNetworkPrivate("site.com").Return(false, nil).AnyTimes()
	// All three anchors resolve to the same page after normalization so the
	// page must only be fetched once.
	s.serve("http://site.com", `
<a href="/about">about</a>
<a href="/about/">about with slash</a>
<a href="/about#team">about anchor</a>
`)
	s.serve("http://site.com/about", "no links here")

	stats := s.crawl(c, "http://site.com", 100)
	c.Assert(stats.PagesVisited, check.Equals, 2)

	linkURLs, edges := s.graphContents(c)
	c.Assert(linkURLs, check.DeepEquals, []string{
		"http://site.com",
		"http://site.com/about",
	})
	c.Assert(edges, check.DeepEquals, []string{
		"http://site.com -> http://site.com/about",
	})
}

func (s *crawlerTestSuite) TestCrawlWithInvalidRootURL(c *check.C) {
	crawler, err := New(Config{
		Graph:                  s.store,
		URLGetter:              s.urlGetter,
		PrivateNetworkDetector: s.netDetector,
	})
	c.Assert(err, check.IsNil)

	_, err = crawler.Crawl(context.TODO(), ":not-a-url")
	c.Assert(err, check.ErrorMatches, `crawl: invalid root URL.*`)
}

func (s *crawlerTestSuite) serve(url, body string) {
	s.urlGetter.EXPECT().Get(url).Return(makeResponse(200, "text/html", body), nil)
}

func (s *crawlerTestSuite) crawl(c *check.C, rootURL string, maxPages int) Stats {
	crawler, err := New(Config{
		Graph:                  s.store,
		URLGetter:              s.urlGetter,
		PrivateNetworkDetector: s.netDetector,
		MaxPages:               maxPages,
	})
	c.Assert(err, check.IsNil)

	stats, err := crawler.Crawl(context.TODO(), rootURL)
	c.Assert(err, check.IsNil)

	return stats
}

// graphContents returns the sorted link URLs and the sorted list of edges in
// "src -> dest" format currently present in the graph store.
func (s *crawlerTestSuite) graphContents(c *check.C) ([]string, []string) {
	maxUUID := uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")
	future := time.Now().Add(time.Hour)

	urlsByID := make(map[uuid.UUID]string)

	linkIt, err := s.store.Links(uuid.Nil, maxUUID, future)
	c.Assert(err, check.IsNil)
	for linkIt.Next() {
		link := linkIt.Link()
		urlsByID[link.ID] = link.URL
	}
	c.Assert(linkIt.Error(), check.IsNil)
	c.Assert(linkIt.Close(), check.IsNil)

	var edges []string

	edgeIt, err := s.store.Edges(uuid.Nil, maxUUID, future)
	c.Assert(err, check.IsNil)
	for edgeIt.Next() {
		edge := edgeIt.Edge()
		edges = append(edges, urlsByID[edge.Src]+" -> "+urlsByID[edge.Dest])
	}
	c.Assert(edgeIt.Error(), check.IsNil)
	c.Assert(edgeIt.Close(), check.IsNil)

	var urls []string
	for _, url := range urlsByID {
		urls = append(urls, url)
	}

	sort.Strings(urls)
	sort.Strings(edges)

	return urls, edges
}

func makeResponse(code int, contentType, body string) *http.Response {
	resp := new(http.Response)
	resp.Body = io.NopCloser(strings.NewReader(body))
	resp.StatusCode = code

	if contentType != "" {
		resp.Header = make(http.Header)
		resp.Header.Set("Content-Type", contentType)
	}

	return resp
}
