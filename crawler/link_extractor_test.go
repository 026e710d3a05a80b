package crawler

import (
	"net/url"
	"sort"

	check "gopkg.in/check.v1"
)

// Initialize and register pointer instances of test suites to be
// executed by check testing package.
var (
	_ = check.Suite(new(linkExtractionTestSuite))
	_ = check.Suite(new(resolveURLTestSuite))
)

type resolveURLTestSuite struct{}

func (s *resolveURLTestSuite) TestResolveLinkReferenceURL(c *check.C) {
	assertOnResolvedURL(
		c,
		"https://www.example.com/users",
		"//www.myshop.com/users",
		"https://www.myshop.com/users",
	)

	assertOnResolvedURL(
		c,
		"http://www.example.com/users",
		"//www.myshop.com/users",
		"http://www.myshop.com/users",
	)
}

func (s *resolveURLTestSuite) TestResolveAbsoluteURL(c *check.C) {
	assertOnResolvedURL(
		c,
		"https://www.example.com/users",
		"https://www.myshop.com/users",
		"https://www.myshop.com/users",
	)
}

func (s *resolveURLTestSuite) TestResolveRelativeURL(c *check.C) {
	assertOnResolvedURL(
		c,
		"http://example.com/foo/",
		"bar/baz",
		"http://example.com/foo/bar/baz",
	)

	assertOnResolvedURL(
		c,
		"http://example.com/foo/",
		"/bar/baz",
		"http://example.com/bar/baz",
	)

	assertOnResolvedURL(
		c,
		"http://example.com/foo/secret/",
		"./bar/baz",
		"http://example.com/foo/secret/bar/baz",
	)

	assertOnResolvedURL(
		c,
		// Lack of a trailing slash means we should treat "secret" as a
		// file and the path is relative to its parent path.
		"http://example.com/foo/secret",
		"./bar/baz",
		"http://example.com/foo/bar/baz",
	)
}

func assertOnResolvedURL(c *check.C, base, target, expected string) {
	baseURL, err := url.Parse(base)
	c.Assert(err, check.IsNil)

	var resolvedURL string
	if resolved := resolveToAbsoluteURL(baseURL, target); resolved != nil {
		resolvedURL = resolved.String()
	}

	c.Assert(resolvedURL, check.DeepEquals, expected)
}

type linkExtractionTestSuite struct{}

func (s *linkExtractionTestSuite) TestLinkExtractionWithNonHTTPLinks(c *check.C) {
	content := `
<html>
<body>
	<a href="ftp://example.com">An FTP site</a>
</body>
</html>
`
	s.assertOnExtractedLinks(c, "http://test.com", content, nil)
}

func (s *linkExtractionTestSuite) TestLinkExtractionWithRelativeLinksToFile(c *check.C) {
	content := `
<html>
<body>
	<a href="./foo.html">link to foo</a>
	<a href="../private/data.html">login required</a>
</body>
</html>
`
	s.assertOnExtractedLinks(c, "http://test.com/content/intro.html", content, []string{
		"http://test.com/content/foo.html",
		"http://test.com/private/data.html",
	})
}

func (s *linkExtractionTestSuite) TestLinkExtractionWithRelativeLinksToDir(c *check.C) {
	content := `
<html>
<body>
	<a href="./foo.html">link to foo</a>
	<a href="../private/data.html">login required</a>
</body>
</html>
`
	s.assertOnExtractedLinks(c, "http://test.com/content/", content, []string{
		"http://test.com/content/foo.html",
		"http://test.com/private/data.html",
	})
}

func (s *linkExtractionTestSuite) TestLinkExtractionWithBaseTag(c *check.C) {
	content := `
<html>
<head><base href="https://test.com/base/"/>"/></head>
<body>
	<a href="./foo.html">link to foo</a>
	<a href="../private/data.html">login required</a>
</body>
</html>
`
	s.assertOnExtractedLinks(c, "http://test.com/content/", content, []string{
		"https://test.com/base/foo.html",
		"https://test.com/private/data.html",
	})
}

func (s *linkExtractionTestSuite) TestLinkExtractionSkipsNoFollowLinks(c *check.C) {
	content := `
<html>
<body>
	<a href="./sponsored" rel="nofollow">sponsored content</a>
	<a href="./organic">regular link</a>
</body>
</html>
`
	s.assertOnExtractedLinks(c, "http://test.com/", content, []string{
		"http://test.com/organic",
	})
}

func (s *linkExtractionTestSuite) TestLinkExtractionSuccessfulRun(c *check.C) {
	content := `
<html>
	<body>
		<a href="https://example.com"/>
		<a href="//foo.com"></a>
		<a href="/absolute/link"></a>

		<!-- duplicates, even with fragments should be skipped -->
		<a href="https://example.com#important"/>
		<a href="//foo.com"></a>
		<a href="/absolute/link#some-anchor"></a>
	</body>
</html>
`
	s.assertOnExtractedLinks(c, "http://test.com", content, []string{
		"https://example.com",
		"http://foo.com",
		"http://test.com/absolute/link",
	})
}

func (s *linkExtractionTestSuite) assertOnExtractedLinks(
	c *check.C, pageURL, content string, expectedLinks []string,
) {

	le := NewHTMLLinkExtractor()
	links, err := le.ExtractLinks(pageURL, []byte(content))
	c.Assert(err, check.IsNil)

	sort.Strings(links)
	sort.Strings(expectedLinks)
	c.Assert(links, check.DeepEquals, expectedLinks)
}
