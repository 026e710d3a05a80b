package crawler

import (
	"net/url"
	"regexp"
)

// Static and compile-time check to ensure htmlLinkExtractor implements
// the LinkExtractor interface.
var _ LinkExtractor = (*htmlLinkExtractor)(nil)

var (
	// Locate the <base href="xxx"> tag and return the value of the href
	// attribute.
	baseHrefRegex = regexp.MustCompile(`(?i)<base.*?href\s*?=\s*?"(.*?)\s*?"`)
	// Locate the <a href="xxx"> tag and return the value of the href
	// attribute.
	findLinkRegex = regexp.MustCompile(`(?i)<a.*?href\s*?=\s*?"\s*?(.*?)\s*?".*?>`)
	// Locate <a> tags annotated with a rel="nofollow" attribute. Such links
	// carry no endorsement from the linking page and are excluded from the
	// score calculation.
	noFollowRegex = regexp.MustCompile(`(?i)rel\s*?=\s*?"?nofollow"?`)
)

// htmlLinkExtractor scans the body of a retrieved HTML document and extracts
// all of the links embedded in it.
type htmlLinkExtractor struct{}

// NewHTMLLinkExtractor returns a LinkExtractor that locates links by matching
// anchor tags in the raw page content.
func NewHTMLLinkExtractor() LinkExtractor {
	return &htmlLinkExtractor{}
}

// ExtractLinks parses the page content to extract absolute, relative and
// network path reference links and returns them as a de-duplicated list of
// absolute URLs.
func (e *htmlLinkExtractor) ExtractLinks(pageURL string, content []byte) ([]string, error) {
	// Generate a fully qualified url to use as a base URL for all relative
	// urls.
	relativeTo, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	doc := string(content)

	// If the page content contains a base URL embedded in a <base href="xxx">
	// tag, we should resolve it and use that as our base URL instead.
	//
	// Note: len(baseMatches) will always return 2 or nil even when no
	// submatch is found. This is because an empty string is always returned
	// as a place-holder. Checks for an empty string are handled by the
	// resolveToAbsoluteURL() helper function.
	baseMatches := baseHrefRegex.FindStringSubmatch(doc)
	if len(baseMatches) == 2 {
		baseURL := resolveToAbsoluteURL(
			relativeTo, checkAndAddTrailingSlash(baseMatches[1]),
		)
		if baseURL != nil {
			relativeTo = baseURL
		}
	}

	var links []string

	seenMap := map[string]struct{}{}
	for _, match := range findLinkRegex.FindAllStringSubmatch(doc, -1) {
		// Links annotated with rel="nofollow" don't transfer any score to
		// their destination and are skipped.
		if noFollowRegex.MatchString(match[0]) {
			continue
		}

		parsedURL := resolveToAbsoluteURL(relativeTo, match[1])
		if !shouldRetainURL(parsedURL) {
			continue
		}

		// Truncate / remove html anchors.
		// ie, in this ["https://example.com/index.html#foo"] url, the [#foo]
		// is dropped.
		parsedURL.Fragment = ""

		parsedURLString := parsedURL.String()

		// Skip URLs that point to files that don't contain html content.
		if exclusionRegex.MatchString(parsedURLString) {
			continue
		}

		// Check for duplicates.
		if _, exists := seenMap[parsedURLString]; exists {
			continue
		}

		seenMap[parsedURLString] = struct{}{}
		links = append(links, parsedURLString)
	}

	return links, nil
}

func shouldRetainURL(url *url.URL) bool {
	// Skip links that could not be resolved.
	if url == nil {
		return false
	}

	// Skip links with non HTTP(S) schemes.
	if url.Scheme != "http" && url.Scheme != "https" {
		return false
	}

	return true
}

func checkAndAddTrailingSlash(s string) string {
	if s != "" && s[len(s)-1] != '/' {
		return s + "/"
	}

	return s
}

// resolveToAbsoluteURL expands target into an absolute URL using the
// following rules:
//   - targets starting with '//' are treated as absolute URLs that inherit
//     the protocol / scheme from relativeTo.
//   - all other targets are assumed to be relative to relativeTo.
//
// If the target URL cannot be parsed, a nil URL will be returned.
func resolveToAbsoluteURL(relativeTo *url.URL, target string) *url.URL {
	targetLength := len(target)
	// Check if the target is an empty string.
	if targetLength == 0 {
		return nil
	}

	// Check for network path references. ["//example.com"]
	if targetLength >= 2 && target[0] == '/' && target[1] == '/' {
		target = relativeTo.Scheme + ":" + target
	}

	parsedURL, err := url.Parse(target)
	if err != nil {
		return nil
	}

	return relativeTo.ResolveReference(parsedURL)
}
