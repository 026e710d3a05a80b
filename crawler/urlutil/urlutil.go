/*
	urlutil package provides the URL canonicalization and crawl-scope
	helpers shared by the crawler components.
*/

package urlutil

import (
	"net/url"
	"strings"
)

// Normalize returns the canonical form of rawURL that is used as the
// identity key for graph nodes. Canonicalization removes the fragment
// component and a single trailing path separator.
//
// Note: URLs that differ only by letter case, query parameter order or
// more than one trailing slash are intentionally not collapsed.
func Normalize(rawURL string) string {
	canonical := rawURL

	// Drop the fragment component together with the '#' marker.
	if i := strings.IndexByte(canonical, '#'); i != -1 {
		canonical = canonical[:i]
	}

	// Drop a single trailing path separator unless that would leave an
	// empty string behind.
	if len(canonical) > 1 && canonical[len(canonical)-1] == '/' {
		canonical = canonical[:len(canonical)-1]
	}

	return canonical
}

// Host returns the network-location component (host plus optional port)
// of an absolute URL.
func Host(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	return parsed.Host, nil
}

// SameDomain reports whether two absolute URLs share the same crawl
// scope. The network-location components of both URLs are compared as
// plain strings; no subdomain matching or host equivalence resolution
// is performed. URLs that fail to parse or carry no host never match.
func SameDomain(a, b string) bool {
	hostA, err := Host(a)
	if err != nil || hostA == "" {
		return false
	}

	hostB, err := Host(b)
	if err != nil {
		return false
	}

	return hostA == hostB
}
