// Package linkextract finds anchor-href links in raw HTML and resolves them
// against a base URL, per the engine's regex-level (not full-parser) link
// extraction.
package linkextract

import (
	"net/url"
	"regexp"
)

// anchorHref matches the href attribute of an anchor tag, loosely: the
// intent is "href attributes on anchor tags", not a strict grammar.
var anchorHref = regexp.MustCompile(`(?is)<a[^>]*?\shref\s*=\s*"([^"]*)"[^>]*?>`)

// ListLinks returns every absolute, fragment-free HTTP(S) link found in the
// href attribute of anchor tags in html, resolved against base, in document
// order. Malformed references are skipped rather than returned as errors.
func ListLinks(base *url.URL, htmlText string) []*url.URL {
	matches := anchorHref.FindAllStringSubmatch(htmlText, -1)
	links := make([]*url.URL, 0, len(matches))
	for _, m := range matches {
		ref, err := url.Parse(m[1])
		if err != nil {
			continue
		}
		absolute := base.ResolveReference(ref)
		if absolute.Scheme != "http" && absolute.Scheme != "https" {
			continue
		}
		links = append(links, Canonicalize(absolute))
	}
	return links
}

// Canonicalize drops the fragment of u while preserving scheme, user info,
// host, port, path, and query. Case and trailing slashes are preserved.
func Canonicalize(u *url.URL) *url.URL {
	clean := *u
	clean.Fragment = ""
	clean.RawFragment = ""
	return &clean
}

// CanonicalString is Canonicalize followed by String, the location
// identifier used throughout the index for web sources.
func CanonicalString(u *url.URL) string {
	return Canonicalize(u).String()
}
