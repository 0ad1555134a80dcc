// Package htmlclean turns raw HTML into plain text using regex-level
// matching rather than a full parser, per the engine's narrow needs: strip
// block elements, strip remaining tags, and decode entities.
package htmlclean

import (
	"html"
	"regexp"
)

// blockElements lists the elements whose content (not just the tag) is
// dropped before the rest of the document is tokenized.
var blockElements = []string{"script", "style", "head", "noscript"}

var blockElementRegexes = compileBlockElementRegexes(blockElements)

func compileBlockElementRegexes(names []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(names))
	for i, name := range names {
		res[i] = regexp.MustCompile(`(?is)<` + name + `(\s[^>]*)?>.*?</` + name + `\s*>`)
	}
	return res
}

var tagRegexp = regexp.MustCompile(`(?s)<[^>]*>`)

// StripBlockElements removes the full contents of every block element
// (script, style, head, noscript) from html, case-insensitively, leaving
// all other tags and text intact.
func StripBlockElements(htmlText string) string {
	for _, re := range blockElementRegexes {
		htmlText = re.ReplaceAllString(htmlText, "")
	}
	return htmlText
}

// StripTags removes every remaining "<...>" tag, leaving only text content.
func StripTags(htmlText string) string {
	return tagRegexp.ReplaceAllString(htmlText, " ")
}

// StripEntities decodes named and numeric HTML entities into their
// corresponding characters.
func StripEntities(text string) string {
	return html.UnescapeString(text)
}

// Clean applies the full pipeline used by the crawler: strip block
// elements, strip tags, then decode entities.
func Clean(htmlText string) string {
	htmlText = StripBlockElements(htmlText)
	htmlText = StripTags(htmlText)
	return StripEntities(htmlText)
}
