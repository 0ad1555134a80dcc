package linkextract

import (
	"net/url"
	"testing"
)

func mustParse(t *testing.T, raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", raw, err)
	}
	return u
}

func TestListLinksResolvesAndFiltersSchemes(t *testing.T) {
	base := mustParse(t, "https://example.com/a/")
	html := `
		<a href="page.html">relative</a>
		<a href="https://other.com/x">absolute</a>
		<a href="mailto:a@b.com">mail</a>
		<a href="/root#frag">fragment</a>
	`
	links := ListLinks(base, html)
	want := []string{
		"https://example.com/a/page.html",
		"https://other.com/x",
		"https://example.com/root",
	}
	if len(links) != len(want) {
		t.Fatalf("ListLinks returned %d links, want %d: %v", len(links), len(want), links)
	}
	for i, u := range links {
		if u.String() != want[i] {
			t.Errorf("link %d = %q, want %q", i, u.String(), want[i])
		}
	}
}

func TestCanonicalizeDropsFragmentOnly(t *testing.T) {
	u := mustParse(t, "https://example.com/a?b=c#section")
	got := Canonicalize(u)
	if got.Fragment != "" {
		t.Errorf("Canonicalize left fragment: %q", got.Fragment)
	}
	if got.RawQuery != "b=c" || got.Path != "/a" || got.Host != "example.com" {
		t.Errorf("Canonicalize changed more than the fragment: %+v", got)
	}
}

func TestCanonicalString(t *testing.T) {
	u := mustParse(t, "http://example.com/x#y")
	if got := CanonicalString(u); got != "http://example.com/x" {
		t.Errorf("CanonicalString = %q, want %q", got, "http://example.com/x")
	}
}
