package post

import "testing"

func TestExtractLinks_BareURLs(t *testing.T) {
	links := ExtractLinks("docs at https://example.com/docs and mirror at www.example.org.")
	if len(links) != 2 {
		t.Fatalf("ExtractLinks = %v, want 2 links", links)
	}
	if links[0] != "https://example.com/docs" {
		t.Errorf("links[0] = %q, want trailing punctuation trimmed", links[0])
	}
}

func TestExtractLinks_MarkdownDestinations(t *testing.T) {
	// Relative markdown destinations have no URL scheme; only the AST walk
	// can see them.
	links := ExtractLinks("try the [demo](/try) or read the [guide](./docs/guide.md)")
	if len(links) != 2 {
		t.Fatalf("ExtractLinks = %v, want 2 markdown destinations", links)
	}
}

func TestExtractLinks_NoDoubleCounting(t *testing.T) {
	// A markdown link with an absolute URL destination appears in both the
	// regex pass and the AST pass; it must count once.
	links := ExtractLinks("see [my site](https://example.com) for details")
	if len(links) != 1 {
		t.Fatalf("ExtractLinks = %v, want exactly 1", links)
	}
}

func TestExtractLinks_None(t *testing.T) {
	if links := ExtractLinks("no references here, just prose"); len(links) != 0 {
		t.Errorf("ExtractLinks = %v, want none", links)
	}
	if links := ExtractLinks(""); len(links) != 0 {
		t.Errorf("ExtractLinks(\"\") = %v, want none", links)
	}
}

func TestLinkDensity(t *testing.T) {
	if d := LinkDensity(""); d != 0 {
		t.Errorf("LinkDensity(\"\") = %v, want 0", d)
	}

	// 1 link out of 4 tokens.
	d := LinkDensity("details here: https://example.com today")
	if d != 0.25 {
		t.Errorf("LinkDensity = %v, want 0.25", d)
	}

	if d := LinkDensity("plain words only"); d != 0 {
		t.Errorf("LinkDensity = %v, want 0", d)
	}
}
