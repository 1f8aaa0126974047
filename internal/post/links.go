package post

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdown is a bare goldmark instance used only for AST construction.
var markdown = goldmark.New()

// ExtractLinks returns every link reference in a post: bare URLs, www-style
// references, and markdown link/image/autolink destinations. Post bodies are
// markdown, so `[demo](/try)` counts as a link even though no URL scheme
// appears in the raw text.
func ExtractLinks(postText string) []string {
	var links []string

	for _, m := range urlRegex.FindAllString(postText, -1) {
		links = append(links, strings.TrimRight(m, ".,;:)"))
	}

	for _, dest := range markdownDestinations(postText) {
		// Bare-URL destinations were already counted by the regex pass.
		if urlRegex.MatchString(dest) {
			continue
		}
		links = append(links, dest)
	}

	return links
}

// markdownDestinations walks the goldmark AST and collects link, image, and
// autolink destinations.
func markdownDestinations(postText string) []string {
	source := []byte(postText)
	root := markdown.Parser().Parse(text.NewReader(source))

	var dests []string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			if d := strings.TrimSpace(string(node.Destination)); d != "" {
				dests = append(dests, d)
			}
		case *ast.Image:
			if d := strings.TrimSpace(string(node.Destination)); d != "" {
				dests = append(dests, d)
			}
		case *ast.AutoLink:
			if d := strings.TrimSpace(string(node.URL(source))); d != "" {
				dests = append(dests, d)
			}
		}
		return ast.WalkContinue, nil
	})

	return dests
}

// LinkDensity returns the fraction of whitespace-separated tokens that are
// link references, in [0,1]. Empty text has density 0.
func LinkDensity(postText string) float64 {
	tokens := strings.Fields(postText)
	if len(tokens) == 0 {
		return 0
	}

	n := len(ExtractLinks(postText))
	if n > len(tokens) {
		n = len(tokens)
	}
	return round2(float64(n) / float64(len(tokens)))
}
