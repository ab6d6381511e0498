package goquery

import (
	"encoding/json"
	"maps"
	"mime"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ldcurate"
)

var _ ldcurate.Extractor = (*Extractor)(nil)

const jsonLDMediaType = "application/ld+json"

// Extractor finds JSON-LD script blocks in HTML documents.
type Extractor struct{}

// NewExtractor creates a new JSON-LD extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and every JSON-LD node in document
// order. Arrays contribute one block per element and a top-level @graph
// contributes one block per node; graph nodes without their own @context
// inherit the enclosing one. Blocks that are not valid JSON are counted
// and skipped.
func (e *Extractor) Extract(html string) (*ldcurate.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ldcurate.Errorf(ldcurate.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &ldcurate.Extraction{
		Title:  strings.TrimSpace(doc.Find("title").First().Text()),
		Blocks: []any{},
	}

	doc.Find("script[type]").Each(func(_ int, sel *goquery.Selection) {
		if !isJSONLD(sel.AttrOr("type", "")) {
			return
		}
		content := strings.TrimSpace(sel.Text())
		if content == "" {
			return
		}

		var data any
		if err := json.Unmarshal([]byte(content), &data); err != nil {
			result.InvalidBlocks++
			return
		}

		if items, ok := data.([]any); ok {
			for _, item := range items {
				result.Blocks = append(result.Blocks, expandGraph(item)...)
			}
			return
		}
		result.Blocks = append(result.Blocks, expandGraph(data)...)
	})

	return result, nil
}

// isJSONLD matches the script type case-insensitively, ignoring parameters.
func isJSONLD(scriptType string) bool {
	mediaType, _, err := mime.ParseMediaType(scriptType)
	if err != nil {
		mediaType, _, _ = strings.Cut(scriptType, ";")
	}
	return strings.EqualFold(strings.TrimSpace(mediaType), jsonLDMediaType)
}

// expandGraph splits a node holding @graph into its member nodes.
func expandGraph(data any) []any {
	obj, ok := data.(map[string]any)
	if !ok {
		return []any{data}
	}
	graph, ok := obj["@graph"]
	if !ok {
		return []any{data}
	}

	var nodes []any
	switch g := graph.(type) {
	case []any:
		nodes = g
	default:
		nodes = []any{g}
	}

	ctx, hasContext := obj["@context"]
	out := make([]any, 0, len(nodes))
	for _, node := range nodes {
		m, ok := node.(map[string]any)
		if !ok || !hasContext {
			out = append(out, node)
			continue
		}
		if _, ok := m["@context"]; ok {
			out = append(out, m)
			continue
		}
		inherited := maps.Clone(m)
		inherited["@context"] = ctx
		out = append(out, inherited)
	}
	return out
}
