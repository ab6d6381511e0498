package ldcurate

// Extraction holds the structured data found in an HTML page.
type Extraction struct {
	// Title is the page <title>.
	Title string

	// Blocks are the decoded JSON-LD nodes in document order. Script
	// blocks holding an array or a @graph contribute one block per node.
	Blocks []any

	// InvalidBlocks counts script blocks whose JSON could not be decoded.
	InvalidBlocks int
}

// Extractor pulls embedded JSON-LD out of HTML.
type Extractor interface {
	Extract(html string) (*Extraction, error)
}
