package mock

import "github.com/fwojciec/ldcurate"

var _ ldcurate.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of ldcurate.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*ldcurate.Extraction, error)
}

func (e *Extractor) Extract(html string) (*ldcurate.Extraction, error) {
	return e.ExtractFn(html)
}
