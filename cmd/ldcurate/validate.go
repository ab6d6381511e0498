package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/ldcurate"
)

// blockResult is the verdict for one JSON-LD block of an HTML page.
type blockResult struct {
	Index int `json:"index"`
	*ldcurate.ScoreResult
}

// pageResult is printed for HTML input.
type pageResult struct {
	File          string        `json:"file"`
	Title         string        `json:"title,omitempty"`
	InvalidBlocks int           `json:"invalid_blocks"`
	Best          int           `json:"best"`
	Blocks        []blockResult `json:"blocks"`
}

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	var out any
	if c.HTML || isHTML(c.File) {
		out, err = c.scorePage(deps, string(data))
	} else {
		out, err = c.scoreJSON(deps, data)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ldcurate.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (c *ValidateCmd) scoreJSON(deps *Dependencies, data []byte) (*ldcurate.ScoreResult, error) {
	var obj any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, ldcurate.Errorf(ldcurate.EINVALID, "%s is not valid JSON: %v", c.File, err)
	}
	return deps.Scorer.Score(obj), nil
}

func (c *ValidateCmd) scorePage(deps *Dependencies, html string) (*pageResult, error) {
	extraction, err := deps.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}
	if len(extraction.Blocks) == 0 {
		return nil, ldcurate.Errorf(ldcurate.ENOTFOUND, "no JSON-LD found in %s", c.File)
	}

	page := &pageResult{
		File:          c.File,
		Title:         extraction.Title,
		InvalidBlocks: extraction.InvalidBlocks,
		Blocks:        make([]blockResult, len(extraction.Blocks)),
	}
	for i, block := range extraction.Blocks {
		page.Blocks[i] = blockResult{Index: i, ScoreResult: deps.Scorer.Score(block)}
		if page.Blocks[i].Score > page.Blocks[page.Best].Score {
			page.Best = i
		}
	}
	return page, nil
}

func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
