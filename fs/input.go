package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/ldcurate"
	"gopkg.in/yaml.v3"
)

// LoadTargets reads the URLs to scrape. The file may be JSON or YAML
// (by extension) and hold a list of URL strings, a list of
// {url, category, priority} objects, or an object with a "urls" list.
func LoadTargets(path string) ([]ldcurate.Target, error) {
	var raw any
	if err := decodeFile(path, &raw); err != nil {
		return nil, err
	}

	if m, ok := raw.(map[string]any); ok {
		urls, ok := m["urls"]
		if !ok {
			return nil, ldcurate.Errorf(ldcurate.EINVALID, "%s: expected a list of URLs or an object with a \"urls\" list", path)
		}
		raw = urls
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, ldcurate.Errorf(ldcurate.EINVALID, "%s: expected a list of URLs", path)
	}
	if len(items) == 0 {
		return nil, ldcurate.Errorf(ldcurate.EINVALID, "%s: no URLs", path)
	}

	targets := make([]ldcurate.Target, 0, len(items))
	for i, item := range items {
		t, err := toTarget(item)
		if err != nil {
			return nil, ldcurate.Errorf(ldcurate.EINVALID, "%s: entry %d: %s", path, i+1, ldcurate.ErrorMessage(err))
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func toTarget(item any) (ldcurate.Target, error) {
	var t ldcurate.Target
	switch v := item.(type) {
	case string:
		t.URL = v
	case map[string]any:
		t.URL = stringField(v, "url")
		t.Category = stringField(v, "category")
		t.Priority = stringField(v, "priority")
	default:
		return t, ldcurate.Errorf(ldcurate.EINVALID, "expected a URL string or object, got %T", item)
	}
	t.URL = strings.TrimSpace(t.URL)
	if t.URL == "" {
		return t, ldcurate.Errorf(ldcurate.EINVALID, "url required")
	}
	return t, nil
}

// stringField renders scalar fields as strings so a numeric priority
// such as 1 is kept as "1".
func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// LoadDomains reads the discovery domain list from a JSON or YAML file.
func LoadDomains(path string) (*ldcurate.DomainList, error) {
	var list ldcurate.DomainList
	if err := decodeFile(path, &list); err != nil {
		return nil, err
	}
	if list.Len() == 0 {
		return nil, ldcurate.Errorf(ldcurate.EINVALID, "%s: no domains", path)
	}
	for name, category := range list.Categories {
		for i, d := range category.Domains {
			if strings.TrimSpace(d.URL) == "" {
				return nil, ldcurate.Errorf(ldcurate.EINVALID, "%s: category %s: domain %d: url required", path, name, i+1)
			}
		}
	}
	return &list, nil
}

// WriteCandidates writes discovery output as an indented JSON list. The
// file can be passed back to LoadTargets.
func WriteCandidates(path string, candidates []ldcurate.Candidate) error {
	if candidates == nil {
		candidates = []ldcurate.Candidate{}
	}
	return writeJSONAtomic(path, candidates)
}

// decodeFile decodes YAML for .yaml and .yml files and JSON otherwise.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ldcurate.Errorf(ldcurate.ENOTFOUND, "file not found: %s", path)
	} else if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return ldcurate.Errorf(ldcurate.EINVALID, "%s: invalid YAML: %v", path, err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return ldcurate.Errorf(ldcurate.EINVALID, "%s: invalid JSON: %v", path, err)
		}
	}
	return nil
}
